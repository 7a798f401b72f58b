package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
)

const identityService = "identity"

// IdentityClient checks tokens and resolves users against the identity service
type IdentityClient struct {
	httpClient *http.Client
	authURL    string
	userURL    string
}

// NewIdentityClient creates a new IdentityClient.
// userURL contains an {id} placeholder, e.g. http://auth/api/v1/users/{id}/.
func NewIdentityClient(authURL, userURL string, opts ...Option) *IdentityClient {
	return &IdentityClient{
		httpClient: buildHTTPClient(opts),
		authURL:    authURL,
		userURL:    userURL,
	}
}

// VerifyToken accepts the Authorization header when the identity service answers 200
func (c *IdentityClient) VerifyToken(ctx context.Context, authorization string) error {
	resp, err := get(ctx, c.httpClient, identityService, c.authURL, authorization)
	if err != nil {
		return domain.Wrap(domain.KindUnauthenticated, domain.ErrUnauthenticated.Message, err)
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return domain.ErrUnauthenticated
	}
	return nil
}

// GetUser returns the user with id, or nil when the identity service does not know it
func (c *IdentityClient) GetUser(ctx context.Context, authorization, id string) (*domain.User, error) {
	u := expand(c.userURL, map[string]string{"id": url.PathEscape(id)})
	resp, err := get(ctx, c.httpClient, identityService, u, authorization)
	if err != nil {
		return nil, domain.Wrap(domain.KindUpstreamUnavailable, domain.ErrIdentity.Message, err)
	}
	defer drain(resp)

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, domain.Wrap(domain.KindUpstreamUnavailable, domain.ErrIdentity.Message,
			fmt.Errorf("identity service returned %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, domain.Wrap(domain.KindUpstreamUnavailable, domain.ErrIdentity.Message, fmt.Errorf("decode user: %w", err))
	}
	if user.ID == "" {
		user.ID = id
	}
	return &user, nil
}

// IsSuperuser reports whether the user with id is a superuser
func (c *IdentityClient) IsSuperuser(ctx context.Context, authorization, id string) (bool, error) {
	user, err := c.GetUser(ctx, authorization, id)
	if err != nil {
		return false, err
	}
	return user != nil && user.IsSuperuser, nil
}
