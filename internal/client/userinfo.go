package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
	"github.com/prohmpiriya/cinema-booking/pkg/retry"
)

const userInfoService = "user_info"

// UserInfoClient resolves user logins in batches
type UserInfoClient struct {
	httpClient *http.Client
	infoURL    string
	retry      *retry.Config
}

// NewUserInfoClient creates a new UserInfoClient. infoURL contains {page} and
// {field} placeholders. attempts bounds how many times a batch is requested.
func NewUserInfoClient(infoURL string, attempts int, opts ...Option) *UserInfoClient {
	cfg := retry.DefaultConfig()
	if attempts > 0 {
		cfg.MaxAttempts = attempts
	}
	return &UserInfoClient{
		httpClient: buildHTTPClient(opts),
		infoURL:    infoURL,
		retry:      cfg,
	}
}

// Logins returns the login of every id the service knows. Ids that are
// missing from the answer or whose login is not a string are left out.
func (c *UserInfoClient) Logins(ctx context.Context, ids []string) (map[string]string, error) {
	logins := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return logins, nil
	}

	body, err := json.Marshal(map[string][]string{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("encode ids: %w", err)
	}
	u := expand(c.infoURL, map[string]string{"page": "1", "field": "login"})

	var data map[string]interface{}
	result := retry.Do(ctx, c.retry, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
		if err != nil {
			return retry.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := do(c.httpClient, userInfoService, req)
		if err != nil {
			return err
		}
		defer drain(resp)

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("user info service returned %d", resp.StatusCode)
		}
		data = nil
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return fmt.Errorf("decode logins: %w", err)
		}
		return nil
	})
	if result.Err != nil {
		return nil, domain.Wrap(domain.KindUpstreamUnavailable, domain.ErrUserInfo.Message,
			fmt.Errorf("%w after %d attempts: %v", result.Err, result.Attempts, result.LastError))
	}

	for _, id := range ids {
		if login, ok := data[id].(string); ok {
			logins[id] = login
		}
	}
	return logins, nil
}
