package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/prohmpiriya/cinema-booking/internal/domain"
)

const filmService = "film"

// FilmClient checks film works against the film catalog
type FilmClient struct {
	httpClient *http.Client
	filmURL    string
}

// NewFilmClient creates a new FilmClient. filmURL contains an {id} placeholder.
func NewFilmClient(filmURL string, opts ...Option) *FilmClient {
	return &FilmClient{
		httpClient: buildHTTPClient(opts),
		filmURL:    filmURL,
	}
}

// Exists reports whether the catalog knows the film work. The caller's
// Authorization header is forwarded.
func (c *FilmClient) Exists(ctx context.Context, authorization, filmWorkID string) (bool, error) {
	u := expand(c.filmURL, map[string]string{"id": url.PathEscape(filmWorkID)})
	resp, err := get(ctx, c.httpClient, filmService, u, authorization)
	if err != nil {
		return false, domain.Wrap(domain.KindUpstreamUnavailable, domain.ErrFilmService.Message, err)
	}
	defer drain(resp)

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		return false, domain.Wrap(domain.KindUpstreamUnavailable, domain.ErrFilmService.Message,
			fmt.Errorf("film service returned %d", resp.StatusCode))
	}
	return false, nil
}
