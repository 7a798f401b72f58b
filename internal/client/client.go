// Package client talks to the identity, film catalog and user info services.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prohmpiriya/cinema-booking/pkg/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultTimeout for upstream HTTP requests
const DefaultTimeout = 5 * time.Second

// Option configures a client
type Option func(*options)

type options struct {
	httpClient *http.Client
	timeout    time.Duration
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithTimeout sets the request timeout of the default HTTP client
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

func buildHTTPClient(opts []Option) *http.Client {
	o := &options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(o)
	}
	if o.httpClient != nil {
		return o.httpClient
	}
	return &http.Client{
		Timeout:   o.timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// expand substitutes {name} placeholders in a configured URL template
func expand(template string, values map[string]string) string {
	for k, v := range values {
		template = strings.ReplaceAll(template, "{"+k+"}", v)
	}
	return template
}

// do executes req and records its duration under service
func do(client *http.Client, service string, req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := client.Do(req)

	outcome := "error"
	if err == nil {
		outcome = fmt.Sprintf("%dxx", resp.StatusCode/100)
	}
	metrics.UpstreamRequestDuration.WithLabelValues(service, outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, fmt.Errorf("%s request: %w", service, err)
	}
	return resp, nil
}

func get(ctx context.Context, client *http.Client, service, url, authorization string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	req.Header.Set("Accept", "application/json")
	return do(client, service, req)
}

// drain discards the rest of the body so the connection can be reused
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
