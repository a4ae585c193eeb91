package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	medal "github.com/medalwatch/podium/internal/domain/medal"
)

// Default HTTP client configuration.
const (
	defaultFetchTimeout = 10 * time.Second
	maxConnsPerHost     = 100
	readWriteTimeout    = 10 * time.Second
	idleConnDuration    = 1 * time.Minute
)

// Option applies a configuration option to the HTTPSource.
type Option func(*HTTPSource)

// WithTimeout bounds a single fetch round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(s *HTTPSource) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithAuthToken sends the token as the Authorization header on every
// fetch. Empty tokens leave the header unset.
func WithAuthToken(token string) Option {
	return func(s *HTTPSource) {
		s.authToken = token
	}
}

// HTTPSource implements Source over HTTP. The feed is a single JSON
// document; every fetch retrieves it whole.
type HTTPSource struct {
	url       string
	authToken string
	timeout   time.Duration
	client    *fasthttp.Client
}

// NewHTTPSource creates a Source polling the given results URL.
func NewHTTPSource(url string, opts ...Option) *HTTPSource {
	s := &HTTPSource{
		url:     url,
		timeout: defaultFetchTimeout,
		client: &fasthttp.Client{
			MaxConnsPerHost:     maxConnsPerHost,
			ReadTimeout:         readWriteTimeout,
			WriteTimeout:        readWriteTimeout,
			MaxIdleConnDuration: idleConnDuration,
		},
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) ([]medal.Award, error) {
	body, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	return extractAwards(body)
}

// get performs the HTTP round trip and returns a copy of the body.
func (s *HTTPSource) get(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	if s.authToken != "" {
		req.Header.Set("Authorization", s.authToken)
	}

	// The configured timeout applies unless ctx imposes a tighter bound.
	deadline := time.Now().Add(s.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := s.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}

	// The response body is pooled; copy it before release.
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}
