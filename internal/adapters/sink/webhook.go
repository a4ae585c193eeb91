package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	snapshot "github.com/medalwatch/podium/internal/domain/snapshot"
)

// Default webhook client configuration.
const (
	defaultWebhookTimeout = 5 * time.Second
	webhookMaxConns       = 10
)

// WebhookOption applies a configuration option to the WebhookReporter.
type WebhookOption func(*WebhookReporter)

// WithWebhookTimeout bounds a single delivery round trip.
func WithWebhookTimeout(timeout time.Duration) WebhookOption {
	return func(r *WebhookReporter) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// webhookPayload is the delivery wire format.
type webhookPayload struct {
	Leaders     []string `json:"leaders"`
	GeneratedAt string   `json:"generated_at"`
}

// WebhookReporter POSTs snapshots to a configured URL as JSON.
type WebhookReporter struct {
	url     string
	timeout time.Duration
	client  *fasthttp.Client
}

// NewWebhookReporter creates a reporter delivering to the given URL.
func NewWebhookReporter(url string, opts ...WebhookOption) *WebhookReporter {
	r := &WebhookReporter{
		url:     url,
		timeout: defaultWebhookTimeout,
		client: &fasthttp.Client{
			MaxConnsPerHost: webhookMaxConns,
			ReadTimeout:     defaultWebhookTimeout,
			WriteTimeout:    defaultWebhookTimeout,
		},
	}

	// Apply all options
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Report implements Reporter.
func (r *WebhookReporter) Report(ctx context.Context, snap snapshot.Snapshot) error {
	// A nil slice would serialize to JSON null; consumers expect a list.
	leaders := []string(snap)
	if leaders == nil {
		leaders = []string{}
	}

	body, err := json.Marshal(webhookPayload{
		Leaders:     leaders,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReportFailed, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	deadline := time.Now().Add(r.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := r.client.DoDeadline(req, resp, deadline); err != nil {
		return fmt.Errorf("%w: %w", ErrReportFailed, err)
	}

	if resp.StatusCode()/100 != 2 {
		return fmt.Errorf("%w: status %d", ErrReportFailed, resp.StatusCode())
	}
	return nil
}
