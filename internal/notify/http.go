package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPBridge posts notifications as JSON to a local host shell endpoint.
type HTTPBridge struct {
	client *resty.Client
	url    string
}

func NewHTTPBridge(url string) *HTTPBridge {
	client := resty.New().
		SetTimeout(5*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		SetHeader("Content-Type", "application/json")

	return &HTTPBridge{client: client, url: url}
}

func (b *HTTPBridge) Available() bool { return b.url != "" }

func (b *HTTPBridge) Notify(ctx context.Context, n Notification) {
	if !b.Available() {
		return
	}
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(n).
		Post(b.url)
	if err != nil {
		slog.Warn("notification delivery failed", "action", "notify_http", "error", err)
		return
	}
	if resp.IsError() {
		slog.Warn("notification rejected by host",
			"action", "notify_http",
			"status", resp.StatusCode(),
		)
	}
}
