package notify

import (
	"context"
	"strings"
	"time"

	"github.com/EliasMima/UserManagementMicroservice/internal/httpx"
)

// DefaultTimeout bounds one call to the notification service.
const DefaultTimeout = 5 * time.Second

// Client calls the notification service over HTTP. Safe for concurrent use.
type Client struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a client for the notification service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
	}
}

// Send posts one notification request and returns the sink's delivery
// record. The call is bounded by the client's timeout; expiry surfaces as an
// ordinary transport error. A record with Status "failed" is a successful
// call; the sink reports delivery failure in the body, not as an HTTP
// error.
func (c *Client) Send(ctx context.Context, req Request) (*Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var out Notification
	if err := httpx.PostJSON(ctx, c.baseURL+"/notify", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
