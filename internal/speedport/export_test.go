package speedport

import (
	"time"

	"github.com/nerrad567/speedportmon/internal/infrastructure/config"
)

// NewClientWithTimeout lets tests shorten the fetch timeout.
func NewClientWithTimeout(cfg config.RouterConfig, timeout time.Duration) *Client {
	return newClient(cfg, timeout)
}

// FetchTimeout exposes the configured HTTP timeout.
func (c *Client) FetchTimeout() time.Duration {
	return c.httpClient.Timeout
}
