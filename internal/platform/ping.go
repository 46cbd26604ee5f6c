package platform

import (
	"context"
	"net/http"
	"time"

	"github.com/felixgeelhaar/carbonwallet/internal/log"
)

// PingTimeout bounds the startup connectivity check.
const PingTimeout = 3 * time.Second

// Ping calls GET / and discards the body.
func (c *Client) Ping(ctx context.Context) error {
	req, _ := jsonRequest(http.MethodGet, "/", nil)
	return c.do(ctx, req, nil)
}

// Pinger is anything with a connectivity check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BestEffortPing runs p.Ping in the background and returns immediately.
// The call is bounded by timeout and its outcome is only logged at debug
// level; nothing is retried or reported to the caller. The returned channel
// is closed once the ping has finished.
func BestEffortPing(ctx context.Context, p Pinger, logger *log.Logger, timeout time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if timeout <= 0 {
		timeout = PingTimeout
	}

	go func() {
		defer close(done)

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			logger.WithError(err).Debug("startup ping failed")
			return
		}
		logger.Debug("startup ping succeeded")
	}()

	return done
}
