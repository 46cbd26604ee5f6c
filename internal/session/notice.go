package session

import (
	"context"
	"strconv"

	"github.com/felixgeelhaar/carbonwallet/internal/storage"
)

// NoticeKey is the storage key of the privacy notice acknowledgement.
const NoticeKey = "cw_cookies_accepted"

// Notice remembers whether the privacy notice was acknowledged on this
// machine.
type Notice struct {
	backend storage.Backend
}

// NewNotice returns a Notice persisting to backend.
func NewNotice(backend storage.Backend) *Notice {
	return &Notice{backend: backend}
}

// Acknowledged reports whether the notice was accepted. Unreadable values
// count as not accepted.
func (n *Notice) Acknowledged(ctx context.Context) (bool, error) {
	v, ok, err := n.backend.Get(ctx, NoticeKey)
	if err != nil || !ok {
		return false, err
	}
	accepted, err := strconv.ParseBool(v)
	if err != nil {
		return false, nil
	}
	return accepted, nil
}

// Acknowledge records acceptance.
func (n *Notice) Acknowledge(ctx context.Context) error {
	return n.backend.Set(ctx, NoticeKey, "true")
}
