package health

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/carbonwallet/internal/session"
	"github.com/felixgeelhaar/carbonwallet/internal/storage"
)

// BackendConfigChecker reports whether a backend URL is set.
type BackendConfigChecker struct {
	url string
}

// NewBackendConfigChecker checks the resolved API base URL.
func NewBackendConfigChecker(baseURL string) *BackendConfigChecker {
	return &BackendConfigChecker{url: baseURL}
}

func (c *BackendConfigChecker) Name() string { return "backend-configured" }

func (c *BackendConfigChecker) Check(context.Context) *Result {
	if c.url == "" {
		return Unhealthy("backend URL is not configured").
			WithDetail("hint", "set CARBONWALLET_BACKEND_URL or api.backend_url")
	}
	return Healthy("backend URL is set").WithDetail("url", c.url)
}

// Pinger is the remote API health call.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BackendChecker calls the remote API's root endpoint.
type BackendChecker struct {
	api Pinger
}

// NewBackendChecker checks that api answers.
func NewBackendChecker(api Pinger) *BackendChecker {
	return &BackendChecker{api: api}
}

func (c *BackendChecker) Name() string { return "backend-reachable" }

func (c *BackendChecker) Check(ctx context.Context) *Result {
	start := time.Now()
	if err := c.api.Ping(ctx); err != nil {
		return Unhealthy("backend did not answer").
			WithDetail("error", firstLine(err)).
			WithLatency(time.Since(start))
	}
	return Healthy("backend answered").WithLatency(time.Since(start))
}

const probeKey = "cw_doctor_probe"

// StorageChecker writes, reads back and deletes a probe value.
type StorageChecker struct {
	backend storage.Backend
}

// NewStorageChecker checks backend.
func NewStorageChecker(backend storage.Backend) *StorageChecker {
	return &StorageChecker{backend: backend}
}

func (c *StorageChecker) Name() string { return "storage-writable" }

func (c *StorageChecker) Check(ctx context.Context) *Result {
	want := uuid.NewString()
	location := c.backend.Location()

	if err := c.backend.Set(ctx, probeKey, want); err != nil {
		return Unhealthy("cannot write local state").
			WithDetail("location", location).
			WithDetail("error", firstLine(err))
	}
	defer func() { _ = c.backend.Delete(ctx, probeKey) }()

	got, ok, err := c.backend.Get(ctx, probeKey)
	switch {
	case err != nil:
		return Unhealthy("cannot read local state").
			WithDetail("location", location).
			WithDetail("error", firstLine(err))
	case !ok || got != want:
		return Unhealthy("local state did not keep a written value").
			WithDetail("location", location)
	}
	return Healthy("local state is writable").WithDetail("location", location)
}

// TokenSource reads the stored session token.
type TokenSource interface {
	Token(ctx context.Context) (string, bool, error)
}

// SessionChecker reports on the stored session. A missing or expired
// session is degraded, not unhealthy: the lead form works without one.
type SessionChecker struct {
	tokens TokenSource
	now    func() time.Time
}

// NewSessionChecker checks the session in tokens.
func NewSessionChecker(tokens TokenSource) *SessionChecker {
	return &SessionChecker{tokens: tokens, now: time.Now}
}

func (c *SessionChecker) Name() string { return "session" }

func (c *SessionChecker) Check(ctx context.Context) *Result {
	token, ok, err := c.tokens.Token(ctx)
	if err != nil {
		return Unhealthy("cannot read the session").WithDetail("error", firstLine(err))
	}
	if !ok {
		return Degraded("not logged in").WithDetail("hint", "run 'carbonwallet login'")
	}

	info := session.Describe(token)
	res := Healthy("logged in").WithDetail("fingerprint", info.Fingerprint)
	if info.Subject != "" {
		res.WithDetail("subject", info.Subject)
	}
	if info.ExpiresAt != nil {
		res.WithDetail("expires_at", info.ExpiresAt.UTC().Format(time.RFC3339))
		if info.Expired(c.now()) {
			res.Status = StatusDegraded
			res.Message = "session token has expired"
		}
	}
	return res
}

func firstLine(err error) string {
	line, _, _ := strings.Cut(err.Error(), "\n")
	return line
}
