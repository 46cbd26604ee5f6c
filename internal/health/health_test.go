package health

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/carbonwallet/internal/session"
	"github.com/felixgeelhaar/carbonwallet/internal/storage"
)

type stubChecker struct {
	name   string
	result *Result
	delay  time.Duration
}

func (s *stubChecker) Name() string { return s.name }

func (s *stubChecker) Check(ctx context.Context) *Result {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return Unhealthy("check cancelled")
		}
	}
	return s.result
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type brokenBackend struct{ *storage.Memory }

func (brokenBackend) Set(context.Context, string, string) error {
	return fmt.Errorf("read-only file system")
}

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(context.Context) (string, bool, error) {
	return s.token, s.token != "", s.err
}

func TestManagerRunKeepsOrder(t *testing.T) {
	m := NewManager()
	m.AddChecker(&stubChecker{name: "slow", result: Healthy("ok"), delay: 20 * time.Millisecond})
	m.AddChecker(&stubChecker{name: "fast", result: Degraded("meh")})

	report := m.Run(context.Background())

	require.Len(t, report.Checks, 2)
	assert.Equal(t, "slow", report.Checks[0].Name)
	assert.Equal(t, "fast", report.Checks[1].Name)
	assert.Equal(t, StatusDegraded, report.Status)
	assert.Positive(t, report.Checks[0].Latency)
	assert.Equal(t, []string{"slow", "fast"}, m.CheckNames())
}

func TestManagerTimeout(t *testing.T) {
	m := NewManager().WithTimeout(10 * time.Millisecond)
	m.AddChecker(&stubChecker{name: "hang", result: Healthy("never"), delay: time.Second})
	m.AddChecker(&stubChecker{name: "nil"})

	report := m.Run(context.Background())

	assert.Equal(t, StatusUnhealthy, report.Status)
	assert.Equal(t, "check cancelled", report.Checks[0].Message)
	assert.Equal(t, "check returned no result", report.Checks[1].Message)
}

func TestOverallStatus(t *testing.T) {
	named := func(statuses ...Status) []Named {
		var out []Named
		for _, s := range statuses {
			out = append(out, Named{Result: *NewResult(s, "")})
		}
		return out
	}

	assert.Equal(t, StatusHealthy, OverallStatus(nil))
	assert.Equal(t, StatusHealthy, OverallStatus(named(StatusHealthy, StatusHealthy)))
	assert.Equal(t, StatusDegraded, OverallStatus(named(StatusHealthy, StatusDegraded)))
	assert.Equal(t, StatusUnhealthy, OverallStatus(named(StatusDegraded, StatusUnhealthy)))
}

func TestBackendConfigChecker(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, StatusUnhealthy, NewBackendConfigChecker("").Check(ctx).Status)

	res := NewBackendConfigChecker("http://localhost:8000/api").Check(ctx)
	assert.Equal(t, StatusHealthy, res.Status)
	assert.Equal(t, "http://localhost:8000/api", res.Details["url"])
}

func TestBackendChecker(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, StatusHealthy, NewBackendChecker(stubPinger{}).Check(ctx).Status)

	res := NewBackendChecker(stubPinger{err: fmt.Errorf("connection refused\n\nSuggestions: ...")}).Check(ctx)
	assert.Equal(t, StatusUnhealthy, res.Status)
	assert.Equal(t, "connection refused", res.Details["error"])
}

func TestStorageChecker(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()

	res := NewStorageChecker(mem).Check(ctx)
	assert.Equal(t, StatusHealthy, res.Status)
	_, ok, err := mem.Get(ctx, probeKey)
	require.NoError(t, err)
	assert.False(t, ok, "probe is removed")

	res = NewStorageChecker(brokenBackend{storage.NewMemory()}).Check(ctx)
	assert.Equal(t, StatusUnhealthy, res.Status)
	assert.Equal(t, "read-only file system", res.Details["error"])
}

func TestSessionChecker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	sign := func(exp time.Time) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "admin",
			"exp": exp.Unix(),
		}).SignedString([]byte("test-key"))
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name   string
		tokens staticTokens
		status Status
		msg    string
	}{
		{"no session", staticTokens{}, StatusDegraded, "not logged in"},
		{"opaque token", staticTokens{token: "opaque"}, StatusHealthy, "logged in"},
		{"valid jwt", staticTokens{token: sign(now.Add(time.Hour))}, StatusHealthy, "logged in"},
		{"expired jwt", staticTokens{token: sign(now.Add(-time.Hour))}, StatusDegraded, "session token has expired"},
		{"storage error", staticTokens{err: fmt.Errorf("disk")}, StatusUnhealthy, "cannot read the session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewSessionChecker(tt.tokens)
			c.now = func() time.Time { return now }

			res := c.Check(ctx)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.msg, res.Message)
			if tt.tokens.token != "" {
				assert.Equal(t, session.Fingerprint(tt.tokens.token), res.Details["fingerprint"])
				assert.NotContains(t, fmt.Sprint(res.Details), tt.tokens.token, "raw token never reported")
			}
		})
	}
}
