package version

import (
	"runtime"
	"strings"
	"testing"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = v, commit, date
	t.Cleanup(func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	})
}

func TestGetInfo(t *testing.T) {
	withVersion(t, "1.0.0", "abc123def456", "2024-01-01T12:00:00Z")

	info := GetInfo()

	if info.Version != "1.0.0" {
		t.Errorf("GetInfo().Version = %v, want 1.0.0", info.Version)
	}
	if info.Commit != "abc123def456" {
		t.Errorf("GetInfo().Commit = %v, want abc123def456", info.Commit)
	}
	if info.Date != "2024-01-01T12:00:00Z" {
		t.Errorf("GetInfo().Date = %v, want 2024-01-01T12:00:00Z", info.Date)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GetInfo().GoVersion = %v, want %v", info.GoVersion, runtime.Version())
	}
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "1.2.3",
		Commit:    "abcdef1234567890",
		Date:      "2024-01-01",
		GoVersion: "go1.25.0",
		Platform:  "linux/amd64",
	}

	got := info.String()
	want := "carbonwallet 1.2.3 (abcdef12) built 2024-01-01 with go1.25.0 for linux/amd64"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestUserAgent(t *testing.T) {
	withVersion(t, "2.0.0", "unknown", "unknown")

	ua := UserAgent()
	if !strings.HasPrefix(ua, "carbonwallet/2.0.0 (") {
		t.Errorf("unexpected user agent %q", ua)
	}
}
