package platform

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", ""},
		{"detail string", `{"detail":"Failed to create lead"}`, "Failed to create lead"},
		{"detail list", `{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address"},{"loc":["body","name"],"msg":"field required"}]}`,
			"email: value is not a valid email address; name: field required"},
		{"error field", `{"error":"boom"}`, "boom"},
		{"message field", `{"message":"nope"}`, "nope"},
		{"plain text", "Bad Gateway", "Bad Gateway"},
		{"loc missing", `{"detail":[{"msg":"broken"}]}`, "broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorDetail([]byte(tt.body)))
		})
	}
}

func TestErrorDetailTruncates(t *testing.T) {
	got := errorDetail([]byte(strings.Repeat("x", 500)))
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Len(t, got, maxDetailLen+len("…"))
}

func TestErrorDetailTruncatesOnRuneBoundary(t *testing.T) {
	body := strings.Repeat("a", maxDetailLen-1) + "éèê"

	got := errorDetail([]byte(body))

	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "aé…"), got)
	assert.Equal(t, maxDetailLen+1, utf8.RuneCountInString(got))
}
