package session

import (
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zeebo/blake3"
)

// Info is what can be learned about a token without contacting the server.
// Nothing in it is verified.
type Info struct {
	// Fingerprint is a short blake3 digest, safe to print and log.
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`
	// JWT is true when the token decodes as a JSON Web Token.
	JWT       bool       `json:"jwt" yaml:"jwt"`
	Subject   string     `json:"subject,omitempty" yaml:"subject,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// Expired reports whether the token carries an exp claim in the past.
func (i Info) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && !now.Before(*i.ExpiresAt)
}

// Fingerprint returns the first 12 hex characters of the blake3 digest of token.
func Fingerprint(token string) string {
	sum := blake3.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])[:12]
}

// Describe inspects token. Opaque tokens only get a fingerprint.
func Describe(token string) Info {
	info := Info{Fingerprint: Fingerprint(token)}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return info
	}

	info.JWT = true
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time.UTC()
		info.ExpiresAt = &t
	}
	return info
}
