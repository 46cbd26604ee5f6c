package router

import (
	"context"
	"fmt"
)

// TokenSource reports whether a session token is present.
type TokenSource interface {
	Token(ctx context.Context) (string, bool, error)
}

// Decision is the outcome of a guard check.
type Decision struct {
	Route    Route
	Allowed  bool
	Redirect Route
}

// Target is where navigation actually lands.
func (d Decision) Target() Route {
	if d.Allowed {
		return d.Route
	}
	return d.Redirect
}

// Guard gates protected routes on the presence of a session token. The
// token itself is not validated; the remote API rejects bad tokens.
type Guard struct {
	tokens TokenSource
}

// NewGuard returns a Guard reading tokens from src.
func NewGuard(src TokenSource) *Guard {
	return &Guard{tokens: src}
}

// Check decides whether route may be entered.
func (g *Guard) Check(ctx context.Context, route Route) (Decision, error) {
	if !route.Protected() {
		return Decision{Route: route, Allowed: true}, nil
	}

	_, ok, err := g.tokens.Token(ctx)
	if err != nil {
		return Decision{}, fmt.Errorf("check session for %s: %w", route, err)
	}
	if !ok {
		return Decision{Route: route, Redirect: Login}, nil
	}
	return Decision{Route: route, Allowed: true}, nil
}
