// Package router decides which screen the CLI shows and keeps the
// navigation history. Protected routes require a session token.
package router

import "context"

// Route is a navigation target.
type Route string

// Known routes.
const (
	Home       Route = "/"
	Login      Route = "/login"
	AdminLeads Route = "/admin/leads"
)

// Protected reports whether r requires a session.
func (r Route) Protected() bool {
	return r == AdminLeads
}

// Page renders one route. A page may navigate through nav; the navigator
// then renders the new current route once Render returns.
type Page interface {
	Render(ctx context.Context, nav *Navigator) error
}

// PageFunc adapts a function to Page.
type PageFunc func(ctx context.Context, nav *Navigator) error

func (f PageFunc) Render(ctx context.Context, nav *Navigator) error {
	return f(ctx, nav)
}
