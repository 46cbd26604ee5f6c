package router

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/felixgeelhaar/carbonwallet/internal/log"
)

// Navigator keeps the history stack and renders the current route.
type Navigator struct {
	guard  *Guard
	pages  map[Route]Page
	logger *log.Logger

	mu      sync.Mutex
	history []Route
	// moves counts history changes so Run can tell whether a page navigated.
	moves int
}

// NewNavigator returns a Navigator with an empty history.
func NewNavigator(guard *Guard, logger *log.Logger) *Navigator {
	return &Navigator{
		guard:  guard,
		pages:  map[Route]Page{},
		logger: logger,
	}
}

// Handle registers the page for route.
func (n *Navigator) Handle(route Route, page Page) {
	n.pages[route] = page
}

// Navigate pushes route onto the history. A guard redirect lands on the
// redirect target instead, as if the requested entry had been replaced.
func (n *Navigator) Navigate(ctx context.Context, route Route) (Decision, error) {
	return n.move(ctx, route, false)
}

// Replace swaps the current entry for route, so Back does not return to it.
func (n *Navigator) Replace(ctx context.Context, route Route) (Decision, error) {
	return n.move(ctx, route, true)
}

func (n *Navigator) move(ctx context.Context, route Route, replace bool) (Decision, error) {
	if _, ok := n.pages[route]; !ok {
		return Decision{}, fmt.Errorf("no page registered for %s", route)
	}

	decision, err := n.guard.Check(ctx, route)
	if err != nil {
		return Decision{}, err
	}
	target := decision.Target()
	if _, ok := n.pages[target]; !ok {
		return Decision{}, fmt.Errorf("no page registered for %s", target)
	}
	if !decision.Allowed {
		n.logger.Debug("route guarded", "requested", route, "redirect", target)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if replace && len(n.history) > 0 {
		n.history[len(n.history)-1] = target
	} else {
		n.history = append(n.history, target)
	}
	n.moves++
	return decision, nil
}

// Back pops the current entry. It reports false when there is nothing to
// go back to.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) < 2 {
		return false
	}
	n.history = n.history[:len(n.history)-1]
	n.moves++
	return true
}

// Current returns the current route, or "" before the first navigation.
func (n *Navigator) Current() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) == 0 {
		return ""
	}
	return n.history[len(n.history)-1]
}

// History returns a copy of the stack, oldest first.
func (n *Navigator) History() []Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.history)
}

func (n *Navigator) snapshot() (Route, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) == 0 {
		return "", n.moves
	}
	return n.history[len(n.history)-1], n.moves
}

// Run navigates to start and renders pages until one returns without
// navigating. Guarded routes are re-checked on every navigation.
func (n *Navigator) Run(ctx context.Context, start Route) error {
	if _, err := n.Navigate(ctx, start); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		route, moves := n.snapshot()
		page := n.pages[route]
		if err := page.Render(ctx, n); err != nil {
			return err
		}

		if _, after := n.snapshot(); after == moves {
			return nil
		}
	}
}
