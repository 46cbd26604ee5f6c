// Package app assembles the navigator, the forms and the pages the CLI
// shows for each route.
package app

import (
	"context"

	"github.com/felixgeelhaar/carbonwallet/internal/form"
	"github.com/felixgeelhaar/carbonwallet/internal/lead"
	"github.com/felixgeelhaar/carbonwallet/internal/log"
	"github.com/felixgeelhaar/carbonwallet/internal/router"
	"github.com/felixgeelhaar/carbonwallet/internal/tui"
)

// SessionExpiredMessage is shown when the remote API rejects the stored token.
const SessionExpiredMessage = "Session expired. Please log in again."

// Client is the part of the API client the pages use.
type Client interface {
	form.LeadSubmitter
	form.Authenticator
	FetchLeads(ctx context.Context) ([]lead.Lead, error)
}

// Sessions is the session store as seen by the pages.
type Sessions interface {
	router.TokenSource
	form.TokenSetter
	Clear(ctx context.Context) error
}

// Input supplies what a page needs from the user. Nil prompt functions
// mean the values were given up front (flags) and pages never ask.
type Input struct {
	// Lead edits the draft before it is submitted.
	Lead func(d *lead.Draft) error
	// Login edits the credentials before they are submitted.
	Login func(c *form.Credentials) error
	// Retry asks whether a failed form should be edited and sent again.
	Retry func(question string) (bool, error)
	// Leads shows the admin listing. Nil fetches once without a view.
	Leads func(ctx context.Context, fetch tui.FetchFunc) ([]lead.Lead, error)
}

// Options configure an App.
type Options struct {
	Client   Client
	Sessions Sessions
	Notify   form.Notifier
	Logger   *log.Logger
	Input    Input
}

// LeadsResult is what the admin page last loaded.
type LeadsResult struct {
	Leads []lead.Lead
	Err   error
	// Loaded is false until the admin page has rendered.
	Loaded bool
}

// App owns one navigation session.
type App struct {
	client   Client
	sessions Sessions
	notify   form.Notifier
	logger   *log.Logger
	input    Input

	nav   *router.Navigator
	lead  *form.LeadForm
	login *form.LoginForm

	leadResult  form.LeadResult
	loginResult form.LoginResult
	leads       LeadsResult
}

// New wires the pages for every known route.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	a := &App{
		client:   opts.Client,
		sessions: opts.Sessions,
		notify:   opts.Notify,
		logger:   logger,
		input:    opts.Input,
	}

	a.nav = router.NewNavigator(router.NewGuard(opts.Sessions), logger)
	a.lead = form.NewLeadForm(opts.Client, opts.Notify, logger)
	a.login = form.NewLoginForm(opts.Client, opts.Sessions, a.nav, opts.Notify, logger)

	a.nav.Handle(router.Home, router.PageFunc(a.renderLead))
	a.nav.Handle(router.Login, router.PageFunc(a.renderLogin))
	a.nav.Handle(router.AdminLeads, router.PageFunc(a.renderLeads))

	return a
}

// Run starts at route and renders pages until navigation settles.
func (a *App) Run(ctx context.Context, start router.Route) error {
	return a.nav.Run(ctx, start)
}

// Navigator exposes the history.
func (a *App) Navigator() *router.Navigator { return a.nav }

// LeadForm exposes the lead form, e.g. to fill it from flags.
func (a *App) LeadForm() *form.LeadForm { return a.lead }

// LoginForm exposes the login form.
func (a *App) LoginForm() *form.LoginForm { return a.login }

// LeadResult is the last lead submission outcome.
func (a *App) LeadResult() form.LeadResult { return a.leadResult }

// LoginResult is the last login outcome.
func (a *App) LoginResult() form.LoginResult { return a.loginResult }

// Leads is the last admin listing.
func (a *App) Leads() LeadsResult { return a.leads }
