package form

import (
	"context"
	"strings"
	"sync"

	"github.com/felixgeelhaar/carbonwallet/internal/errors"
	"github.com/felixgeelhaar/carbonwallet/internal/log"
	"github.com/felixgeelhaar/carbonwallet/internal/platform"
	"github.com/felixgeelhaar/carbonwallet/internal/router"
	"github.com/felixgeelhaar/carbonwallet/internal/session"
)

// Login form notifications.
const (
	LoggedInMessage    = "Logged in"
	LoginFailedMessage = "Login failed"
)

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*platform.TokenResponse, error)
}

// TokenSetter persists a token.
type TokenSetter interface {
	Set(ctx context.Context, token string) error
}

// Redirector replaces the current navigation entry.
type Redirector interface {
	Replace(ctx context.Context, route router.Route) (router.Decision, error)
}

// Credentials are the login form fields.
type Credentials struct {
	Username string
	Password string
}

// LoginResult reports the outcome of LoginForm.Submit.
type LoginResult struct {
	Outcome Outcome
	Err     error
}

// LoginForm authenticates an operator and opens the admin view.
type LoginForm struct {
	auth     Authenticator
	sessions TokenSetter
	nav      Redirector
	notify   Notifier
	logger   *log.Logger

	mu    sync.Mutex
	state State
	creds Credentials
}

// NewLoginForm returns an empty login form.
func NewLoginForm(auth Authenticator, sessions TokenSetter, nav Redirector, notify Notifier, logger *log.Logger) *LoginForm {
	return &LoginForm{
		auth:     auth,
		sessions: sessions,
		nav:      nav,
		notify:   notify,
		logger:   logger,
	}
}

// State returns the current state.
func (f *LoginForm) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Credentials returns the entered credentials.
func (f *LoginForm) Credentials() Credentials {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creds
}

// SetCredentials replaces the entered credentials unless a submission is
// in flight.
func (f *LoginForm) SetCredentials(c Credentials) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Submitting {
		return false
	}
	f.creds = c
	return true
}

// Submit performs the login. On success the token is stored and the admin
// view replaces the login entry in the history. On failure the credentials
// stay in the form and nothing is stored.
func (f *LoginForm) Submit(ctx context.Context) LoginResult {
	f.mu.Lock()
	if f.state == Submitting {
		f.mu.Unlock()
		return LoginResult{Outcome: Ignored}
	}
	creds := f.creds
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		f.mu.Unlock()
		f.notify.Error(LoginFailedMessage + ": username and password are required")
		return LoginResult{Outcome: Invalid}
	}
	f.state = Submitting
	f.mu.Unlock()

	err := f.exchange(ctx, creds)

	f.mu.Lock()
	f.state = Editing
	f.mu.Unlock()

	if err != nil {
		f.logger.LogError(ctx, "login", err)
		f.notify.Error(failureMessage(err))
		return LoginResult{Outcome: Failed, Err: err}
	}

	f.notify.Success(LoggedInMessage)
	if _, err := f.nav.Replace(ctx, router.AdminLeads); err != nil {
		return LoginResult{Outcome: Submitted, Err: err}
	}
	return LoginResult{Outcome: Submitted}
}

func (f *LoginForm) exchange(ctx context.Context, creds Credentials) error {
	resp, err := f.auth.Login(ctx, strings.TrimSpace(creds.Username), creds.Password)
	if err != nil {
		return err
	}
	if err := f.sessions.Set(ctx, resp.AccessToken); err != nil {
		return err
	}
	f.logger.Info("logged in", "user", creds.Username, "token_fingerprint", session.Fingerprint(resp.AccessToken))
	return nil
}

// failureMessage never distinguishes bad credentials from other rejections;
// it only adds a hint when the server could not be reached at all.
func failureMessage(err error) string {
	switch {
	case errors.IsNetwork(err):
		return LoginFailedMessage + ": could not reach the server"
	case errors.IsServer(err):
		return LoginFailedMessage + ": the server is having trouble, try again later"
	default:
		return LoginFailedMessage
	}
}
