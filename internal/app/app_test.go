package app_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/carbonwallet/internal/app"
	"github.com/felixgeelhaar/carbonwallet/internal/errors"
	"github.com/felixgeelhaar/carbonwallet/internal/form"
	"github.com/felixgeelhaar/carbonwallet/internal/lead"
	"github.com/felixgeelhaar/carbonwallet/internal/log"
	"github.com/felixgeelhaar/carbonwallet/internal/platform"
	"github.com/felixgeelhaar/carbonwallet/internal/platform/platformtest"
	"github.com/felixgeelhaar/carbonwallet/internal/router"
	"github.com/felixgeelhaar/carbonwallet/internal/session"
	"github.com/felixgeelhaar/carbonwallet/internal/storage"
	"github.com/felixgeelhaar/carbonwallet/internal/tui"
)

type notes struct {
	successes []string
	errors    []string
}

func (n *notes) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *notes) Error(msg string)   { n.errors = append(n.errors, msg) }

type harness struct {
	srv      *platformtest.Server
	sessions *session.Store
	notes    *notes
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := platformtest.NewServer(t)
	return &harness{
		srv:      srv,
		sessions: session.NewStore(storage.NewMemory()),
		notes:    &notes{},
	}
}

func (h *harness) app(in app.Input) *app.App {
	client := platform.NewClient(h.srv.URL, h.sessions, platform.WithLogger(log.Discard()))
	return app.New(app.Options{
		Client:   client,
		Sessions: h.sessions,
		Notify:   h.notes,
		Logger:   log.Discard(),
		Input:    in,
	})
}

func TestLeadSubmission(t *testing.T) {
	h := newHarness(t)
	a := h.app(app.Input{})
	a.LeadForm().Update(func(d *lead.Draft) {
		d.Name = "Ava"
		d.Email = "ava@x.com"
	})

	require.NoError(t, a.Run(context.Background(), router.Home))

	res := a.LeadResult()
	assert.Equal(t, form.Submitted, res.Outcome)
	require.NotNil(t, res.Lead)
	assert.NotEmpty(t, res.Lead.ID)

	reqs := h.srv.RequestsTo(http.MethodPost, "/api/leads")
	require.Len(t, reqs, 1)
	body := reqs[0].JSON()
	assert.Equal(t, "Ava", body["name"])
	assert.Equal(t, "ava@x.com", body["email"])
	assert.Equal(t, "early-access", body["source"])
	assert.Equal(t, true, body["consent"])
	assert.Equal(t, []any{}, body["interests"])

	assert.Equal(t, []string{form.LeadSubmittedMessage}, h.notes.successes)
	assert.Equal(t, "", a.LeadForm().Draft().Name, "draft is reset")
}

func TestLeadSubmissionInvalidNeverSends(t *testing.T) {
	h := newHarness(t)
	a := h.app(app.Input{})

	require.NoError(t, a.Run(context.Background(), router.Home))

	assert.Equal(t, form.Invalid, a.LeadResult().Outcome)
	assert.Empty(t, h.srv.RequestsTo(http.MethodPost, "/api/leads"))
	require.Len(t, h.notes.errors, 1)
	assert.Contains(t, h.notes.errors[0], "name is required")
}

func TestLeadPromptRetries(t *testing.T) {
	h := newHarness(t)
	h.srv.Fail(http.MethodPost, "/api/leads", http.StatusInternalServerError, "db down")

	var seen []string
	a := h.app(app.Input{
		Lead: func(d *lead.Draft) error {
			seen = append(seen, d.Name)
			d.Name = "Ava"
			d.Email = "ava@x.com"
			return nil
		},
		Retry: func(string) (bool, error) {
			h.srv.Reset()
			return true, nil
		},
	})

	require.NoError(t, a.Run(context.Background(), router.Home))

	assert.Equal(t, []string{"", "Ava"}, seen, "the draft survives a failed submission")
	assert.Equal(t, form.Submitted, a.LeadResult().Outcome)
	assert.Equal(t, []string{form.LeadFailedMessage}, h.notes.errors)
	assert.Len(t, h.srv.RequestsTo(http.MethodPost, "/api/leads"), 2)
}

func TestLoginThenLeads(t *testing.T) {
	h := newHarness(t)
	h.srv.Seed(lead.Lead{ID: "1", Name: "Ava", Email: "ava@x.com"})
	a := h.app(app.Input{})
	a.LoginForm().SetCredentials(form.Credentials{Username: platformtest.Username, Password: platformtest.Password})

	require.NoError(t, a.Run(context.Background(), router.Login))

	token, ok, err := h.sessions.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, platformtest.Token, token)

	assert.Equal(t, []router.Route{router.AdminLeads}, a.Navigator().History(), "login entry was replaced")
	res := a.Leads()
	require.NoError(t, res.Err)
	require.Len(t, res.Leads, 1)
	assert.Equal(t, "Ava", res.Leads[0].Name)

	list := h.srv.RequestsTo(http.MethodGet, "/api/leads")
	require.Len(t, list, 1)
	assert.Equal(t, "Bearer "+platformtest.Token, list[0].Header.Get("Authorization"))
}

func TestLoginWrongPassword(t *testing.T) {
	h := newHarness(t)
	a := h.app(app.Input{})
	a.LoginForm().SetCredentials(form.Credentials{Username: platformtest.Username, Password: "wrong"})

	require.NoError(t, a.Run(context.Background(), router.Login))

	assert.Equal(t, form.Failed, a.LoginResult().Outcome)
	assert.Equal(t, []string{form.LoginFailedMessage}, h.notes.errors)
	assert.Equal(t, router.Login, a.Navigator().Current())

	_, ok, err := h.sessions.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "no token stored")
	assert.Empty(t, h.srv.RequestsTo(http.MethodGet, "/api/leads"))
}

func TestAdminLeadsEmpty(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.sessions.Set(context.Background(), platformtest.Token))
	a := h.app(app.Input{})

	require.NoError(t, a.Run(context.Background(), router.AdminLeads))

	res := a.Leads()
	require.NoError(t, res.Err)
	assert.True(t, res.Loaded)
	assert.Empty(t, res.Leads)

	rows := tui.LeadRows(res.Leads, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, tui.EmptyLeadsText, rows[0][0])
}

func TestAdminLeadsGuardRedirect(t *testing.T) {
	h := newHarness(t)
	a := h.app(app.Input{})

	err := a.Run(context.Background(), router.AdminLeads)

	assert.Equal(t, errors.ErrCodeAuthNoSession, errors.CodeOf(err))
	assert.Equal(t, []router.Route{router.Login}, a.Navigator().History())
	assert.False(t, a.Leads().Loaded)
	assert.Empty(t, h.srv.RequestsTo(http.MethodGet, "/api/leads"))
}

func TestAdminLeadsGuardRedirectPromptsLogin(t *testing.T) {
	h := newHarness(t)
	a := h.app(app.Input{
		Login: func(c *form.Credentials) error {
			c.Username = platformtest.Username
			c.Password = platformtest.Password
			return nil
		},
	})

	require.NoError(t, a.Run(context.Background(), router.AdminLeads))

	assert.Equal(t, []router.Route{router.AdminLeads}, a.Navigator().History())
	assert.True(t, a.Leads().Loaded)
}

func TestAdminLeadsExpiredSession(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.sessions.Set(context.Background(), "stale-token"))
	a := h.app(app.Input{})

	err := a.Run(context.Background(), router.AdminLeads)

	assert.Equal(t, errors.ErrCodeAuthNoSession, errors.CodeOf(err))
	assert.True(t, errors.IsAuth(a.Leads().Err))
	assert.Equal(t, []string{app.SessionExpiredMessage}, h.notes.errors)
	assert.Equal(t, router.Login, a.Navigator().Current())

	_, ok, err := h.sessions.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "stored token was cleared")
}

func TestAdminLeadsServerFailureStaysOnPage(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.sessions.Set(context.Background(), platformtest.Token))
	h.srv.Fail(http.MethodGet, "/api/leads", http.StatusServiceUnavailable, "maintenance")
	a := h.app(app.Input{})

	require.NoError(t, a.Run(context.Background(), router.AdminLeads))

	res := a.Leads()
	assert.True(t, errors.IsServer(res.Err))
	assert.Equal(t, router.AdminLeads, a.Navigator().Current())
	assert.Empty(t, h.notes.errors)
}

func TestAdminLeadsCustomView(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.sessions.Set(context.Background(), platformtest.Token))
	viewed := false
	a := h.app(app.Input{
		Leads: func(ctx context.Context, fetch tui.FetchFunc) ([]lead.Lead, error) {
			viewed = true
			return fetch(ctx)
		},
	})

	require.NoError(t, a.Run(context.Background(), router.AdminLeads))
	assert.True(t, viewed)
}

func TestPromptAbortStopsRun(t *testing.T) {
	h := newHarness(t)
	a := h.app(app.Input{
		Lead: func(*lead.Draft) error { return fmt.Errorf("user aborted") },
	})

	assert.EqualError(t, a.Run(context.Background(), router.Home), "user aborted")
	assert.Empty(t, h.srv.Requests())
}
