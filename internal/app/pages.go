package app

import (
	"context"

	"github.com/felixgeelhaar/carbonwallet/internal/errors"
	"github.com/felixgeelhaar/carbonwallet/internal/form"
	"github.com/felixgeelhaar/carbonwallet/internal/lead"
	"github.com/felixgeelhaar/carbonwallet/internal/router"
	"github.com/felixgeelhaar/carbonwallet/internal/tui"
)

const retryQuestion = "Edit and try again?"

func (a *App) renderLead(ctx context.Context, _ *router.Navigator) error {
	for {
		if a.input.Lead != nil {
			d := a.lead.Draft()
			if err := a.input.Lead(&d); err != nil {
				return err
			}
			a.lead.Update(func(draft *lead.Draft) { *draft = d })
		}

		a.leadResult = a.lead.Submit(ctx)
		switch a.leadResult.Outcome {
		case form.Invalid, form.Failed:
			again, err := a.retry()
			if err != nil || !again {
				return err
			}
		default:
			return nil
		}
	}
}

func (a *App) renderLogin(ctx context.Context, _ *router.Navigator) error {
	for {
		creds := a.login.Credentials()
		if a.input.Login != nil {
			if err := a.input.Login(&creds); err != nil {
				return err
			}
			a.login.SetCredentials(creds)
		} else if creds.Password == "" {
			return errors.NewNoSessionError()
		}

		a.loginResult = a.login.Submit(ctx)
		switch a.loginResult.Outcome {
		case form.Invalid, form.Failed:
			again, err := a.retry()
			if err != nil || !again {
				return err
			}
		default:
			return a.loginResult.Err
		}
	}
}

func (a *App) renderLeads(ctx context.Context, nav *router.Navigator) error {
	view := a.input.Leads
	if view == nil {
		view = func(ctx context.Context, fetch tui.FetchFunc) ([]lead.Lead, error) {
			return fetch(ctx)
		}
	}

	leads, err := view(ctx, a.client.FetchLeads)
	a.leads = LeadsResult{Leads: leads, Err: err, Loaded: true}
	if err == nil {
		return nil
	}

	if !errors.IsAuth(err) {
		a.logger.LogError(ctx, "fetch_leads", err)
		return nil
	}

	a.logger.Info("session rejected, clearing stored token")
	if cerr := a.sessions.Clear(ctx); cerr != nil {
		a.logger.LogError(ctx, "clear_session", cerr)
	}
	creds := a.login.Credentials()
	a.login.SetCredentials(form.Credentials{Username: creds.Username})
	a.notify.Error(SessionExpiredMessage)

	_, err = nav.Replace(ctx, router.Login)
	return err
}

func (a *App) retry() (bool, error) {
	if a.input.Retry == nil {
		return false, nil
	}
	return a.input.Retry(retryQuestion)
}
