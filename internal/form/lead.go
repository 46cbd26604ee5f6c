package form

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/carbonwallet/internal/lead"
	"github.com/felixgeelhaar/carbonwallet/internal/log"
)

// Lead form notifications.
const (
	LeadSubmittedMessage = "Thanks! We'll be in touch shortly."
	LeadFailedMessage    = "Something went wrong. Please try again."
)

// LeadSubmitter sends a lead to the remote API.
type LeadSubmitter interface {
	SubmitLead(ctx context.Context, payload lead.Payload) (*lead.Lead, error)
}

// LeadResult reports the outcome of LeadForm.Submit.
type LeadResult struct {
	Outcome Outcome
	// Lead is the stored record when Outcome is Submitted.
	Lead *lead.Lead
	// Problems lists local validation failures when Outcome is Invalid.
	Problems lead.ValidationErrors
	// Err is the client error when Outcome is Failed.
	Err error
}

// LeadForm collects and submits one lead draft at a time.
type LeadForm struct {
	client LeadSubmitter
	notify Notifier
	logger *log.Logger

	mu    sync.Mutex
	state State
	draft lead.Draft
}

// NewLeadForm returns a form holding an empty draft.
func NewLeadForm(client LeadSubmitter, notify Notifier, logger *log.Logger) *LeadForm {
	return &LeadForm{
		client: client,
		notify: notify,
		logger: logger,
		draft:  lead.NewDraft(),
	}
}

// State returns the current state.
func (f *LeadForm) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Draft returns a copy of the current draft.
func (f *LeadForm) Draft() lead.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Clone()
}

// Update edits the draft. Edits are refused while a submission is in
// flight; the return value reports whether fn was applied.
func (f *LeadForm) Update(fn func(*lead.Draft)) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == Submitting {
		return false
	}
	fn(&f.draft)
	return true
}

// Submit validates the draft and sends it. On success the draft is reset;
// on failure it is kept as entered.
func (f *LeadForm) Submit(ctx context.Context) LeadResult {
	f.mu.Lock()
	if f.state == Submitting {
		f.mu.Unlock()
		return LeadResult{Outcome: Ignored}
	}

	payload := f.draft.Payload()
	if err := lead.Validate(payload); err != nil {
		f.mu.Unlock()
		problems, _ := lead.AsValidationErrors(err)
		msg := "Please check the form"
		if len(problems) > 0 {
			msg += ": " + problems.First().Message
		}
		f.notify.Error(msg)
		return LeadResult{Outcome: Invalid, Problems: problems, Err: err}
	}

	f.state = Submitting
	f.mu.Unlock()

	created, err := f.client.SubmitLead(ctx, payload)

	f.mu.Lock()
	f.state = Editing
	if err != nil {
		f.mu.Unlock()
		f.logger.LogError(ctx, "submit_lead", err)
		f.notify.Error(LeadFailedMessage)
		return LeadResult{Outcome: Failed, Err: err}
	}
	f.draft = lead.NewDraft()
	f.mu.Unlock()

	f.logger.Info("lead submitted", "lead_id", created.ID)
	f.notify.Success(LeadSubmittedMessage)
	return LeadResult{Outcome: Submitted, Lead: created}
}
