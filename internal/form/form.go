// Package form holds the state machines behind the lead and login forms.
// Both forms convert client errors into notifications; callers inspect the
// returned Result instead of an error.
package form

import "fmt"

// State is the submission state of a form.
type State int

const (
	// Editing accepts input and submissions.
	Editing State = iota
	// Submitting has a request in flight; further submissions are ignored.
	Submitting
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome is how a Submit call ended.
type Outcome int

const (
	// Submitted means the remote call succeeded.
	Submitted Outcome = iota
	// Invalid means local validation failed and nothing was sent.
	Invalid
	// Failed means the remote call failed.
	Failed
	// Ignored means a submission was already in flight.
	Ignored
)

func (o Outcome) String() string {
	switch o {
	case Submitted:
		return "submitted"
	case Invalid:
		return "invalid"
	case Failed:
		return "failed"
	case Ignored:
		return "ignored"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Notifier shows short messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}
