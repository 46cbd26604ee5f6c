// Package lead defines the canonical lead schema shared by the form, the API
// client and the admin listing.
package lead

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Lead is a prospect record as returned by the remote API.
type Lead struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Email       string    `json:"email" yaml:"email"`
	Company     string    `json:"company,omitempty" yaml:"company,omitempty"`
	Phone       string    `json:"phone,omitempty" yaml:"phone,omitempty"`
	Country     string    `json:"country,omitempty" yaml:"country,omitempty"`
	Industry    string    `json:"industry,omitempty" yaml:"industry,omitempty"`
	CompanySize string    `json:"company_size,omitempty" yaml:"company_size,omitempty"`
	TeamSize    string    `json:"team_size,omitempty" yaml:"team_size,omitempty"`
	Timeline    string    `json:"timeline,omitempty" yaml:"timeline,omitempty"`
	Message     string    `json:"message,omitempty" yaml:"message,omitempty"`
	Source      string    `json:"source,omitempty" yaml:"source,omitempty"`
	Consent     *bool     `json:"consent,omitempty" yaml:"consent,omitempty"`
	Interests   []string  `json:"interests,omitempty" yaml:"interests,omitempty"`
	CreatedAt   Timestamp `json:"created_at" yaml:"created_at"`
}

// Draft is the editable, client-side state of the lead form.
type Draft struct {
	Name        string
	Email       string
	Company     string
	Phone       string
	Country     string
	Industry    string
	CompanySize string
	TeamSize    string
	Timeline    string
	Message     string
	Source      string
	Consent     bool
	Interests   []string

	// SubmissionKey identifies this draft to the server across retries of
	// the same submission. A reset draft gets a new key.
	SubmissionKey string
}

// NewDraft returns the initial empty draft.
func NewDraft() Draft {
	return Draft{
		Source:        DefaultSource,
		Consent:       true,
		Interests:     []string{},
		SubmissionKey: uuid.NewString(),
	}
}

// Clone returns a deep copy of d.
func (d Draft) Clone() Draft {
	d.Interests = slices.Clone(d.Interests)
	if d.Interests == nil {
		d.Interests = []string{}
	}
	return d
}

// Payload is the body of a create request.
type Payload struct {
	Name        string   `json:"name" validate:"required,notblank,max=200"`
	Email       string   `json:"email" validate:"required,email,max=320"`
	Company     string   `json:"company"`
	Phone       string   `json:"phone"`
	Country     string   `json:"country"`
	Industry    string   `json:"industry"`
	CompanySize string   `json:"company_size" validate:"company_size"`
	TeamSize    string   `json:"team_size" validate:"team_size"`
	Timeline    string   `json:"timeline" validate:"timeline"`
	Message     string   `json:"message"`
	Source      string   `json:"source"`
	Consent     bool     `json:"consent"`
	Interests   []string `json:"interests" validate:"dive,notblank"`

	IdempotencyKey string `json:"-"`
}

// Payload converts the draft into the wire payload. Interests are trimmed,
// emptied entries and duplicates dropped, and the slice is never nil.
func (d Draft) Payload() Payload {
	return Payload{
		Name:           d.Name,
		Email:          d.Email,
		Company:        d.Company,
		Phone:          d.Phone,
		Country:        d.Country,
		Industry:       d.Industry,
		CompanySize:    d.CompanySize,
		TeamSize:       d.TeamSize,
		Timeline:       d.Timeline,
		Message:        d.Message,
		Source:         d.Source,
		Consent:        d.Consent,
		Interests:      CleanInterests(d.Interests),
		IdempotencyKey: d.SubmissionKey,
	}
}

// CleanInterests trims every entry and drops blanks and repeats, keeping the
// first occurrence order.
func CleanInterests(in []string) []string {
	out := make([]string, 0, len(in))
	for _, interest := range in {
		interest = strings.TrimSpace(interest)
		if interest == "" || slices.Contains(out, interest) {
			continue
		}
		out = append(out, interest)
	}
	return out
}

// ConsentLabel renders consent as Yes or No. A record without consent
// shows No.
func (l Lead) ConsentLabel() string {
	if l.Consent != nil && *l.Consent {
		return "Yes"
	}
	return "No"
}
