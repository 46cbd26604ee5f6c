package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/felixgeelhaar/carbonwallet/internal/form"
	"github.com/felixgeelhaar/carbonwallet/internal/lead"
)

// notSelected labels the empty option of a select.
const notSelected = "Not selected"

// ciEnvVars disable prompts when any of them is set.
var ciEnvVars = []string{
	"CI",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"JENKINS_URL",
	"TRAVIS",
	"CIRCLECI",
	"BUILDKITE",
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ShouldPrompt returns true if prompts should be shown based on environment
// Prompts are disabled in CI environments or when stdin is not a terminal
func ShouldPrompt() bool {
	return !inCI(os.Getenv) && IsInteractive()
}

func inCI(getenv func(string) string) bool {
	for _, name := range ciEnvVars {
		if getenv(name) != "" {
			return true
		}
	}
	return false
}

// selectOptions builds huh options for an option set, led by the empty value.
func selectOptions(values []string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(values)+1)
	opts = append(opts, huh.NewOption(notSelected, ""))
	for _, v := range values {
		opts = append(opts, huh.NewOption(v, v))
	}
	return opts
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func emailShaped(s string) error {
	if err := lead.CheckEmail(s); err != nil {
		var fe lead.FieldError
		if errors.As(err, &fe) {
			return fmt.Errorf("%s", fe.Message)
		}
		return err
	}
	return nil
}

// LeadFormFields collects the values huh binds to before they are copied
// into a lead.Draft.
type LeadFormFields struct {
	lead.Draft
	InterestsText string
}

// NewLeadHuhForm builds the interactive lead form bound to fields. Field
// checks here only guide the user; lead.Validate still runs on submit.
func NewLeadHuhForm(fields *LeadFormFields) *huh.Form {
	fields.InterestsText = strings.Join(fields.Interests, ", ")

	contact := huh.NewGroup(
		huh.NewInput().Title("Name").Value(&fields.Name).Validate(required("name")),
		huh.NewInput().Title("Email").Value(&fields.Email).Validate(emailShaped),
		huh.NewInput().Title("Company").Value(&fields.Company),
		huh.NewInput().Title("Phone").Placeholder("+31 20 123 4567").Value(&fields.Phone),
	).Title("Get early access")

	company := huh.NewGroup(
		huh.NewInput().Title("Country").Value(&fields.Country),
		huh.NewInput().Title("Industry").Value(&fields.Industry),
		huh.NewSelect[string]().Title("Company size").Options(selectOptions(lead.CompanySizes)...).Value(&fields.CompanySize),
		huh.NewSelect[string]().Title("Sustainability team size").Options(selectOptions(lead.TeamSizes)...).Value(&fields.TeamSize),
		huh.NewSelect[string]().Title("Timeline").Options(selectOptions(lead.Timelines)...).Value(&fields.Timeline),
	)

	details := huh.NewGroup(
		huh.NewInput().Title("Interests").Description("Comma separated").Value(&fields.InterestsText),
		huh.NewText().Title("Message").Value(&fields.Message),
		huh.NewConfirm().Title("I agree to be contacted about Carbon Wallet").Value(&fields.Consent),
	)

	return huh.NewForm(contact, company, details)
}

// Apply copies the edited fields into d.
func (f *LeadFormFields) Apply(d *lead.Draft) {
	key := d.SubmissionKey
	*d = f.Draft.Clone()
	d.SubmissionKey = key
	d.Interests = splitList(f.InterestsText)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// PromptLead runs the lead form over d.
func PromptLead(d *lead.Draft) error {
	fields := &LeadFormFields{Draft: d.Clone()}
	if err := NewLeadHuhForm(fields).Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}
	fields.Apply(d)
	return nil
}

// NewLoginHuhForm builds the interactive login form bound to c.
func NewLoginHuhForm(c *form.Credentials) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Username").Value(&c.Username).Validate(required("username")),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&c.Password).Validate(required("password")),
	).Title("Admin login"))
}

// PromptLogin asks for credentials, keeping whatever c already holds.
func PromptLogin(c *form.Credentials) error {
	if err := NewLoginHuhForm(c).Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

// NoticeText is the privacy notice shown until acknowledged.
const NoticeText = "Carbon Wallet stores a small amount of local state (your session and this acknowledgement) on this machine."

// PromptForConfirmation displays a yes/no confirmation prompt
func PromptForConfirmation(message string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	confirm := huh.NewConfirm().
		Title(message).
		Value(&confirmed)

	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}

	return confirmed, nil
}
