package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/carbonwallet/internal/form"
	"github.com/felixgeelhaar/carbonwallet/internal/lead"
)

func TestInCI(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"no CI environment", map[string]string{}, false},
		{"GitHub Actions", map[string]string{"GITHUB_ACTIONS": "true"}, true},
		{"GitLab CI", map[string]string{"GITLAB_CI": "true"}, true},
		{"Jenkins", map[string]string{"JENKINS_URL": "http://jenkins.local"}, true},
		{"Generic CI", map[string]string{"CI": "1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inCI(func(k string) string { return tt.env[k] })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectOptionsLeadWithEmpty(t *testing.T) {
	opts := selectOptions(lead.TeamSizes)

	assert.Len(t, opts, len(lead.TeamSizes)+1)
	assert.Equal(t, "", opts[0].Value)
	assert.Equal(t, notSelected, opts[0].Key)
	assert.Equal(t, "10+", opts[len(opts)-1].Value)
}

func TestFieldChecks(t *testing.T) {
	assert.Error(t, required("name")(" "))
	assert.NoError(t, required("name")("Ava"))
	assert.EqualError(t, emailShaped(""), "email is required")
	assert.EqualError(t, emailShaped("nope"), "email must be a valid email address")
	assert.NoError(t, emailShaped("ava@x.com"))
}

func TestLeadFormFieldsApply(t *testing.T) {
	d := lead.NewDraft()
	key := d.SubmissionKey

	fields := &LeadFormFields{Draft: d.Clone()}
	assert.NotNil(t, NewLeadHuhForm(fields))

	fields.Name = "Ava"
	fields.Email = "ava@x.com"
	fields.InterestsText = "rewards, , mrv"
	fields.Apply(&d)

	assert.Equal(t, "Ava", d.Name)
	assert.Equal(t, key, d.SubmissionKey)
	assert.Equal(t, []string{"rewards", "", "mrv"}, d.Interests, "blank entries are dropped when the payload is built")
	assert.Equal(t, []string{"rewards", "mrv"}, d.Payload().Interests)
}

func TestNewLoginHuhForm(t *testing.T) {
	c := form.Credentials{Username: "admin"}
	assert.NotNil(t, NewLoginHuhForm(&c))
	assert.Equal(t, "admin", c.Username)
}

func TestToaster(t *testing.T) {
	var buf bytes.Buffer
	toaster := NewToaster(&buf, DefaultStyles())

	toaster.Success(form.LeadSubmittedMessage)
	toaster.Error(form.LoginFailedMessage)
	toaster.Warn("careful")

	out := buf.String()
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, form.LeadSubmittedMessage)
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, form.LoginFailedMessage)
	assert.Contains(t, out, "careful")
}
