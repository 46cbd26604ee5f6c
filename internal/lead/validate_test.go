package lead

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() Payload {
	d := NewDraft()
	d.Name = "Ava"
	d.Email = "ava@x.com"
	return d.Payload()
}

func TestValidateAcceptsMinimalPayload(t *testing.T) {
	assert.NoError(t, Validate(validPayload()))
}

func TestValidateAcceptsEveryOption(t *testing.T) {
	for _, size := range CompanySizes {
		for _, team := range TeamSizes {
			for _, timeline := range Timelines {
				p := validPayload()
				p.CompanySize, p.TeamSize, p.Timeline = size, team, timeline
				require.NoError(t, Validate(p), "%s/%s/%s", size, team, timeline)
			}
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Payload)
		field  string
		msg    string
	}{
		{"missing name", func(p *Payload) { p.Name = "" }, "name", "name is required"},
		{"blank name", func(p *Payload) { p.Name = "   " }, "name", "name is required"},
		{"missing email", func(p *Payload) { p.Email = "" }, "email", "email is required"},
		{"malformed email", func(p *Payload) { p.Email = "ava-at-x" }, "email", "email must be a valid email address"},
		{"long name", func(p *Payload) { p.Name = strings.Repeat("a", 201) }, "name", "name must be at most 200 characters"},
		{"company size", func(p *Payload) { p.CompanySize = "huge" }, "company_size", "company_size must be one of 1-50, 51-200, 201-1000, 1001-5000, 5000+"},
		{"team size", func(p *Payload) { p.TeamSize = "3" }, "team_size", "team_size must be one of 1, 2-5, 6-10, 10+"},
		{"timeline", func(p *Payload) { p.Timeline = "someday" }, "timeline", "timeline must be one of ASAP, 1-3 months, 3-6 months, 6+ months"},
		{"blank interest", func(p *Payload) { p.Interests = []string{"mrv", " "} }, "interests", "interests must not contain empty entries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(&p)

			err := Validate(p)
			require.Error(t, err)

			verrs, ok := AsValidationErrors(err)
			require.True(t, ok, "expected ValidationErrors, got %T", err)
			assert.Equal(t, tt.field, verrs.First().Field)
			assert.Equal(t, tt.msg, verrs.First().Message)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	p := validPayload()
	p.Name = ""
	p.Email = ""

	verrs, ok := AsValidationErrors(Validate(p))
	require.True(t, ok)
	require.Len(t, verrs, 2)
	assert.Equal(t, "name", verrs[0].Field)
	assert.Equal(t, "email", verrs[1].Field)
	assert.Equal(t, "name is required; email is required", verrs.Error())
}

func TestValidationErrorsFirstOnEmpty(t *testing.T) {
	assert.Equal(t, FieldError{}, ValidationErrors{}.First())
}

func TestCheckEmail(t *testing.T) {
	assert.NoError(t, CheckEmail("ava@x.com"))

	err := CheckEmail("")
	require.Error(t, err)
	assert.Equal(t, "email: email is required", err.Error())

	err = CheckEmail("ava")
	require.Error(t, err)
	assert.Equal(t, "email: email must be a valid email address", err.Error())
}
