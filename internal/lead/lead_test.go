package lead

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraft(t *testing.T) {
	d := NewDraft()

	assert.Empty(t, d.Name)
	assert.Empty(t, d.Email)
	assert.Equal(t, DefaultSource, d.Source)
	assert.True(t, d.Consent)
	assert.NotNil(t, d.Interests)
	assert.Empty(t, d.Interests)
	assert.NotEmpty(t, d.SubmissionKey)

	assert.NotEqual(t, d.SubmissionKey, NewDraft().SubmissionKey, "each draft gets its own key")
}

func TestDraftPayloadDefaults(t *testing.T) {
	d := NewDraft()
	d.Name = "Ava"
	d.Email = "ava@x.com"

	body, err := json.Marshal(d.Payload())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))

	assert.Equal(t, "Ava", got["name"])
	assert.Equal(t, "ava@x.com", got["email"])
	assert.Equal(t, "early-access", got["source"])
	assert.Equal(t, true, got["consent"])
	assert.Equal(t, []any{}, got["interests"])
	assert.Equal(t, "", got["company"])
	assert.NotContains(t, got, "IdempotencyKey")
}

func TestCleanInterests(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"only blanks", []string{"", "  ", "\t"}, []string{}},
		{"trim and keep order", []string{" rewards ", "", "mrv"}, []string{"rewards", "mrv"}},
		{"duplicates", []string{"mrv", "rewards", "mrv ", "rewards"}, []string{"mrv", "rewards"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanInterests(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotNil(t, got)
		})
	}
}

func TestDraftClone(t *testing.T) {
	d := NewDraft()
	d.Interests = []string{"a"}

	c := d.Clone()
	c.Interests[0] = "b"

	assert.Equal(t, "a", d.Interests[0])
}

func TestLeadDecode(t *testing.T) {
	body := `[{
		"id": "7b1c",
		"name": "Ava",
		"email": "ava@x.com",
		"company": null,
		"consent": false,
		"created_at": "2024-05-01T10:20:30.123456"
	}]`

	var leads []Lead
	require.NoError(t, json.Unmarshal([]byte(body), &leads))
	require.Len(t, leads, 1)

	l := leads[0]
	assert.Equal(t, "7b1c", l.ID)
	assert.Empty(t, l.Company)
	assert.Equal(t, "No", l.ConsentLabel())
	assert.Equal(t, 2024, l.CreatedAt.Year())
	assert.Equal(t, "UTC", l.CreatedAt.Location().String())
}

func TestConsentLabel(t *testing.T) {
	yes, no := true, false

	assert.Equal(t, "Yes", Lead{Consent: &yes}.ConsentLabel())
	assert.Equal(t, "No", Lead{Consent: &no}.ConsentLabel())
	assert.Equal(t, "No", Lead{}.ConsentLabel(), "omitted by the server")
}

func TestOptions(t *testing.T) {
	assert.Equal(t, CompanySizes, Options("company_size"))
	assert.Equal(t, TeamSizes, Options("team_size"))
	assert.Equal(t, Timelines, Options("timeline"))
	assert.Nil(t, Options("name"))
}
