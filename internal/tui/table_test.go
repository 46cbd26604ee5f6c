package tui

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/carbonwallet/internal/lead"
)

func mustTime(t *testing.T, s string) lead.Timestamp {
	t.Helper()
	ts, err := lead.ParseTimestamp(s)
	require.NoError(t, err)
	return ts
}

func TestLeadRowsEmpty(t *testing.T) {
	for _, leads := range [][]lead.Lead{nil, {}} {
		rows := LeadRows(leads, time.UTC)

		require.Len(t, rows, 1, "exactly one placeholder row")
		assert.Equal(t, EmptyLeadsText, rows[0][0])
		assert.Len(t, rows[0], len(LeadHeaders))
		for _, cell := range rows[0][1:] {
			assert.Empty(t, cell)
		}
	}
}

func TestLeadRows(t *testing.T) {
	yes, no := true, false
	leads := []lead.Lead{
		{
			Name:        "Ava",
			Email:       "ava@x.com",
			Company:     "Acme",
			Phone:       "+442071838750",
			Country:     "UK",
			Industry:    "Retail",
			CompanySize: "51-200",
			TeamSize:    "2-5",
			Timeline:    "ASAP",
			Source:      "early-access",
			Consent:     &yes,
			Interests:   []string{"rewards", "mrv"},
			Message:     "Hello\nthere",
			CreatedAt:   mustTime(t, "2024-05-01T10:20:30"),
		},
		{
			Name:      "Bo",
			Email:     "bo@x.com",
			Consent:   &no,
			CreatedAt: mustTime(t, "2024-05-02T08:00:00Z"),
		},
		{Name: "Cy", Email: "cy@x.com"},
	}

	rows := LeadRows(leads, time.FixedZone("CEST", 2*60*60))
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"Ava", "ava@x.com", "Acme", "+44 20 7183 8750", "UK", "Retail",
		"51-200", "2-5", "ASAP", "early-access", "Yes",
		"rewards, mrv", "Hello there", "2024-05-01 12:20",
	}, rows[0])

	assert.Equal(t, []string{
		"Bo", "bo@x.com", "-", "-", "-", "-",
		"-", "-", "-", "-", "No",
		"-", "-", "2024-05-02 10:00",
	}, rows[1])

	assert.Equal(t, "No", rows[2][10], "missing consent")
	assert.Equal(t, "-", rows[2][13], "missing created_at")
}

func TestLeadRowsConsentOmittedByServer(t *testing.T) {
	var l lead.Lead
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","name":"Ava","email":"a@x.com","created_at":"2024-01-01T00:00:00"}`), &l))

	rows := LeadRows([]lead.Lead{l}, time.UTC)

	require.Len(t, rows, 1)
	assert.Equal(t, "No", rows[0][10])
	assert.Equal(t, "2024-01-01 00:00", rows[0][13])
}

func TestLeadRowsShortensMessage(t *testing.T) {
	rows := LeadRows([]lead.Lead{{Name: "A", Email: "a@x.com", Message: strings.Repeat("word ", 30)}}, time.UTC)

	msg := rows[0][12]
	assert.Len(t, []rune(msg), maxMessageCell)
	assert.True(t, strings.HasSuffix(msg, "…"))
}

func TestRenderLeadsTable(t *testing.T) {
	out := RenderLeadsTable(nil, time.UTC, DefaultStyles())

	assert.Contains(t, out, "Company Size")
	assert.Contains(t, out, EmptyLeadsText)
}
