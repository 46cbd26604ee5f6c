package lead

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"rfc3339 utc", "2024-05-01T10:20:30Z", want},
		{"rfc3339 offset", "2024-05-01T12:20:30+02:00", want},
		{"naive", "2024-05-01T10:20:30", want},
		{"naive fractional", "2024-05-01T10:20:30.000000", want},
		{"naive space", "2024-05-01 10:20:30", want},
		{"date only", "2024-05-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %s", got.Time)
		})
	}

	_, err := ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestTimestampJSON(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`"2024-05-01T10:20:30"`), &ts))
	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-05-01T10:20:30Z"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))
}

func TestTimestampDisplay(t *testing.T) {
	ts, err := ParseTimestamp("2024-05-01T10:20:30")
	require.NoError(t, err)

	amsterdam := time.FixedZone("CEST", 2*60*60)
	assert.Equal(t, "2024-05-01 12:20", ts.Display(amsterdam))
	assert.Equal(t, "", Timestamp{}.Display(amsterdam))
}
