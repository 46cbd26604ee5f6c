package lead

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// FormatPhone pretty-prints numbers given in international form. Anything
// that does not parse as a valid number is returned trimmed but unchanged.
func FormatPhone(input string) string {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "+") {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, "")
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.INTERNATIONAL)
}
