package lead

import "slices"

// DefaultSource tags leads collected through the early-access form.
const DefaultSource = "early-access"

// Option sets for the select fields. The empty value means "not selected"
// and is accepted everywhere.
var (
	CompanySizes = []string{"1-50", "51-200", "201-1000", "1001-5000", "5000+"}
	TeamSizes    = []string{"1", "2-5", "6-10", "10+"}
	Timelines    = []string{"ASAP", "1-3 months", "3-6 months", "6+ months"}
)

// Options returns the option set for a select field by its JSON name, or
// nil when the field is free text.
func Options(field string) []string {
	switch field {
	case "company_size":
		return CompanySizes
	case "team_size":
		return TeamSizes
	case "timeline":
		return Timelines
	default:
		return nil
	}
}

func inOptions(options []string, value string) bool {
	return value == "" || slices.Contains(options, value)
}
