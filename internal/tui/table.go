package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/felixgeelhaar/carbonwallet/internal/lead"
)

// EmptyLeadsText fills the single row shown for an empty collection.
const EmptyLeadsText = "No leads yet"

const (
	placeholder    = "-"
	maxMessageCell = 40
)

// LeadHeaders are the leads table columns, in order.
var LeadHeaders = []string{
	"Name", "Email", "Company", "Phone", "Country", "Industry",
	"Company Size", "Team Size", "Timeline", "Source", "Consent",
	"Interests", "Message", "Created",
}

// LeadRows renders one row per lead. Missing values become "-" and
// created_at is shown in loc. An empty collection yields exactly one row
// holding EmptyLeadsText.
func LeadRows(leads []lead.Lead, loc *time.Location) [][]string {
	if len(leads) == 0 {
		row := make([]string, len(LeadHeaders))
		row[0] = EmptyLeadsText
		return [][]string{row}
	}

	rows := make([][]string, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, []string{
			orDash(l.Name),
			orDash(l.Email),
			orDash(l.Company),
			orDash(lead.FormatPhone(l.Phone)),
			orDash(l.Country),
			orDash(l.Industry),
			orDash(l.CompanySize),
			orDash(l.TeamSize),
			orDash(l.Timeline),
			orDash(l.Source),
			orDash(l.ConsentLabel()),
			orDash(strings.Join(l.Interests, ", ")),
			orDash(shorten(l.Message, maxMessageCell)),
			orDash(l.CreatedAt.Display(loc)),
		})
	}
	return rows
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

// shorten flattens whitespace and cuts s to n runes.
func shorten(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// RenderLeadsTable draws the leads table.
func RenderLeadsTable(leads []lead.Lead, loc *time.Location, styles Styles) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Border).
		Headers(LeadHeaders...).
		Rows(LeadRows(leads, loc)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			return styles.Cell
		})
	return t.String()
}
