package platform

import (
	"encoding/json"
	"fmt"
	"strings"
)

// errorResponse covers the error bodies the API is known to send: a
// "detail" string or list of field problems, or an error/message pair.
type errorResponse struct {
	Detail  json.RawMessage `json:"detail"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type fieldProblem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// maxDetailLen is counted in runes.
const maxDetailLen = 200

// errorDetail extracts a one-line explanation from an error body.
func errorDetail(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return truncate(trimmed)
	}

	if len(resp.Detail) > 0 {
		var s string
		if err := json.Unmarshal(resp.Detail, &s); err == nil {
			return truncate(s)
		}
		var problems []fieldProblem
		if err := json.Unmarshal(resp.Detail, &problems); err == nil && len(problems) > 0 {
			msgs := make([]string, 0, len(problems))
			for _, p := range problems {
				msgs = append(msgs, formatProblem(p))
			}
			return truncate(strings.Join(msgs, "; "))
		}
	}

	if resp.Error != "" {
		return truncate(resp.Error)
	}
	return truncate(resp.Message)
}

// formatProblem renders {"loc":["body","email"],"msg":"..."} as "email: ...".
func formatProblem(p fieldProblem) string {
	if len(p.Loc) == 0 {
		return p.Msg
	}
	field := fmt.Sprint(p.Loc[len(p.Loc)-1])
	return field + ": " + p.Msg
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxDetailLen {
		return s
	}
	return string(r[:maxDetailLen]) + "…"
}
