// ABOUTME: Pure helpers shared by the TUI and commands
// ABOUTME: Client-side filtering and required-field submission checks

package forms

import (
	"strconv"
	"strings"

	"github.com/collabform/collabform-cli/internal/api"
)

// Filter narrows a loaded form list by case-insensitive substring
// match on title and description, optionally to active forms only.
// It never refetches; the result is a pure function of its inputs.
func Filter(list []api.Form, query string, activeOnly bool) []api.Form {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]api.Form, 0, len(list))
	for _, f := range list {
		if activeOnly && !f.Active {
			continue
		}
		if query != "" {
			title := strings.ToLower(f.Title)
			desc := strings.ToLower(f.Description)
			if !strings.Contains(title, query) && !strings.Contains(desc, query) {
				continue
			}
		}
		out = append(out, f)
	}
	return out
}

// IsEmpty reports whether an answer value counts as missing:
// nil, empty string, or an empty multi-value set.
func IsEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	}
	return false
}

// Missing returns the required fields whose answers are missing, in
// field order. Fields absent from answers count as missing.
func Missing(fields []api.Field, answers map[int64]any) []api.Field {
	var missing []api.Field
	for _, f := range fields {
		if !f.Required {
			continue
		}
		if IsEmpty(answers[f.ID]) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Payload converts collected answers into the submit wire format,
// keyed by decimal field id.
func Payload(answers map[int64]any) map[string]any {
	out := make(map[string]any, len(answers))
	for id, v := range answers {
		out[strconv.FormatInt(id, 10)] = v
	}
	return out
}
