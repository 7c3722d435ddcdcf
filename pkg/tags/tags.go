// Package tags matches search queries against emoji tag lists and serves the
// custom and localized tag lookups.
package tags

import (
	"strings"
)

// ListContains reports whether one of the comma-delimited tokens in tags
// contains query, ignoring case. Each element of tags may itself be a comma
// separated list.
func ListContains(tags []string, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return false
	}
	for _, t := range tags {
		for _, token := range strings.Split(t, ",") {
			if strings.Contains(strings.ToLower(strings.TrimSpace(token)), query) {
				return true
			}
		}
	}
	return false
}

// Parse splits user input such as "party, cake ,yay" into clean tokens.
func Parse(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		out = append(out, token)
	}
	return out
}

// Join renders tags the way Parse accepts them.
func Join(tags []string) string {
	return strings.Join(tags, ", ")
}
