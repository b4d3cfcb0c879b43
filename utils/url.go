package utils

import "strings"

// TrimTrailingSlashes removes every trailing "/" from a base URL.
func TrimTrailingSlashes(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}

// BaseURLs normalizes candidate base URLs: trailing slashes are trimmed and
// empty or duplicate entries dropped, keeping first-seen order.
func BaseURLs(candidates ...string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = TrimTrailingSlashes(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
