package service

import "strings"

// joinSummaries concatenates non-empty summaries with a single space,
// preserving input order.
func joinSummaries(summaries []string) string {
	parts := make([]string, 0, len(summaries))
	for _, s := range summaries {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// dedupSources returns the unique source names in first-seen order.
func dedupSources(sources []string) []string {
	seen := make(map[string]struct{}, len(sources))
	unique := make([]string, 0, len(sources))
	for _, src := range sources {
		if src == "" {
			continue
		}
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		unique = append(unique, src)
	}
	return unique
}
