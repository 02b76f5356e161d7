package interview

import (
	"regexp"
	"strings"
)

const noneLabel = "none"

var (
	labelSeparators = regexp.MustCompile(`[,;\n]+`)
	listMarker      = regexp.MustCompile(`^(?:[-*•]+|\d+[.)])\s*`)
)

// ParseLabels extracts the candidates named in a free-text model reply.
//
// The reply is split on commas, semicolons and newlines; each token is
// stripped of list markers, quotes and trailing punctuation and compared
// case-insensitively with the candidates. A "none" token yields an empty
// result. Tokens that match no candidate are dropped. The result follows
// candidate order and holds each candidate at most once.
func ParseLabels(reply string, candidates []string) []string {
	if len(candidates) == 0 {
		return nil
	}
	index := make(map[string]int, len(candidates))
	for i, c := range candidates {
		key := strings.ToLower(strings.TrimSpace(c))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	hit := make([]bool, len(candidates))
	for _, raw := range labelSeparators.Split(reply, -1) {
		tok := cleanLabel(raw)
		if tok == "" {
			continue
		}
		if tok == noneLabel {
			return nil
		}
		if i, ok := index[tok]; ok {
			hit[i] = true
			continue
		}
		// "aromas and flavors"
		for _, part := range strings.Split(tok, " and ") {
			if i, ok := index[cleanLabel(part)]; ok {
				hit[i] = true
			}
		}
	}

	var out []string
	for i, c := range candidates {
		if hit[i] {
			out = append(out, c)
		}
	}
	return out
}

func cleanLabel(s string) string {
	s = strings.TrimSpace(s)
	// "Covered topics: aromas"
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	s = listMarker.ReplaceAllString(strings.TrimSpace(s), "")
	s = strings.Trim(s, " \t\"'`*.!")
	return strings.ToLower(s)
}
