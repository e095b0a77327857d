package report

import (
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`\{\{[^{}]+\}\}`)

// ApplyPlaceholders replaces every occurrence of every token in template with
// its text. Substituted text is not escaped and is not scanned again.
func ApplyPlaceholders(template string, p *Placeholders) string {
	if p == nil || p.Len() == 0 {
		return template
	}

	pairs := make([]string, 0, 2*p.Len())
	for _, token := range p.tokens {
		pairs = append(pairs, token, p.values[token])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// UnresolvedTokens returns the distinct {{...}} tokens left in a document, in
// order of first appearance.
func UnresolvedTokens(document string) []string {
	matches := tokenRe.FindAllString(document, -1)
	seen := make(map[string]bool, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}
