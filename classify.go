package boardfinder

import "strings"

// Classify returns the first family, in table order, with a keyword
// contained in text, or Unknown. Matching is a case-sensitive substring test.
func (t *Table) Classify(text string) string {
	for _, sig := range t.signatures {
		if containsAny(text, sig.Keywords) {
			return sig.Family
		}
	}
	return Unknown
}

// Match returns every family with a keyword contained in text, in table
// order. Match(text)[0] equals Classify(text) whenever the result is non-empty.
func (t *Table) Match(text string) []string {
	var families []string
	for _, sig := range t.signatures {
		if containsAny(text, sig.Keywords) {
			families = append(families, sig.Family)
		}
	}
	return families
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// selected reports whether any matched family is in filter. An empty
// filter selects every match.
func selected(matches, filter []string) bool {
	if len(matches) == 0 {
		return false
	}
	if len(filter) == 0 {
		return true
	}
	for _, m := range matches {
		for _, f := range filter {
			if m == f {
				return true
			}
		}
	}
	return false
}
