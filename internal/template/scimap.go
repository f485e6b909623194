package template

import "strings"

// sectionArchetypes maps canonical scientific-document roles to the keyword
// synonyms a section name may use for them. Order matters: the first matching
// role wins.
var sectionArchetypes = []struct {
	role     string
	keywords []string
}{
	{"abstract", []string{"abstract", "summary", "synopsis"}},
	{"introduction", []string{"introduction", "background", "overview", "purpose"}},
	{"materials", []string{"materials", "equipment", "reagents", "instruments"}},
	{"methods", []string{"method", "methodology", "procedure", "protocol", "experimental"}},
	{"results", []string{"result", "findings", "outcome", "data analysis"}},
	{"discussion", []string{"discussion", "interpretation", "analysis"}},
	{"conclusion", []string{"conclusion", "concluding", "final remarks"}},
	{"references", []string{"references", "bibliography", "citations", "works cited"}},
	{"appendix", []string{"appendix", "appendices", "supplementary", "annex"}},
	{"acknowledgments", []string{"acknowledgment", "acknowledgement", "thanks"}},
}

// ScientificRole maps a section name onto its canonical role: exact substring
// match against each role's synonyms first, then a partial match on the
// name's own word stems. Unmatched names are tagged "custom".
func ScientificRole(name string) string {
	lower := strings.ToLower(name)

	for _, arch := range sectionArchetypes {
		for _, kw := range arch.keywords {
			if strings.Contains(lower, kw) {
				return arch.role
			}
		}
	}

	for _, word := range strings.Fields(lower) {
		if len(word) < 4 {
			continue
		}
		for _, arch := range sectionArchetypes {
			for _, kw := range arch.keywords {
				if strings.HasPrefix(kw, word) || strings.HasPrefix(word, kw) {
					return arch.role
				}
			}
		}
	}
	return "custom"
}

// containsScientificKeyword reports whether a header text mentions any known
// section archetype; used by header validation to keep legitimate all-caps
// section titles like "MATERIALS AND METHODS".
func containsScientificKeyword(text string) bool {
	return ScientificRole(text) != "custom"
}
