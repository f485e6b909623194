package decode

import (
	"regexp"
	"strings"

	"github.com/AdeenoAi/fdabc/internal/mdtable"
)

// variablePattern matches capitalized key/value lines like "Dose: 10 mg".
// The key is kept short so prose sentences with colons do not qualify.
var variablePattern = regexp.MustCompile(`^([A-Z][A-Za-z0-9 _/()\-]{0,50}?)\s*:\s+(\S.*)$`)

// extractVariables collects key/value lines in document order. Table rows are
// excluded; a colon inside a cell is table content, not a variable.
func extractVariables(text string) []Variable {
	var vars []Variable
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || mdtable.IsRow(line) {
			continue
		}
		if m := variablePattern.FindStringSubmatch(trimmed); m != nil {
			vars = append(vars, Variable{Key: strings.TrimSpace(m[1]), Value: strings.TrimSpace(m[2])})
		}
	}
	return vars
}

// IsVariableLine reports whether a line would be extracted as a variable.
// The chunker uses this to keep variable lines out of the plain-text pass.
func IsVariableLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || mdtable.IsRow(line) {
		return false
	}
	return variablePattern.MatchString(trimmed)
}
