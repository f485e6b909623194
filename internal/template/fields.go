package template

import (
	"regexp"
	"strings"

	"github.com/AdeenoAi/fdabc/internal/mdtable"
)

var (
	annotationFieldPattern = regexp.MustCompile(`<!--\s*field:\s*([^>]+?)\s*-->`)
	doubleBracePattern     = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)
	simpleBracePattern     = regexp.MustCompile(`\{\s*([^{}]+?)\s*\}`)

	listLinePattern     = regexp.MustCompile(`^\s*(?:[-*+]|\d+\.)\s+\S`)
	variableLinePattern = regexp.MustCompile(`^[A-Z][^:\n]{0,60}:\s*\S`)
)

// extractFields finds every placeholder in a section body. Double-brace
// placeholders are masked before the simple-brace scan so {{x}} is never
// double-counted as {x}.
func extractFields(content string) []Field {
	var fields []Field
	seen := make(map[string]bool)

	add := func(name string, kind FieldKind, placeholder string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		fields = append(fields, Field{Name: name, Kind: kind, Placeholder: placeholder})
	}

	for _, m := range annotationFieldPattern.FindAllStringSubmatch(content, -1) {
		add(m[1], FieldAnnotation, m[0])
	}
	for _, m := range doubleBracePattern.FindAllStringSubmatch(content, -1) {
		add(m[1], FieldDouble, m[0])
	}
	masked := doubleBracePattern.ReplaceAllStringFunc(content, func(s string) string {
		return strings.Repeat(" ", len(s))
	})
	for _, m := range simpleBracePattern.FindAllStringSubmatch(masked, -1) {
		add(m[1], FieldSimple, m[0])
	}
	return fields
}

// contentTypeKeywords drives the content-hint analysis. A hint is attached
// when any of its keywords appears in the section body.
var contentTypeKeywords = []struct {
	hint     string
	keywords []string
}{
	{"methodology", []string{"method", "procedure", "protocol", "step", "technique"}},
	{"results", []string{"result", "finding", "outcome", "measurement", "observed"}},
	{"materials", []string{"material", "equipment", "reagent", "instrument", "apparatus"}},
	{"variables", []string{"variable", "parameter", "setting", "configuration"}},
}

// analyzeContext derives retrieval hints from a section body.
func analyzeContext(content string) Context {
	ctx := Context{WordCount: len(strings.Fields(content))}
	lower := strings.ToLower(content)

	for _, line := range strings.Split(content, "\n") {
		if mdtable.IsRow(line) {
			ctx.HasTables = true
		}
		if listLinePattern.MatchString(line) {
			ctx.HasLists = true
		}
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			ctx.HasCode = true
		}
		if variableLinePattern.MatchString(line) {
			ctx.HasVariables = true
		}
	}

	for _, ct := range contentTypeKeywords {
		for _, kw := range ct.keywords {
			if strings.Contains(lower, kw) {
				ctx.ContentTypes = append(ctx.ContentTypes, ct.hint)
				break
			}
		}
	}
	return ctx
}

// extractTables converts the markdown tables found in a section body into
// template table specs.
func extractTables(content string) []TableSpec {
	var specs []TableSpec
	for _, t := range mdtable.Detect(content) {
		var rowLines []string
		for _, idx := range t.RowLines {
			rowLines = append(rowLines, t.Lines[idx-t.StartLine])
		}
		specs = append(specs, TableSpec{
			Headers:   t.Headers,
			RowLines:  rowLines,
			StartLine: t.StartLine,
			EndLine:   t.EndLine,
		})
	}
	return specs
}
