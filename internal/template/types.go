// Package template parses a template document into named, hierarchically
// pathed sections with their placeholder fields, declared tables, and content
// hints, plus a table-of-contents outline, a glossary, and a mapping of
// outline entries onto canonical scientific-document roles.
package template

// FieldKind distinguishes the three placeholder syntaxes a template may use.
type FieldKind string

const (
	FieldSimple     FieldKind = "simple"     // {field}
	FieldDouble     FieldKind = "double"     // {{field}}
	FieldAnnotation FieldKind = "annotation" // <!-- field: name -->
)

// Field is a placeholder found in a section body.
type Field struct {
	Name        string
	Kind        FieldKind
	Placeholder string // the literal placeholder text as written
}

// TableSpec is a table declared in a template section. The number of
// TableSpecs in a section is an exact-count constraint on generated output.
type TableSpec struct {
	Headers   []string
	RowLines  []string
	StartLine int
	EndLine   int
}

// Context carries content hints derived from a section body; the generation
// engine uses them to widen its retrieval queries.
type Context struct {
	HasTables    bool
	HasLists     bool
	HasCode      bool
	HasVariables bool
	WordCount    int
	ContentTypes []string // methodology, results, materials, variables
}

// Section is one named region of the template. Path is never empty, its last
// element equals Name, and Level == len(Path).
type Section struct {
	Name         string
	Path         []string
	Level        int
	RawContent   string
	Placeholders []Field
	Tables       []TableSpec
	Context      Context
}

// Key returns the joined-path key the section is stored under.
func (s *Section) Key() string {
	return joinPath(s.Path)
}

// TOCEntry is one entry of the extracted table-of-contents outline.
type TOCEntry struct {
	Name    string
	Level   int
	RawLine string
}

// GlossaryEntry is one term/definition pair from the template's glossary.
type GlossaryEntry struct {
	Term       string
	Definition string
}

// Structure is the complete parse result for one template document.
// Re-parsing fully replaces a Structure; there is no merging across parses.
type Structure struct {
	Sections   map[string]*Section
	Order      []string // section keys in document order
	TOC        []TOCEntry
	Glossary   []GlossaryEntry
	Scientific map[string]string // outline entry name -> role
}

// SectionInfo is the lookup result shape for a single section. Found is false
// when the name did not resolve; the zero value is returned rather than an
// error so callers can treat absence as an ordinary outcome.
type SectionInfo struct {
	Found        bool
	Name         string
	Path         []string
	Level        int
	Content      string
	Placeholders []Field
	Tables       []TableSpec
	Context      Context
}

func joinPath(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += "/"
		}
		out += p
	}
	return out
}
