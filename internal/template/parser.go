package template

import (
	"strings"

	"github.com/AdeenoAi/fdabc/internal/mdtable"
)

// Parse scans a template document and reconstructs its section hierarchy,
// TOC, glossary, and scientific-role mapping. Parsing is line-oriented: a
// section-path stack is truncated to headerLevel-1 entries on every accepted
// header, then the new name is appended, and the previous section's body is
// flushed.
func Parse(content string) *Structure {
	s := &Structure{
		Sections:   make(map[string]*Section),
		Scientific: make(map[string]string),
	}

	lines := strings.Split(content, "\n")

	var path []string
	var body []string

	flush := func() {
		if len(path) == 0 {
			return
		}
		key := joinPath(path)
		sec, ok := s.Sections[key]
		if !ok {
			return
		}
		sec.RawContent = strings.TrimRight(strings.Join(body, "\n"), "\n")
		body = nil
	}

	for i, line := range lines {
		// Table rows and separators are never header candidates.
		if mdtable.IsRow(line) {
			body = append(body, line)
			continue
		}

		candidate := detectHeader(line, i)
		if candidate == nil || !validateHeader(candidate, lines) {
			body = append(body, line)
			continue
		}

		flush()
		if candidate.Level-1 < len(path) {
			path = path[:candidate.Level-1]
		}
		path = append(path, candidate.Text)

		key := joinPath(path)
		if _, exists := s.Sections[key]; !exists {
			s.Order = append(s.Order, key)
		}
		s.Sections[key] = &Section{
			Name:  candidate.Text,
			Path:  append([]string{}, path...),
			Level: len(path),
		}
		body = nil
	}
	flush()

	for _, key := range s.Order {
		sec := s.Sections[key]
		sec.Placeholders = extractFields(sec.RawContent)
		sec.Tables = extractTables(sec.RawContent)
		sec.Context = analyzeContext(sec.RawContent)
	}

	s.TOC = extractTOC(lines)
	s.Glossary = extractGlossary(lines)

	for _, entry := range s.TOC {
		s.Scientific[entry.Name] = ScientificRole(entry.Name)
	}
	for _, key := range s.Order {
		sec := s.Sections[key]
		if _, ok := s.Scientific[sec.Name]; !ok {
			s.Scientific[sec.Name] = ScientificRole(sec.Name)
		}
	}
	return s
}

// SectionKeys returns the joined path key of every section in document order.
func (s *Structure) SectionKeys() []string {
	return append([]string{}, s.Order...)
}

// Section resolves a name to a section: exact key first, then substring match
// in either direction, then leaf-name equality, all case-insensitive. Returns
// nil when nothing matches.
func (s *Structure) Section(name string) *Section {
	if sec, ok := s.Sections[name]; ok {
		return sec
	}
	lower := strings.ToLower(name)
	for _, key := range s.Order {
		keyLower := strings.ToLower(key)
		if strings.Contains(keyLower, lower) || strings.Contains(lower, keyLower) {
			return s.Sections[key]
		}
	}
	for _, key := range s.Order {
		if strings.EqualFold(s.Sections[key].Name, name) {
			return s.Sections[key]
		}
	}
	return nil
}

// SectionStructure is the lookup used by generation and verification. An
// unresolved name yields a zero SectionInfo with Found=false, never an error.
func (s *Structure) SectionStructure(name string) SectionInfo {
	sec := s.Section(name)
	if sec == nil {
		return SectionInfo{}
	}
	return SectionInfo{
		Found:        true,
		Name:         sec.Name,
		Path:         append([]string{}, sec.Path...),
		Level:        sec.Level,
		Content:      sec.RawContent,
		Placeholders: sec.Placeholders,
		Tables:       sec.Tables,
		Context:      sec.Context,
	}
}

// RequiredFields returns the placeholder names a generated section is
// expected to cover; the verifier's missing-field check runs against these.
func (s *Structure) RequiredFields(name string) []string {
	sec := s.Section(name)
	if sec == nil {
		return nil
	}
	fields := make([]string, 0, len(sec.Placeholders))
	for _, f := range sec.Placeholders {
		fields = append(fields, f.Name)
	}
	return fields
}
