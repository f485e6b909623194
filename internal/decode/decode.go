// Package decode turns source files (markdown, plain text, PDF, DOCX) into a
// ParsedDocument: plain text plus detected tables and key/value variables.
//
// Decoding is an explicit ordered list of strategies per extension. The
// pipeline tries each in order and records which one succeeded, so a PDF that
// needed the pdftotext fallback is visible in logs and stored metadata.
package decode

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AdeenoAi/fdabc/internal/mdtable"
)

// SourceMeta identifies where a parsed document came from.
type SourceMeta struct {
	FileName string
	FilePath string
	FileType string // extension without the dot
}

// DetectedTable is a table found in the decoded text, kept whole for the
// chunker's table-atomicity rule.
type DetectedTable struct {
	Index int
	Text  string
}

// Variable is a key/value line found in the decoded text.
type Variable struct {
	Key   string
	Value string
}

// ParsedDocument is the decode result handed to the chunker.
type ParsedDocument struct {
	Text      string
	Tables    []DetectedTable
	Variables []Variable
	Meta      SourceMeta
	Decoder   string // name of the strategy that succeeded
}

// Strategy is one way of turning a file into text.
type Strategy struct {
	Name   string
	Decode func(path string) (string, error)
}

// SupportedExtensions lists the file extensions the pipeline ingests.
var SupportedExtensions = map[string]bool{
	".md":   true,
	".txt":  true,
	".pdf":  true,
	".docx": true,
}

// IsSupported checks whether a filename has an ingestable extension.
func IsSupported(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// strategiesFor returns the ordered decode attempts for a file.
func strategiesFor(filename string) ([]Strategy, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown", ".txt":
		return []Strategy{{Name: "text", Decode: decodeText}}, nil
	case ".pdf":
		return []Strategy{
			{Name: "pdf", Decode: decodePDF},
			{Name: "pdftotext", Decode: decodePdftotext},
		}, nil
	case ".docx":
		return []Strategy{{Name: "docx", Decode: decodeDOCX}}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}

// File decodes a source file, trying each strategy for its extension in
// order. The returned document records which strategy produced the text.
func File(path string) (*ParsedDocument, error) {
	strategies, err := strategiesFor(path)
	if err != nil {
		return nil, err
	}

	var text, decoder string
	var lastErr error
	for _, s := range strategies {
		text, lastErr = s.Decode(path)
		if lastErr == nil && strings.TrimSpace(text) != "" {
			decoder = s.Name
			break
		}
		if lastErr == nil {
			lastErr = fmt.Errorf("%s: empty output", s.Name)
		}
	}
	if decoder == "" {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), lastErr)
	}

	return FromText(text, path, decoder), nil
}

// FromText assembles a ParsedDocument from already-decoded text. Exposed so
// templates loaded from memory and tests share the table/variable analysis.
func FromText(text, path, decoder string) *ParsedDocument {
	doc := &ParsedDocument{
		Text:    text,
		Decoder: decoder,
		Meta: SourceMeta{
			FileName: filepath.Base(path),
			FilePath: path,
			FileType: strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		},
	}
	for i, t := range mdtable.Detect(text) {
		doc.Tables = append(doc.Tables, DetectedTable{Index: i, Text: strings.Join(t.Lines, "\n")})
	}
	doc.Variables = extractVariables(text)
	return doc
}
