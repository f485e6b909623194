package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_service.go -package=mocks -mock_names=DocumentService=MockDocumentService github.com/AdeenoAi/fdabc/internal/service DocumentService

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/AdeenoAi/fdabc/internal/contextutil"
	"github.com/AdeenoAi/fdabc/internal/decode"
	"github.com/AdeenoAi/fdabc/internal/generator"
	"github.com/AdeenoAi/fdabc/internal/storage"
	"github.com/AdeenoAi/fdabc/internal/template"
	"github.com/AdeenoAi/fdabc/internal/verifier"
)

// SectionGenerator produces content for one template section.
// This interface is defined from the service layer's perspective (consumer-first).
type SectionGenerator interface {
	GenerateSection(ctx context.Context, info template.SectionInfo, opts generator.Options) *generator.SectionResult
}

// ClaimVerifier scores generated text against the indexed corpus.
type ClaimVerifier interface {
	Verify(ctx context.Context, generatedText, sectionName string, structure *template.Structure, topK int) *verifier.Result
}

// GenerateRequest asks for a batch of sections to be generated.
type GenerateRequest struct {
	Sections   []string
	TopK       int
	Style      string
	Verify     bool
	OutputPath string
}

// SectionOutput is the per-section outcome of a generate batch. Error is set
// when the section could not be generated at all; the batch continues.
type SectionOutput struct {
	Name         string             `json:"name"`
	Content      string             `json:"content,omitempty"`
	Sources      []generator.Source `json:"sources,omitempty"`
	Metadata     generator.Metadata `json:"metadata"`
	Verification *verifier.Result   `json:"verification,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// GenerateResponse is the outcome of one generate batch.
type GenerateResponse struct {
	Document   string          `json:"document"`
	Sections   []SectionOutput `json:"sections"`
	Generated  int             `json:"generated"`
	Failed     int             `json:"failed"`
	OutputPath string          `json:"output_path,omitempty"`
}

// TemplateInfo summarizes the currently loaded template.
type TemplateInfo struct {
	Path       string                   `json:"path"`
	Sections   []string                 `json:"sections"`
	TOC        []template.TOCEntry      `json:"toc,omitempty"`
	Glossary   []template.GlossaryEntry `json:"glossary,omitempty"`
	Scientific map[string]string        `json:"scientific,omitempty"`
}

// DocumentService loads templates and generates verified documents from them.
type DocumentService interface {
	// LoadTemplate parses the template at path and replaces the current one.
	LoadTemplate(ctx context.Context, path string) (*TemplateInfo, error)
	// TemplateSections describes the currently loaded template.
	TemplateSections(ctx context.Context) (*TemplateInfo, error)
	// Generate produces the requested sections, optionally verifying each.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// documentService implements DocumentService.
type documentService struct {
	gen     SectionGenerator
	ver     ClaimVerifier
	reports storage.ReportStore

	mu           sync.RWMutex
	structure    *template.Structure
	templatePath string
}

// NewDocumentService creates a new DocumentService. verifier and reports may
// be nil when verification is not wired in.
func NewDocumentService(gen SectionGenerator, ver ClaimVerifier, reports storage.ReportStore) DocumentService {
	return &documentService{gen: gen, ver: ver, reports: reports}
}

// LoadTemplate parses the template file and fully replaces any previously
// loaded structure; parses never merge.
func (s *documentService) LoadTemplate(ctx context.Context, path string) (*TemplateInfo, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if path == "" {
		return nil, &ValidationError{Field: "path", Message: "cannot be empty"}
	}
	doc, err := decode.File(path)
	if err != nil {
		logger.ErrorContext(ctx, "failed to decode template", "path", path, "error", err)
		return nil, WrapError(err, "failed to decode template")
	}

	structure := template.Parse(doc.Text)
	if len(structure.Order) == 0 {
		return nil, &ValidationError{Field: "path", Message: "template contains no sections"}
	}

	s.mu.Lock()
	s.structure = structure
	s.templatePath = path
	s.mu.Unlock()

	logger.InfoContext(ctx, "template loaded",
		"path", path, "sections", len(structure.Order), "toc_entries", len(structure.TOC))
	return s.info(structure, path), nil
}

// TemplateSections describes the loaded template.
func (s *documentService) TemplateSections(ctx context.Context) (*TemplateInfo, error) {
	s.mu.RLock()
	structure, path := s.structure, s.templatePath
	s.mu.RUnlock()
	if structure == nil {
		return nil, ErrNoTemplate
	}
	return s.info(structure, path), nil
}

func (s *documentService) info(structure *template.Structure, path string) *TemplateInfo {
	return &TemplateInfo{
		Path:       path,
		Sections:   structure.SectionKeys(),
		TOC:        structure.TOC,
		Glossary:   structure.Glossary,
		Scientific: structure.Scientific,
	}
}

// Generate produces each requested section. A section that does not resolve
// in the template fails alone; the batch reports partial success. With no
// explicit section list, every template section is generated in order.
func (s *documentService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	s.mu.RLock()
	structure := s.structure
	s.mu.RUnlock()
	if structure == nil {
		return nil, ErrNoTemplate
	}

	names := req.Sections
	if len(names) == 0 {
		names = structure.SectionKeys()
	}

	resp := &GenerateResponse{}
	var parts []string
	for _, name := range names {
		info := structure.SectionStructure(name)
		if !info.Found {
			logger.WarnContext(ctx, "section not found in template", "section", name)
			resp.Sections = append(resp.Sections, SectionOutput{
				Name:  name,
				Error: "section not found in template",
			})
			resp.Failed++
			continue
		}

		result := s.gen.GenerateSection(ctx, info, generator.Options{
			TopK:  req.TopK,
			Style: generator.Style(req.Style),
		})
		out := SectionOutput{
			Name:     result.Section,
			Content:  result.Content,
			Sources:  result.Sources,
			Metadata: result.Metadata,
		}

		if req.Verify && s.ver != nil {
			out.Verification = s.ver.Verify(ctx, result.Content, result.Section, structure, req.TopK)
			s.persistReport(ctx, result.Section, out.Verification)
		}

		resp.Sections = append(resp.Sections, out)
		resp.Generated++
		parts = append(parts, result.Content)
	}

	resp.Document = joinSections(parts)

	if req.OutputPath != "" && resp.Document != "" {
		if err := s.writeOutput(req.OutputPath, resp); err != nil {
			logger.ErrorContext(ctx, "failed to write output", "path", req.OutputPath, "error", err)
			return nil, WrapError(err, "failed to write output")
		}
		resp.OutputPath = req.OutputPath
	}

	logger.InfoContext(ctx, "generation batch finished",
		"requested", len(names), "generated", resp.Generated, "failed", resp.Failed)
	return resp, nil
}

// persistReport stores the verification payload; persistence failures are
// logged and swallowed because verification output is advisory.
func (s *documentService) persistReport(ctx context.Context, sectionName string, result *verifier.Result) {
	if s.reports == nil || result == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	report := &storage.Report{
		ID:          uuid.NewString(),
		SectionName: sectionName,
		Confidence:  result.Confidence,
		Verified:    result.Verified,
		Payload:     string(payload),
	}
	if err := s.reports.Insert(ctx, report); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to persist verification report",
			"section", sectionName, "error", err)
	}
}

// writeOutput writes the assembled document and, when any section carries a
// verification result, a machine-readable sidecar next to it.
func (s *documentService) writeOutput(path string, resp *GenerateResponse) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(resp.Document+"\n"), 0644); err != nil {
		return err
	}

	verified := false
	for _, sec := range resp.Sections {
		if sec.Verification != nil {
			verified = true
			break
		}
	}
	if !verified {
		return nil
	}
	payload, err := json.MarshalIndent(resp.Sections, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(verificationPath(path), payload, 0644)
}

func verificationPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	return outputPath[:len(outputPath)-len(ext)] + ".verification.json"
}

func joinSections(parts []string) string {
	return strings.Join(parts, "\n\n")
}
