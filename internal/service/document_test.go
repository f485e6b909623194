package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AdeenoAi/fdabc/internal/generator"
	"github.com/AdeenoAi/fdabc/internal/storage"
	"github.com/AdeenoAi/fdabc/internal/template"
	"github.com/AdeenoAi/fdabc/internal/verifier"
)

type stubGenerator struct{ calls []string }

func (g *stubGenerator) GenerateSection(ctx context.Context, info template.SectionInfo, opts generator.Options) *generator.SectionResult {
	g.calls = append(g.calls, info.Name)
	return &generator.SectionResult{
		Section: info.Name,
		Content: "# " + info.Name + "\n\nGenerated body for " + info.Name + ".",
		Sources: []generator.Source{{FileName: "src.md", Score: 0.8}},
	}
}

type stubVerifier struct{ calls int }

func (v *stubVerifier) Verify(ctx context.Context, text, section string, structure *template.Structure, topK int) *verifier.Result {
	v.calls++
	return &verifier.Result{Verified: true, Confidence: 0.9, Report: "ok"}
}

func writeTemplate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "template.md")
	content := "# Methods\n\nProcedure used: {procedure}\n\n# Results\n\nOutcome: {outcome}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestService(t *testing.T, gen SectionGenerator, ver ClaimVerifier) (DocumentService, storage.ReportStore) {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.Migrate(db); err != nil {
		t.Fatal(err)
	}
	reports := storage.NewReportRepo(db)
	return NewDocumentService(gen, ver, reports), reports
}

func TestLoadTemplateReplacesPrevious(t *testing.T) {
	svc, _ := newTestService(t, &stubGenerator{}, nil)

	info, err := svc.LoadTemplate(context.Background(), writeTemplate(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(info.Sections) != 2 {
		t.Fatalf("sections = %v", info.Sections)
	}

	dir := t.TempDir()
	other := filepath.Join(dir, "other.md")
	if err := os.WriteFile(other, []byte("# Appendix\n\nNotes: {notes}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	info, err = svc.LoadTemplate(context.Background(), other)
	if err != nil {
		t.Fatal(err)
	}
	if len(info.Sections) != 1 || info.Sections[0] != "Appendix" {
		t.Errorf("reload did not replace structure: %v", info.Sections)
	}
}

func TestLoadTemplateValidation(t *testing.T) {
	svc, _ := newTestService(t, &stubGenerator{}, nil)
	var vErr *ValidationError
	if _, err := svc.LoadTemplate(context.Background(), ""); !errors.As(err, &vErr) {
		t.Errorf("empty path error = %v", err)
	}
}

func TestTemplateSectionsWithoutTemplate(t *testing.T) {
	svc, _ := newTestService(t, &stubGenerator{}, nil)
	if _, err := svc.TemplateSections(context.Background()); !errors.Is(err, ErrNoTemplate) {
		t.Errorf("err = %v, want ErrNoTemplate", err)
	}
}

func TestGeneratePartialSuccess(t *testing.T) {
	gen := &stubGenerator{}
	svc, _ := newTestService(t, gen, nil)
	if _, err := svc.LoadTemplate(context.Background(), writeTemplate(t)); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.Generate(context.Background(), GenerateRequest{
		Sections: []string{"Methods", "No Such Section At All"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Generated != 1 || resp.Failed != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Sections[1].Error == "" {
		t.Error("failed section carries no error")
	}
	if !strings.Contains(resp.Document, "Generated body for Methods") {
		t.Errorf("document = %q", resp.Document)
	}
}

func TestGenerateAllSectionsByDefault(t *testing.T) {
	gen := &stubGenerator{}
	svc, _ := newTestService(t, gen, nil)
	if _, err := svc.LoadTemplate(context.Background(), writeTemplate(t)); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.Generate(context.Background(), GenerateRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Generated != 2 {
		t.Errorf("generated = %d, want 2", resp.Generated)
	}
	if len(gen.calls) != 2 || gen.calls[0] != "Methods" || gen.calls[1] != "Results" {
		t.Errorf("calls = %v", gen.calls)
	}
}

func TestGenerateWithoutTemplate(t *testing.T) {
	svc, _ := newTestService(t, &stubGenerator{}, nil)
	if _, err := svc.Generate(context.Background(), GenerateRequest{}); !errors.Is(err, ErrNoTemplate) {
		t.Errorf("err = %v, want ErrNoTemplate", err)
	}
}

func TestGenerateVerifiesAndPersists(t *testing.T) {
	ver := &stubVerifier{}
	svc, reports := newTestService(t, &stubGenerator{}, ver)
	if _, err := svc.LoadTemplate(context.Background(), writeTemplate(t)); err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(t.TempDir(), "out", "report.md")
	resp, err := svc.Generate(context.Background(), GenerateRequest{
		Sections:   []string{"Results"},
		Verify:     true,
		OutputPath: outPath,
	})
	if err != nil {
		t.Fatal(err)
	}
	if ver.calls != 1 {
		t.Errorf("verifier called %d times", ver.calls)
	}
	if resp.Sections[0].Verification == nil || !resp.Sections[0].Verification.Verified {
		t.Errorf("verification missing: %+v", resp.Sections[0])
	}

	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("output file not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(outPath), "report.verification.json")); err != nil {
		t.Errorf("verification sidecar not written: %v", err)
	}

	stored, err := reports.ListBySection(context.Background(), "Results")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || !stored[0].Verified {
		t.Errorf("stored reports = %+v", stored)
	}
}
