package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/AdeenoAi/fdabc/internal/template"
	"github.com/AdeenoAi/fdabc/internal/vectorstore"
	"github.com/AdeenoAi/fdabc/internal/vectorstore/mocks"
)

type stubEmbedder struct{ err error }

func (s stubEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	vecs := make([][]float32, len(texts))
	for i := range texts {
		vecs[i] = []float32{0.1, 0.2, 0.3}
	}
	return vecs, nil
}

type stubCompleter struct {
	reply string
	err   error
	// last prompt seen, for assertions
	prompt string
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func searchHit(text, fileName string, score float32) vectorstore.SearchResult {
	return vectorstore.SearchResult{
		Score: score,
		Meta:  map[string]any{"text": text, "file_name": fileName},
	}
}

func TestGenerateSectionHappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockVectorStore(ctrl)
	store.EXPECT().Search(gomock.Any(), "docs", gomock.Any(), 3, nil).
		Return([]vectorstore.SearchResult{
			searchHit("Dose Amount: 10 mg given daily to every subject.", "study.md", 0.9),
			searchHit("The cohort tolerated treatment well overall.", "notes.md", 0.7),
		}, nil).AnyTimes()

	completer := &stubCompleter{reply: "The dose was well tolerated across the cohort."}
	e := New(store, stubEmbedder{}, completer, "docs", 3)

	info := template.SectionInfo{
		Found:        true,
		Name:         "Dosing",
		Path:         []string{"Methods", "Dosing"},
		Level:        2,
		Content:      "Dose given: {dose_amount}",
		Placeholders: []template.Field{{Name: "dose_amount", Placeholder: "{dose_amount}"}},
	}

	result := e.GenerateSection(context.Background(), info, Options{})
	if result.Metadata.Degraded {
		t.Fatalf("degraded result: %+v", result.Metadata)
	}
	if !strings.HasPrefix(result.Content, "## Dosing") {
		t.Errorf("heading not prepended: %q", result.Content)
	}
	if !strings.Contains(result.Content, "Dose given: 10 mg given daily to every subject") {
		t.Errorf("field not filled: %q", result.Content)
	}
	if !strings.Contains(result.Content, completer.reply) {
		t.Errorf("generated content missing: %q", result.Content)
	}
	if len(result.Metadata.FilledFields) != 1 || result.Metadata.FilledFields[0] != "dose_amount" {
		t.Errorf("filled fields = %v", result.Metadata.FilledFields)
	}
	if len(result.Sources) != 2 {
		t.Errorf("sources = %+v", result.Sources)
	}
	if !strings.Contains(completer.prompt, "Do not add any markdown tables") {
		t.Errorf("tableless section missing the no-table instruction:\n%s", completer.prompt)
	}
}

func TestGenerateSectionDegradesOnCompletionFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockVectorStore(ctrl)
	store.EXPECT().Search(gomock.Any(), "docs", gomock.Any(), gomock.Any(), nil).
		Return([]vectorstore.SearchResult{searchHit("Some passage text here.", "a.md", 0.5)}, nil).AnyTimes()

	completer := &stubCompleter{err: errors.New("connection refused")}
	e := New(store, stubEmbedder{}, completer, "docs", 5)

	info := template.SectionInfo{Found: true, Name: "Results", Path: []string{"Results"}, Level: 1, Content: "Body."}
	result := e.GenerateSection(context.Background(), info, Options{})
	if !result.Metadata.Degraded {
		t.Fatal("completion failure did not mark result degraded")
	}
	if !strings.Contains(result.Content, "[content unavailable") {
		t.Errorf("placeholder marker missing: %q", result.Content)
	}
	if !strings.HasPrefix(result.Content, "# Results") {
		t.Errorf("degraded content lost its heading: %q", result.Content)
	}
}

func TestGenerateSectionDegradesOnRetrievalFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockVectorStore(ctrl)

	e := New(store, stubEmbedder{err: errors.New("embedding service down")}, &stubCompleter{}, "docs", 5)

	info := template.SectionInfo{Found: true, Name: "Methods", Path: []string{"Methods"}, Level: 1}
	result := e.GenerateSection(context.Background(), info, Options{})
	if !result.Metadata.Degraded {
		t.Fatal("retrieval failure did not mark result degraded")
	}
	if !strings.Contains(result.Content, "retrieval backend unavailable") {
		t.Errorf("degraded reason missing: %q", result.Content)
	}
}

func TestGenerateSectionEnforcesTemplateTableCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockVectorStore(ctrl)
	store.EXPECT().Search(gomock.Any(), "docs", gomock.Any(), gomock.Any(), nil).
		Return([]vectorstore.SearchResult{searchHit("Subject counts per arm were recorded.", "a.md", 0.6)}, nil).AnyTimes()

	// Model emits two tables where the template declares one.
	reply := "Narrative text.\n\n" +
		"| Arm | Subjects |\n|-----|----------|\n| A | 21 |\n\n" +
		"| Unrelated | Extra |\n|-----------|-------|\n| x | y |\n"
	e := New(store, stubEmbedder{}, &stubCompleter{reply: reply}, "docs", 5)

	info := template.SectionInfo{
		Found:   true,
		Name:    "Enrollment",
		Path:    []string{"Enrollment"},
		Level:   1,
		Content: "Counts below.",
		Tables:  []template.TableSpec{{Headers: []string{"Arm", "Subjects"}}},
	}

	result := e.GenerateSection(context.Background(), info, Options{})
	if got := strings.Count(result.Content, "| Arm | Subjects |"); got != 1 {
		t.Errorf("declared table appears %d times: %q", got, result.Content)
	}
	if strings.Contains(result.Content, "Unrelated") {
		t.Errorf("extra table survived enforcement: %q", result.Content)
	}
}

func TestGenerateSectionDetailedStyleAppendsSources(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockVectorStore(ctrl)
	store.EXPECT().Search(gomock.Any(), "docs", gomock.Any(), gomock.Any(), nil).
		Return([]vectorstore.SearchResult{searchHit("Relevant passage content.", "source.md", 0.8)}, nil).AnyTimes()

	e := New(store, stubEmbedder{}, &stubCompleter{reply: "Generated body."}, "docs", 5)
	info := template.SectionInfo{Found: true, Name: "Summary", Path: []string{"Summary"}, Level: 1, Content: "Body."}

	result := e.GenerateSection(context.Background(), info, Options{Style: StyleDetailed})
	if !strings.Contains(result.Content, "**Sources:**") || !strings.Contains(result.Content, "source.md") {
		t.Errorf("sources footer missing: %q", result.Content)
	}
}

func TestGenerateSectionConciseStyleDropsRepeatedSentences(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockVectorStore(ctrl)
	store.EXPECT().Search(gomock.Any(), "docs", gomock.Any(), gomock.Any(), nil).
		Return([]vectorstore.SearchResult{searchHit("Relevant passage content.", "a.md", 0.8)}, nil).AnyTimes()

	repeated := "The treatment effect was consistent across all measured endpoints and cohorts"
	e := New(store, stubEmbedder{}, &stubCompleter{reply: "An opening remark. " + repeated + " in phase one. " + repeated + " in phase two. A distinct closing remark."}, "docs", 5)
	info := template.SectionInfo{Found: true, Name: "Findings", Path: []string{"Findings"}, Level: 1, Content: "Body."}

	result := e.GenerateSection(context.Background(), info, Options{Style: StyleConcise})
	if got := strings.Count(result.Content, repeated); got != 1 {
		t.Errorf("repeated sentence appears %d times: %q", got, result.Content)
	}
	if !strings.Contains(result.Content, "A distinct closing remark") {
		t.Errorf("distinct sentence dropped: %q", result.Content)
	}
}

func TestGenerateDocumentJoinsSections(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockVectorStore(ctrl)
	store.EXPECT().Search(gomock.Any(), "docs", gomock.Any(), gomock.Any(), nil).
		Return([]vectorstore.SearchResult{searchHit("Passage.", "a.md", 0.5)}, nil).AnyTimes()

	e := New(store, stubEmbedder{}, &stubCompleter{reply: "Body text."}, "docs", 5)
	sections := []template.SectionInfo{
		{Found: true, Name: "One", Path: []string{"One"}, Level: 1, Content: "A."},
		{Found: true, Name: "Two", Path: []string{"Two"}, Level: 1, Content: "B."},
	}

	doc, results := e.GenerateDocument(context.Background(), sections, Options{})
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if !strings.Contains(doc, "# One") || !strings.Contains(doc, "# Two") {
		t.Errorf("document missing section headings: %q", doc)
	}
	if strings.Index(doc, "# One") > strings.Index(doc, "# Two") {
		t.Error("sections out of order")
	}
}
