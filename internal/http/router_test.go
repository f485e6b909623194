package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/AdeenoAi/fdabc/internal/contextutil"
	"github.com/AdeenoAi/fdabc/internal/service"
	servicemocks "github.com/AdeenoAi/fdabc/internal/service/mocks"
	"github.com/AdeenoAi/fdabc/internal/vectorstore"
	storemocks "github.com/AdeenoAi/fdabc/internal/vectorstore/mocks"
)

func testDeps(t *testing.T) *Deps {
	t.Helper()
	ctrl := gomock.NewController(t)
	documents := servicemocks.NewMockDocumentService(ctrl)
	documents.EXPECT().TemplateSections(gomock.Any()).
		Return(&service.TemplateInfo{Sections: []string{"Methods"}}, nil).AnyTimes()
	store := storemocks.NewMockVectorStore(ctrl)
	store.EXPECT().GetCollectionInfo(gomock.Any(), "docs").
		Return(&vectorstore.CollectionInfo{Status: "green"}, nil).AnyTimes()
	return &Deps{Documents: documents, Store: store, Collection: "docs"}
}

func TestRouterRoutes(t *testing.T) {
	router := NewRouter(testDeps(t))

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/api/template/sections", http.StatusOK},
		{http.MethodGet, "/api/missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != tt.wantStatus {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, w.Code, tt.wantStatus)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	router := NewRouter(testDeps(t))

	req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow-origin = %q", got)
	}
}

func TestLoggerMiddlewareInjectsLogger(t *testing.T) {
	var sawLogger bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawLogger = r.Context().Value(contextutil.LoggerKey()) != nil
		w.WriteHeader(http.StatusOK)
	})
	LoggerMiddleware(inner).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !sawLogger {
		t.Error("logger not present in request context")
	}
}
