package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yumyai/admixmap/pkg/handler/request"
)

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rr := httptest.NewRecorder()

	HealthCheck(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Health != "ok" {
		t.Errorf("health = %q", resp.Health)
	}
}

func TestModelsHandler(t *testing.T) {
	app := newTestApp(t)
	router := NewRouter(app, "")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/models", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp request.ModelsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Models) != 5 {
		t.Fatalf("expected 5 models, got %d", len(resp.Models))
	}
	k2 := resp.Models[0]
	if k2.ID != "K2" || k2.ComponentCount != 2 {
		t.Errorf("unexpected first model %+v", k2)
	}
	if strings.Join(k2.Components, ",") != "African,European" {
		t.Errorf("K2 components = %v", k2.Components)
	}
}

func TestRouter(t *testing.T) {
	static := t.TempDir()
	if err := os.WriteFile(filepath.Join(static, "style.css"), []byte("body {}"), 0o644); err != nil {
		t.Fatalf("write css: %v", err)
	}
	router := NewRouter(newTestApp(t), static)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/favicon.ico", http.StatusNotFound},
		{http.MethodGet, "/static/style.css", http.StatusOK},
		{http.MethodGet, "/admixture/process", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nowhere", http.StatusNotFound},
	}

	for _, tt := range tests {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
		if rr.Code != tt.want {
			t.Errorf("%s %s: expected %d, got %d", tt.method, tt.path, tt.want, rr.Code)
		}
	}
}

func TestIndexPageListsCalculators(t *testing.T) {
	app := newTestApp(t)
	rr := httptest.NewRecorder()

	app.IndexPage(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rr.Body.String()
	for _, want := range []string{`<option value="K36">`, "K15 - Advanced model (15 components)", `action="/admixture/analysis"`} {
		if !strings.Contains(body, want) {
			t.Errorf("index page does not contain %q", want)
		}
	}
}
