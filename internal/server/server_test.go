package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/career-assistant/internal/llm"
	"github.com/jonathan/career-assistant/internal/prompt"
	"github.com/jonathan/career-assistant/internal/types"
)

// fakeGenerator returns a canned document without touching the network.
type fakeGenerator struct {
	response string
	err      error
	calls    int
}

func (f *fakeGenerator) Generate(_ context.Context, _ *types.GenerationRequest) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// newTestServer builds a server with a fake generator and no middleware.
func newTestServer(gen *fakeGenerator) *Server {
	return &Server{
		sessions:  newSessionRegistry(),
		builder:   prompt.NewBuilder(),
		generator: gen,
	}
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
	return resp
}

// createSession creates a session over the API and returns its ID.
func createSession(t *testing.T, handler http.Handler) string {
	t.Helper()
	w := doJSON(t, handler, http.MethodPost, "/sessions", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	id, ok := resp["session_id"].(string)
	if !ok || id == "" {
		t.Fatalf("expected session_id in response, got %v", resp)
	}
	return id
}

func TestNew_AppliesResumeCharCap(t *testing.T) {
	srv, err := New(Config{Port: 0, Generator: &fakeGenerator{}, ResumeCharCap: 1234})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	defer srv.rateLimiter.Stop()

	if srv.builder.ResumeCharCap != 1234 {
		t.Errorf("expected configured resume cap 1234, got %d", srv.builder.ResumeCharCap)
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(&fakeGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	resp := decodeBody(t, w)
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %v", resp["status"])
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(&fakeGenerator{})
	handler := s.routes()

	id := createSession(t, handler)

	// Fresh session snapshot is empty but well-formed.
	w := doJSON(t, handler, http.MethodGet, "/sessions/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var snap types.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("failed to parse snapshot: %v", err)
	}
	if snap.Resume.RawText != "" || snap.Job.Description != "" {
		t.Error("expected empty contexts in a fresh session")
	}

	// Delete, then the session is gone.
	w = doJSON(t, handler, http.MethodDelete, "/sessions/"+id, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", w.Code)
	}
	w = doJSON(t, handler, http.MethodGet, "/sessions/"+id, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 after delete, got %d", w.Code)
	}
}

func TestGetSession_Unknown(t *testing.T) {
	s := newTestServer(&fakeGenerator{})

	w := doJSON(t, s.routes(), http.MethodGet, "/sessions/no-such-id", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestSetPersonal(t *testing.T) {
	s := newTestServer(&fakeGenerator{})
	handler := s.routes()
	id := createSession(t, handler)

	w := doJSON(t, handler, http.MethodPut, "/sessions/"+id+"/personal", map[string]any{
		"full_name": "Jordan Avery",
		"email":     "jordan@example.com",
		"phone":     "555-0100",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, handler, http.MethodGet, "/sessions/"+id, nil)
	var snap types.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("failed to parse snapshot: %v", err)
	}
	if snap.Personal.FullName != "Jordan Avery" {
		t.Errorf("expected full name persisted, got %q", snap.Personal.FullName)
	}
}

func TestSetPersonal_InvalidEmail(t *testing.T) {
	s := newTestServer(&fakeGenerator{})
	handler := s.routes()
	id := createSession(t, handler)

	w := doJSON(t, handler, http.MethodPut, "/sessions/"+id+"/personal", map[string]any{
		"full_name": "Jordan Avery",
		"email":     "not-an-email",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestSetJob_Description(t *testing.T) {
	s := newTestServer(&fakeGenerator{})
	handler := s.routes()
	id := createSession(t, handler)

	w := doJSON(t, handler, http.MethodPut, "/sessions/"+id+"/job", map[string]any{
		"description": "We are hiring a Data Analyst with Python and SQL experience.",
		"title":       "Data Analyst",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, handler, http.MethodGet, "/sessions/"+id, nil)
	var snap types.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("failed to parse snapshot: %v", err)
	}
	if snap.Job.Title != "Data Analyst" {
		t.Errorf("expected job title persisted, got %q", snap.Job.Title)
	}
	if len(snap.Job.RequiredTechnologies) == 0 {
		t.Error("expected derived technologies from job description")
	}
}

func TestSetJob_MissingBoth(t *testing.T) {
	s := newTestServer(&fakeGenerator{})
	handler := s.routes()
	id := createSession(t, handler)

	w := doJSON(t, handler, http.MethodPut, "/sessions/"+id+"/job", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestSetResume_Text(t *testing.T) {
	s := newTestServer(&fakeGenerator{})
	handler := s.routes()
	id := createSession(t, handler)

	w := doJSON(t, handler, http.MethodPut, "/sessions/"+id+"/resume", map[string]any{
		"text": "Skills: Python, SQL, Tableau\nExperience: built dashboards.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	if resp["chars"].(float64) == 0 {
		t.Error("expected non-zero chars in response")
	}
}

func TestSetResume_Document(t *testing.T) {
	s := newTestServer(&fakeGenerator{})
	handler := s.routes()
	id := createSession(t, handler)

	text := "Skills: Go, Kubernetes"
	w := doJSON(t, handler, http.MethodPut, "/sessions/"+id+"/resume", map[string]any{
		"data":   base64.StdEncoding.EncodeToString([]byte(text)),
		"format": "txt",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, handler, http.MethodGet, "/sessions/"+id, nil)
	var snap types.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("failed to parse snapshot: %v", err)
	}
	if snap.Resume.RawText != text {
		t.Errorf("expected extracted resume text %q, got %q", text, snap.Resume.RawText)
	}
}

func TestSetResume_BadFormat(t *testing.T) {
	s := newTestServer(&fakeGenerator{})
	handler := s.routes()
	id := createSession(t, handler)

	w := doJSON(t, handler, http.MethodPut, "/sessions/"+id+"/resume", map[string]any{
		"data":   base64.StdEncoding.EncodeToString([]byte("hello")),
		"format": "odt",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

// seedSession fills a session with enough context for generation.
func seedSession(t *testing.T, handler http.Handler) string {
	t.Helper()
	id := createSession(t, handler)

	w := doJSON(t, handler, http.MethodPut, "/sessions/"+id+"/personal", map[string]any{
		"full_name": "Jordan Avery",
		"email":     "jordan@example.com",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("failed to seed personal details: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, handler, http.MethodPut, "/sessions/"+id+"/job", map[string]any{
		"description": "Hiring a Data Analyst. Requirements: Python, SQL, Tableau.",
		"title":       "Data Analyst",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("failed to seed job: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, handler, http.MethodPut, "/sessions/"+id+"/resume", map[string]any{
		"text": "Skills: Python, SQL, Tableau\nBuilt reporting dashboards for finance teams.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("failed to seed resume: %d %s", w.Code, w.Body.String())
	}
	return id
}

func TestGenerate_Success(t *testing.T) {
	gen := &fakeGenerator{response: "Dear Hiring Manager,\n\nI am excited to apply.\n\nBest regards,\nJordan Avery"}
	s := newTestServer(gen)
	handler := s.routes()
	id := seedSession(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/sessions/"+id+"/generate", map[string]any{
		"kind": "email",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result types.GenerationResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse result: %v", err)
	}
	if result.Kind != types.KindEmail {
		t.Errorf("expected kind email, got %q", result.Kind)
	}
	if result.NormalizedText == "" {
		t.Error("expected normalized text in result")
	}
	if gen.calls != 1 {
		t.Errorf("expected 1 generator call, got %d", gen.calls)
	}
}

func TestGenerate_UnknownKind(t *testing.T) {
	s := newTestServer(&fakeGenerator{})
	handler := s.routes()
	id := seedSession(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/sessions/"+id+"/generate", map[string]any{
		"kind": "sonnet",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestGenerate_MissingContext(t *testing.T) {
	gen := &fakeGenerator{response: "text"}
	s := newTestServer(gen)
	handler := s.routes()
	id := createSession(t, handler) // no job or resume seeded

	w := doJSON(t, handler, http.MethodPost, "/sessions/"+id+"/generate", map[string]any{
		"kind": "email",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	if resp["stage"] != string(types.StageBuild) {
		t.Errorf("expected build stage in error, got %v", resp["stage"])
	}
	if gen.calls != 0 {
		t.Errorf("expected generator not called, got %d calls", gen.calls)
	}
}

func TestGenerate_UpstreamTimeout(t *testing.T) {
	gen := &fakeGenerator{err: &llm.TimeoutError{}}
	s := newTestServer(gen)
	handler := s.routes()
	id := seedSession(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/sessions/"+id+"/generate", map[string]any{
		"kind": "cover_letter",
	})
	if w.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected status 504, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeBody(t, w)
	if resp["stage"] != string(types.StageGenerate) {
		t.Errorf("expected generate stage in error, got %v", resp["stage"])
	}
}

func TestSend_MissingFields(t *testing.T) {
	s := newTestServer(&fakeGenerator{})
	handler := s.routes()
	id := createSession(t, handler)

	w := doJSON(t, handler, http.MethodPost, "/sessions/"+id+"/send", map[string]any{
		"from": "someone@gmail.com",
		"to":   "hr@example.com",
		// app_password and text omitted
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestSend_UnknownSession(t *testing.T) {
	s := newTestServer(&fakeGenerator{})

	w := doJSON(t, s.routes(), http.MethodPost, "/sessions/missing/send", map[string]any{
		"from":         "someone@gmail.com",
		"app_password": "secret",
		"to":           "hr@example.com",
		"text":         "Subject: Hello\n\nBody",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
