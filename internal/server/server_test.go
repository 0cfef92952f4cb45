package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tobim/smartgraph/pkg/store"
)

const testDiagram = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
	`<dgm:dataModel xmlns:dgm="http://schemas.openxmlformats.org/drawingml/2006/diagram" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><dgm:ptLst><dgm:pt modelId="{11111111-1111-1111-1111-111111111111}" type="doc"/><dgm:pt modelId="{22222222-2222-2222-2222-222222222222}"/></dgm:ptLst><dgm:cxnLst><dgm:cxn modelId="{33333333-3333-3333-3333-333333333333}" id="1" srcId="{11111111-1111-1111-1111-111111111111}" destId="{22222222-2222-2222-2222-222222222222}" srcOrd="0" destOrd="0"/></dgm:cxnLst></dgm:dataModel>`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Options{Store: store.NewMemoryStore()})
}

func putDiagram(t *testing.T, s *Server, name string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/diagrams/"+name, strings.NewReader(testDiagram))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("put %s: status %d, body %s", name, rec.Code, rec.Body.String())
	}
}

func do(s *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, r)
	return rec
}

func errCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Code
}

func TestListEmpty(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, http.MethodGet, "/diagrams/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var body struct {
		Diagrams []string `json:"diagrams"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Diagrams == nil || len(body.Diagrams) != 0 {
		t.Errorf("diagrams = %v, want empty list", body.Diagrams)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestServer(t)
	putDiagram(t, s, "org-chart")

	rec := do(s, http.MethodGet, "/diagrams/org-chart", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.String() != testDiagram {
		t.Error("returned blob differs from stored blob")
	}

	rec = do(s, http.MethodGet, "/diagrams/", nil)
	var body struct {
		Diagrams []string `json:"diagrams"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Diagrams) != 1 || body.Diagrams[0] != "org-chart" {
		t.Errorf("diagrams = %v", body.Diagrams)
	}
}

func TestPutRejectsMalformedDocument(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, http.MethodPut, "/diagrams/bad", []byte("<dgm:dataModel"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	if code := errCode(t, rec); code != "INVALID_FORMAT" {
		t.Errorf("code = %q, want INVALID_FORMAT", code)
	}
}

func TestPutRejectsBadName(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, http.MethodPut, "/diagrams/bad*name", []byte(testDiagram))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	if code := errCode(t, rec); code != "INVALID_NAME" {
		t.Errorf("code = %q, want INVALID_NAME", code)
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, http.MethodGet, "/diagrams/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
	if code := errCode(t, rec); code != "NOT_FOUND" {
		t.Errorf("code = %q, want NOT_FOUND", code)
	}
}

func TestAddNode(t *testing.T) {
	s := newTestServer(t)
	putDiagram(t, s, "d")

	rec := do(s, http.MethodPost, "/diagrams/d/nodes", []byte(`{"text":"hello"}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	var body struct {
		ID    string `json:"id"`
		Index int    `json:"index"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.ID == "" {
		t.Error("created node has no id")
	}
	if body.Index != 1 {
		t.Errorf("index = %d, want 1", body.Index)
	}

	rec = do(s, http.MethodGet, "/diagrams/d", nil)
	if !strings.Contains(rec.Body.String(), "hello") {
		t.Error("stored document does not contain new node text")
	}
}

func TestAddNodeUnderOutOfRange(t *testing.T) {
	s := newTestServer(t)
	putDiagram(t, s, "d")

	rec := do(s, http.MethodPost, "/diagrams/d/nodes", []byte(`{"text":"x","parent":"under","under":5}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	if code := errCode(t, rec); code != "INDEX_OUT_OF_RANGE" {
		t.Errorf("code = %q, want INDEX_OUT_OF_RANGE", code)
	}
}

func TestAddNodeUnknownParent(t *testing.T) {
	s := newTestServer(t)
	putDiagram(t, s, "d")

	rec := do(s, http.MethodPost, "/diagrams/d/nodes", []byte(`{"text":"x","parent":"above"}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestRemoveNode(t *testing.T) {
	s := newTestServer(t)
	putDiagram(t, s, "d")

	rec := do(s, http.MethodDelete, "/diagrams/d/nodes/0", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = do(s, http.MethodDelete, "/diagrams/d/nodes/0", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second delete status %d, want 400", rec.Code)
	}
	if code := errCode(t, rec); code != "INDEX_OUT_OF_RANGE" {
		t.Errorf("code = %q, want INDEX_OUT_OF_RANGE", code)
	}
}

func TestRemoveNodeBadIndex(t *testing.T) {
	s := newTestServer(t)
	putDiagram(t, s, "d")

	rec := do(s, http.MethodDelete, "/diagrams/d/nodes/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
	if code := errCode(t, rec); code != "INVALID_INPUT" {
		t.Errorf("code = %q, want INVALID_INPUT", code)
	}
}

func TestDeleteDiagram(t *testing.T) {
	s := newTestServer(t)
	putDiagram(t, s, "d")

	rec := do(s, http.MethodDelete, "/diagrams/d", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status %d", rec.Code)
	}
	rec = do(s, http.MethodGet, "/diagrams/d", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}

func TestRenderSVG(t *testing.T) {
	s := newTestServer(t)
	putDiagram(t, s, "d")

	rec := do(s, http.MethodGet, "/diagrams/d/render.svg", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("body is not svg")
	}
}
