package server

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ha1tch/orbview/pkg/session"
)

func TestListSessions(t *testing.T) {
	srv, st := testServer(t)

	// Explicit timestamps pin the list order
	for i, name := range []string{"Reading list", "Paper drafts"} {
		ent := session.Entity{DisplayName: name, CreatedAt: int64(1000 + i)}
		if _, err := st.Add(ent); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	req := httptest.NewRequest("GET", "/api/sessions", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		Count    int              `json:"count"`
		Sessions []session.Entity `json:"sessions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Count != 2 || len(body.Sessions) != 2 {
		t.Fatalf("count = %d with %d sessions, want 2", body.Count, len(body.Sessions))
	}
	if body.Sessions[0].DisplayName != "Reading list" {
		t.Errorf("first session = %q, want insertion order kept", body.Sessions[0].DisplayName)
	}

	// The wire contract uses the external field names
	if !strings.Contains(w.Body.String(), `"displayName"`) {
		t.Error("response body missing the displayName wire key")
	}
	if !strings.Contains(w.Body.String(), `"createdTimestamp"`) {
		t.Error("response body missing the createdTimestamp wire key")
	}
}

func TestAddSession(t *testing.T) {
	srv, st := testServer(t)

	payload := `{"displayName": "Reading list", "nodeCount": 4, "stats": {"documents": 2}}`
	req := httptest.NewRequest("POST", "/api/sessions", strings.NewReader(payload))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var created session.Entity
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if created.ID == "" {
		t.Error("created session has no id")
	}
	if created.Stats.Documents != 2 {
		t.Errorf("stats.documents = %d, want 2", created.Stats.Documents)
	}

	count, err := st.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("store holds %d sessions, want 1", count)
	}
}

func TestAddSessionRejectsBadInput(t *testing.T) {
	srv, _ := testServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"displayName": `},
		{"missing name", `{"nodeCount": 4}`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("POST", "/api/sessions", strings.NewReader(tc.body))
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", tc.name, w.Code, http.StatusBadRequest)
		}
	}
}

func TestRemoveSession(t *testing.T) {
	srv, st := testServer(t)

	ent, err := st.Add(session.Entity{DisplayName: "Reading list"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	req := httptest.NewRequest("DELETE", "/api/sessions/"+ent.ID, nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	count, err := st.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("store holds %d sessions after delete, want 0", count)
	}

	// Deleting again is a 404
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/sessions/"+ent.ID, nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestSnapshotPNG(t *testing.T) {
	srv, st := testServer(t)
	if _, err := session.Seed(st, 3, 7); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/snapshot.png?width=200&height=150&scale=1&steps=20", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}

	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 200 || b.Dy() != 150 {
		t.Errorf("snapshot %dx%d, want 200x150", b.Dx(), b.Dy())
	}
}

func TestSnapshotSVG(t *testing.T) {
	srv, st := testServer(t)
	if _, err := session.Seed(st, 2, 7); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/snapshot.svg?width=200&height=150&steps=10", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q, want image/svg+xml", ct)
	}
	if !strings.Contains(w.Body.String(), "<svg") {
		t.Error("body is not an svg document")
	}
}

func TestSnapshotParamBounds(t *testing.T) {
	srv, _ := testServer(t)

	bad := []string{
		"/api/snapshot.png?scale=20",
		"/api/snapshot.png?scale=0.5",
		"/api/snapshot.png?steps=99999",
		"/api/snapshot.png?steps=-1",
		"/api/snapshot.png?width=0",
		"/api/snapshot.png?width=html",
		"/api/snapshot.png?height=5000",
		"/api/snapshot.svg?width=8",
	}
	for _, path := range bad {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", path, w.Code, http.StatusBadRequest)
		}
	}
}
