package source

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/boothlab/photowall/internal/media"
)

func testServer(t *testing.T) (*Server, *Store) {
	t.Helper()
	store := NewStore(t.TempDir())
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	return NewServer(store, zap.NewNop().Sugar()), store
}

func TestListRecordsEndpoint(t *testing.T) {
	srv, store := testServer(t)
	if _, err := store.Add("astronaut", "http://img/1", "", media.KindImage, "gala"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Add("pirate", "", "", media.KindImage, "other"); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/records?event=gala", nil)
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Items []media.Record `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].ConceptName != "astronaut" {
		t.Fatalf("unexpected items: %+v", body.Items)
	}
}

func TestCreateRecordEndpoint(t *testing.T) {
	srv, store := testServer(t)

	payload := `{"conceptName":"astronaut","imageUrl":"http://img/1","kind":"image","event":"gala"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created media.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.Kind != media.KindImage {
		t.Fatalf("bad created record: %+v", created)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 stored record, got %d", store.Len())
	}
}

func TestCreateRecordValidation(t *testing.T) {
	srv, _ := testServer(t)

	tests := []struct {
		name    string
		payload string
	}{
		{"missing concept", `{"imageUrl":"http://img/1"}`},
		{"bad kind", `{"conceptName":"x","kind":"hologram"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader(tt.payload))
			req.Header.Set("Content-Type", "application/json")
			srv.Router().ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestDeleteRecordEndpoint(t *testing.T) {
	srv, store := testServer(t)
	created, err := store.Add("astronaut", "", "", media.KindImage, "")
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/records/"+created.ID, nil)
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/records/"+created.ID, nil)
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on double delete, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := testServer(t)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
