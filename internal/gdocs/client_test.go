package gdocs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), discardLogger(),
		option.WithEndpoint(server.URL),
		option.WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestCreateDocument(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/v1/documents") {
			t.Errorf("path = %s, want /v1/documents", r.URL.Path)
		}

		var doc docs.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			t.Fatalf("decode create body: %v", err)
		}
		if doc.Title != "My Plan" {
			t.Errorf("title = %q, want My Plan", doc.Title)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(docs.Document{DocumentId: "doc-1", Title: doc.Title})
	}))

	id, err := client.CreateDocument(context.Background(), "My Plan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "doc-1" {
		t.Errorf("id = %q, want doc-1", id)
	}
}

func TestCreateDocument_APIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    403,
				"message": "quota exceeded",
				"status":  "PERMISSION_DENIED",
			},
		})
	}))

	_, err := client.CreateDocument(context.Background(), "Doomed")
	if err == nil {
		t.Fatal("expected error for rejected create")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error should carry the remote status, got: %v", err)
	}
}

func TestBatchUpdate(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v1/documents/doc-1:batchUpdate") {
			t.Errorf("path = %s, want /v1/documents/doc-1:batchUpdate", r.URL.Path)
		}

		var body docs.BatchUpdateDocumentRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode batch body: %v", err)
		}
		if len(body.Requests) != 2 {
			t.Fatalf("requests = %d, want 2", len(body.Requests))
		}
		if body.Requests[0].InsertText == nil || body.Requests[0].InsertText.Text != "Title\n" {
			t.Errorf("first request = %+v, want insert of Title", body.Requests[0])
		}
		if body.Requests[1].UpdateParagraphStyle == nil {
			t.Errorf("second request = %+v, want paragraph style", body.Requests[1])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(docs.BatchUpdateDocumentResponse{DocumentId: "doc-1"})
	}))

	requests := []*docs.Request{
		{InsertText: &docs.InsertTextRequest{
			EndOfSegmentLocation: &docs.EndOfSegmentLocation{},
			Text:                 "Title\n",
		}},
		{UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
			Range:          &docs.Range{StartIndex: 1, EndIndex: 6},
			ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: "TITLE"},
			Fields:         "namedStyleType",
		}},
	}

	if err := client.BatchUpdate(context.Background(), "doc-1", requests); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBatchUpdate_APIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    400,
				"message": "Invalid requests[0].updateParagraphStyle: range out of bounds",
				"status":  "INVALID_ARGUMENT",
			},
		})
	}))

	err := client.BatchUpdate(context.Background(), "doc-1", []*docs.Request{
		{InsertText: &docs.InsertTextRequest{
			EndOfSegmentLocation: &docs.EndOfSegmentLocation{},
			Text:                 "x\n",
		}},
	})
	if err == nil {
		t.Fatal("expected error for rejected batch")
	}
	if !strings.Contains(err.Error(), "range out of bounds") {
		t.Errorf("error should carry the remote message verbatim, got: %v", err)
	}
}
