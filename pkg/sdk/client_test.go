package photodex

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch_SendsQueryAndAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "dogs outdoors" {
			t.Errorf("q = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"url": "https://store/photos/a.jpg", "labels": []string{"dog", "outdoor"}},
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, WithAPIKey("secret"))
	results, err := client.Search(context.Background(), "dogs outdoors")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].URL != "https://store/photos/a.jpg" {
		t.Errorf("url = %q", results[0].URL)
	}
}

func TestSearch_EmptyQuery_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "query must not be empty"}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.Search(context.Background(), "")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Message != "query must not be empty" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestIngestPhoto_PostsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/photos" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["key"] != "dog.jpg" {
			t.Errorf("key = %v", body["key"])
		}
		if body["job_id"] != "job-1" {
			t.Errorf("job_id = %v", body["job_id"])
		}
		_ = json.NewEncoder(w).Encode(IngestStatus{Status: "ok", Message: "indexed photos/dog.jpg"})
	}))
	defer srv.Close()

	client := New(srv.URL)
	status, err := client.IngestPhoto(context.Background(), "photos", "dog.jpg", []string{"pet"}, "job-1")
	if err != nil {
		t.Fatalf("IngestPhoto: %v", err)
	}
	if status.Status != "ok" {
		t.Errorf("status = %q", status.Status)
	}
}

func TestNotifyUpload_PostsRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/events" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body struct {
			Records []UploadRecord `json:"records"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(body.Records) != 1 || body.Records[0].Key != "dog.jpg" {
			t.Errorf("records = %v", body.Records)
		}
		_ = json.NewEncoder(w).Encode(IngestStatus{Status: "ok"})
	}))
	defer srv.Close()

	client := New(srv.URL)
	if _, err := client.NotifyUpload(context.Background(), []UploadRecord{{Bucket: "photos", Key: "dog.jpg"}}, ""); err != nil {
		t.Fatalf("NotifyUpload: %v", err)
	}
}

func TestIngestPhoto_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status": "error", "message": "ingest failed"}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.IngestPhoto(context.Background(), "photos", "x.jpg", nil, "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if apiErr.Message != "ingest failed" {
		t.Errorf("message = %q", apiErr.Message)
	}
}
