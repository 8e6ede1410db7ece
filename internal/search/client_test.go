package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(endpoint string) *Client {
	return NewClient(Config{
		Endpoint:       endpoint,
		APIKey:         "test-key",
		IncludeDomains: []string{".gov.in", ".nic.in", "india.gov.in"},
		ExcludeDomains: []string{"wikipedia.org"},
		MaxResults:     3,
		Timeout:        2 * time.Second,
	})
}

func providerResponse(results ...map[string]string) map[string]any {
	items := make([]map[string]string, 0, len(results))
	items = append(items, results...)
	return map[string]any{"results": items}
}

func TestSearch_SendsProviderContract(t *testing.T) {
	var gotAuth string
	var gotBody request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(providerResponse())
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.Search(context.Background(), "pm kisan installment dates"); err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want bearer key", gotAuth)
	}
	if gotBody.Query != "pm kisan installment dates" {
		t.Errorf("query = %q", gotBody.Query)
	}
	if gotBody.MaxResults != 3 {
		t.Errorf("max_results = %d, want 3", gotBody.MaxResults)
	}
	if len(gotBody.IncludeDomains) == 0 {
		t.Error("include_domains missing from request")
	}
}

func TestSearch_FiltersDisallowedDomains(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(providerResponse(
			map[string]string{"url": "https://pmkisan.gov.in/faq", "title": "PM-KISAN FAQ", "content": "Installments are released three times a year."},
			map[string]string{"url": "https://en.wikipedia.org/wiki/PM-KISAN", "title": "Wikipedia", "content": "Encyclopedia entry."},
			map[string]string{"url": "https://blogspam.example.com/pm-kisan", "title": "Blog", "content": "Unofficial content."},
		))
	}))
	defer srv.Close()

	results, err := newTestClient(srv.URL).Search(context.Background(), "pm kisan")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1 (only the .gov.in hit)", len(results))
	}
	if results[0].URL != "https://pmkisan.gov.in/faq" {
		t.Errorf("kept URL = %q", results[0].URL)
	}
}

func TestSearch_AllResultsFilteredIsEmptyNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(providerResponse(
			map[string]string{"url": "https://quora.example.com/q", "title": "Q", "content": "x"},
		))
	}))
	defer srv.Close()

	results, err := newTestClient(srv.URL).Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestSearch_ProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Search(context.Background(), "anything"); err == nil {
		t.Fatal("Search() error = nil, want status error")
	}
}

func TestSearch_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Search(context.Background(), "anything"); err == nil {
		t.Fatal("Search() error = nil, want decode error")
	}
}

func TestSearch_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server watches the connection and cancels
		// r.Context() when the client gives up; otherwise Close deadlocks.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := newTestClient(srv.URL).Search(ctx, "slow"); err == nil {
		t.Fatal("Search() error = nil, want context deadline error")
	}
}

func TestEnabled(t *testing.T) {
	if NewClient(Config{}).Enabled() {
		t.Error("empty config reports enabled")
	}
	if NewClient(Config{Endpoint: "https://api.example.com"}).Enabled() {
		t.Error("missing API key reports enabled")
	}
	if !newTestClient("https://api.example.com").Enabled() {
		t.Error("configured client reports disabled")
	}
}
