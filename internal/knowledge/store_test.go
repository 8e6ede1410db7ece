package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"github.com/jackc/pgx/v5/pgtype"
)

// mockEmbedder implements ai.Embedder for testing.
type mockEmbedder struct {
	delay         time.Duration
	embedErr      error
	returnEmpty   bool
	embeddings    []float32
	callCount     int
	lastInputText string
}

func (m *mockEmbedder) Name() string { return "mock-embedder" }

func (m *mockEmbedder) Register(r api.Registry) {}

func (m *mockEmbedder) Embed(ctx context.Context, req *ai.EmbedRequest) (*ai.EmbedResponse, error) {
	m.callCount++
	if len(req.Input) > 0 && len(req.Input[0].Content) > 0 {
		m.lastInputText = req.Input[0].Content[0].Text
	}

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if m.returnEmpty {
		return &ai.EmbedResponse{Embeddings: []*ai.Embedding{{Embedding: []float32{}}}}, nil
	}

	embeddings := m.embeddings
	if embeddings == nil {
		embeddings = []float32{0.1, 0.2, 0.3}
	}
	return &ai.EmbedResponse{Embeddings: []*ai.Embedding{{Embedding: embeddings}}}, nil
}

// mockQuerier implements Querier for testing.
type mockQuerier struct {
	upsertErr error
	searchErr error
	countErr  error

	searchResults []SearchDocumentsRow
	countResult   int64

	upsertCalls      int
	searchCalls      int
	searchAllCalls   int
	lastUpsertParams UpsertDocumentParams
	lastSearchParams SearchDocumentsParams
}

func (m *mockQuerier) UpsertDocument(ctx context.Context, arg UpsertDocumentParams) error {
	m.upsertCalls++
	m.lastUpsertParams = arg
	return m.upsertErr
}

func (m *mockQuerier) SearchDocuments(ctx context.Context, arg SearchDocumentsParams) ([]SearchDocumentsRow, error) {
	m.searchCalls++
	m.lastSearchParams = arg
	return m.searchResults, m.searchErr
}

func (m *mockQuerier) SearchDocumentsAll(ctx context.Context, arg SearchDocumentsParams) ([]SearchDocumentsRow, error) {
	m.searchAllCalls++
	m.lastSearchParams = arg
	return m.searchResults, m.searchErr
}

func (m *mockQuerier) CountDocuments(ctx context.Context) (int64, error) {
	return m.countResult, m.countErr
}

func searchRow(id, content string, similarity float32) SearchDocumentsRow {
	metadata, _ := json.Marshal(map[string]string{"source_type": SourceTypeScheme, "scheme": id})
	return SearchDocumentsRow{
		ID:         id,
		Content:    content,
		Metadata:   metadata,
		CreatedAt:  pgtype.Timestamptz{Time: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Valid: true},
		Similarity: similarity,
	}
}

func TestStore_Add(t *testing.T) {
	querier := &mockQuerier{}
	embedder := &mockEmbedder{}
	store := New(querier, embedder, nil)

	doc := Document{
		ID:       "pm-kisan",
		Content:  "PM-KISAN provides income support to farmers.",
		Metadata: map[string]string{"source_type": SourceTypeScheme},
	}
	if err := store.Add(context.Background(), doc); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if querier.upsertCalls != 1 {
		t.Errorf("upsert calls = %d, want 1", querier.upsertCalls)
	}
	if querier.lastUpsertParams.ID != "pm-kisan" {
		t.Errorf("upsert ID = %q, want pm-kisan", querier.lastUpsertParams.ID)
	}
	if querier.lastUpsertParams.Embedding == nil {
		t.Error("upsert embedding is nil")
	}
	if embedder.lastInputText != doc.Content {
		t.Errorf("embedded text = %q, want document content", embedder.lastInputText)
	}
}

func TestStore_Add_EmbedderError(t *testing.T) {
	querier := &mockQuerier{}
	embedder := &mockEmbedder{embedErr: errors.New("model unavailable")}
	store := New(querier, embedder, nil)

	err := store.Add(context.Background(), Document{ID: "x", Content: "y"})
	if err == nil {
		t.Fatal("Add() error = nil, want embed failure")
	}
	if querier.upsertCalls != 0 {
		t.Error("upsert called despite embed failure")
	}
}

func TestStore_Add_EmptyEmbedding(t *testing.T) {
	store := New(&mockQuerier{}, &mockEmbedder{returnEmpty: true}, nil)
	if err := store.Add(context.Background(), Document{ID: "x", Content: "y"}); err == nil {
		t.Fatal("Add() error = nil, want empty-embedding failure")
	}
}

func TestStore_Search(t *testing.T) {
	querier := &mockQuerier{
		searchResults: []SearchDocumentsRow{
			searchRow("pm-kisan", "PM-KISAN provides income support.", 0.91),
			searchRow("pension", "Pension schemes for the elderly.", 0.42),
		},
	}
	embedder := &mockEmbedder{}
	store := New(querier, embedder, nil)

	results, err := store.Search(context.Background(), "pm kisan eligibility", WithTopK(3))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if querier.searchAllCalls != 1 {
		t.Errorf("unfiltered search calls = %d, want 1", querier.searchAllCalls)
	}
	if querier.lastSearchParams.ResultLimit != 3 {
		t.Errorf("result limit = %d, want 3", querier.lastSearchParams.ResultLimit)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Document.ID != "pm-kisan" || results[0].Similarity != 0.91 {
		t.Errorf("first result = %+v, want pm-kisan with similarity 0.91", results[0])
	}
	if results[0].Document.Metadata["scheme"] != "pm-kisan" {
		t.Errorf("metadata = %v, want scheme entry", results[0].Document.Metadata)
	}
	if embedder.lastInputText != "pm kisan eligibility" {
		t.Errorf("embedded query = %q", embedder.lastInputText)
	}
}

func TestStore_Search_WithFilter(t *testing.T) {
	querier := &mockQuerier{}
	store := New(querier, &mockEmbedder{}, nil)

	_, err := store.Search(context.Background(), "pension age limit",
		WithFilter("source_type", SourceTypeScheme))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if querier.searchCalls != 1 {
		t.Fatalf("filtered search calls = %d, want 1", querier.searchCalls)
	}
	var filter map[string]string
	if err := json.Unmarshal(querier.lastSearchParams.FilterMetadata, &filter); err != nil {
		t.Fatalf("filter is not valid JSON: %v", err)
	}
	if filter["source_type"] != SourceTypeScheme {
		t.Errorf("filter = %v, want source_type=scheme", filter)
	}
}

func TestStore_Search_EmbedTimeout(t *testing.T) {
	embedder := &mockEmbedder{delay: 200 * time.Millisecond}
	store := New(&mockQuerier{}, embedder, nil)

	_, err := store.Search(context.Background(), "slow query", WithTimeout(20*time.Millisecond))
	if err == nil {
		t.Fatal("Search() error = nil, want timeout")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want deadline exceeded", err)
	}
}

func TestStore_Search_QuerierError(t *testing.T) {
	querier := &mockQuerier{searchErr: errors.New("connection refused")}
	store := New(querier, &mockEmbedder{}, nil)

	if _, err := store.Search(context.Background(), "anything"); err == nil {
		t.Fatal("Search() error = nil, want querier failure")
	}
}

func TestStore_Search_ClampsNegativeSimilarity(t *testing.T) {
	querier := &mockQuerier{
		searchResults: []SearchDocumentsRow{
			searchRow("pm-kisan", "PM-KISAN overview.", -0.25),
		},
	}
	store := New(querier, &mockEmbedder{}, nil)

	results, err := store.Search(context.Background(), "unrelated")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].Similarity != 0 {
		t.Errorf("similarity = %v, want 0 (clamped)", results[0].Similarity)
	}
}

func TestStore_Count(t *testing.T) {
	store := New(&mockQuerier{countResult: 6}, &mockEmbedder{}, nil)

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 6 {
		t.Errorf("Count() = %d, want 6", count)
	}
}

func TestIndexer_IndexSchemes(t *testing.T) {
	querier := &mockQuerier{}
	store := New(querier, &mockEmbedder{}, nil)
	indexer := NewIndexer(store, nil)

	if err := indexer.IndexSchemes(context.Background()); err != nil {
		t.Fatalf("IndexSchemes() error = %v", err)
	}

	want := len(SchemeDocuments())
	if querier.upsertCalls != want {
		t.Errorf("upsert calls = %d, want %d", querier.upsertCalls, want)
	}

	var metadata map[string]string
	if err := json.Unmarshal(querier.lastUpsertParams.Metadata, &metadata); err != nil {
		t.Fatalf("metadata is not valid JSON: %v", err)
	}
	if metadata["source_type"] != SourceTypeScheme {
		t.Errorf("metadata = %v, want source_type=scheme", metadata)
	}
}

func TestIndexer_StopsOnFirstFailure(t *testing.T) {
	querier := &mockQuerier{upsertErr: errors.New("disk full")}
	indexer := NewIndexer(New(querier, &mockEmbedder{}, nil), nil)

	if err := indexer.IndexSchemes(context.Background()); err == nil {
		t.Fatal("IndexSchemes() error = nil, want upsert failure")
	}
	if querier.upsertCalls != 1 {
		t.Errorf("upsert calls = %d, want 1 (stop at first failure)", querier.upsertCalls)
	}
}

func TestSchemeDocuments_HaveStableIDsAndContent(t *testing.T) {
	docs := SchemeDocuments()
	if len(docs) == 0 {
		t.Fatal("scheme corpus is empty")
	}

	seen := make(map[string]bool)
	for _, doc := range docs {
		if doc.ID == "" || doc.Content == "" {
			t.Errorf("document %+v has empty ID or content", doc)
		}
		if seen[doc.ID] {
			t.Errorf("duplicate scheme ID %q", doc.ID)
		}
		seen[doc.ID] = true
	}

	for _, id := range []string{"pm-kisan", "aadhaar", "pension", "employment", "ration-card", "health-insurance"} {
		if !seen[id] {
			t.Errorf("scheme corpus missing %q", id)
		}
	}
}
