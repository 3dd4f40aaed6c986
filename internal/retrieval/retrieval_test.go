package retrieval

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/felixgeelhaar/apexmind/internal/provider"
	"github.com/felixgeelhaar/apexmind/internal/store"
)

func newTestRetriever(t *testing.T) (*Retriever, *provider.StubProvider, store.Storage) {
	t.Helper()
	dir := t.TempDir()
	s, err := store.NewSQLiteStore(filepath.Join(dir, "apexmind.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	p := provider.NewStubProvider()
	return NewRetriever(s, p), p, s
}

func TestRetrieve(t *testing.T) {
	r, p, s := newTestRetriever(t)

	p.Embeddings["focus"] = []float32{1, 0, 0}
	if err := s.AddMemory("Train your focus daily.", "focus.md", []float32{1, 0, 0}); err != nil {
		t.Fatalf("AddMemory failed: %v", err)
	}
	if err := s.AddMemory("Rest is part of the program.", "rest.md", []float32{0, 1, 0}); err != nil {
		t.Fatalf("AddMemory failed: %v", err)
	}

	items, err := r.Retrieve(context.Background(), "focus")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 passages, got %d", len(items))
	}
	if items[0].Source != "focus.md" {
		t.Errorf("Expected best match focus.md, got %s", items[0].Source)
	}
	if items[0].Similarity <= items[1].Similarity {
		t.Error("Expected passages ranked by similarity")
	}
}

func TestRetrieve_EmptyQuery(t *testing.T) {
	r, _, _ := newTestRetriever(t)
	items, err := r.Retrieve(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if items != nil {
		t.Errorf("Expected nil for empty query, got %v", items)
	}
}

func TestRetrieve_EmptyCorpus(t *testing.T) {
	r, _, _ := newTestRetriever(t)
	items, err := r.Retrieve(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty result on empty corpus, got %v", items)
	}
}

func TestRetrieve_TopK(t *testing.T) {
	r, _, s := newTestRetriever(t)
	for i := 0; i < 5; i++ {
		if err := s.AddMemory("passage", "kb.md", []float32{1, float32(i), 0}); err != nil {
			t.Fatalf("AddMemory failed: %v", err)
		}
	}
	items, err := r.WithTopK(2).Retrieve(context.Background(), "query")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("Expected 2 passages with topK 2, got %d", len(items))
	}
}

func TestChunkText(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if chunks := ChunkText("   \n  "); chunks != nil {
			t.Errorf("Expected no chunks, got %v", chunks)
		}
	})

	t.Run("short text is a single chunk", func(t *testing.T) {
		chunks := ChunkText("stay sharp")
		if len(chunks) != 1 || chunks[0] != "stay sharp" {
			t.Errorf("Expected single chunk, got %v", chunks)
		}
	})

	t.Run("long text overlaps", func(t *testing.T) {
		text := strings.Repeat("a", 2000)
		chunks := ChunkText(text)
		if len(chunks) < 3 {
			t.Fatalf("Expected at least 3 chunks for 2000 chars, got %d", len(chunks))
		}
		for _, c := range chunks {
			if len(c) > chunkMaxChars {
				t.Errorf("Chunk exceeds max size: %d", len(c))
			}
		}
	})
}

func TestIngest(t *testing.T) {
	r, _, s := newTestRetriever(t)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mindset.md"), []byte("Ego is fuel when directed."), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested", "routine.txt"), []byte("A routine beats motivation."), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "skip.bin"), []byte{0x00, 0x01}, 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	res, err := r.Ingest(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if res.Files != 2 {
		t.Errorf("Expected 2 ingested files, got %d", res.Files)
	}
	if res.Chunks != 2 {
		t.Errorf("Expected 2 stored chunks, got %d", res.Chunks)
	}

	items, err := s.SearchMemory([]float32{1, 1, 1, 1, 1, 1, 1, 1}, 10)
	if err != nil {
		t.Fatalf("SearchMemory failed: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("Expected 2 stored passages, got %d", len(items))
	}
}

func TestFormatContext(t *testing.T) {
	if got := FormatContext(nil); got != "" {
		t.Errorf("Expected empty context for no passages, got %q", got)
	}

	out := FormatContext([]store.MemoryItem{
		{Content: "first", Source: "a.md", Similarity: 0.9},
		{Content: "second", Source: "b.md", Similarity: 0.4},
	})
	if !strings.Contains(out, "[1] (a.md) first") || !strings.Contains(out, "[2] (b.md) second") {
		t.Errorf("Unexpected context block:\n%s", out)
	}
}
