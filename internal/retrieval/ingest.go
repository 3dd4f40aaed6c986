package retrieval

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	chunkMaxChars = 800
	chunkOverlap  = 150
)

// IngestResult summarizes one corpus ingestion run.
type IngestResult struct {
	Files  int
	Chunks int
}

// Ingest walks the corpus root, embeds every chunk of every file whose
// relative path matches one of the globs, and stores the passages.
// Globs follow doublestar syntax, e.g. "**/*.md".
func (r *Retriever) Ingest(ctx context.Context, root string, globs []string) (*IngestResult, error) {
	if len(globs) == 0 {
		globs = []string{"**/*.md", "**/*.txt"}
	}

	result := &IngestResult{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if !matchesAny(globs, filepath.ToSlash(rel)) {
			return nil
		}

		data, err := os.ReadFile(path) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rel, err)
		}

		chunks := ChunkText(string(data))
		for _, chunk := range chunks {
			vec, err := r.provider.Embed(ctx, chunk)
			if err != nil {
				return fmt.Errorf("failed to embed chunk of %s: %w", rel, err)
			}
			if err := r.store.AddMemory(chunk, rel, vec); err != nil {
				return fmt.Errorf("failed to store chunk of %s: %w", rel, err)
			}
		}

		result.Files++
		result.Chunks += len(chunks)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func matchesAny(globs []string, rel string) bool {
	for _, pattern := range globs {
		match, err := doublestar.Match(pattern, rel)
		if err == nil && match {
			return true
		}
	}
	return false
}

// ChunkText splits text into overlapping windows so passage boundaries
// do not cut relevant context in half. Empty input yields no chunks.
func ChunkText(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	overlap := chunkOverlap
	if overlap >= chunkMaxChars {
		overlap = chunkMaxChars - 1
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + chunkMaxChars
		if end > len(text) {
			end = len(text)
		}
		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := end - overlap
		if next <= start {
			next = start + chunkMaxChars
		}
		start = next
	}
	return chunks
}
