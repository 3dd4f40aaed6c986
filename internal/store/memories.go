package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

// AddMemory stores one knowledge passage with its embedding vector.
func (s *SQLiteStore) AddMemory(content, source string, vector []float32) error {
	vecBuf := new(bytes.Buffer)
	if err := binary.Write(vecBuf, binary.LittleEndian, vector); err != nil {
		return fmt.Errorf("failed to encode vector: %w", err)
	}

	query := `INSERT INTO memories (content, source, vector) VALUES (?, ?, ?)`
	if _, err := s.db.Exec(query, content, source, vecBuf.Bytes()); err != nil {
		return fmt.Errorf("failed to add memory: %w", err)
	}
	return nil
}

// SearchMemory ranks all stored passages by cosine similarity to the
// query vector and returns the top limit items.
//
// Brute force over the whole table; fine for a curated corpus of a few
// thousand chunks.
func (s *SQLiteStore) SearchMemory(queryVector []float32, limit int) ([]MemoryItem, error) {
	rows, err := s.db.Query(`SELECT content, source, vector FROM memories`)
	if err != nil {
		return nil, fmt.Errorf("failed to read memories: %w", err)
	}
	defer rows.Close()

	var items []MemoryItem
	for rows.Next() {
		var content, source string
		var vecBlob []byte
		if err := rows.Scan(&content, &source, &vecBlob); err != nil {
			continue
		}

		vector := make([]float32, len(vecBlob)/4)
		if err := binary.Read(bytes.NewReader(vecBlob), binary.LittleEndian, &vector); err != nil {
			continue
		}

		items = append(items, MemoryItem{
			Content:    content,
			Source:     source,
			Similarity: cosineSimilarity(queryVector, vector),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read memories: %w", err)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Similarity > items[j].Similarity
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}
	var dot, magA, magB float32
	for i := 0; i < len(a); i++ {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0.0
	}
	return dot / (float32(math.Sqrt(float64(magA))) * float32(math.Sqrt(float64(magB))))
}
