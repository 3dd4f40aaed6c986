package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// AppendInteraction writes one audit record to the user's interaction
// log. The log is append-only; prior entries are never rewritten.
func (s *SQLiteStore) AppendInteraction(userID string, rec *Interaction) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	scoresJSON, err := json.Marshal(rec.Scores)
	if err != nil {
		return fmt.Errorf("failed to marshal interaction scores: %w", err)
	}
	query := `INSERT INTO interactions (user_id, created_at, user_text, agent_text, scores) VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.Exec(query, userID, formatTime(rec.CreatedAt), rec.UserText, rec.AgentText, string(scoresJSON)); err != nil {
		return fmt.Errorf("failed to append interaction: %w", err)
	}
	return nil
}

// RecentInteractions returns up to the last limit records in
// chronological order, oldest of the window first. A limit beyond the
// log length returns the whole log; a missing log returns nothing.
func (s *SQLiteStore) RecentInteractions(userID string, limit int) ([]Interaction, error) {
	if limit <= 0 {
		return []Interaction{}, nil
	}
	query := `SELECT created_at, user_text, agent_text, scores FROM interactions WHERE user_id = ? ORDER BY id DESC LIMIT ?`
	rows, err := s.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read interaction log: %w", err)
	}
	defer rows.Close()

	var recs []Interaction
	for rows.Next() {
		var rec Interaction
		var createdAt, scoresJSON string
		if err := rows.Scan(&createdAt, &rec.UserText, &rec.AgentText, &scoresJSON); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		rec.CreatedAt = parseTimeOrZero(createdAt)
		if err := json.Unmarshal([]byte(scoresJSON), &rec.Scores); err != nil {
			return nil, fmt.Errorf("failed to decode interaction scores: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read interaction log: %w", err)
	}

	// Query returned newest-first; flip to chronological.
	for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
		recs[i], recs[j] = recs[j], recs[i]
	}
	if recs == nil {
		recs = []Interaction{}
	}
	return recs, nil
}
