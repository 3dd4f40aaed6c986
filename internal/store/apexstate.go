package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// SaveApexState persists the latest snapshot for a user as a
// whole-record overwrite.
func (s *SQLiteStore) SaveApexState(state *ApexState) error {
	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal apex state: %w", err)
	}
	query := `INSERT INTO apex_states (user_id, state, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`
	if _, err := s.db.Exec(query, state.UserID, string(doc), formatTime(state.UpdatedAt)); err != nil {
		return fmt.Errorf("failed to save apex state: %w", err)
	}
	return nil
}

// LoadApexState returns the persisted snapshot, or nil if none exists.
func (s *SQLiteStore) LoadApexState(userID string) (*ApexState, error) {
	row := s.db.QueryRow(`SELECT state FROM apex_states WHERE user_id = ?`, userID)
	var doc string
	if err := row.Scan(&doc); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load apex state: %w", err)
	}
	var state ApexState
	if err := json.Unmarshal([]byte(doc), &state); err != nil {
		return nil, fmt.Errorf("failed to decode apex state: %w", err)
	}
	return &state, nil
}
