package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// LoadOrCreateProfile returns the stored profile for userID, creating
// and persisting a zero-initialized one on first reference. Two calls
// for the same identifier return the same profile unless an external
// write happened in between.
func (s *SQLiteStore) LoadOrCreateProfile(userID string) (*Profile, error) {
	query := `SELECT user_id, created_at, updated_at, scores, goals, sessions FROM profiles WHERE user_id = ?`
	row := s.db.QueryRow(query, userID)

	var p Profile
	var createdAt, updatedAt, scoresJSON, goalsJSON string
	err := row.Scan(&p.UserID, &createdAt, &updatedAt, &scoresJSON, &goalsJSON, &p.Sessions)
	switch {
	case err == sql.ErrNoRows:
		now := time.Now().UTC()
		p = Profile{
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
			Goals:     []Goal{},
		}
		if err := s.insertProfile(&p); err != nil {
			return nil, err
		}
		return &p, nil
	case err != nil:
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	p.CreatedAt = parseTimeOrZero(createdAt)
	p.UpdatedAt = parseTimeOrZero(updatedAt)
	// Scores is a fixed-shape struct, so a decoded profile always
	// carries all six traits even if the stored document predates one.
	if err := json.Unmarshal([]byte(scoresJSON), &p.Scores); err != nil {
		return nil, fmt.Errorf("failed to decode profile scores: %w", err)
	}
	if err := json.Unmarshal([]byte(goalsJSON), &p.Goals); err != nil {
		return nil, fmt.Errorf("failed to decode profile goals: %w", err)
	}
	if p.Goals == nil {
		p.Goals = []Goal{}
	}
	return &p, nil
}

func (s *SQLiteStore) insertProfile(p *Profile) error {
	scoresJSON, goalsJSON, err := encodeProfile(p)
	if err != nil {
		return err
	}
	query := `INSERT INTO profiles (user_id, created_at, updated_at, scores, goals, sessions) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := s.db.Exec(query, p.UserID, formatTime(p.CreatedAt), formatTime(p.UpdatedAt), scoresJSON, goalsJSON, p.Sessions); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// SaveProfile persists the full profile as a whole-record overwrite and
// stamps UpdatedAt with the current time.
func (s *SQLiteStore) SaveProfile(p *Profile) error {
	p.UpdatedAt = time.Now().UTC()
	scoresJSON, goalsJSON, err := encodeProfile(p)
	if err != nil {
		return err
	}
	query := `INSERT INTO profiles (user_id, created_at, updated_at, scores, goals, sessions) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET updated_at = excluded.updated_at, scores = excluded.scores, goals = excluded.goals, sessions = excluded.sessions`
	if _, err := s.db.Exec(query, p.UserID, formatTime(p.CreatedAt), formatTime(p.UpdatedAt), scoresJSON, goalsJSON, p.Sessions); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func encodeProfile(p *Profile) (scoresJSON, goalsJSON string, err error) {
	sb, err := json.Marshal(p.Scores)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal scores: %w", err)
	}
	goals := p.Goals
	if goals == nil {
		goals = []Goal{}
	}
	gb, err := json.Marshal(goals)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal goals: %w", err)
	}
	return string(sb), string(gb), nil
}
