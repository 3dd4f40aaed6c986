package store

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/felixgeelhaar/apexmind/internal/trait"
)

// AppendSession writes one ledger row. The caller supplies a gap-free,
// strictly increasing index per user; the ledger itself does not
// enforce that, downstream consumers assume it.
func (s *SQLiteStore) AppendSession(userID string, index int, scores trait.Vector) error {
	query := `INSERT INTO session_ledger (user_id, session_idx, created_at, discipline, consistency, execution, adaptability, ego_strength, clarity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	args := []any{userID, index, formatTime(time.Now().UTC())}
	for _, n := range trait.Names() {
		args = append(args, strconv.FormatFloat(scores.Get(n), 'g', -1, 64))
	}
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to append session row: %w", err)
	}
	return nil
}

// LoadSessions reads every ledger row for a user and returns them
// sorted ascending by session index regardless of physical row order.
// Malformed trait cells decode to 0.0; the row is still included. A
// missing ledger yields an empty slice, not an error.
func (s *SQLiteStore) LoadSessions(userID string) ([]SessionRow, error) {
	query := `SELECT session_idx, created_at, discipline, consistency, execution, adaptability, ego_strength, clarity
		FROM session_ledger WHERE user_id = ?`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read session ledger: %w", err)
	}
	defer rows.Close()

	var sessions []SessionRow
	for rows.Next() {
		var r SessionRow
		var createdAt string
		cells := make([]string, 6)
		if err := rows.Scan(&r.Index, &createdAt, &cells[0], &cells[1], &cells[2], &cells[3], &cells[4], &cells[5]); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		r.CreatedAt = parseTimeOrZero(createdAt)
		for i, n := range trait.Names() {
			r.Scores.Set(n, ParseFloatOr(cells[i], 0.0))
		}
		sessions = append(sessions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read session ledger: %w", err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Index < sessions[j].Index
	})
	return sessions, nil
}

// NextSessionIndex returns 1 for a fresh user, otherwise one past the
// highest stored index.
func (s *SQLiteStore) NextSessionIndex(userID string) (int, error) {
	row := s.db.QueryRow(`SELECT MAX(session_idx) FROM session_ledger WHERE user_id = ?`, userID)
	var max sql.NullInt64
	if err := row.Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to read session index: %w", err)
	}
	if !max.Valid {
		return 1, nil
	}
	return int(max.Int64) + 1, nil
}
