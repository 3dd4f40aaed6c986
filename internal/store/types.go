package store

import (
	"time"

	"github.com/felixgeelhaar/apexmind/internal/trait"
)

// Profile is the durable per-user record of smoothed trait scores,
// goals and completed session count. It is created zero-initialized on
// first reference and mutated only through the trait smoother.
type Profile struct {
	UserID    string       `json:"user_id"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Scores    trait.Vector `json:"scores"`
	Goals     []Goal       `json:"goals"`
	Sessions  int          `json:"sessions"`
}

// Goal is an immutable free-text objective appended to a profile.
// Identifiers are positional ("goal-1", "goal-2", ...).
type Goal struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionRow is one row of the per-user session ledger: the raw trait
// vector observed at one coaching turn. Rows are totally ordered by
// Index, which is 1-based and gap-free per user.
type SessionRow struct {
	Index     int
	CreatedAt time.Time
	Scores    trait.Vector
}

// Interaction is one append-only audit record of a coaching exchange.
// It is written once per turn and never read back by the engine; the
// scores snapshot holds the profile's smoothed values at log time.
type Interaction struct {
	CreatedAt time.Time    `json:"timestamp"`
	UserText  string       `json:"user_input"`
	AgentText string       `json:"agent_response"`
	Scores    trait.Vector `json:"scores"`
}

// FocusArc names the currently weakest trait together with a
// prescriptive label. WeakTrait is empty when no scores exist yet.
type FocusArc struct {
	WeakTrait trait.Name `json:"weak_trait"`
	Arc       string     `json:"arc"`
}

// ApexState is the derived per-user performance snapshot. It is a pure
// projection of the session ledger plus the latest raw scores and is
// recomputed in full on every turn; the persisted copy exists for
// inspection only.
type ApexState struct {
	UserID         string    `json:"user_id"`
	LastSession    int       `json:"last_session"`
	Momentum       float64   `json:"momentum"`
	Volatility     float64   `json:"volatility"`
	DominanceIndex float64   `json:"dominance_index"`
	Modes          []string  `json:"modes"`
	FocusArc       FocusArc  `json:"focus_arc"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MemoryItem is one retrieved knowledge passage with its similarity to
// the query.
type MemoryItem struct {
	Content    string
	Source     string
	Similarity float32
}

// Storage defines the persistence boundary.
//
// Per-user records (profile, ledger, apex state, interaction log) are
// independent and keyed by user identifier. The store assumes a single
// writer per user; callers are responsible for serializing turns for
// the same user identifier.
type Storage interface {
	// Profile management
	LoadOrCreateProfile(userID string) (*Profile, error)
	SaveProfile(profile *Profile) error

	// Session ledger
	AppendSession(userID string, index int, scores trait.Vector) error
	LoadSessions(userID string) ([]SessionRow, error)
	NextSessionIndex(userID string) (int, error)

	// Apex state snapshot
	SaveApexState(state *ApexState) error
	LoadApexState(userID string) (*ApexState, error)

	// Interaction audit log
	AppendInteraction(userID string, rec *Interaction) error
	RecentInteractions(userID string, limit int) ([]Interaction, error)

	// Knowledge memory
	AddMemory(content, source string, vector []float32) error
	SearchMemory(vector []float32, limit int) ([]MemoryItem, error)

	// Configuration management
	SetConfig(key, value string) error
	GetConfig(key string) (string, error)

	Close() error
}
