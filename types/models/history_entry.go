package models

import "time"

// Action is the user's disposition toward a recommended item.
type Action string

const (
	ActionWatched     Action = "WATCHED"
	ActionSkipped     Action = "SKIPPED"
	ActionLiked       Action = "LIKED"
	ActionDisliked    Action = "DISLIKED"
	ActionBlacklisted Action = "BLACKLISTED"
)

// Valid reports whether a is a recognized action.
func (a Action) Valid() bool {
	switch a {
	case ActionWatched, ActionSkipped, ActionLiked, ActionDisliked, ActionBlacklisted:
		return true
	}
	return false
}

// Source records which recommendation mode produced the item being acted on.
type Source string

const (
	SourceFiltered Source = "FILTERED"
	SourceSmart    Source = "SMART"
)

// HistoryEntry is the unique, upsertable record of a user's action toward a
// single (userId, catalogId, kind). An upsert by key replaces the prior
// action for that key; BLACKLISTED is terminal for recommendation
// eligibility (though not for the data state itself — it can still be
// overwritten by a later action).
type HistoryEntry struct {
	BaseModel
	UserID      string    `json:"userId" gorm:"index:idx_history_key,unique"`
	CatalogID   int64     `json:"catalogId" gorm:"index:idx_history_key,unique"`
	Kind        Kind      `json:"kind" gorm:"index:idx_history_key,unique"`
	Title       string    `json:"title"`
	Action      Action    `json:"action"`
	PosterPath  string    `json:"posterPath,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	ReleaseDate string    `json:"releaseDate,omitempty"`
	Source      Source    `json:"source"`
	ActedAt     time.Time `json:"actedAt"`
}

func (HistoryEntry) TableName() string { return "history_entries" }
