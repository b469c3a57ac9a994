package recommendation

import "mediapick/types/models"

// Mode selects whether Recommend uses the caller-supplied overlay directly
// (FILTERED) or derives parameters from the user's profile and history
// (SMART).
type Mode string

const (
	ModeFiltered Mode = "FILTERED"
	ModeSmart    Mode = "SMART"
)

// Overlay is the FILTERED-mode request: an explicit, one-shot filter bundle
// that bypasses the user's durable profile.
type Overlay struct {
	Kind      models.Kind
	Genres    []int
	Language  string
	MinRating *float64
}

// Attribution is the opaque strategy metadata attached to a successful
// pick, for the surrounding layer to build a "why this pick" explanation.
type Attribution struct {
	StrategyName      string
	StrategyGenres    []int
	StrategyLanguages []string
	Kind              models.Kind
	Explanation       string
}

// Outcome is the result of a Recommend call: exactly one of Item+Attribution
// (on a Found outcome) is populated, or Err names why no item was returned.
type Outcome struct {
	Item        models.MediaItem
	Attribution Attribution
	Err         error
}

// Found reports whether the outcome carries a recommended item.
func (o Outcome) Found() bool { return o.Err == nil }
