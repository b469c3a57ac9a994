package models

// defaultWeight is the starting weight for any genre, kind, or language the
// learner has not yet seen an action for.
const defaultWeight = 50

// minWeight and maxWeight bound every learned weight.
const (
	minWeight = 0
	maxWeight = 100
)

// PreferenceWeights holds a user's learned genre/content-type/language
// weights, updated online on every like/dislike. One row per user.
type PreferenceWeights struct {
	BaseModel
	UserID        string         `json:"userId" gorm:"uniqueIndex;not null"`
	GenreWeights  map[int]int    `json:"genreWeights" gorm:"serializer:json"`
	KindWeights   map[Kind]int   `json:"kindWeights" gorm:"serializer:json"`
	LangWeights   map[string]int `json:"languageWeights" gorm:"serializer:json"`
	TotalLikes    int            `json:"totalLikes"`
	TotalDislikes int            `json:"totalDislikes"`
}

func (PreferenceWeights) TableName() string { return "preference_weights" }

// GenreWeight returns the genre's current weight, or the default if unseen.
func (w *PreferenceWeights) GenreWeight(genreID int) int {
	if w == nil || w.GenreWeights == nil {
		return defaultWeight
	}
	if v, ok := w.GenreWeights[genreID]; ok {
		return v
	}
	return defaultWeight
}

// KindWeight returns the kind's current weight, or the default if unseen.
func (w *PreferenceWeights) KindWeight(kind Kind) int {
	if w == nil || w.KindWeights == nil {
		return defaultWeight
	}
	if v, ok := w.KindWeights[kind]; ok {
		return v
	}
	return defaultWeight
}

// LanguageWeight returns the language's current weight, or the default if unseen.
func (w *PreferenceWeights) LanguageWeight(lang string) int {
	if w == nil || w.LangWeights == nil {
		return defaultWeight
	}
	if v, ok := w.LangWeights[lang]; ok {
		return v
	}
	return defaultWeight
}

// ClampWeight bounds v to [minWeight, maxWeight], the range every learned
// weight is held to.
func ClampWeight(v int) int {
	if v < minWeight {
		return minWeight
	}
	if v > maxWeight {
		return maxWeight
	}
	return v
}
