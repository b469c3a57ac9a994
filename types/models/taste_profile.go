package models

// TasteProfile is a user's durable recommendation preference, created once
// during onboarding and mutated only by explicit re-edit.
type TasteProfile struct {
	BaseModel
	UserID            string  `json:"userId" gorm:"uniqueIndex;not null"`
	ContentTypes      []Kind  `json:"contentTypes" gorm:"serializer:json"`
	Genres            []int   `json:"genres" gorm:"serializer:json"`
	Languages         []string `json:"languages" gorm:"serializer:json"`
	MinRating         *float64 `json:"minRating,omitempty"`
	AnimeAutoLanguage bool     `json:"animeAutoLanguage"`
	Complete          bool     `json:"complete" gorm:"default:false"`
}

func (TasteProfile) TableName() string { return "taste_profiles" }

// Usable reports whether the profile is present and ready to drive SMART
// recommendations. This is the "canonical field" the Open Questions ask
// for: a single boolean rather than the source's two coexisting flags.
func (p *TasteProfile) Usable() bool {
	if p == nil {
		return false
	}
	return p.Complete && len(p.ContentTypes) > 0 && len(p.Genres) >= 3 && len(p.Languages) > 0
}
