package models

// Kind is the media category a MediaItem or TasteProfile entry belongs to.
type Kind string

const (
	KindMovie  Kind = "MOVIE"
	KindSeries Kind = "SERIES"
	KindAnime  Kind = "ANIME"
)

// Valid reports whether k is one of the recognized content kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindMovie, KindSeries, KindAnime:
		return true
	}
	return false
}

// AnimationGenreID is the external catalog's id for the "Animation" genre,
// unioned into every anime strategy's genre set.
const AnimationGenreID = 16

// AnimeOriginalLanguage is the sacred language override applied to every
// anime strategy, regardless of profile language.
const AnimeOriginalLanguage = "ja"
