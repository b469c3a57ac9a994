// Package catalog implements the rate-limited, retrying client for the
// external media catalog, grounded in the teacher's clients/metadata/tmdb
// package.
package catalog

import (
	"context"

	"mediapick/types/models"
)

// Page is a single page of catalog search results.
type Page struct {
	Results     []models.MediaItem
	Page        int
	TotalPages  int
	TotalResults int
}

// Video is an auxiliary trailer/clip reference for a catalog item.
type Video struct {
	Key  string
	Site string
	Type string
}

// ProvidersByRegion maps an ISO-3166 region code to the provider names
// available there. A nil or empty map means the catalog had no provider
// data.
type ProvidersByRegion map[string][]string

// Details is the full detail record for a single catalog item.
type Details struct {
	Item    models.MediaItem
	Runtime int
	Status  string
}

// Adapter is the interface the recommendation core consumes against the
// external catalog. Implementations must honor ctx cancellation at every
// suspension point.
type Adapter interface {
	Discover(ctx context.Context, kind models.Kind, params models.DiscoverParams) (Page, error)
	GetVideos(ctx context.Context, kind models.Kind, catalogID int64) ([]Video, error)
	GetWatchProviders(ctx context.Context, kind models.Kind, catalogID int64) (ProvidersByRegion, error)
	GetDetails(ctx context.Context, kind models.Kind, catalogID int64) (Details, error)
}
