package cache

import "time"

// Default TTL presets for each class of external catalog call, used when
// config does not override them.
const (
	DiscoverTTL = 5 * time.Minute
	DetailsTTL  = 24 * time.Hour
	VideosTTL   = 7 * 24 * time.Hour
)
