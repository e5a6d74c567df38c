package httpapi

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ZoneCache memoizes loaded time zones; time.LoadLocation reads the zone
// database on every call.
type ZoneCache struct {
	cache    *lru.Cache[string, *time.Location]
	fallback *time.Location
}

// NewZoneCache creates a cache holding up to size zones. Empty zone names
// resolve to fallback.
func NewZoneCache(size int, fallback *time.Location) (*ZoneCache, error) {
	cache, err := lru.New[string, *time.Location](size)
	if err != nil {
		return nil, fmt.Errorf("creating zone cache: %w", err)
	}
	if fallback == nil {
		fallback = time.UTC
	}
	return &ZoneCache{cache: cache, fallback: fallback}, nil
}

// Load returns the named zone.
func (z *ZoneCache) Load(name string) (*time.Location, error) {
	if name == "" {
		return z.fallback, nil
	}
	if loc, ok := z.cache.Get(name); ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	z.cache.Add(name, loc)
	return loc, nil
}

// Len reports how many zones are cached.
func (z *ZoneCache) Len() int {
	return z.cache.Len()
}
