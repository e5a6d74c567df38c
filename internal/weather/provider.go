package weather

import (
	"context"
	"time"
)

// Fetcher retrieves the raw text of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Source abstracts a forecast site that can be scraped into a RawBundle.
type Source interface {
	Name() string
	URL() string
	Scrape(ctx context.Context) (RawBundle, error)
}

// Store is the contract the in-memory snapshot store must satisfy.
type Store interface {
	Replace(snapshot Snapshot)
	Current() (Snapshot, error)
	ForTime(t time.Time) (Lookup, error)
}
