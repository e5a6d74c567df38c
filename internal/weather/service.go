package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service runs the scrape pipeline for one source and serves lookups from the store.
type Service struct {
	store      Store
	source     Source
	classifier StatusClassifier
	now        func() time.Time
}

// NewService creates a new Service. A nil classifier uses PlaceholderClassifier.
func NewService(store Store, source Source, classifier StatusClassifier) *Service {
	if classifier == nil {
		classifier = PlaceholderClassifier
	}
	return &Service{
		store:      store,
		source:     source,
		classifier: classifier,
		now:        time.Now,
	}
}

// Refresh scrapes the source, normalizes the result and replaces the stored
// snapshot. On any error the stored snapshot is left untouched.
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	if s.source == nil {
		return Snapshot{}, fmt.Errorf("no forecast source configured")
	}

	bundle, err := s.source.Scrape(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("scrape %s: %w", s.source.Name(), err)
	}

	series, err := Normalize(bundle, s.classifier)
	if err != nil {
		return Snapshot{}, fmt.Errorf("normalize %s: %w", s.source.Name(), err)
	}

	snapshot := Snapshot{
		ID:        uuid.New(),
		Spot:      bundle.SpotName,
		Source:    s.source.Name(),
		SourceURL: s.source.URL(),
		FetchedAt: s.now().UTC(),
		Series:    series,
	}
	s.store.Replace(snapshot)

	log.Debug().
		Str("snapshot_id", snapshot.ID.String()).
		Str("spot", snapshot.Spot).
		Int("slots", len(series)).
		Msg("forecast snapshot replaced")

	return snapshot, nil
}

// ForTime delegates to the underlying store.
func (s *Service) ForTime(t time.Time) (Lookup, error) {
	return s.store.ForTime(t)
}

// Current delegates to the underlying store.
func (s *Service) Current() (Snapshot, error) {
	return s.store.Current()
}
