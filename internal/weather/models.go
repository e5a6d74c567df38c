package weather

import (
	"time"

	"github.com/google/uuid"
)

// Observation is one timestamped forecast slot for a spot.
type Observation struct {
	Timestamp      time.Time `json:"timestamp"` // keeps the source's fixed UTC offset
	WindDirection  string    `json:"windDirection"`
	WindStatus     string    `json:"windStatus"`
	WindSpeed      float64   `json:"windSpeed"`
	WaveDirection  *string   `json:"waveDirection,omitempty"`
	WavePeriod     *int      `json:"wavePeriod,omitempty"` // seconds
	WaveHeight     *float64  `json:"waveHeight,omitempty"`
	AirTemperature *int      `json:"airTemperature,omitempty"`
	SpotName       string    `json:"spotName"`
}

// Series is the ordered set of observations from one scrape.
// Entries are expected to be ordered by Timestamp ascending, as produced by the
// source; nothing re-sorts them.
type Series []Observation

// RawBundle holds the parallel series pulled out of a forecast page before they
// are zipped into observations. Timestamps, WindBearings and WindSpeeds are
// required and share a length. The remaining series are aligned by position and
// may be shorter; a nil entry marks a missing value.
type RawBundle struct {
	Timestamps   []string
	WindBearings []float64
	WindSpeeds   []float64

	WaveBearings    []*float64
	WaveHeights     []*float64
	WavePeriods     []int
	AirTemperatures []int

	SpotName string
}

// Snapshot is a fully built series plus its spot context. It is never mutated
// after construction; stores replace it wholesale.
type Snapshot struct {
	ID        uuid.UUID `json:"id"`
	Spot      string    `json:"spot"`
	Source    string    `json:"source"`
	SourceURL string    `json:"sourceUrl"`
	FetchedAt time.Time `json:"fetchedAt"` // always UTC
	Series    Series    `json:"series"`
}

// Lookup is the answer to a window query against a snapshot.
type Lookup struct {
	Observation Observation
	// Fallback is set when no slot fell inside the window and the earliest
	// observation was returned instead.
	Fallback   bool
	SnapshotID uuid.UUID
	Spot       string
	FetchedAt  time.Time
}
