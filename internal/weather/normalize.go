package weather

import (
	"fmt"
	"time"
)

// ForecastWindow is how far past the query time a slot may start and still be
// considered the applicable one.
const ForecastWindow = 2 * time.Hour

// Normalize zips the parallel series of a bundle into observations, one per
// timestamp. Optional series that are shorter than the timestamps leave the
// corresponding fields nil. A nil classifier falls back to PlaceholderClassifier.
func Normalize(b RawBundle, classifier StatusClassifier) (Series, error) {
	if classifier == nil {
		classifier = PlaceholderClassifier
	}

	count := len(b.Timestamps)
	if len(b.WindBearings) < count || len(b.WindSpeeds) < count {
		// Required series are built together by the extractor; a mismatch is a bug upstream.
		return nil, NewExtractionError(ErrMalformedData,
			fmt.Sprintf("required series length mismatch: %d timestamps, %d bearings, %d speeds",
				count, len(b.WindBearings), len(b.WindSpeeds)), nil)
	}

	series := make(Series, 0, count)
	for i := 0; i < count; i++ {
		ts, err := time.Parse(time.RFC3339, b.Timestamps[i])
		if err != nil {
			return nil, NewExtractionError(ErrBadTimestamp, fmt.Sprintf("slot %d: %q", i, b.Timestamps[i]), err)
		}

		obs := Observation{
			Timestamp:     ts,
			WindDirection: DirectionFor(b.WindBearings[i]),
			WindSpeed:     b.WindSpeeds[i],
			SpotName:      b.SpotName,
		}

		if bearing, ok := floatAt(b.WaveBearings, i); ok {
			dir := DirectionFor(bearing)
			obs.WaveDirection = &dir
		}
		if height, ok := floatAt(b.WaveHeights, i); ok {
			obs.WaveHeight = &height
		}
		if period, ok := intAt(b.WavePeriods, i); ok {
			obs.WavePeriod = &period
		}
		if temp, ok := intAt(b.AirTemperatures, i); ok {
			obs.AirTemperature = &temp
		}

		waveDir := ""
		if obs.WaveDirection != nil {
			waveDir = *obs.WaveDirection
		}
		obs.WindStatus = classifier.Classify(obs.WindDirection, waveDir)

		series = append(series, obs)
	}

	return series, nil
}

// ForTime returns the first observation strictly after t and no later than
// t+ForecastWindow. When no slot qualifies it returns the first observation
// with fallback set. ok is false only for an empty series.
func (s Series) ForTime(t time.Time) (obs Observation, fallback bool, ok bool) {
	if len(s) == 0 {
		return Observation{}, false, false
	}

	limit := t.Add(ForecastWindow)
	for _, o := range s {
		if o.Timestamp.After(t) && !o.Timestamp.After(limit) {
			return o, false, true
		}
	}
	return s[0], true, true
}

func floatAt(values []*float64, i int) (float64, bool) {
	if i >= len(values) || values[i] == nil {
		return 0, false
	}
	return *values[i], true
}

func intAt(values []int, i int) (int, bool) {
	if i >= len(values) {
		return 0, false
	}
	return values[i], true
}
