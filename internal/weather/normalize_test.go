package weather

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func sampleBundle() RawBundle {
	return RawBundle{
		Timestamps: []string{
			"2024-06-01T10:00:00+02:00",
			"2024-06-01T11:00:00+02:00",
			"2024-06-01T13:00:00+02:00",
		},
		WindBearings:    []float64{0, 90, 200},
		WindSpeeds:      []float64{12, 14.5, 9},
		WaveBearings:    []*float64{ptr(180.0), nil},
		WaveHeights:     []*float64{ptr(0.8), ptr(1.1), ptr(1.3)},
		WavePeriods:     []int{6, 7},
		AirTemperatures: []int{21, 22, 23},
		SpotName:        "Els Poblets",
	}
}

func TestNormalize(t *testing.T) {
	series, err := Normalize(sampleBundle(), nil)
	require.NoError(t, err)
	require.Len(t, series, 3)

	first := series[0]
	assert.Equal(t, "N", first.WindDirection)
	assert.Equal(t, 12.0, first.WindSpeed)
	assert.Equal(t, PlaceholderStatus, first.WindStatus)
	assert.Equal(t, "Els Poblets", first.SpotName)
	require.NotNil(t, first.WaveDirection)
	assert.Equal(t, "S", *first.WaveDirection)
	require.NotNil(t, first.WavePeriod)
	assert.Equal(t, 6, *first.WavePeriod)
	require.NotNil(t, first.AirTemperature)
	assert.Equal(t, 21, *first.AirTemperature)

	_, offset := first.Timestamp.Zone()
	assert.Equal(t, 2*60*60, offset, "fixed offset should be preserved")

	second := series[1]
	assert.Equal(t, "E", second.WindDirection)
	assert.Nil(t, second.WaveDirection, "nil wave bearing stays absent")
	require.NotNil(t, second.WaveHeight)
	assert.Equal(t, 1.1, *second.WaveHeight)

	third := series[2]
	assert.Nil(t, third.WaveDirection, "short optional series yields absent")
	assert.Nil(t, third.WavePeriod)
	require.NotNil(t, third.AirTemperature)
	assert.Equal(t, 23, *third.AirTemperature)
}

func TestNormalizeLengthMatchesTimestamps(t *testing.T) {
	for n := 0; n < 5; n++ {
		b := RawBundle{SpotName: "spot"}
		for i := 0; i < n; i++ {
			b.Timestamps = append(b.Timestamps, time.Date(2024, 6, 1, i, 0, 0, 0, time.UTC).Format(time.RFC3339))
			b.WindBearings = append(b.WindBearings, float64(i*30))
			b.WindSpeeds = append(b.WindSpeeds, float64(i))
		}
		series, err := Normalize(b, nil)
		require.NoError(t, err)
		assert.Len(t, series, n)
	}
}

func TestNormalizeBadTimestamp(t *testing.T) {
	b := sampleBundle()
	b.Timestamps[1] = "tomorrow at noon"

	series, err := Normalize(b, nil)
	require.Error(t, err)
	assert.Nil(t, series)
	assert.True(t, errors.Is(err, ErrBadTimestamp))

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, ErrBadTimestamp, extractionErr.Kind)
}

func TestNormalizeRequiredSeriesMismatch(t *testing.T) {
	b := sampleBundle()
	b.WindSpeeds = b.WindSpeeds[:1]

	_, err := Normalize(b, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedData)
}

func TestNormalizeUsesClassifier(t *testing.T) {
	var seen [][2]string
	classifier := StatusClassifierFunc(func(windDir, waveDir string) string {
		seen = append(seen, [2]string{windDir, waveDir})
		if windDir == waveDir {
			return "aligned"
		}
		return "crossed"
	})

	b := sampleBundle()
	b.WindBearings[0] = 180

	series, err := Normalize(b, classifier)
	require.NoError(t, err)
	assert.Equal(t, "aligned", series[0].WindStatus)
	assert.Equal(t, "crossed", series[1].WindStatus)
	assert.Equal(t, [2]string{"E", ""}, seen[1], "absent wave direction is passed as empty")
}

func TestSeriesForTime(t *testing.T) {
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	series := Series{
		{Timestamp: base, WindDirection: "N"},
		{Timestamp: base.Add(time.Hour), WindDirection: "E"},
		{Timestamp: base.Add(3 * time.Hour), WindDirection: "S"},
	}

	tests := []struct {
		name         string
		at           time.Time
		want         time.Time
		wantFallback bool
	}{
		{name: "next slot within window", at: base.Add(30 * time.Minute), want: base.Add(time.Hour)},
		{name: "no slot in window falls back to first", at: base.Add(4 * time.Hour), want: base, wantFallback: true},
		{name: "later slot inside window", at: base.Add(150 * time.Minute), want: base.Add(3 * time.Hour)},
		{name: "slot at query time is excluded", at: base, want: base.Add(time.Hour)},
		{name: "window end is inclusive", at: base.Add(time.Hour), want: base.Add(3 * time.Hour)},
		{name: "next slot one second ahead", at: base.Add(time.Hour - time.Second), want: base.Add(time.Hour)},
		{name: "before the series", at: base.Add(-90 * time.Minute), want: base},
		{name: "far future falls back", at: base.Add(48 * time.Hour), want: base, wantFallback: true},
		{name: "other zone same instant", at: base.Add(30 * time.Minute).UTC(), want: base.Add(time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, fallback, ok := series.ForTime(tt.at)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(obs.Timestamp), "got %s want %s", obs.Timestamp, tt.want)
			assert.Equal(t, tt.wantFallback, fallback)
		})
	}
}

func TestSeriesForTimeEmpty(t *testing.T) {
	_, _, ok := Series{}.ForTime(time.Now())
	assert.False(t, ok)
}
