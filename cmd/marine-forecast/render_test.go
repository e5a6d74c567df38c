package main

import (
	"bytes"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/marine-forecast/internal/weather"
)

func TestWriteObservations(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	waveDir := "SE"
	height := 1.5
	period := 6
	temp := 22
	obs := []weather.Observation{
		{
			Timestamp:      time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
			WindDirection:  "NE",
			WindStatus:     weather.PlaceholderStatus,
			WindSpeed:      12.34,
			WaveDirection:  &waveDir,
			WaveHeight:     &height,
			WavePeriod:     &period,
			AirTemperature: &temp,
			SpotName:       "Els Poblets",
		},
		{
			Timestamp:     time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			WindDirection: "E",
			WindStatus:    weather.PlaceholderStatus,
			WindSpeed:     9,
			SpotName:      "Els Poblets",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeObservations(&buf, obs, madrid))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"TIME", "SPOT", "WIND", "SPEED", "STATUS", "WAVE", "HEIGHT", "PERIOD", "TEMP"}, strings.Fields(lines[0]))
	assert.Equal(t,
		[]string{"2024-06-01", "11:00", "CEST", "Els", "Poblets", "NE", "12.3", "status", "SE", "1.5", "6s", "22°C"},
		strings.Fields(lines[1]))
	assert.Equal(t,
		[]string{"2024-06-01", "12:00", "CEST", "Els", "Poblets", "E", "9.0", "status", "-", "-", "-", "-"},
		strings.Fields(lines[2]))
}

func TestWriteObservationsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeObservations(&buf, nil, time.UTC))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}
