package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/i474232898/marine-forecast/internal/weather"
)

const timeLayout = "2006-01-02 15:04 MST"

// writeObservations prints one aligned row per observation, times in loc.
func writeObservations(w io.Writer, obs []weather.Observation, loc *time.Location) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tSPOT\tWIND\tSPEED\tSTATUS\tWAVE\tHEIGHT\tPERIOD\tTEMP")
	for _, o := range obs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%s\t%s\t%s\t%s\t%s\n",
			o.Timestamp.In(loc).Format(timeLayout),
			o.SpotName,
			o.WindDirection,
			o.WindSpeed,
			o.WindStatus,
			orDash(o.WaveDirection),
			floatOrDash(o.WaveHeight),
			intOrDash(o.WavePeriod, "s"),
			intOrDash(o.AirTemperature, "°C"),
		)
	}
	return tw.Flush()
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func floatOrDash(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', 1, 64)
}

func intOrDash(n *int, unit string) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n) + unit
}
