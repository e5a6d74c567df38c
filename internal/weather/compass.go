package weather

import "math"

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// DirectionFor maps a bearing in degrees to the nearest of the 16 compass
// points. Any finite input is accepted, including negative and >360 values;
// NaN and infinities map to "N".
func DirectionFor(angle float64) string {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return compassPoints[0]
	}

	// Half-sector ties round up so that a and a+360k always agree.
	idx := math.Mod(math.Floor(angle/22.5+0.5), 16)
	if idx < 0 {
		idx += 16
	}
	return compassPoints[int(idx)]
}
