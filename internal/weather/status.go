package weather

// StatusClassifier derives a qualitative wind status from the wind and wave
// directions of one slot. waveDir is empty when the slot has no wave data.
type StatusClassifier interface {
	Classify(windDir, waveDir string) string
}

// StatusClassifierFunc adapts a plain function to StatusClassifier.
type StatusClassifierFunc func(windDir, waveDir string) string

func (f StatusClassifierFunc) Classify(windDir, waveDir string) string {
	return f(windDir, waveDir)
}

// PlaceholderStatus is the label every slot gets until a real rule is supplied.
const PlaceholderStatus = "status"

// PlaceholderClassifier labels every slot with PlaceholderStatus.
var PlaceholderClassifier StatusClassifier = StatusClassifierFunc(func(_, _ string) string {
	return PlaceholderStatus
})
