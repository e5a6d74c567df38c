package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/i474232898/marine-forecast/internal/common"
	"github.com/i474232898/marine-forecast/internal/weather"
)

// Page markers and selectors of the windfinder forecast page.
const (
	pushMarker = "window.ctx.push"
	dataKey    = "fcData"

	airTemperatureSelector = "div.data-temp.data--major.weathertable__cell span.units-at"
	wavePeriodSelector     = "div.data-wavefreq.data--minor.weathertable__cell"
	spotNameSelector       = "span#spotheader-spotname"
)

// Keys of a single slot inside the embedded data block.
const (
	keyTimestamp   = "dtl"
	keyWindBearing = "wd"
	keyWindSpeed   = "ws"
	keyWaveBearing = "wad"
	keyWaveHeight  = "wh"
)

// WindfinderProvider implements weather.Source for a windfinder forecast page.
type WindfinderProvider struct {
	name    string
	url     string
	fetcher weather.Fetcher
}

func NewWindfinderProvider(fetcher weather.Fetcher, url string) *WindfinderProvider {
	return &WindfinderProvider{
		name:    "windfinder",
		url:     url,
		fetcher: fetcher,
	}
}

func (p *WindfinderProvider) Name() string {
	return p.name
}

func (p *WindfinderProvider) URL() string {
	return p.url
}

// Scrape fetches the forecast page and extracts its raw series.
func (p *WindfinderProvider) Scrape(ctx context.Context) (weather.RawBundle, error) {
	if p.fetcher == nil {
		return weather.RawBundle{}, fmt.Errorf("windfinder fetcher is not configured")
	}

	page, err := p.fetcher.Fetch(ctx, p.url)
	if err != nil {
		return weather.RawBundle{}, err
	}
	return ExtractHTML(page)
}

// ExtractHTML parses document text and extracts its raw series.
func ExtractHTML(documentText string) (weather.RawBundle, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(documentText))
	if err != nil {
		return weather.RawBundle{}, weather.NewExtractionError(weather.ErrMalformedData, "parse document", err)
	}
	return Extract(doc)
}

// Extract pulls the embedded forecast block, the DOM-only series and the spot
// name out of a parsed forecast page. Nothing is returned unless all of them
// were found.
func Extract(doc *goquery.Document) (weather.RawBundle, error) {
	records, err := embeddedRecords(doc)
	if err != nil {
		return weather.RawBundle{}, err
	}

	bundle := bundleFromRecords(records)
	bundle.AirTemperatures = leadingInts(doc, airTemperatureSelector)
	bundle.WavePeriods = leadingInts(doc, wavePeriodSelector)

	spot := doc.Find(spotNameSelector).First()
	if spot.Length() == 0 {
		return weather.RawBundle{}, weather.NewExtractionError(weather.ErrMissingSpot, spotNameSelector, nil)
	}
	bundle.SpotName = strings.TrimSpace(spot.Text())
	if bundle.SpotName == "" {
		return weather.RawBundle{}, weather.NewExtractionError(weather.ErrMissingSpot, "empty "+spotNameSelector, nil)
	}

	return bundle, nil
}

// embeddedRecords decodes the forecast slots of the last data block pushed by
// the page scripts.
func embeddedRecords(doc *goquery.Document) ([]map[string]any, error) {
	var (
		candidates int
		lastArray  string
		scanErr    error
	)

	doc.Find("script").Each(func(_ int, script *goquery.Selection) {
		text := script.Text()
		if !common.HasAny(text, pushMarker) || !common.ContainsFold(text, dataKey) {
			return
		}
		candidates++

		arrays, err := dataArrays(text, dataKey)
		if err != nil {
			scanErr = err
			return
		}
		if len(arrays) > 0 {
			lastArray = arrays[len(arrays)-1]
		}
	})

	if candidates == 0 {
		return nil, weather.NewExtractionError(weather.ErrNoDataBlock, "", nil)
	}
	if lastArray == "" {
		if scanErr == nil {
			scanErr = errNoArray
		}
		return nil, weather.NewExtractionError(weather.ErrMalformedData, "isolate "+dataKey, scanErr)
	}

	var records []map[string]any
	if err := json.Unmarshal([]byte(lastArray), &records); err != nil {
		return nil, weather.NewExtractionError(weather.ErrMalformedData, "decode "+dataKey, err)
	}
	return records, nil
}

func bundleFromRecords(records []map[string]any) weather.RawBundle {
	b := weather.RawBundle{
		Timestamps:   make([]string, 0, len(records)),
		WindBearings: make([]float64, 0, len(records)),
		WindSpeeds:   make([]float64, 0, len(records)),
		WaveBearings: make([]*float64, 0, len(records)),
		WaveHeights:  make([]*float64, 0, len(records)),
	}

	for _, rec := range records {
		ts, _ := rec[keyTimestamp].(string)
		b.Timestamps = append(b.Timestamps, ts)

		// Unusable wind values degrade to 0 instead of failing the scrape.
		windBearing, _ := numberField(rec, keyWindBearing)
		b.WindBearings = append(b.WindBearings, windBearing)
		windSpeed, _ := numberField(rec, keyWindSpeed)
		b.WindSpeeds = append(b.WindSpeeds, windSpeed)

		b.WaveBearings = append(b.WaveBearings, optionalNumber(rec, keyWaveBearing))
		b.WaveHeights = append(b.WaveHeights, optionalNumber(rec, keyWaveHeight))
	}
	return b
}

func numberField(rec map[string]any, key string) (float64, bool) {
	switch v := rec[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func optionalNumber(rec map[string]any, key string) *float64 {
	v, ok := numberField(rec, key)
	if !ok {
		return nil
	}
	return &v
}

// leadingInts reads the first whitespace separated token of every element
// matching selector as an integer, 0 when it is not one.
func leadingInts(doc *goquery.Document, selector string) []int {
	var values []int
	doc.Find(selector).Each(func(_ int, cell *goquery.Selection) {
		n := 0
		if fields := strings.Fields(cell.Text()); len(fields) > 0 {
			if v, err := strconv.Atoi(fields[0]); err == nil {
				n = v
			}
		}
		values = append(values, n)
	})
	return values
}
