package weather

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractionErrorIs(t *testing.T) {
	cause := errors.New("invalid character")
	err := NewExtractionError(ErrMalformedData, "decode fcData", cause)

	assert.ErrorIs(t, err, ErrMalformedData)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrMissingSpot)
	assert.Equal(t, "malformed forecast data: decode fcData: invalid character", err.Error())

	wrapped := errors.Join(errors.New("scrape windfinder"), err)
	assert.ErrorIs(t, wrapped, ErrMalformedData)
}

func TestExtractionErrorWithoutCause(t *testing.T) {
	err := NewExtractionError(ErrMissingSpot, "", nil)
	assert.Equal(t, "spot name element not found", err.Error())
	assert.ErrorIs(t, err, ErrMissingSpot)
}

func TestTransportError(t *testing.T) {
	status := &TransportError{URL: "https://example.com", StatusCode: http.StatusBadGateway}
	assert.Equal(t, "fetch https://example.com: unexpected status 502", status.Error())
	assert.Nil(t, errors.Unwrap(status))

	cause := errors.New("connection refused")
	network := &TransportError{URL: "https://example.com", Err: cause}
	assert.ErrorIs(t, network, cause)
}
