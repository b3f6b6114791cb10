package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transaction-summary/internal/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidFileType, http.StatusBadRequest},
		{fmt.Errorf("could not read a.csv: %w", domain.ErrMalformedCSV), http.StatusBadRequest},
		{domain.ErrNoDataUploaded, http.StatusBadRequest},
		{domain.ErrInvalidDateFormat, http.StatusBadRequest},
		{domain.ErrInvalidTimestamp, http.StatusBadRequest},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrNoMatchingData, http.StatusNotFound},
		{&http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("could not read a.csv: %w", domain.NewMissingColumnsError([]string{"timestamp"})))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "MissingColumns", body.Kind)
	assert.Equal(t, []string{"timestamp"}, body.MissingColumns)
	assert.Equal(t, "CSV is missing required columns: timestamp", body.Error)

	rec = httptest.NewRecorder()
	WriteError(rec, errors.New("secret internals"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body = ErrorResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Error)
	assert.Empty(t, body.Kind)
}
