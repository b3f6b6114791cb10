package api

import (
	"errors"
	"net/http"

	"transaction-summary/internal/domain"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error          string   `json:"error"`
	Kind           string   `json:"kind,omitempty"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}

// StatusFor maps an ingestion or query error to its HTTP status.
func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindInvalidFileType,
		domain.KindEmptyFile,
		domain.KindEncodingError,
		domain.KindMalformedCSV,
		domain.KindMissingColumns,
		domain.KindEmptyDataset,
		domain.KindNoDataUploaded,
		domain.KindInvalidDateFormat,
		domain.KindInvalidTimestamp,
		domain.KindInvalidAmount:
		return http.StatusBadRequest
	case domain.KindNoMatchingData:
		return http.StatusNotFound
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// WriteError writes err as a JSON error body with the status StatusFor picks.
// Errors without a kind are reported with a generic message.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)

	var derr *domain.Error
	if !errors.As(err, &derr) {
		msg := "internal server error"
		if status == http.StatusRequestEntityTooLarge {
			msg = "file too large"
		}
		WriteJSON(w, status, ErrorResponse{Error: msg})
		return
	}

	WriteJSON(w, status, ErrorResponse{
		Error:          derr.Error(),
		Kind:           string(derr.Kind),
		MissingColumns: derr.MissingColumns,
	})
}

// writeBadRequest reports a malformed request that never reached the use cases.
func writeBadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: message})
}
