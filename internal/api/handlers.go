package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"transaction-summary/internal/domain"
	"transaction-summary/internal/logger"
)

// multipartMemory is how much of an upload ParseMultipartForm keeps in memory
// before spilling to a temp file.
const multipartMemory = 8 << 20

// Ingester loads uploaded files into the active dataset.
type Ingester interface {
	Ingest(ctx context.Context, filename string, content []byte) (*domain.UploadAck, error)
	Info() domain.DatasetInfo
}

// Summarizer answers per-user summary queries.
type Summarizer interface {
	Summarize(ctx context.Context, params domain.QueryParams) (*domain.SummaryResult, error)
}

// Handlers serves the HTTP endpoints.
type Handlers struct {
	ingester   Ingester
	summarizer Summarizer
	maxBytes   int64
	formField  string
	now        func() time.Time
}

// NewHandlers creates the handler set. maxBytes bounds the request body of
// an upload and formField names the multipart field carrying the file.
func NewHandlers(ingester Ingester, summarizer Summarizer, maxBytes int64, formField string) *Handlers {
	return &Handlers{
		ingester:   ingester,
		summarizer: summarizer,
		maxBytes:   maxBytes,
		formField:  formField,
		now:        time.Now,
	}
}

// Upload handles POST /upload
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn().Int64("limit", tooLarge.Limit).Msg("Upload rejected: body too large")
			WriteError(w, err)
			return
		}
		writeBadRequest(w, "request must be multipart/form-data")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile(h.formField)
	if err != nil {
		writeBadRequest(w, "missing form field "+h.formField)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		WriteError(w, err)
		return
	}

	ack, err := h.ingester.Ingest(r.Context(), header.Filename, content)
	if err != nil {
		log.Warn().Err(err).Str("filename", header.Filename).Msg("Upload rejected")
		WriteError(w, err)
		return
	}

	log.Info().
		Str("filename", ack.Filename).
		Str("dataset_id", ack.DatasetID).
		Int("rows", ack.Rows).
		Msg("Dataset replaced")
	WriteJSON(w, http.StatusOK, ack)
}

// Summary handles GET /summary/{user_id}
func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	params := domain.QueryParams{
		UserID:    chi.URLParam(r, "user_id"),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.summarizer.Summarize(r.Context(), params)
	if err != nil {
		log := logger.FromContext(r.Context())
		if StatusFor(err) == http.StatusInternalServerError {
			log.Error().Err(err).Str("user_id", params.UserID).Msg("Summary failed")
		} else {
			log.Debug().Err(err).Str("user_id", params.UserID).Msg("Summary rejected")
		}
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// Dataset handles GET /dataset
func (h *Handlers) Dataset(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.ingester.Info())
}

// Health handles GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"dataset_loaded": h.ingester.Info().Loaded,
		"time":           h.now().UTC().Format(time.RFC3339),
	})
}
