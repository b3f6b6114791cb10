package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"transaction-summary/internal/domain"
)

// IngestionUseCase validates uploaded files and loads them into the store.
type IngestionUseCase struct {
	store  DatasetStore
	reader TableReader
	now    func() time.Time
	newID  func() string
}

// IngestionOption customises an IngestionUseCase.
type IngestionOption func(*IngestionUseCase)

// WithClock sets the clock used to stamp loaded datasets.
func WithClock(now func() time.Time) IngestionOption {
	return func(uc *IngestionUseCase) {
		uc.now = now
	}
}

// WithIDGenerator sets the generator for dataset ids.
func WithIDGenerator(newID func() string) IngestionOption {
	return func(uc *IngestionUseCase) {
		uc.newID = newID
	}
}

// NewIngestionUseCase creates a new instance of the usecase.
func NewIngestionUseCase(store DatasetStore, reader TableReader, opts ...IngestionOption) *IngestionUseCase {
	uc := &IngestionUseCase{
		store:  store,
		reader: reader,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Ingest validates content and, if every check passes, replaces the active
// dataset with it. On failure the previous dataset stays in place.
func (uc *IngestionUseCase) Ingest(ctx context.Context, filename string, content []byte) (*domain.UploadAck, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return nil, domain.NewError(domain.KindInvalidFileType, "only CSV files are accepted", nil)
	}
	if len(content) == 0 {
		return nil, domain.NewError(domain.KindEmptyFile, "empty file", nil)
	}

	table, err := uc.reader.ReadTable(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", filename, err)
	}

	ds := &domain.Dataset{
		ID:           uc.newID(),
		Filename:     filename,
		LoadedAt:     uc.now().UTC(),
		Columns:      table.Columns,
		UserIDKind:   inferUserIDKind(table.Rows),
		Transactions: table.Rows,
	}
	uc.store.Replace(ds)

	return &domain.UploadAck{
		Message:   "File uploaded successfully",
		Filename:  filename,
		DatasetID: ds.ID,
		Rows:      ds.Len(),
	}, nil
}

// Info describes the active dataset.
func (uc *IngestionUseCase) Info() domain.DatasetInfo {
	ds, _ := uc.store.Current()
	return domain.NewDatasetInfo(ds)
}
