package usecase

import (
	"context"

	"transaction-summary/internal/domain"
)

// DatasetStore holds the dataset served to queries.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_interface.go -package=mock_usecase -source=interface.go
type DatasetStore interface {
	Replace(ds *domain.Dataset)
	Current() (*domain.Dataset, bool)
	IsLoaded() bool
}

// TableReader parses uploaded bytes into a validated transaction table.
type TableReader interface {
	ReadTable(ctx context.Context, content []byte) (*domain.Table, error)
}
