package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"transaction-summary/internal/domain"
)

// SummaryUseCase answers per-user aggregate queries against the active dataset.
type SummaryUseCase struct {
	store            DatasetStore
	strictTimestamps bool
}

// SummaryOption customises a SummaryUseCase.
type SummaryOption func(*SummaryUseCase)

// WithStrictTimestamps controls what happens to a row whose timestamp cannot
// be parsed while a date bound applies: strict fails the query with
// InvalidTimestamp, lenient drops the row. Strict is the default.
func WithStrictTimestamps(strict bool) SummaryOption {
	return func(uc *SummaryUseCase) {
		uc.strictTimestamps = strict
	}
}

// NewSummaryUseCase creates a new instance of the usecase.
func NewSummaryUseCase(store DatasetStore, opts ...SummaryOption) *SummaryUseCase {
	uc := &SummaryUseCase{store: store, strictTimestamps: true}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Summarize filters the active dataset to params.UserID and the optional
// inclusive date bounds, then computes max, min and mean amount plus the row count.
func (uc *SummaryUseCase) Summarize(ctx context.Context, params domain.QueryParams) (*domain.SummaryResult, error) {
	ds, ok := uc.store.Current()
	if !ok {
		return nil, domain.NewError(domain.KindNoDataUploaded, "no data uploaded yet", nil)
	}

	start, hasStart, err := parseDateBound("start_date", params.StartDate)
	if err != nil {
		return nil, err
	}
	end, hasEnd, err := parseDateBound("end_date", params.EndDate)
	if err != nil {
		return nil, err
	}

	rows := filterByUser(ds, params.UserID)

	if hasStart || hasEnd {
		window := dateWindow{start: start, end: end, hasStart: hasStart, hasEnd: hasEnd}
		rows, err = filterByDate(rows, window, uc.strictTimestamps)
		if err != nil {
			return nil, err
		}
	}

	if len(rows) == 0 {
		return nil, domain.NewError(domain.KindNoMatchingData, "no transactions found for this user and date range", nil)
	}

	return aggregate(params.UserID, rows)
}

// filterByUser keeps the rows of userID. The dataset's user_id kind decides
// whether values are compared as numbers or as exact strings.
func filterByUser(ds *domain.Dataset, userID string) []domain.Transaction {
	var filtered []domain.Transaction

	if ds.UserIDKind == domain.UserIDNumeric {
		want, ok := parseNumber(userID)
		if !ok {
			return nil
		}
		for _, tx := range ds.Transactions {
			if got, ok := parseNumber(tx.UserID); ok && got.Equal(want) {
				filtered = append(filtered, tx)
			}
		}
		return filtered
	}

	for _, tx := range ds.Transactions {
		if tx.UserID == userID {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}

type dateWindow struct {
	start, end       time.Time
	hasStart, hasEnd bool
}

// contains reports whether t falls on or after the start day and on or before
// the last instant of the end day.
func (w dateWindow) contains(t time.Time) bool {
	if w.hasStart && t.Before(w.start) {
		return false
	}
	if w.hasEnd && t.After(w.end.Add(24*time.Hour-time.Nanosecond)) {
		return false
	}
	return true
}

func filterByDate(transactions []domain.Transaction, w dateWindow, strict bool) ([]domain.Transaction, error) {
	var filtered []domain.Transaction
	for _, tx := range transactions {
		ts, err := parseTimestamp(tx.Timestamp)
		if err != nil {
			if strict {
				return nil, domain.NewError(
					domain.KindInvalidTimestamp,
					fmt.Sprintf("could not parse timestamp of transaction %s", tx.TransactionID),
					err,
				)
			}
			continue
		}
		if w.contains(ts) {
			filtered = append(filtered, tx)
		}
	}
	return filtered, nil
}

// aggregate computes the summary of a non-empty row set. Blank amounts are
// counted but left out of max, min and mean.
func aggregate(userID string, rows []domain.Transaction) (*domain.SummaryResult, error) {
	var maxAmt, minAmt, sum decimal.Decimal
	numeric := 0

	for _, tx := range rows {
		if isBlank(tx.TransactionAmount) {
			continue
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(tx.TransactionAmount))
		if err != nil {
			return nil, domain.NewError(
				domain.KindInvalidAmount,
				fmt.Sprintf("transaction %s has a non-numeric amount %q", tx.TransactionID, tx.TransactionAmount),
				err,
			)
		}
		if numeric == 0 || amount.GreaterThan(maxAmt) {
			maxAmt = amount
		}
		if numeric == 0 || amount.LessThan(minAmt) {
			minAmt = amount
		}
		sum = sum.Add(amount)
		numeric++
	}

	if numeric == 0 {
		return nil, domain.NewError(domain.KindInvalidAmount, "no numeric transaction amounts for this user and date range", nil)
	}

	return &domain.SummaryResult{
		UserID:                userID,
		MaxTransactionAmount:  maxAmt.InexactFloat64(),
		MinTransactionAmount:  minAmt.InexactFloat64(),
		MeanTransactionAmount: sum.InexactFloat64() / float64(numeric),
		Count:                 len(rows),
	}, nil
}
