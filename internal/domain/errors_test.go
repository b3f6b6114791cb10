package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := NewError(KindMalformedCSV, "malformed CSV", errors.New("bare \" in non-quoted field"))

	assert.True(t, errors.Is(err, ErrMalformedCSV))
	assert.False(t, errors.Is(err, ErrEmptyFile))

	wrapped := fmt.Errorf("ingest: %w", err)
	assert.True(t, errors.Is(wrapped, ErrMalformedCSV))
	assert.Equal(t, KindMalformedCSV, KindOf(wrapped))
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "plain",
			err:  ErrNoDataUploaded,
			want: "no data uploaded yet",
		},
		{
			name: "missing columns",
			err:  NewMissingColumnsError([]string{ColumnTimestamp, ColumnTransactionAmount}),
			want: "CSV is missing required columns: timestamp, transaction_amount",
		},
		{
			name: "with cause",
			err:  NewError(KindInvalidDateFormat, "invalid start_date format", errors.New("bad month")),
			want: "invalid start_date format: bad month",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("boom")))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}

func TestNewDatasetInfo(t *testing.T) {
	assert.Equal(t, DatasetInfo{}, NewDatasetInfo(nil))

	ds := &Dataset{
		ID:           "ds-1",
		Filename:     "data.csv",
		Columns:      RequiredColumns,
		Transactions: []Transaction{{TransactionID: "1"}, {TransactionID: "2"}},
	}
	info := NewDatasetInfo(ds)
	assert.True(t, info.Loaded)
	assert.Equal(t, "ds-1", info.DatasetID)
	assert.Equal(t, 2, info.Rows)
	assert.NotNil(t, info.LoadedAt)
}
