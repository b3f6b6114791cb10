package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"

	"transaction-summary/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVTableReader_ReadTable(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected *domain.Table
		wantKind domain.ErrorKind
	}{
		{
			name: "valid transactions",
			content: csvLines(
				"transaction_id,user_id,product_id,timestamp,transaction_amount",
				"1,101,1001,2024-01-01 10:00:00,100.50",
				"2,102,1002,2024-01-02 11:00:00,250.75",
			),
			expected: &domain.Table{
				Columns: domain.RequiredColumns,
				Rows: []domain.Transaction{
					{TransactionID: "1", UserID: "101", ProductID: "1001", Timestamp: "2024-01-01 10:00:00", TransactionAmount: "100.50"},
					{TransactionID: "2", UserID: "102", ProductID: "1002", Timestamp: "2024-01-02 11:00:00", TransactionAmount: "250.75"},
				},
			},
		},
		{
			name: "reordered and extra columns",
			content: csvLines(
				"transaction_amount,channel,timestamp,user_id,product_id,transaction_id",
				"42,web,2024-03-01 09:00:00,7,p-1,t-1",
			),
			expected: &domain.Table{
				Columns: []string{"transaction_amount", "channel", "timestamp", "user_id", "product_id", "transaction_id"},
				Rows: []domain.Transaction{
					{TransactionID: "t-1", UserID: "7", ProductID: "p-1", Timestamp: "2024-03-01 09:00:00", TransactionAmount: "42"},
				},
			},
		},
		{
			name: "byte order mark and CRLF line endings",
			content: "\ufefftransaction_id,user_id,product_id,timestamp,transaction_amount\r\n" +
				"1,101,1001,2024-01-01 10:00:00,10\r\n",
			expected: &domain.Table{
				Columns: domain.RequiredColumns,
				Rows: []domain.Transaction{
					{TransactionID: "1", UserID: "101", ProductID: "1001", Timestamp: "2024-01-01 10:00:00", TransactionAmount: "10"},
				},
			},
		},
		{
			name: "duplicate transaction ids pass through",
			content: csvLines(
				"transaction_id,user_id,product_id,timestamp,transaction_amount",
				"1,101,1001,2024-01-01 10:00:00,10",
				"1,101,1001,2024-01-01 10:00:00,10",
			),
			expected: &domain.Table{
				Columns: domain.RequiredColumns,
				Rows: []domain.Transaction{
					{TransactionID: "1", UserID: "101", ProductID: "1001", Timestamp: "2024-01-01 10:00:00", TransactionAmount: "10"},
					{TransactionID: "1", UserID: "101", ProductID: "1001", Timestamp: "2024-01-01 10:00:00", TransactionAmount: "10"},
				},
			},
		},
		{
			name:     "invalid utf-8",
			content:  "transaction_id,user_id\n\xff\xfe,1\n",
			wantKind: domain.KindEncodingError,
		},
		{
			name: "ragged row",
			content: csvLines(
				"transaction_id,user_id,product_id,timestamp,transaction_amount",
				"1,101,1001,2024-01-01 10:00:00",
			),
			wantKind: domain.KindMalformedCSV,
		},
		{
			name: "unterminated quote",
			content: csvLines(
				"transaction_id,user_id,product_id,timestamp,transaction_amount",
				`1,"101,1001,2024-01-01 10:00:00,10`,
			),
			wantKind: domain.KindMalformedCSV,
		},
		{
			name:     "blank lines only",
			content:  "\n\n",
			wantKind: domain.KindMalformedCSV,
		},
		{
			name:     "plain sentence is not a transaction header",
			content:  "This is not a valid CSV content",
			wantKind: domain.KindMissingColumns,
		},
		{
			name: "header only",
			content: csvLines(
				"transaction_id,user_id,product_id,timestamp,transaction_amount",
			),
			wantKind: domain.KindEmptyDataset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewCSVTableReader()

			got, err := reader.ReadTable(context.Background(), []byte(tt.content))
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Nil(t, got)
				assert.Equal(t, tt.wantKind, domain.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCSVTableReader_MissingColumnsNamed(t *testing.T) {
	reader := NewCSVTableReader()
	content := csvLines(
		"transaction_id,user_id,product_id,timestamp",
		"1,101,1001,2024-01-01 10:00:00",
	)

	_, err := reader.ReadTable(context.Background(), []byte(content))
	require.Error(t, err)

	var derr *domain.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, domain.KindMissingColumns, derr.Kind)
	assert.Equal(t, []string{"transaction_amount"}, derr.MissingColumns)
}

func TestCSVTableReader_SchemaCheckedBeforeRowCount(t *testing.T) {
	reader := NewCSVTableReader()

	_, err := reader.ReadTable(context.Background(), []byte("user_id,transaction_amount\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingColumns))

	var derr *domain.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, []string{"transaction_id", "product_id", "timestamp"}, derr.MissingColumns)
}

func TestCSVTableReader_MalformedWrapsParseError(t *testing.T) {
	reader := NewCSVTableReader()
	content := csvLines(
		"transaction_id,user_id,product_id,timestamp,transaction_amount",
		"1,101,1001,2024-01-01 10:00:00,10",
		"2,101,1001",
	)

	_, err := reader.ReadTable(context.Background(), []byte(content))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedCSV))
	assert.Contains(t, err.Error(), "line 3")
}

func TestCSVTableReader_ParseCheckedBeforeSchema(t *testing.T) {
	reader := NewCSVTableReader()

	_, err := reader.ReadTable(context.Background(), []byte("user_id,transaction_amount\n1,2\n3,4,5\n"))
	require.Error(t, err)
	assert.Equal(t, domain.KindMalformedCSV, domain.KindOf(err))
}

func TestCSVTableReader_EncodingErrorOffset(t *testing.T) {
	reader := NewCSVTableReader()

	_, err := reader.ReadTable(context.Background(), []byte("transaction_id,\u00e9\n\xff,1\n"))
	require.Error(t, err)
	assert.Equal(t, domain.KindEncodingError, domain.KindOf(err))
	assert.Contains(t, err.Error(), "offset 18")
}

func csvLines(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// Benchmark tests

func BenchmarkReadTable(b *testing.B) {
	lines := []string{"transaction_id,user_id,product_id,timestamp,transaction_amount"}
	for i := 0; i < 1000; i++ {
		lines = append(lines, "1,101,1001,2024-01-01 10:00:00,150.00")
	}
	content := []byte(csvLines(lines...))

	reader := NewCSVTableReader()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := reader.ReadTable(ctx, content); err != nil {
			b.Fatalf("Error in benchmark: %v", err)
		}
	}
}
