package gateway

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"transaction-summary/internal/domain"
)

// CSVTableReader turns uploaded bytes into a validated transaction table.
type CSVTableReader struct{}

// NewCSVTableReader creates a new reader instance.
func NewCSVTableReader() *CSVTableReader {
	return &CSVTableReader{}
}

// ReadTable decodes content as UTF-8 CSV, checks the header for the required
// columns and projects every data row onto them. Checks run in order and the
// first failure is returned.
func (r *CSVTableReader) ReadTable(ctx context.Context, content []byte) (*domain.Table, error) {
	text, err := decodeUTF8(content)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(text))
	// Every row must have as many fields as the header.
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if err == io.EOF {
		return nil, domain.NewError(domain.KindMalformedCSV, "CSV has no header row", nil)
	}
	if err != nil {
		return nil, domain.NewError(domain.KindMalformedCSV, "could not read CSV header", err)
	}

	columns := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		columns[i] = name
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	// The whole file must parse before the header is checked for the required columns.
	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, domain.NewError(domain.KindMalformedCSV, "could not read CSV record", err)
		}
		records = append(records, record)
	}

	var missing []string
	for _, name := range domain.RequiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, domain.NewMissingColumnsError(missing)
	}

	rows := make([]domain.Transaction, 0, len(records))
	for _, record := range records {
		rows = append(rows, domain.Transaction{
			TransactionID:     record[index[domain.ColumnTransactionID]],
			UserID:            record[index[domain.ColumnUserID]],
			ProductID:         record[index[domain.ColumnProductID]],
			Timestamp:         record[index[domain.ColumnTimestamp]],
			TransactionAmount: record[index[domain.ColumnTransactionAmount]],
		})
	}

	if len(rows) == 0 {
		return nil, domain.NewError(domain.KindEmptyDataset, "CSV contains a header but no data rows", nil)
	}

	return &domain.Table{Columns: columns, Rows: rows}, nil
}

// decodeUTF8 rejects content that is not UTF-8 and strips a leading byte order mark.
func decodeUTF8(content []byte) ([]byte, error) {
	if offset := invalidUTF8Offset(content); offset >= 0 {
		return nil, domain.NewError(
			domain.KindEncodingError,
			"file is not valid UTF-8 text",
			fmt.Errorf("invalid byte at offset %d", offset),
		)
	}
	text, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), content)
	if err != nil {
		return nil, domain.NewError(domain.KindEncodingError, "could not decode file as UTF-8", err)
	}
	return text, nil
}

// invalidUTF8Offset returns the offset of the first invalid byte, or -1.
func invalidUTF8Offset(content []byte) int {
	for offset := 0; offset < len(content); {
		if content[offset] < utf8.RuneSelf {
			offset++
			continue
		}
		r, size := utf8.DecodeRune(content[offset:])
		if r == utf8.RuneError && size == 1 {
			return offset
		}
		offset += size
	}
	return -1
}
