package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies an ingestion or query failure.
type ErrorKind string

const (
	// Ingestion
	KindInvalidFileType ErrorKind = "InvalidFileType"
	KindEmptyFile       ErrorKind = "EmptyFile"
	KindEncodingError   ErrorKind = "EncodingError"
	KindMalformedCSV    ErrorKind = "MalformedCSV"
	KindMissingColumns  ErrorKind = "MissingColumns"
	KindEmptyDataset    ErrorKind = "EmptyDataset"

	// Query
	KindNoDataUploaded    ErrorKind = "NoDataUploaded"
	KindInvalidDateFormat ErrorKind = "InvalidDateFormat"
	KindNoMatchingData    ErrorKind = "NoMatchingData"
	KindInvalidTimestamp  ErrorKind = "InvalidTimestamp"
	KindInvalidAmount     ErrorKind = "InvalidAmount"
)

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrInvalidFileType = &Error{Kind: KindInvalidFileType, Message: "only CSV files are accepted"}
	ErrEmptyFile       = &Error{Kind: KindEmptyFile, Message: "empty file"}
	ErrEncodingError   = &Error{Kind: KindEncodingError, Message: "invalid file encoding"}
	ErrMalformedCSV    = &Error{Kind: KindMalformedCSV, Message: "malformed CSV"}
	ErrMissingColumns  = &Error{Kind: KindMissingColumns, Message: "missing required columns"}
	ErrEmptyDataset    = &Error{Kind: KindEmptyDataset, Message: "no data found"}

	ErrNoDataUploaded    = &Error{Kind: KindNoDataUploaded, Message: "no data uploaded yet"}
	ErrInvalidDateFormat = &Error{Kind: KindInvalidDateFormat, Message: "invalid date format"}
	ErrNoMatchingData    = &Error{Kind: KindNoMatchingData, Message: "no transactions found for this user and date range"}
	ErrInvalidTimestamp  = &Error{Kind: KindInvalidTimestamp, Message: "invalid timestamp"}
	ErrInvalidAmount     = &Error{Kind: KindInvalidAmount, Message: "invalid transaction amount"}
)

// Error is the typed failure returned by ingestion and queries.
type Error struct {
	Kind           ErrorKind
	Message        string
	MissingColumns []string
	Err            error
}

func (e *Error) Error() string {
	msg := e.Message
	if len(e.MissingColumns) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(e.MissingColumns, ", "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewError builds an *Error of the given kind.
func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewMissingColumnsError reports the absent required columns.
func NewMissingColumnsError(columns []string) *Error {
	return &Error{
		Kind:           KindMissingColumns,
		Message:        "CSV is missing required columns",
		MissingColumns: columns,
	}
}

// KindOf extracts the ErrorKind from err, or "" when err carries none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
