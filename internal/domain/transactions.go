package domain

import "time"

// Required column names, in the order they are reported when missing.
const (
	ColumnTransactionID     = "transaction_id"
	ColumnUserID            = "user_id"
	ColumnProductID         = "product_id"
	ColumnTimestamp         = "timestamp"
	ColumnTransactionAmount = "transaction_amount"
)

// RequiredColumns lists every column an uploaded CSV must carry.
var RequiredColumns = []string{
	ColumnTransactionID,
	ColumnUserID,
	ColumnProductID,
	ColumnTimestamp,
	ColumnTransactionAmount,
}

// Transaction is one row of an uploaded dataset.
// Values are kept exactly as they appeared in the CSV; amounts and timestamps
// are coerced when a query needs them.
type Transaction struct {
	TransactionID     string `json:"transaction_id"`
	UserID            string `json:"user_id"`
	ProductID         string `json:"product_id"`
	Timestamp         string `json:"timestamp"`
	TransactionAmount string `json:"transaction_amount"`
}

// Table is a parsed CSV projected onto the required columns.
type Table struct {
	Columns []string      `json:"columns"`
	Rows    []Transaction `json:"rows"`
}

// UserIDKind describes how user_id values are compared.
type UserIDKind string

const (
	UserIDNumeric UserIDKind = "numeric"
	UserIDText    UserIDKind = "text"
)

// Dataset is the table currently served to queries.
// A Dataset is never modified after it has been handed to the store.
type Dataset struct {
	ID           string        `json:"id"`
	Filename     string        `json:"filename"`
	LoadedAt     time.Time     `json:"loaded_at"`
	Columns      []string      `json:"columns"`
	UserIDKind   UserIDKind    `json:"user_id_kind"`
	Transactions []Transaction `json:"-"`
}

// Len returns the number of stored rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Transactions)
}

// QueryParams are the inputs of a summary query. Empty dates mean no bound.
type QueryParams struct {
	UserID    string
	StartDate string
	EndDate   string
}
