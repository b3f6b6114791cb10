package domain

import "time"

// SummaryResult holds the aggregates computed for one user.
type SummaryResult struct {
	UserID                string  `json:"user_id"`
	MaxTransactionAmount  float64 `json:"max_transaction_amount"`
	MinTransactionAmount  float64 `json:"min_transaction_amount"`
	MeanTransactionAmount float64 `json:"mean_transaction_amount"`
	Count                 int     `json:"count"`
}

// UploadAck acknowledges a successful upload.
type UploadAck struct {
	Message   string `json:"message"`
	Filename  string `json:"filename"`
	DatasetID string `json:"dataset_id"`
	Rows      int    `json:"rows"`
}

// DatasetInfo describes the active dataset without exposing its rows.
type DatasetInfo struct {
	Loaded    bool       `json:"loaded"`
	DatasetID string     `json:"dataset_id,omitempty"`
	Filename  string     `json:"filename,omitempty"`
	Rows      int        `json:"rows"`
	Columns   []string   `json:"columns,omitempty"`
	LoadedAt  *time.Time `json:"loaded_at,omitempty"`
}

// NewDatasetInfo builds the info view of ds. A nil dataset reports loaded=false.
func NewDatasetInfo(ds *Dataset) DatasetInfo {
	if ds == nil {
		return DatasetInfo{}
	}
	loadedAt := ds.LoadedAt
	return DatasetInfo{
		Loaded:    true,
		DatasetID: ds.ID,
		Filename:  ds.Filename,
		Rows:      ds.Len(),
		Columns:   ds.Columns,
		LoadedAt:  &loadedAt,
	}
}
