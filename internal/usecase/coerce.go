package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"transaction-summary/internal/domain"
)

// timestampLayouts are tried in order when a query needs a row's timestamp.
// Values without a zone are read as UTC.
var timestampLayouts = []string{
	time.DateTime,
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04",
	time.DateOnly,
}

// nullMarkers are cell values treated as missing.
var nullMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"#n/a": true,
	"nan":  true,
	"null": true,
	"none": true,
}

func isBlank(value string) bool {
	return nullMarkers[strings.ToLower(strings.TrimSpace(value))]
}

// parseNumber reads value as an exact decimal, so large integer ids keep every digit.
func parseNumber(value string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// inferUserIDKind reports numeric when every non-blank user_id is a number.
func inferUserIDKind(rows []domain.Transaction) domain.UserIDKind {
	seen := false
	for _, tx := range rows {
		if isBlank(tx.UserID) {
			continue
		}
		if _, ok := parseNumber(tx.UserID); !ok {
			return domain.UserIDText
		}
		seen = true
	}
	if !seen {
		return domain.UserIDText
	}
	return domain.UserIDNumeric
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

// parseDateBound parses an optional YYYY-MM-DD query bound. An empty value means no bound.
func parseDateBound(param, value string) (time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, false, domain.NewError(
			domain.KindInvalidDateFormat,
			fmt.Sprintf("invalid %s format: %s (expected YYYY-MM-DD)", param, value),
			err,
		)
	}
	return t, true, nil
}
