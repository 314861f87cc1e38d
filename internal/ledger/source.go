package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"PortfolioAdvisor/internal/model"
)

// Source loads the transaction ledger from some tabular backing store.
type Source interface {
	Load() ([]model.Transaction, error)
	Name() string
}

// ErrMissingColumn indicates a required ledger column is absent.
var ErrMissingColumn = errors.New("missing required column")

// Required ledger columns, in canonical order.
var requiredColumns = []string{
	"ID", "TICKER", "ASSET_CLASS", "SECTOR", "ACQUIRED",
	"PURCHASE_PRICE", "QUANTITY", "QUANT_RATING", "ALPHA_PICKED",
}

// columnIndex maps required column names to their position in the header.
// Header matching is case-insensitive and whitespace-tolerant.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return idx, nil
}

// parseTransactions converts header+rows into Transactions. Blank rows are
// skipped; any malformed cell fails the whole load with a row reference.
func parseTransactions(header []string, rows [][]string) ([]model.Transaction, error) {
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	cell := func(row []string, col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	txs := make([]model.Transaction, 0, len(rows))
	for n, row := range rows {
		if isBlank(row) {
			continue
		}
		id, err := strconv.ParseInt(cell(row, "ID"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse ID: %w", n+1, err)
		}
		acquired, err := parseDate(cell(row, "ACQUIRED"))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse ACQUIRED: %w", n+1, err)
		}
		price, err := decimal.NewFromString(cell(row, "PURCHASE_PRICE"))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse PURCHASE_PRICE: %w", n+1, err)
		}
		qty, err := decimal.NewFromString(cell(row, "QUANTITY"))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse QUANTITY: %w", n+1, err)
		}
		rating, err := strconv.ParseFloat(cell(row, "QUANT_RATING"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse QUANT_RATING: %w", n+1, err)
		}
		alpha, err := strconv.ParseBool(strings.ToLower(cell(row, "ALPHA_PICKED")))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse ALPHA_PICKED: %w", n+1, err)
		}
		txs = append(txs, model.Transaction{
			ID:            id,
			Ticker:        cell(row, "TICKER"),
			AssetClass:    cell(row, "ASSET_CLASS"),
			Sector:        cell(row, "SECTOR"),
			Acquired:      acquired,
			PurchasePrice: price,
			Quantity:      qty,
			QuantRating:   rating,
			AlphaPicked:   alpha,
		})
	}
	return txs, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var dateLayouts = []string{"2006-01-02", "01/02/2006", "2006-01-02 15:04:05"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
