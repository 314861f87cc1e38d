package ledger

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"PortfolioAdvisor/internal/model"
)

// SQLiteSource loads the ledger from a SQLite table. The database is an
// input only: nothing is ever written back.
type SQLiteSource struct {
	Path  string
	Table string
}

// NewSQLiteSource creates a SQLite-backed ledger source.
func NewSQLiteSource(path, table string) *SQLiteSource {
	if table == "" {
		table = "transactions"
	}
	return &SQLiteSource{Path: path, Table: table}
}

func (s *SQLiteSource) Name() string { return "sqlite" }

func (s *SQLiteSource) Load() ([]model.Transaction, error) {
	db, err := sql.Open("sqlite", s.Path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}
	defer db.Close()

	query := fmt.Sprintf(
		`SELECT ID, TICKER, ASSET_CLASS, SECTOR, ACQUIRED, PURCHASE_PRICE, QUANTITY, QUANT_RATING, ALPHA_PICKED FROM %s ORDER BY ID`,
		s.Table)
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		var (
			tx       model.Transaction
			acquired string
			price    float64
			qty      float64
		)
		if err := rows.Scan(&tx.ID, &tx.Ticker, &tx.AssetClass, &tx.Sector,
			&acquired, &price, &qty, &tx.QuantRating, &tx.AlphaPicked); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		t, err := parseDate(acquired)
		if err != nil {
			return nil, fmt.Errorf("ledger row %d: parse ACQUIRED: %w", tx.ID, err)
		}
		tx.Acquired = t
		tx.PurchasePrice = decimal.NewFromFloat(price)
		tx.Quantity = decimal.NewFromFloat(qty)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger rows: %w", err)
	}
	return txs, nil
}
