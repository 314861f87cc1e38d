package ledger

import (
	"encoding/csv"
	"fmt"
	"os"

	"PortfolioAdvisor/internal/model"
)

// CSVSource loads the ledger from a CSV file with a header row.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a CSV-backed ledger source.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Name() string { return "csv" }

func (s *CSVSource) Load() ([]model.Transaction, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ledger csv %s is empty", s.Path)
	}
	return parseTransactions(records[0], records[1:])
}
