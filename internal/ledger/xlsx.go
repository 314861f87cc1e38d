package ledger

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"PortfolioAdvisor/internal/model"
)

// XLSXSource loads the ledger from an Excel workbook. When Sheet is empty
// the first sheet of the workbook is used.
type XLSXSource struct {
	Path  string
	Sheet string
}

// NewXLSXSource creates an Excel-backed ledger source.
func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{Path: path, Sheet: sheet}
}

func (s *XLSXSource) Name() string { return "xlsx" }

func (s *XLSXSource) Load() ([]model.Transaction, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open ledger workbook: %w", err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}
	return parseTransactions(rows[0], rows[1:])
}
