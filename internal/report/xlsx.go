package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"PortfolioAdvisor/internal/model"
)

// XLSXWriter writes one workbook per run with Portfolio, Buys and Sells
// sheets.
type XLSXWriter struct {
	Dir string
}

// NewXLSXWriter creates a writer that saves workbooks under dir.
func NewXLSXWriter(dir string) *XLSXWriter {
	return &XLSXWriter{Dir: dir}
}

var portfolioHeader = []string{
	"TICKER", "ALPHA_PICKED", "QUANT_RATING", "ASSET_CLASS", "SECTOR",
	"WEIGHTED_AVG_PURCHASE_DATE", "TOTAL_COST", "TOTAL_QUANTITY",
	"AVG_PURCHASE_PRICE", "PRICE", "BUY_THRESHOLD", "GRAHAM_THRESHOLD",
	"EXIT", "P/E", "P/B", "DIV_YIELD", "DECISION", "VALUE", "PW%",
	"TOTAL_RETURN", "ROI", "YEARS_HELD", "TARGET", "CAGR", "DESIRED_POS",
	"POS_ADJUSTMENT",
}

var buysHeader = []string{"TICKER", "POS_ADJUSTMENT", "PRICE", "BUY_THRESHOLD", "GRAHAM_THRESHOLD", "DECISION"}

var sellsHeader = []string{"TICKER", "POS_ADJUSTMENT", "PRICE", "EXIT", "TARGET", "DECISION"}

func (w *XLSXWriter) WriteRun(run *RunReport) (string, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const portfolioSheet = "Portfolio"
	f.SetSheetName(f.GetSheetName(0), portfolioSheet)
	writeHeader(f, portfolioSheet, portfolioHeader)
	for i, r := range run.Portfolio.Rows {
		writeRow(f, portfolioSheet, i+2, []interface{}{
			r.Ticker, r.AlphaPicked, r.QuantRating, r.AssetClass, r.Sector,
			r.WeightedAvgPurchaseDate.Format("2006-01-02"),
			r.TotalCost, r.TotalQuantity, r.AvgPurchasePrice,
			cell(r.MarketPrice), cell(r.BuyThreshold), cell(r.GrahamBuyThreshold),
			cell(r.ExitPrice), cell(r.PERatio), cell(r.PBRatio),
			cell(r.DividendYield), string(r.Decision), cell(r.Value),
			cell(r.WeightPct), cell(r.TotalReturn), cell(r.ROI),
			cell(r.YearsHeld), cell(r.TargetPrice), cell(r.CAGR),
			cell(r.DesiredValue), cell(r.Adjustment),
		})
	}

	writeActions(f, "Buys", buysHeader, run.Buys, func(a model.ActionRow) []interface{} {
		return []interface{}{a.Ticker, cell(a.Adjustment), cell(a.MarketPrice),
			cell(a.BuyThreshold), cell(a.GrahamBuyThreshold), string(a.Decision)}
	})
	writeActions(f, "Sells", sellsHeader, run.Sells, func(a model.ActionRow) []interface{} {
		return []interface{}{a.Ticker, cell(a.Adjustment), cell(a.MarketPrice),
			cell(a.ExitPrice), cell(a.TargetPrice), string(a.Decision)}
	})

	path := filepath.Join(w.Dir, fmt.Sprintf("portfolio_%s.xlsx", run.GeneratedAt.Format("2006-01-02")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}

func writeActions(f *excelize.File, sheet string, header []string, actions []model.ActionRow, toRow func(model.ActionRow) []interface{}) {
	f.NewSheet(sheet)
	writeHeader(f, sheet, header)
	for i, a := range actions {
		writeRow(f, sheet, i+2, toRow(a))
	}
}

func writeHeader(f *excelize.File, sheet string, header []string) {
	for i, h := range header {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, fmt.Sprintf("%s1", col), h)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for i, v := range values {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
	}
}

// cell maps NA numerics to a blank cell.
func cell(v float64) interface{} {
	if model.IsNA(v) {
		return ""
	}
	return v
}
