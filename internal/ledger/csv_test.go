package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

const sampleLedger = `ID,TICKER,ASSET_CLASS,SECTOR,ACQUIRED,PURCHASE_PRICE,QUANTITY,QUANT_RATING,ALPHA_PICKED
1,MSFT,Equity,Technology,2023-04-12,285.50,10,4.62,true
2,SCHD,ETF,Diversified,2023-06-01,72.10,50.5,3.10,false
3,MSFT,Equity,Technology,2024-01-08,370.00,5,4.62,true
`

func writeLedger(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCSVSource_Load(t *testing.T) {
	src := NewCSVSource(writeLedger(t, sampleLedger))
	txs, err := src.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}

	first := txs[0]
	if first.ID != 1 || first.Ticker != "MSFT" || first.Sector != "Technology" {
		t.Errorf("unexpected first transaction: %+v", first)
	}
	if !first.PurchasePrice.Equal(decimal.NewFromFloat(285.50)) {
		t.Errorf("price: expected 285.50, got %s", first.PurchasePrice)
	}
	if !first.AlphaPicked {
		t.Error("expected ALPHA_PICKED true")
	}
	if got := first.Acquired.Format("2006-01-02"); got != "2023-04-12" {
		t.Errorf("acquired: expected 2023-04-12, got %s", got)
	}
	if !txs[1].Quantity.Equal(decimal.NewFromFloat(50.5)) {
		t.Errorf("fractional quantity: expected 50.5, got %s", txs[1].Quantity)
	}
}

func TestCSVSource_MissingColumn(t *testing.T) {
	content := "ID,TICKER,SECTOR,ACQUIRED,PURCHASE_PRICE,QUANTITY,QUANT_RATING,ALPHA_PICKED\n"
	src := NewCSVSource(writeLedger(t, content))
	_, err := src.Load()
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestCSVSource_MalformedRow(t *testing.T) {
	content := sampleLedger + "4,AAPL,Equity,Technology,not-a-date,180.00,3,4.0,false\n"
	src := NewCSVSource(writeLedger(t, content))
	if _, err := src.Load(); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestCSVSource_HeaderCaseInsensitive(t *testing.T) {
	content := `id,ticker,asset_class,sector,acquired,purchase_price,quantity,quant_rating,alpha_picked
7,IBM,Equity,Technology,2022-11-30,140.25,8,3.9,false
`
	src := NewCSVSource(writeLedger(t, content))
	txs, err := src.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 1 || txs[0].Ticker != "IBM" {
		t.Fatalf("unexpected transactions: %+v", txs)
	}
}
