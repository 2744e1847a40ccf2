package glreport

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSheetRows(t *testing.T) {
	l := process(t, validReport(), DefaultOptions(2022))
	rows := l.Account("Cash Float-Ware").SheetRows()
	want := []struct {
		id, amount, balance string
	}{
		{"BALFWD", "500.00", "500.00"},
		{"CF010522", "250.00", "750.00"},
		{"CF012022", "-100.00", "650.00"},
		{"BALFWD", "650.00", "650.00"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, w := range want {
		r := rows[i]
		if r.Identifier != w.id || r.Amount.String() != w.amount || r.Balance.String() != w.balance || r.Number != "1010-01" {
			t.Errorf("row %d = %v, want %v", i, r.record(), w)
		}
	}
}

func TestWriteSheet_RoundTrip(t *testing.T) {
	l := process(t, validReport(), DefaultOptions(2022))

	var buf bytes.Buffer
	if err := WriteSummary(&buf, l); err != nil {
		t.Fatalf("WriteSummary() unexpected error: %v", err)
	}
	rows, err := ReadSheet(&buf)
	if err != nil {
		t.Fatalf("ReadSheet() unexpected error: %v", err)
	}
	want := keys(l)
	if len(rows) != len(want) {
		t.Fatalf("ReadSheet() = %d rows, want %d", len(rows), len(want))
	}
	for _, r := range rows {
		amount, ok := want[r.Key()]
		if !ok || !amount.Equal(r.Amount) {
			t.Errorf("row %v does not match a ledger transaction", r.record())
		}
	}
}

func TestWriteSheets(t *testing.T) {
	l := process(t, validReport(), DefaultOptions(2022))
	dir := t.TempDir()
	files, err := WriteSheets(dir, l)
	if err != nil {
		t.Fatalf("WriteSheets() unexpected error: %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("WriteSheets() wrote %v, want 3 accounts and the summary", files)
	}
	path := filepath.Join(dir, "2000_Accounts_Payable.csv")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("missing sheet: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	// header, opening, 4 transactions, closing.
	if len(records) != 7 {
		t.Errorf("got %d records, want 7", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(SheetHeader, ",") {
		t.Errorf("header = %v", records[0])
	}
	if last := records[len(records)-1]; last[7] != "13040.35" {
		t.Errorf("closing row balance = %s, want 13040.35", last[7])
	}
}

func TestReadSheet_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"Date,Amount\n",
		strings.Join(SheetHeader, ",") + "\n2000,Accounts Payable,2022-13-01,AP1,AP,Phone,1.00,1.00\n",
		strings.Join(SheetHeader, ",") + "\n2000,Accounts Payable,2022-01-01,AP1,AP,Phone,one,1.00\n",
	}
	for _, tc := range testCases {
		if _, err := ReadSheet(strings.NewReader(tc)); err == nil {
			t.Errorf("ReadSheet(%q) expected an error", tc)
		}
	}
}
