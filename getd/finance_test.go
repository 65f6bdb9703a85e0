package getd

import (
	"testing"

	"github.com/stockagent/datapipe/model"
)

func reports(dates ...string) []*model.FinanceInfo {
	fis := make([]*model.FinanceInfo, len(dates))
	for i, d := range dates {
		fis[i] = &model.FinanceInfo{StockCode: "000001", ReportDate: d}
	}
	return fis
}

func dates(fis []*model.FinanceInfo) []string {
	ds := make([]string, len(fis))
	for i, fi := range fis {
		ds[i] = fi.ReportDate
	}
	return ds
}

func TestFilterFinanceColdStart(t *testing.T) {
	fis := reports("2023-12-31", "2024-09-30", "2024-12-31")
	out := filterFinance(fis, "", false, "2024-09-24")
	if len(out) != 2 || out[0].ReportDate != "2024-09-30" {
		t.Errorf("unexpected: %v", dates(out))
	}
}

func TestFilterFinanceNewQuarter(t *testing.T) {
	// watermark at 2024-06-30, floor excludes history; new quarter kept,
	// watermark quarter kept only for unprocessed symbols
	fis := reports("2024-03-31", "2024-06-30", "2024-09-30")
	out := filterFinance(fis, "2024-06-30", true, "2024-09-24")
	if len(out) != 1 || out[0].ReportDate != "2024-09-30" {
		t.Errorf("unexpected: %v", dates(out))
	}
	out = filterFinance(fis, "2024-06-30", false, "2024-09-24")
	if len(out) != 2 || out[0].ReportDate != "2024-06-30" || out[1].ReportDate != "2024-09-30" {
		t.Errorf("unexpected: %v", dates(out))
	}
}

func TestFilterFinanceFloorUnion(t *testing.T) {
	// reports past the floor are kept even below the watermark; the keyed
	// insert absorbs duplicates
	fis := reports("2024-09-30", "2024-12-31")
	out := filterFinance(fis, "2024-12-31", true, "2024-09-24")
	if len(out) != 2 {
		t.Errorf("unexpected: %v", dates(out))
	}
}
