package fetch

import "testing"

func TestTableCell(t *testing.T) {
	tab := &Table{
		Cols: []string{"代码", "名称"},
		Rows: [][]string{{"000001", "平安银行"}, {"600000"}},
	}
	if v := tab.Cell(0, "名称"); v != "平安银行" {
		t.Errorf("unexpected: %s", v)
	}
	if v := tab.Cell(1, "名称"); v != "" {
		t.Errorf("ragged row should yield empty: %q", v)
	}
	if v := tab.Cell(0, "不存在"); v != "" {
		t.Errorf("missing column should yield empty: %q", v)
	}
	if v := tab.Cell(5, "代码"); v != "" {
		t.Errorf("out-of-range row should yield empty: %q", v)
	}
}

func TestCellStr(t *testing.T) {
	if v := cellStr("-"); v != "" {
		t.Errorf("suspended marker should be empty: %q", v)
	}
	if v := cellStr(11.61); v != "11.61" {
		t.Errorf("unexpected: %s", v)
	}
	if v := cellStr(nil); v != "" {
		t.Errorf("unexpected: %s", v)
	}
}

func TestSecID(t *testing.T) {
	if s := secID("600000"); s != "1.600000" {
		t.Errorf("unexpected: %s", s)
	}
	if s := secID("000001"); s != "0.000001" {
		t.Errorf("unexpected: %s", s)
	}
	if s := secID("900901"); s != "1.900901" {
		t.Errorf("unexpected: %s", s)
	}
}

func TestKlineTable(t *testing.T) {
	data := &klineData{
		Code: "000001",
		Klines: []string{
			"2025-01-14,11.50,11.61,11.70,11.45,1203456,1398765432,2.17,1.13,0.13,0.62",
			"broken,row",
		},
	}
	tab := klineTable(data)
	if len(tab.Rows) != 1 {
		t.Fatalf("malformed lines must be dropped: %d", len(tab.Rows))
	}
	if v := tab.Cell(0, "收盘"); v != "11.61" {
		t.Errorf("unexpected: %s", v)
	}
	if tab := klineTable(nil); !tab.Empty() {
		t.Errorf("nil data should yield empty table")
	}
}
