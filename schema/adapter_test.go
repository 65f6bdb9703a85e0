package schema

import (
	"math"
	"testing"

	"github.com/stockagent/datapipe/fetch"
)

func TestCompanyInfoFrom(t *testing.T) {
	tab := &fetch.Table{
		Cols: []string{"item", "value"},
		Rows: [][]string{
			{"股票代码", "000001"},
			{"股票简称", "平安银行"},
			{"总股本", "19405918198"},
			{"流通股", "19405600653"},
			{"总市值", "225000000000"},
			{"流通市值", "224000000000"},
			{"行业", "银行"},
			{"上市时间", "19910403"},
		},
	}
	ci, e := CompanyInfoFrom(tab, "000001", "2025-01-15", "2025-01-15 10:00:00", 20250115)
	if e != nil {
		t.Fatal(e)
	}
	if ci.StockName.String != "平安银行" || ci.Industry.String != "银行" {
		t.Errorf("unexpected: %+v", ci)
	}
	if ci.IPODate.String != "1991-04-03" {
		t.Errorf("ipo date not normalized: %+v", ci.IPODate)
	}
	if !ci.TotalMarketCap100M.Valid || math.Abs(ci.TotalMarketCap100M.Float64-2250) > 1e-6 {
		t.Errorf("market cap not in 亿元: %+v", ci.TotalMarketCap100M)
	}
	if !ci.TotalShares.Valid || ci.TotalShares.Float64 != 19405918198 {
		t.Errorf("unexpected shares: %+v", ci.TotalShares)
	}
}

func TestFinanceInfoFrom(t *testing.T) {
	tab := &fetch.Table{
		Cols: []string{"报告期", "净利润", "净利润同比增长率", "营业总收入", "基本每股收益", "毛利率", "资产负债率", "营业周期", "流动比率", "神秘列"},
		Rows: [][]string{
			{"2024-09-30", "397.29亿", "0.24%", "1115.82亿", "2.05", "48.10%", "91.95%", "89.3天", "1.08", "x"},
			{"2024-06-30", "258.79亿", "1.94%", "771.32亿", "1.34", "48.64%", "92.04%", "91.0天", "1.06", "y"},
		},
	}
	fis, e := FinanceInfoFrom(tab, "000001", "平安银行", "2025-01-15", "2025-01-15 10:00:00", 20250115)
	if e != nil {
		t.Fatal(e)
	}
	if len(fis) != 2 {
		t.Fatalf("unexpected count: %d", len(fis))
	}
	fi := fis[0]
	if fi.ReportDate != "2024-09-30" {
		t.Errorf("unexpected report date: %s", fi.ReportDate)
	}
	if !fi.NetProfit100M.Valid || math.Abs(fi.NetProfit100M.Float64-397.29) > 1e-6 {
		t.Errorf("net profit not in 亿元: %+v", fi.NetProfit100M)
	}
	if !fi.NetProfitYoy.Valid || math.Abs(fi.NetProfitYoy.Float64-0.0024) > 1e-9 {
		t.Errorf("yoy not a fraction: %+v", fi.NetProfitYoy)
	}
	if !fi.GrossMargin.Valid || math.Abs(fi.GrossMargin.Float64-0.481) > 1e-9 {
		t.Errorf("margin not a fraction: %+v", fi.GrossMargin)
	}
	// eps stays in yuan
	if !fi.BasicEps.Valid || fi.BasicEps.Float64 != 2.05 {
		t.Errorf("unexpected eps: %+v", fi.BasicEps)
	}
	if !fi.OpCycle.Valid || fi.OpCycle.Float64 != 89.3 {
		t.Errorf("day suffix not stripped: %+v", fi.OpCycle)
	}
	if !fi.CurrentRatio.Valid || fi.CurrentRatio.Float64 != 1.08 {
		t.Errorf("plain ratio must not be scaled: %+v", fi.CurrentRatio)
	}
}

func TestFinanceInfoFromMissingReportDate(t *testing.T) {
	tab := &fetch.Table{Cols: []string{"净利润"}, Rows: [][]string{{"1亿"}}}
	if _, e := FinanceInfoFrom(tab, "000001", "", "", "", 0); e == nil {
		t.Error("expected error for missing 报告期")
	}
}

func TestKlineFrom(t *testing.T) {
	tab := &fetch.Table{
		Cols: []string{"日期", "开盘", "收盘", "最高", "最低", "成交量", "成交额", "振幅", "涨跌幅", "涨跌额", "换手率"},
		Rows: [][]string{
			{"2025-01-14", "11.50", "11.61", "11.70", "11.45", "1203456", "1398765432", "2.17", "1.13", "0.13", "0.62"},
		},
	}
	qs, e := KlineFrom(tab, "000001", "2025-01-15 10:00:00", 20250115)
	if e != nil {
		t.Fatal(e)
	}
	if len(qs) != 1 {
		t.Fatalf("unexpected count: %d", len(qs))
	}
	q := qs[0]
	if q.Date != "2025-01-14" || q.Close != 11.61 {
		t.Errorf("unexpected: %+v", q)
	}
	if !q.Amount100M.Valid || math.Abs(q.Amount100M.Float64-13.98765432) > 1e-9 {
		t.Errorf("amount not in 亿元: %+v", q.Amount100M)
	}
	// plain percent column keeps its percent scale
	if !q.PriceChangePercent.Valid || q.PriceChangePercent.Float64 != 1.13 {
		t.Errorf("unexpected change percent: %+v", q.PriceChangePercent)
	}
}

func TestValuationFromDerived(t *testing.T) {
	tab := &fetch.Table{
		Cols: []string{"trade_date", "pe", "pe_ttm", "pb", "ps", "ps_ttm", "dv_ratio", "dv_ttm", "total_mv"},
		Rows: [][]string{
			{"2025-01-14", "5.2", "5.0", "0.55", "", "", "4.8", "4.9", "225000000000"},
			{"2025-01-13", "-3.1", "", "0.6", "", "", "", "", "220000000000"},
		},
	}
	vs, e := ValuationFrom(tab, "000001", "平安银行", "2025-01-15 10:00:00")
	if e != nil {
		t.Fatal(e)
	}
	v := vs[0]
	// 100/5.2 = 19.2307..., stored rounded
	if !v.EarningsYield.Valid || v.EarningsYield.Float64 != 19.23 {
		t.Errorf("earnings yield should round to 2 decimals: %+v", v.EarningsYield)
	}
	// 1/0.55 = 1.8181..., stored rounded
	if !v.PbInverse.Valid || v.PbInverse.Float64 != 1.82 {
		t.Errorf("pb inverse should round to 2 decimals: %+v", v.PbInverse)
	}
	if !v.GrahamIndex.Valid || v.GrahamIndex.Float64 != 2.86 {
		t.Errorf("graham index should round to 2 decimals: %+v", v.GrahamIndex)
	}
	if !v.TotalMv100M.Valid || math.Abs(v.TotalMv100M.Float64-2250) > 1e-6 {
		t.Errorf("total mv not in 亿元: %+v", v.TotalMv100M)
	}
	// negative pe: no derived valuation
	n := vs[1]
	if n.EarningsYield.Valid || n.GrahamIndex.Valid {
		t.Errorf("negative pe must not derive: %+v", n)
	}
	if !n.PbInverse.Valid {
		t.Errorf("positive pb should still derive: %+v", n)
	}
}

func TestValuationFromRepeatingFractions(t *testing.T) {
	tab := &fetch.Table{
		Cols: []string{"trade_date", "pe", "pe_ttm", "pb", "ps", "ps_ttm", "dv_ratio", "dv_ttm", "total_mv"},
		Rows: [][]string{
			{"2025-01-14", "3", "", "3", "", "", "", "", ""},
		},
	}
	vs, e := ValuationFrom(tab, "000002", "", "2025-01-15 10:00:00")
	if e != nil {
		t.Fatal(e)
	}
	v := vs[0]
	if v.EarningsYield.Float64 != 33.33 {
		t.Errorf("unexpected earnings yield: %+v", v.EarningsYield)
	}
	if v.PbInverse.Float64 != 0.33 {
		t.Errorf("unexpected pb inverse: %+v", v.PbInverse)
	}
	if v.GrahamIndex.Float64 != 9 {
		t.Errorf("unexpected graham index: %+v", v.GrahamIndex)
	}
}

func TestNewsFromDropsBlank(t *testing.T) {
	tab := &fetch.Table{
		Cols: []string{"新闻标题", "新闻内容", "发布时间", "文章来源", "新闻链接"},
		Rows: [][]string{
			{"平安银行发布季报", "内容", "2025-01-14 09:30:00", "证券时报", "http://x"},
			{"", "孤儿内容", "2025-01-14 10:00:00", "", ""},
		},
	}
	ns, e := NewsFrom(tab, "000001", "2025-01-15 10:00:00", "2025-01-15 10:00:00")
	if e != nil {
		t.Fatal(e)
	}
	if len(ns) != 1 || ns[0].NewsTitle != "平安银行发布季报" {
		t.Errorf("unexpected: %+v", ns)
	}
}

func TestAnalystFrom(t *testing.T) {
	tab := &fetch.Table{
		Cols: []string{"股票代码", "股票名称", "调入日期", "最新评级日期", "当前评级名称", "成交价格(前复权)", "最新价格", "阶段涨跌幅"},
		Rows: [][]string{
			{"000001", "平安银行", "2024-10-12 00:00:00", "2024-12-01 00:00:00", "买入", "11.20", "11.61", "3.66"},
		},
	}
	a := Analyst{ID: "11000280036", Name: "张三", Unit: "某证券", Industry: "银行"}
	rs, e := AnalystFrom(tab, a, "2025-01-15", "2025-01-15 10:00:00", 20250115)
	if e != nil {
		t.Fatal(e)
	}
	if len(rs) != 1 {
		t.Fatalf("unexpected count: %d", len(rs))
	}
	r := rs[0]
	if r.AddDate != "2024-10-12" || r.LastRatingDate.String != "2024-12-01" {
		t.Errorf("dates not normalized: %+v", r)
	}
	if r.AnalystID != a.ID || r.AnalystName.String != "张三" {
		t.Errorf("profile not joined: %+v", r)
	}
}
