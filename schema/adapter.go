//Package schema converts raw provider tables into typed records ready
//for persistence. All header lookup is by name so that upstream column
//reordering does not silently corrupt a dataset; headers not in the
//mapping are logged and dropped.
package schema

import (
	"database/sql"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/stockagent/datapipe/fetch"
	"github.com/stockagent/datapipe/global"
	"github.com/stockagent/datapipe/model"
	"github.com/stockagent/datapipe/util"
)

var log = global.Log

//CompanyInfoFrom builds the company profile from item/value pairs.
//Share counts stay in shares; market caps are converted to 亿元.
func CompanyInfoFrom(t *fetch.Table, code, snapDate, etlDate string, bizDate int64) (*model.CompanyInfo, error) {
	if t.Empty() {
		return nil, errors.Errorf("empty company profile for %s", code)
	}
	items := make(map[string]string)
	for i := range t.Rows {
		items[t.Cell(i, "item")] = t.Cell(i, "value")
	}
	ci := &model.CompanyInfo{
		StockCode:          code,
		StockName:          util.Str2Snull(items["股票简称"]),
		Industry:           util.Str2Snull(items["行业"]),
		IPODate:            util.Str2Snull(util.NormDate(items["上市时间"])),
		TotalShares:        util.Str2Fnull(items["总股本"]),
		FloatShares:        util.Str2Fnull(items["流通股"]),
		TotalMarketCap100M: util.Parse100M(items["总市值"]),
		FloatMarketCap100M: util.Parse100M(items["流通市值"]),
		SnapDate:           snapDate,
		EtlDate:            etlDate,
		BizDate:            bizDate,
	}
	return ci, nil
}

//financeSetters maps the finance abstract headers to field assignment.
//Monetary columns carry 万/亿 suffixes, percentage columns a trailing
//%, day/cycle columns a trailing 天.
var financeSetters = map[string]func(*model.FinanceInfo, string){
	"净利润":          func(f *model.FinanceInfo, v string) { f.NetProfit100M = yuan100M(v) },
	"净利润同比增长率":     func(f *model.FinanceInfo, v string) { f.NetProfitYoy = util.Pct2Fnull(v) },
	"扣非净利润":        func(f *model.FinanceInfo, v string) { f.NetProfitExclNr100M = yuan100M(v) },
	"扣非净利润同比增长率":   func(f *model.FinanceInfo, v string) { f.NetProfitExclNrYoy = util.Pct2Fnull(v) },
	"营业总收入":        func(f *model.FinanceInfo, v string) { f.TotalRevenue100M = yuan100M(v) },
	"营业总收入同比增长率":   func(f *model.FinanceInfo, v string) { f.TotalRevenueYoy = util.Pct2Fnull(v) },
	"基本每股收益":       func(f *model.FinanceInfo, v string) { f.BasicEps = util.Str2Fnull(v) },
	"每股净资产":        func(f *model.FinanceInfo, v string) { f.NetAssetPs = util.Str2Fnull(v) },
	"每股资本公积金":      func(f *model.FinanceInfo, v string) { f.CapitalReservePs = util.Str2Fnull(v) },
	"每股未分配利润":      func(f *model.FinanceInfo, v string) { f.RetainedEarningsPs = util.Str2Fnull(v) },
	"每股经营现金流":      func(f *model.FinanceInfo, v string) { f.OpCashFlowPs = util.Str2Fnull(v) },
	"销售净利率":        func(f *model.FinanceInfo, v string) { f.NetMargin = util.Pct2Fnull(v) },
	"毛利率":          func(f *model.FinanceInfo, v string) { f.GrossMargin = util.Pct2Fnull(v) },
	"净资产收益率":       func(f *model.FinanceInfo, v string) { f.Roe = util.Pct2Fnull(v) },
	"净资产收益率-摊薄":    func(f *model.FinanceInfo, v string) { f.RoeDiluted = util.Pct2Fnull(v) },
	"营业周期":         func(f *model.FinanceInfo, v string) { f.OpCycle = days(v) },
	"存货周转率":        func(f *model.FinanceInfo, v string) { f.InventoryTurnoverRatio = util.Str2Fnull(v) },
	"存货周转天数":       func(f *model.FinanceInfo, v string) { f.InventoryTurnoverDays = days(v) },
	"应收账款周转天数":     func(f *model.FinanceInfo, v string) { f.ArTurnoverDays = days(v) },
	"流动比率":         func(f *model.FinanceInfo, v string) { f.CurrentRatio = util.Str2Fnull(v) },
	"速动比率":         func(f *model.FinanceInfo, v string) { f.QuickRatio = util.Str2Fnull(v) },
	"保守速动比率":       func(f *model.FinanceInfo, v string) { f.ConQuickRatio = util.Str2Fnull(v) },
	"产权比率":         func(f *model.FinanceInfo, v string) { f.DebtEqRatio = util.Str2Fnull(v) },
	"资产负债率":        func(f *model.FinanceInfo, v string) { f.DebtAssetRatio = util.Pct2Fnull(v) },
}

//FinanceInfoFrom builds the full quarterly report history from the
//finance abstract table. 报告期 is required; other headers are applied
//through the setter map, and unmapped headers are dropped with a
//warning.
func FinanceInfoFrom(t *fetch.Table, code, name, snapDate, etlDate string, bizDate int64) ([]*model.FinanceInfo, error) {
	ri := t.ColIdx("报告期")
	if ri < 0 {
		return nil, errors.Errorf("%s: finance abstract misses 报告期: %+v", code, t.Cols)
	}
	for _, c := range t.Cols {
		if c == "报告期" {
			continue
		}
		if _, ok := financeSetters[c]; !ok {
			log.Warnf("%s: unmapped finance column dropped: %s", code, c)
		}
	}
	var fis []*model.FinanceInfo
	for _, row := range t.Rows {
		rd := util.NormDate(row[ri])
		if rd == "" {
			continue
		}
		fi := &model.FinanceInfo{
			StockCode:  code,
			StockName:  util.Str2Snull(name),
			ReportDate: rd,
			SnapDate:   snapDate,
			EtlDate:    etlDate,
			BizDate:    bizDate,
		}
		for j, c := range t.Cols {
			if set, ok := financeSetters[c]; ok && j < len(row) {
				set(fi, row[j])
			}
		}
		fis = append(fis, fi)
	}
	return fis, nil
}

//KlineFrom builds daily quote records. 成交额 arrives in yuan and is
//stored in 亿元.
func KlineFrom(t *fetch.Table, code, etlDate string, bizDate int64) ([]*model.IndividualStock, error) {
	req := []string{"日期", "开盘", "收盘", "最高", "最低", "成交量"}
	for _, c := range req {
		if t.ColIdx(c) < 0 {
			return nil, errors.Errorf("%s: quote table misses %s: %+v", code, c, t.Cols)
		}
	}
	var qs []*model.IndividualStock
	for i := range t.Rows {
		q := &model.IndividualStock{
			StockCode:          code,
			Date:               util.NormDate(t.Cell(i, "日期")),
			Open:               util.Str2F64(t.Cell(i, "开盘")),
			Close:              util.Str2F64(t.Cell(i, "收盘")),
			High:               util.Str2F64(t.Cell(i, "最高")),
			Low:                util.Str2F64(t.Cell(i, "最低")),
			Volume:             util.Str2F64(t.Cell(i, "成交量")),
			Amount100M:         util.Parse100M(t.Cell(i, "成交额")),
			Amplitude:          util.Str2Fnull(t.Cell(i, "振幅")),
			PriceChangePercent: util.Str2Fnull(t.Cell(i, "涨跌幅")),
			PriceChange:        util.Str2Fnull(t.Cell(i, "涨跌额")),
			TurnoverRate:       util.Str2Fnull(t.Cell(i, "换手率")),
			EtlDate:            etlDate,
			BizDate:            bizDate,
		}
		if q.Date == "" {
			continue
		}
		qs = append(qs, q)
	}
	return qs, nil
}

//ValuationFrom builds valuation records with the derived columns:
//earnings_yield = 100/pe, pb_inverse = 1/pb, and graham_index = pe*pb
//rounded to 2 decimals, each only when the inputs are positive.
//total_mv arrives in yuan and is stored in 亿元.
func ValuationFrom(t *fetch.Table, code, name, etlDate string) ([]*model.StockAIndicator, error) {
	if t.ColIdx("trade_date") < 0 {
		return nil, errors.Errorf("%s: valuation table misses trade_date: %+v", code, t.Cols)
	}
	var vs []*model.StockAIndicator
	for i := range t.Rows {
		v := &model.StockAIndicator{
			StockCode:   code,
			StockName:   util.Str2Snull(name),
			TradeDate:   util.NormDate(t.Cell(i, "trade_date")),
			Pe:          util.Str2Fnull(t.Cell(i, "pe")),
			PeTtm:       util.Str2Fnull(t.Cell(i, "pe_ttm")),
			Pb:          util.Str2Fnull(t.Cell(i, "pb")),
			Ps:          util.Str2Fnull(t.Cell(i, "ps")),
			PsTtm:       util.Str2Fnull(t.Cell(i, "ps_ttm")),
			DvRatio:     util.Str2Fnull(t.Cell(i, "dv_ratio")),
			DvTtm:       util.Str2Fnull(t.Cell(i, "dv_ttm")),
			TotalMv100M: util.Parse100M(t.Cell(i, "total_mv")),
			EtlDate:     etlDate,
		}
		if v.TradeDate == "" {
			continue
		}
		deriveValuation(v)
		vs = append(vs, v)
	}
	return vs, nil
}

//deriveValuation fills the derived columns, each rounded to 2 decimals.
func deriveValuation(v *model.StockAIndicator) {
	if v.Pe.Valid && v.Pe.Float64 > 0 {
		v.EarningsYield.Valid = true
		v.EarningsYield.Float64 = round2(100. / v.Pe.Float64)
	}
	if v.Pb.Valid && v.Pb.Float64 > 0 {
		v.PbInverse.Valid = true
		v.PbInverse.Float64 = round2(1. / v.Pb.Float64)
	}
	if v.EarningsYield.Valid && v.PbInverse.Valid {
		v.GrahamIndex.Valid = true
		v.GrahamIndex.Float64 = round2(v.Pe.Float64 * v.Pb.Float64)
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

//SectorFrom builds industry-board daily records. The board is keyed by
//its display name, not the numeric board code.
func SectorFrom(t *fetch.Table, sector, etlDate string) ([]*model.SectorDaily, error) {
	if t.ColIdx("日期") < 0 {
		return nil, errors.Errorf("%s: sector table misses 日期: %+v", sector, t.Cols)
	}
	var ss []*model.SectorDaily
	for i := range t.Rows {
		s := &model.SectorDaily{
			Sector:        sector,
			TradeDate:     util.NormDate(t.Cell(i, "日期")),
			OpenPrice:     util.Str2F64(t.Cell(i, "开盘")),
			ClosePrice:    util.Str2F64(t.Cell(i, "收盘")),
			HighPrice:     util.Str2F64(t.Cell(i, "最高")),
			LowPrice:      util.Str2F64(t.Cell(i, "最低")),
			ChangePercent: util.Str2Fnull(t.Cell(i, "涨跌幅")),
			ChangeAmount:  util.Str2Fnull(t.Cell(i, "涨跌额")),
			Volume:        util.Str2Fnull(t.Cell(i, "成交量")),
			Amount100M:    util.Parse100M(t.Cell(i, "成交额")),
			Amplitude:     util.Str2Fnull(t.Cell(i, "振幅")),
			TurnoverRate:  util.Str2Fnull(t.Cell(i, "换手率")),
			EtlDate:       etlDate,
		}
		if s.TradeDate == "" {
			continue
		}
		ss = append(ss, s)
	}
	return ss, nil
}

//NewsFrom builds news records. Rows without a title or publish time
//are dropped.
func NewsFrom(t *fetch.Table, symbol, snapshotTime, etlDate string) ([]*model.StockNews, error) {
	if t.ColIdx("新闻标题") < 0 || t.ColIdx("发布时间") < 0 {
		return nil, errors.Errorf("%s: news table misses required columns: %+v", symbol, t.Cols)
	}
	var ns []*model.StockNews
	for i := range t.Rows {
		title := strings.TrimSpace(t.Cell(i, "新闻标题"))
		pt := strings.TrimSpace(t.Cell(i, "发布时间"))
		if title == "" || pt == "" {
			continue
		}
		ns = append(ns, &model.StockNews{
			StockSymbol:  symbol,
			NewsTitle:    title,
			NewsContent:  util.Str2Snull(t.Cell(i, "新闻内容")),
			PublishTime:  pt,
			Source:       util.Str2Snull(t.Cell(i, "文章来源")),
			NewsLink:     util.Str2Snull(t.Cell(i, "新闻链接")),
			SnapshotTime: snapshotTime,
			EtlDate:      etlDate,
		})
	}
	return ns, nil
}

//Analyst carries the per-analyst attributes attached to every coverage
//row of that analyst.
type Analyst struct {
	ID       string
	Name     string
	Unit     string
	Industry string
}

//AnalystFrom builds coverage records for one analyst. Rows without an
//add date are dropped.
func AnalystFrom(t *fetch.Table, a Analyst, snapDate, etlDate string, bizDate int64) ([]*model.AnalystRating, error) {
	if t.ColIdx("股票代码") < 0 || t.ColIdx("调入日期") < 0 {
		return nil, errors.Errorf("analyst %s: coverage table misses required columns: %+v", a.ID, t.Cols)
	}
	var rs []*model.AnalystRating
	for i := range t.Rows {
		ad := util.NormDate(t.Cell(i, "调入日期"))
		if ad == "" {
			continue
		}
		rs = append(rs, &model.AnalystRating{
			StockCode:      t.Cell(i, "股票代码"),
			StockName:      util.Str2Snull(t.Cell(i, "股票名称")),
			AnalystID:      a.ID,
			AddDate:        ad,
			LastRatingDate: util.Str2Snull(util.NormDate(t.Cell(i, "最新评级日期"))),
			CurrentRating:  util.Str2Snull(t.Cell(i, "当前评级名称")),
			TradePrice:     util.Str2Fnull(t.Cell(i, "成交价格(前复权)")),
			LatestPrice:    util.Str2Fnull(t.Cell(i, "最新价格")),
			ChangePercent:  util.Str2Fnull(t.Cell(i, "阶段涨跌幅")),
			AnalystName:    util.Str2Snull(a.Name),
			AnalystUnit:    util.Str2Snull(a.Unit),
			IndustryName:   util.Str2Snull(a.Industry),
			SnapDate:       snapDate,
			EtlDate:        etlDate,
			BizDate:        bizDate,
		})
	}
	return rs, nil
}

func yuan100M(v string) sql.NullFloat64 {
	return util.Parse100M(v)
}

func days(v string) sql.NullFloat64 {
	return util.Str2Fnull(strings.TrimSuffix(strings.TrimSpace(v), "天"))
}
