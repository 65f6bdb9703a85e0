package fetch

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

//quoteCols is the daily kline header set, matching the provider field
//order of fields2=f51..f61.
var quoteCols = []string{
	"日期", "开盘", "收盘", "最高", "最低", "成交量", "成交额", "振幅", "涨跌幅", "涨跌额", "换手率",
}

//secID maps a stock code to the provider's market-prefixed security id.
func secID(code string) string {
	if strings.HasPrefix(code, "6") || strings.HasPrefix(code, "9") {
		return "1." + code
	}
	return "0." + code
}

type clistResp struct {
	Data *struct {
		Total int                      `json:"total"`
		Diff  []map[string]interface{} `json:"diff"`
	} `json:"data"`
}

type klineData struct {
	Code   string   `json:"code"`
	Name   string   `json:"name"`
	Klines []string `json:"klines"`
}

type klineResp struct {
	Data *klineData `json:"data"`
}

//StockList returns the full A-share universe: 代码, 名称, 最新价, 涨跌幅.
func (p *Provider) StockList() (*Table, error) {
	url := "http://82.push2.eastmoney.com/api/qt/clist/get?pn=1&pz=8000&po=1&np=1&fltt=2&invt=2" +
		"&fid=f12&fs=m:0+t:6,m:0+t:80,m:1+t:2,m:1+t:23&fields=f2,f3,f12,f14"
	var r clistResp
	if e := getJSON(url, &r); e != nil {
		return nil, e
	}
	if r.Data == nil {
		return nil, errors.Wrap(ErrFatal, "stock list response carries no data")
	}
	t := &Table{Cols: []string{"代码", "名称", "最新价", "涨跌幅"}}
	for _, d := range r.Data.Diff {
		t.Rows = append(t.Rows, []string{
			cellStr(d["f12"]), cellStr(d["f14"]), cellStr(d["f2"]), cellStr(d["f3"]),
		})
	}
	return t, nil
}

//DailyKline returns forward-adjusted daily quotes for the inclusive
//yyyymmdd window. An empty window yields an empty table, not an error.
func (p *Provider) DailyKline(code, start, end string) (*Table, error) {
	url := fmt.Sprintf("http://push2his.eastmoney.com/api/qt/stock/kline/get?"+
		"fields1=f1,f2,f3,f4,f5,f6&fields2=f51,f52,f53,f54,f55,f56,f57,f58,f59,f60,f61"+
		"&klt=101&fqt=1&secid=%s&beg=%s&end=%s", secID(code), start, end)
	var r klineResp
	if e := getJSON(url, &r); e != nil {
		return nil, e
	}
	return klineTable(r.Data), nil
}

func klineTable(data *klineData) *Table {
	t := &Table{Cols: quoteCols}
	if data == nil {
		return t
	}
	for _, k := range data.Klines {
		cells := strings.Split(k, ",")
		if len(cells) != len(quoteCols) {
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

type stockGetResp struct {
	Data map[string]interface{} `json:"data"`
}

//CompanyInfo returns the company profile as item/value pairs with the
//provider's Chinese item names.
func (p *Provider) CompanyInfo(code string) (*Table, error) {
	url := fmt.Sprintf("http://push2.eastmoney.com/api/qt/stock/get?invt=2&fltt=2"+
		"&fields=f57,f58,f84,f85,f116,f117,f127,f189&secid=%s", secID(code))
	var r stockGetResp
	if e := getJSON(url, &r); e != nil {
		return nil, e
	}
	if r.Data == nil {
		return nil, errors.Wrapf(ErrFatal, "no company profile for %s", code)
	}
	items := []struct{ field, item string }{
		{"f57", "股票代码"},
		{"f58", "股票简称"},
		{"f84", "总股本"},
		{"f85", "流通股"},
		{"f116", "总市值"},
		{"f117", "流通市值"},
		{"f127", "行业"},
		{"f189", "上市时间"},
	}
	t := &Table{Cols: []string{"item", "value"}}
	for _, it := range items {
		t.Rows = append(t.Rows, []string{it.item, cellStr(r.Data[it.field])})
	}
	return t, nil
}

//SectorList returns the industry boards: 板块代码, 板块名称.
func (p *Provider) SectorList() (*Table, error) {
	url := "http://82.push2.eastmoney.com/api/qt/clist/get?pn=1&pz=500&po=1&np=1&fltt=2&invt=2" +
		"&fid=f12&fs=m:90+t:2+f:!50&fields=f12,f14"
	var r clistResp
	if e := getJSON(url, &r); e != nil {
		return nil, e
	}
	if r.Data == nil {
		return nil, errors.Wrap(ErrFatal, "sector list response carries no data")
	}
	t := &Table{Cols: []string{"板块代码", "板块名称"}}
	for _, d := range r.Data.Diff {
		t.Rows = append(t.Rows, []string{cellStr(d["f12"]), cellStr(d["f14"])})
	}
	return t, nil
}

//SectorDaily returns the daily series for one industry board over the
//inclusive yyyymmdd window.
func (p *Provider) SectorDaily(boardCode, start, end string) (*Table, error) {
	url := fmt.Sprintf("http://push2his.eastmoney.com/api/qt/stock/kline/get?"+
		"fields1=f1,f2,f3,f4,f5,f6&fields2=f51,f52,f53,f54,f55,f56,f57,f58,f59,f60,f61"+
		"&klt=101&fqt=1&secid=90.%s&beg=%s&end=%s", boardCode, start, end)
	var r klineResp
	if e := getJSON(url, &r); e != nil {
		return nil, e
	}
	return klineTable(r.Data), nil
}
