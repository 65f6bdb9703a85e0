package fetch

import (
	"fmt"

	"github.com/pkg/errors"
)

type dcResp struct {
	Success bool `json:"success"`
	Result  *struct {
		Pages int                      `json:"pages"`
		Data  []map[string]interface{} `json:"data"`
	} `json:"result"`
}

const dcURL = "https://datacenter-web.eastmoney.com/api/data/v1/get"

//AnalystRank lists the ranked analysts of a year:
//分析师ID, 分析师名称, 分析师单位, 行业.
func (p *Provider) AnalystRank(year string) (*Table, error) {
	t := &Table{Cols: []string{"分析师ID", "分析师名称", "分析师单位", "行业"}}
	for page := 1; ; page++ {
		url := fmt.Sprintf(dcURL+"?reportName=RPT_ANALYST_INDEX_RANK&columns=ALL"+
			"&sortColumns=YEAR_YIELD&sortTypes=-1&pageNumber=%d&pageSize=100"+
			"&filter=(YEAR=%%22%s%%22)", page, year)
		var r dcResp
		if e := getJSON(url, &r); e != nil {
			return nil, e
		}
		if !r.Success || r.Result == nil {
			if page == 1 {
				return nil, errors.Wrapf(ErrFatal, "analyst rank query for %s rejected", year)
			}
			break
		}
		for _, d := range r.Result.Data {
			t.Rows = append(t.Rows, []string{
				cellStr(d["ANALYST_CODE"]),
				cellStr(d["ANALYST_NAME"]),
				cellStr(d["ORG_NAME"]),
				cellStr(d["INDUSTRY_NAME"]),
			})
		}
		if page >= r.Result.Pages {
			break
		}
	}
	return t, nil
}

//AnalystCoverage lists the stocks an analyst currently tracks:
//股票代码, 股票名称, 调入日期, 最新评级日期, 当前评级名称,
//成交价格(前复权), 最新价格, 阶段涨跌幅.
func (p *Provider) AnalystCoverage(analystID string) (*Table, error) {
	url := fmt.Sprintf(dcURL+"?reportName=RPT_ANALYST_INDEX_STOCK&columns=ALL"+
		"&sortColumns=ADD_DATE&sortTypes=-1&pageNumber=1&pageSize=500"+
		"&filter=(ANALYST_CODE=%%22%s%%22)", analystID)
	var r dcResp
	if e := getJSON(url, &r); e != nil {
		return nil, e
	}
	t := &Table{Cols: []string{
		"股票代码", "股票名称", "调入日期", "最新评级日期", "当前评级名称",
		"成交价格(前复权)", "最新价格", "阶段涨跌幅",
	}}
	if r.Result == nil {
		return t, nil
	}
	for _, d := range r.Result.Data {
		t.Rows = append(t.Rows, []string{
			cellStr(d["SECURITY_CODE"]),
			cellStr(d["SECURITY_NAME_ABBR"]),
			cellStr(d["ADD_DATE"]),
			cellStr(d["RATING_DATE"]),
			cellStr(d["RATING_NAME"]),
			cellStr(d["ADJUST_PRICE"]),
			cellStr(d["NEW_PRICE"]),
			cellStr(d["STAGE_CHANGE"]),
		})
	}
	return t, nil
}
