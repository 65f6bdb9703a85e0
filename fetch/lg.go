package fetch

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

type lgIndicator struct {
	TradeDate string   `json:"trade_date"`
	PE        *float64 `json:"pe"`
	PETTM     *float64 `json:"pe_ttm"`
	PB        *float64 `json:"pb"`
	PS        *float64 `json:"ps"`
	PSTTM     *float64 `json:"ps_ttm"`
	DVRatio   *float64 `json:"dv_ratio"`
	DVTTM     *float64 `json:"dv_ttm"`
	TotalMV   *float64 `json:"total_mv"`
}

type lgResp struct {
	Code int           `json:"code"`
	Data []lgIndicator `json:"data"`
}

var valuationCols = []string{
	"trade_date", "pe", "pe_ttm", "pb", "ps", "ps_ttm", "dv_ratio", "dv_ttm", "total_mv",
}

//ValuationDaily returns the full per-day valuation history for one
//stock. The provider serves the whole series at once, so filtering by
//date is left to the caller.
func (p *Provider) ValuationDaily(code string) (*Table, error) {
	url := fmt.Sprintf("https://legulegu.com/api/s/base-info/%s", code)
	var r lgResp
	if e := getJSON(url, &r); e != nil {
		return nil, e
	}
	if r.Code != 0 && len(r.Data) == 0 {
		return nil, errors.Wrapf(ErrFatal, "valuation query for %s rejected, code %d", code, r.Code)
	}
	t := &Table{Cols: valuationCols}
	for _, d := range r.Data {
		t.Rows = append(t.Rows, []string{
			d.TradeDate,
			fnullStr(d.PE), fnullStr(d.PETTM), fnullStr(d.PB),
			fnullStr(d.PS), fnullStr(d.PSTTM),
			fnullStr(d.DVRatio), fnullStr(d.DVTTM), fnullStr(d.TotalMV),
		})
	}
	return t, nil
}

func fnullStr(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
