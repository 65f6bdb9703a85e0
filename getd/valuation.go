package getd

import (
	"github.com/stockagent/datapipe/conf"
	"github.com/stockagent/datapipe/db"
	"github.com/stockagent/datapipe/model"
	"github.com/stockagent/datapipe/schema"
)

//getStockAIndicator pulls daily valuation metrics. The provider serves
//the whole history per symbol, so the driver trims to the decided
//window before writing.
func getStockAIndicator(env *Env, s *db.Session) (rows int64, e error) {
	latest, processed, e := tableWatermark(s, string(model.STOCK_A_INDICATOR), "stock_code", "trade_date")
	if e != nil {
		return 0, e
	}
	today := Today()
	floor := conf.Args.FixedStartDate
	etl, _ := etlStamp()
	var failed []string
	for i, stk := range env.Stks.List {
		if !pace(env.Ctx, i) {
			return rows, env.Ctx.Err()
		}
		w := FetchWindow(latest, processed[stk.Code], floor, today)
		if w.Skip {
			continue
		}
		t, err := env.Src.ValuationDaily(stk.Code)
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("stock_a_indicator %s fetch failed: %+v", stk.Code, err)
			continue
		}
		vs, err := schema.ValuationFrom(t, stk.Code, stk.Name, etl)
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("stock_a_indicator %s: %+v", stk.Code, err)
			continue
		}
		var keep []*model.StockAIndicator
		for _, v := range vs {
			if v.TradeDate >= w.Start && v.TradeDate <= w.End {
				keep = append(keep, v)
			}
		}
		if len(keep) == 0 {
			continue
		}
		n, err := SaveBatch(s, env.Pool, model.STOCK_A_INDICATOR, keep)
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("stock_a_indicator %s write failed: %+v", stk.Code, err)
			continue
		}
		rows += n
	}
	if len(failed) > 0 {
		log.Warnf("stock_a_indicator: %d symbols failed: %v", len(failed), failed)
	}
	return rows, nil
}
