package getd

import (
	"github.com/stockagent/datapipe/conf"
	"github.com/stockagent/datapipe/db"
	"github.com/stockagent/datapipe/model"
	"github.com/stockagent/datapipe/schema"
	"github.com/stockagent/datapipe/util"
)

//getIndividualStock pulls forward-adjusted daily quotes using the
//shared per-symbol window decision.
func getIndividualStock(env *Env, s *db.Session) (rows int64, e error) {
	latest, processed, e := tableWatermark(s, string(model.INDIVIDUAL_STOCK), "Stock_Code", "Date")
	if e != nil {
		return 0, e
	}
	today := Today()
	floor := conf.Args.FixedStartDate
	etl, biz := etlStamp()
	var failed []string
	for i, stk := range env.Stks.List {
		if !pace(env.Ctx, i) {
			return rows, env.Ctx.Err()
		}
		w := FetchWindow(latest, processed[stk.Code], floor, today)
		if w.Skip {
			continue
		}
		t, err := env.Src.DailyKline(stk.Code, util.Compact(w.Start), util.Compact(w.End))
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("individual_stock %s fetch failed: %+v", stk.Code, err)
			continue
		}
		if t.Empty() {
			continue
		}
		qs, err := schema.KlineFrom(t, stk.Code, etl, biz)
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("individual_stock %s: %+v", stk.Code, err)
			continue
		}
		n, err := SaveBatch(s, env.Pool, model.INDIVIDUAL_STOCK, qs)
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("individual_stock %s write failed: %+v", stk.Code, err)
			continue
		}
		rows += n
	}
	if len(failed) > 0 {
		log.Warnf("individual_stock: %d symbols failed: %v", len(failed), failed)
	}
	return rows, nil
}

//tableWatermark reads the shared watermark state: the table-wide
//latest date and the symbols already processed at that date.
func tableWatermark(s *db.Session, table, symCol, dateCol string) (latest string, processed map[string]bool, e error) {
	if latest, e = LatestDate(s, table, dateCol); e != nil {
		return
	}
	processed = map[string]bool{}
	if latest != "" {
		processed, e = SymbolsAt(s, table, symCol, dateCol, latest)
	}
	return
}
