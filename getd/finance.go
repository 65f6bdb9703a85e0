package getd

import (
	"github.com/stockagent/datapipe/conf"
	"github.com/stockagent/datapipe/db"
	"github.com/stockagent/datapipe/model"
	"github.com/stockagent/datapipe/schema"
)

//getFinanceInfo appends newly published quarterly reports. The
//provider serves the full history in one call, so the driver filters
//locally against the table watermark.
func getFinanceInfo(env *Env, s *db.Session) (rows int64, e error) {
	latest, e := LatestDate(s, string(model.FINANCE_INFO), "report_date")
	if e != nil {
		return 0, e
	}
	processed := map[string]bool{}
	if latest != "" {
		if processed, e = SymbolsAt(s, string(model.FINANCE_INFO), "stock_code", "report_date", latest); e != nil {
			return 0, e
		}
	}
	today := Today()
	etl, biz := etlStamp()
	floor := conf.Args.FixedStartDate
	var failed []string
	for i, stk := range env.Stks.List {
		if !pace(env.Ctx, i) {
			return rows, env.Ctx.Err()
		}
		t, err := env.Src.FinanceAbstract(stk.Code)
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("finance_info %s fetch failed: %+v", stk.Code, err)
			continue
		}
		fis, err := schema.FinanceInfoFrom(t, stk.Code, stk.Name, today, etl, biz)
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("finance_info %s: %+v", stk.Code, err)
			continue
		}
		fis = filterFinance(fis, latest, processed[stk.Code], floor)
		if len(fis) == 0 {
			continue
		}
		n, err := SaveBatch(s, env.Pool, model.FINANCE_INFO, fis)
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("finance_info %s write failed: %+v", stk.Code, err)
			continue
		}
		rows += n
	}
	if len(failed) > 0 {
		log.Warnf("finance_info: %d symbols failed: %v", len(failed), failed)
	}
	return rows, nil
}

//filterFinance keeps the reports worth (re)writing: anything past the
//watermark, the watermark quarter itself when this symbol missed it,
//and everything from the floor date on. Duplicates are absorbed by the
//keyed insert.
func filterFinance(fis []*model.FinanceInfo, latest string, processed bool, floor string) []*model.FinanceInfo {
	var out []*model.FinanceInfo
	for _, fi := range fis {
		switch {
		case latest == "":
			if fi.ReportDate >= floor {
				out = append(out, fi)
			}
		case fi.ReportDate > latest,
			fi.ReportDate == latest && !processed,
			fi.ReportDate >= floor:
			out = append(out, fi)
		}
	}
	return out
}
