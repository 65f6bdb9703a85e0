package getd

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/stockagent/datapipe/conf"
	"github.com/stockagent/datapipe/db"
	"github.com/stockagent/datapipe/model"
	"github.com/stockagent/datapipe/schema"
	"github.com/stockagent/datapipe/util"
)

//getSector pulls industry-board daily series. The universe here is the
//board list rather than the stock universe; the shared window decision
//applies per board, keyed by board name.
func getSector(env *Env, s *db.Session) (rows int64, e error) {
	boards, e := env.Src.SectorList()
	if e != nil {
		return 0, errors.Wrap(e, "failed to fetch sector list")
	}
	latest, processed, e := tableWatermark(s, string(model.SECTOR), "sector", "trade_date")
	if e != nil {
		return 0, e
	}
	today := Today()
	floor := conf.Args.FixedStartDate
	etl, _ := etlStamp()
	var failed []string
	for i := range boards.Rows {
		if !pace(env.Ctx, i) {
			return rows, env.Ctx.Err()
		}
		code := strings.TrimSpace(boards.Cell(i, "板块代码"))
		name := strings.TrimSpace(boards.Cell(i, "板块名称"))
		if code == "" || name == "" {
			continue
		}
		w := FetchWindow(latest, processed[name], floor, today)
		if w.Skip {
			continue
		}
		t, err := env.Src.SectorDaily(code, util.Compact(w.Start), util.Compact(w.End))
		if err != nil {
			failed = append(failed, name)
			log.Warnf("sector %s fetch failed: %+v", name, err)
			continue
		}
		if t.Empty() {
			continue
		}
		ss, err := schema.SectorFrom(t, name, etl)
		if err != nil {
			failed = append(failed, name)
			log.Warnf("sector %s: %+v", name, err)
			continue
		}
		n, err := SaveBatch(s, env.Pool, model.SECTOR, ss)
		if err != nil {
			failed = append(failed, name)
			log.Warnf("sector %s write failed: %+v", name, err)
			continue
		}
		rows += n
	}
	if len(failed) > 0 {
		log.Warnf("sector: %d boards failed: %v", len(failed), failed)
	}
	return rows, nil
}
