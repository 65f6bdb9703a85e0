package getd

import (
	"time"

	"github.com/pkg/errors"
	"github.com/stockagent/datapipe/db"
	"github.com/stockagent/datapipe/global"
	"github.com/stockagent/datapipe/model"
	"github.com/stockagent/datapipe/schema"
	"github.com/stockagent/datapipe/util"
)

const newsWindowDays = 30

//newsCutoff returns the inclusive lower bound of the rolling news
//window ending at the given date.
func newsCutoff(today string) string {
	t, e := util.ParseDate(today)
	if e != nil {
		t = time.Now()
	}
	return t.AddDate(0, 0, -newsWindowDays).Format(util.DateTimeFormat)
}

//filterNews keeps items inside the rolling window. Publish times
//compare lexicographically in canonical datetime format.
func filterNews(ns []*model.StockNews, cutoff string) []*model.StockNews {
	var out []*model.StockNews
	for _, n := range ns {
		if n.PublishTime >= cutoff {
			out = append(out, n)
		}
	}
	return out
}

//getStockNews replaces the rolling 30-day news window per symbol.
//Upstream article lists are unstable, so the driver deletes the window
//and rewrites it instead of diffing.
func getStockNews(env *Env, s *db.Session) (rows int64, e error) {
	del, e := global.Dot.Raw("DELETE_NEWS_WINDOW")
	if e != nil {
		return 0, errors.WithStack(e)
	}
	today := Today()
	cutoff := newsCutoff(today)
	etl, _ := etlStamp()
	snap := time.Now().Format(util.DateTimeFormat)
	var failed []string
	for i, stk := range env.Stks.List {
		if !pace(env.Ctx, i) {
			return rows, env.Ctx.Err()
		}
		t, err := env.Src.News(stk.Code)
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("stock_news %s fetch failed: %+v", stk.Code, err)
			continue
		}
		ns, err := schema.NewsFrom(t, stk.Code, snap, etl)
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("stock_news %s: %+v", stk.Code, err)
			continue
		}
		ns = filterNews(ns, cutoff)
		if len(ns) == 0 {
			continue
		}
		if _, err = s.Exec(del, stk.Code, cutoff); err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("stock_news %s delete failed: %+v", stk.Code, err)
			continue
		}
		n, err := SaveBatch(s, env.Pool, model.STOCK_NEWS, ns)
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("stock_news %s write failed: %+v", stk.Code, err)
			continue
		}
		rows += n
	}
	if len(failed) > 0 {
		log.Warnf("stock_news: %d symbols failed: %v", len(failed), failed)
	}
	return rows, nil
}
