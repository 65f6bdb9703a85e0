package getd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/stockagent/datapipe/conf"
	"github.com/stockagent/datapipe/db"
	"github.com/stockagent/datapipe/global"
	"github.com/stockagent/datapipe/model"
	"github.com/stockagent/datapipe/schema"
)

//getAnalyst iterates over ranked analysts rather than stock symbols:
//for each analyst the current coverage list is joined with the profile
//attributes, trimmed to add dates from the floor on, and the matching
//window in the table is deleted and rewritten.
func getAnalyst(env *Env, s *db.Session) (rows int64, e error) {
	year := strconv.Itoa(time.Now().Year())
	rank, e := env.Src.AnalystRank(year)
	if e != nil {
		return 0, errors.Wrapf(e, "failed to fetch analyst rank for %s", year)
	}
	delTpl, e := global.Dot.Raw("DELETE_ANALYST_WINDOW")
	if e != nil {
		return 0, errors.WithStack(e)
	}
	today := Today()
	floor := conf.Args.FixedStartDate
	etl, biz := etlStamp()
	var failed []string
	for i := range rank.Rows {
		if !pace(env.Ctx, i) {
			return rows, env.Ctx.Err()
		}
		a := schema.Analyst{
			ID:       strings.TrimSpace(rank.Cell(i, "分析师ID")),
			Name:     rank.Cell(i, "分析师名称"),
			Unit:     rank.Cell(i, "分析师单位"),
			Industry: rank.Cell(i, "行业"),
		}
		if a.ID == "" {
			continue
		}
		t, err := env.Src.AnalystCoverage(a.ID)
		if err != nil {
			failed = append(failed, a.ID)
			log.Warnf("analyst %s fetch failed: %+v", a.ID, err)
			continue
		}
		rs, err := schema.AnalystFrom(t, a, today, etl, biz)
		if err != nil {
			failed = append(failed, a.ID)
			log.Warnf("analyst %s: %+v", a.ID, err)
			continue
		}
		rs = filterAnalyst(rs, floor)
		if len(rs) == 0 {
			continue
		}
		codes := make([]string, 0, len(rs))
		seen := map[string]bool{}
		for _, r := range rs {
			if !seen[r.StockCode] {
				seen[r.StockCode] = true
				codes = append(codes, r.StockCode)
			}
		}
		del := fmt.Sprintf(delTpl, placeholders(len(codes)))
		args := make([]interface{}, 0, len(codes)+2)
		args = append(args, a.ID, floor)
		for _, c := range codes {
			args = append(args, c)
		}
		if _, err = s.Exec(del, args...); err != nil {
			failed = append(failed, a.ID)
			log.Warnf("analyst %s delete failed: %+v", a.ID, err)
			continue
		}
		n, err := SaveBatch(s, env.Pool, model.ANALYST, rs)
		if err != nil {
			failed = append(failed, a.ID)
			log.Warnf("analyst %s write failed: %+v", a.ID, err)
			continue
		}
		rows += n
	}
	if len(failed) > 0 {
		log.Warnf("analyst: %d analysts failed: %v", len(failed), failed)
	}
	return rows, nil
}

func filterAnalyst(rs []*model.AnalystRating, floor string) []*model.AnalystRating {
	var out []*model.AnalystRating
	for _, r := range rs {
		if r.AddDate >= floor {
			out = append(out, r)
		}
	}
	return out
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
