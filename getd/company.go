package getd

import (
	"github.com/pkg/errors"
	"github.com/stockagent/datapipe/db"
	"github.com/stockagent/datapipe/global"
	"github.com/stockagent/datapipe/model"
	"github.com/stockagent/datapipe/schema"
)

//getCompanyInfo replaces the company profile wholesale, symbol by
//symbol: DELETE then INSERT, so a re-run after a crash converges to
//the same state.
func getCompanyInfo(env *Env, s *db.Session) (rows int64, e error) {
	del, e := global.Dot.Raw("DELETE_COMPANY_INFO")
	if e != nil {
		return 0, errors.WithStack(e)
	}
	today := Today()
	etl, biz := etlStamp()
	var failed []string
	for i, stk := range env.Stks.List {
		if !pace(env.Ctx, i) {
			return rows, env.Ctx.Err()
		}
		t, err := env.Src.CompanyInfo(stk.Code)
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("company_info %s fetch failed: %+v", stk.Code, err)
			continue
		}
		ci, err := schema.CompanyInfoFrom(t, stk.Code, today, etl, biz)
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("company_info %s: %+v", stk.Code, err)
			continue
		}
		if _, err = s.Exec(del, stk.Code); err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("company_info %s delete failed: %+v", stk.Code, err)
			continue
		}
		n, err := SaveBatch(s, env.Pool, model.COMPANY_INFO, []*model.CompanyInfo{ci})
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("company_info %s write failed: %+v", stk.Code, err)
			continue
		}
		rows += n
	}
	if len(failed) > 0 {
		log.Warnf("company_info: %d symbols failed: %v", len(failed), failed)
	}
	return rows, nil
}
