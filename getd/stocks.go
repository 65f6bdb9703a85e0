package getd

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/stockagent/datapipe/db"
	"github.com/stockagent/datapipe/model"
	"github.com/stockagent/datapipe/util"
)

//GetStockList pulls the A-share universe from the provider, refreshes
//the basics table, and returns the symbols in provider order. A
//positive limit truncates the universe, which keeps smoke runs cheap.
func GetStockList(s *db.Session, src Source, limit int) (*model.Stocks, error) {
	t, e := src.StockList()
	if e != nil {
		return nil, errors.Wrap(e, "failed to fetch stock list")
	}
	stks := &model.Stocks{}
	for i := range t.Rows {
		code := strings.TrimSpace(t.Cell(i, "代码"))
		if code == "" {
			continue
		}
		stks.Add(&model.Stock{
			Code:        code,
			Name:        t.Cell(i, "名称"),
			LatestPrice: util.Str2Fnull(t.Cell(i, "最新价")),
			ChangePct:   util.Str2Fnull(t.Cell(i, "涨跌幅")),
		})
		if limit > 0 && stks.Size() >= limit {
			break
		}
	}
	if stks.Size() == 0 {
		return nil, errors.New("provider returned an empty stock list")
	}
	if e = saveBasics(s, stks); e != nil {
		return nil, e
	}
	log.Infof("stock universe refreshed, %d symbols", stks.Size())
	return stks, nil
}

func saveBasics(s *db.Session, stks *model.Stocks) error {
	holders := make([]string, stks.Size())
	args := make([]interface{}, 0, stks.Size()*4)
	for i, stk := range stks.List {
		holders[i] = "(?,?,?,?)"
		args = append(args, stk.Code, stk.Name, stk.LatestPrice, stk.ChangePct)
	}
	stmt := fmt.Sprintf("INSERT INTO basics (code,name,latest_price,change_percent) VALUES %s"+
		" ON DUPLICATE KEY UPDATE name=VALUES(name),latest_price=VALUES(latest_price),"+
		"change_percent=VALUES(change_percent)", strings.Join(holders, ","))
	if _, e := s.Exec(stmt, args...); e != nil {
		return errors.Wrap(e, "failed to refresh basics")
	}
	return nil
}

//LoadStockList reads the symbol universe back from the basics table,
//for runs that only recompute derived datasets.
func LoadStockList(s *db.Session) (*model.Stocks, error) {
	codes, e := s.SelectStrs("SELECT code FROM basics ORDER BY code")
	if e != nil {
		return nil, errors.Wrap(e, "failed to load basics")
	}
	stks := &model.Stocks{}
	for _, c := range codes {
		stks.Add(&model.Stock{Code: c})
	}
	return stks, nil
}
