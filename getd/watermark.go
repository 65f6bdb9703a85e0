package getd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/stockagent/datapipe/db"
	"github.com/stockagent/datapipe/global"
	"github.com/stockagent/datapipe/util"
)

var log = global.Log

//LatestDate returns MAX(dateCol) normalized to canonical date format,
//empty when the table holds no rows.
func LatestDate(s *db.Session, table, dateCol string) (string, error) {
	q, e := global.Dot.Raw("LATEST_DATE")
	if e != nil {
		return "", errors.WithStack(e)
	}
	v, e := s.SelectStr(fmt.Sprintf(q, dateCol, table))
	if e != nil {
		return "", errors.Wrapf(e, "failed to query latest %s.%s", table, dateCol)
	}
	if len(v) > 10 {
		v = v[:10]
	}
	return util.NormDate(v), nil
}

//SymbolsAt returns the distinct symbols having rows at the given date.
func SymbolsAt(s *db.Session, table, symCol, dateCol, date string) (map[string]bool, error) {
	q, e := global.Dot.Raw("SYMBOLS_AT_DATE")
	if e != nil {
		return nil, errors.WithStack(e)
	}
	vs, e := s.SelectStrs(fmt.Sprintf(q, symCol, table, dateCol), date)
	if e != nil {
		return nil, errors.Wrapf(e, "failed to query %s symbols at %s", table, date)
	}
	set := make(map[string]bool, len(vs))
	for _, v := range vs {
		set[v] = true
	}
	return set, nil
}
