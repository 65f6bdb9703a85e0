package getd

import (
	"database/sql"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/stockagent/datapipe/conf"
	"github.com/stockagent/datapipe/db"
	"github.com/stockagent/datapipe/model"
	"github.com/stockagent/datapipe/util"
)

var fieldCache sync.Map

//fieldIdx maps db tag names to field indexes for a record type,
//computed once per type.
func fieldIdx(t reflect.Type) map[string]int {
	if v, ok := fieldCache.Load(t); ok {
		return v.(map[string]int)
	}
	m := make(map[string]int)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		m[strings.Split(tag, ",")[0]] = i
	}
	fieldCache.Store(t, m)
	return m
}

//dbVal coerces a record field into a driver-friendly value. Invalid
//nullables and non-finite floats become NULL.
func dbVal(v reflect.Value) interface{} {
	switch x := v.Interface().(type) {
	case sql.NullFloat64:
		if !x.Valid || math.IsNaN(x.Float64) || math.IsInf(x.Float64, 0) {
			return nil
		}
		return x.Float64
	case sql.NullString:
		if !x.Valid {
			return nil
		}
		return x.String
	case sql.NullInt64:
		if !x.Valid {
			return nil
		}
		return x.Int64
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case time.Time:
		return x.Format(util.DateTimeFormat)
	default:
		return x
	}
}

func buildInsert(table string, cols []string, nrows int) string {
	qc := make([]string, len(cols))
	for i, c := range cols {
		qc[i] = "`" + c + "`"
	}
	ph := "(" + strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",") + ")"
	rows := make([]string, nrows)
	for i := range rows {
		rows[i] = ph
	}
	return fmt.Sprintf("INSERT IGNORE INTO %s (%s) VALUES %s",
		table, strings.Join(qc, ","), strings.Join(rows, ","))
}

//SaveBatch persists a slice of record pointers into the table using
//chunked INSERT IGNORE. A failing chunk degrades to per-row inserts so
//one bad row cannot sink its neighbors; bad rows are logged and
//skipped. Returns the number of rows actually written, which excludes
//duplicates the database ignored.
func SaveBatch(s *db.Session, pool *db.Pool, tab model.DBTab, recs interface{}) (written int64, e error) {
	rv := reflect.ValueOf(recs)
	if rv.Kind() != reflect.Slice {
		return 0, errors.Errorf("batch save expects a slice, got %s", rv.Kind())
	}
	n := rv.Len()
	if n == 0 {
		return 0, nil
	}
	et := rv.Index(0).Type()
	if et.Kind() != reflect.Ptr || et.Elem().Kind() != reflect.Struct {
		return 0, errors.Errorf("batch save expects struct pointers, got %s", et)
	}
	fidx := fieldIdx(et.Elem())
	var cols []string
	for _, c := range pool.Columns(tab) {
		if _, ok := fidx[c]; ok {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return 0, errors.Errorf("no %s columns match record type %s", tab, et)
	}

	batch := conf.Args.BatchSize
	if batch <= 0 {
		batch = 300
	}
	var failed int
	for lo := 0; lo < n; lo += batch {
		hi := lo + batch
		if hi > n {
			hi = n
		}
		args := make([]interface{}, 0, (hi-lo)*len(cols))
		for i := lo; i < hi; i++ {
			args = append(args, rowVals(rv.Index(i).Elem(), cols, fidx)...)
		}
		res, err := s.Exec(buildInsert(string(tab), cols, hi-lo), args...)
		if err == nil {
			ra, _ := res.RowsAffected()
			written += ra
			continue
		}
		log.Warnf("%s batch [%d:%d) failed, retrying row by row: %+v", tab, lo, hi, err)
		single := buildInsert(string(tab), cols, 1)
		for i := lo; i < hi; i++ {
			res, err = s.Exec(single, rowVals(rv.Index(i).Elem(), cols, fidx)...)
			if err != nil {
				failed++
				log.Errorf("%s row dropped: %+v: %+v", tab, rv.Index(i).Interface(), err)
				continue
			}
			ra, _ := res.RowsAffected()
			written += ra
		}
	}
	if failed > 0 {
		log.Warnf("%s: %d rows dropped out of %d", tab, failed, n)
	}
	return written, nil
}

func rowVals(rec reflect.Value, cols []string, fidx map[string]int) []interface{} {
	vals := make([]interface{}, len(cols))
	for i, c := range cols {
		vals[i] = dbVal(rec.Field(fidx[c]))
	}
	return vals
}
