package getd

import (
	"database/sql"
	"math"
	"reflect"
	"testing"

	"github.com/stockagent/datapipe/model"
)

func TestFieldIdx(t *testing.T) {
	m := fieldIdx(reflect.TypeOf(model.IndividualStock{}))
	if _, ok := m["Stock_Code"]; !ok {
		t.Errorf("missing Stock_Code: %+v", m)
	}
	if _, ok := m["Amount_100M"]; !ok {
		t.Errorf("missing Amount_100M: %+v", m)
	}
	// second call must hit the cache and agree
	m2 := fieldIdx(reflect.TypeOf(model.IndividualStock{}))
	if !reflect.DeepEqual(m, m2) {
		t.Error("cache returned different mapping")
	}
}

func TestDbValCoercion(t *testing.T) {
	if v := dbVal(reflect.ValueOf(sql.NullFloat64{})); v != nil {
		t.Errorf("invalid nullable should be nil, got %v", v)
	}
	if v := dbVal(reflect.ValueOf(sql.NullFloat64{Float64: math.NaN(), Valid: true})); v != nil {
		t.Errorf("NaN should be nil, got %v", v)
	}
	if v := dbVal(reflect.ValueOf(math.Inf(1))); v != nil {
		t.Errorf("Inf should be nil, got %v", v)
	}
	if v := dbVal(reflect.ValueOf(sql.NullFloat64{Float64: 1.5, Valid: true})); v != 1.5 {
		t.Errorf("unexpected: %v", v)
	}
	if v := dbVal(reflect.ValueOf(sql.NullString{String: "x", Valid: true})); v != "x" {
		t.Errorf("unexpected: %v", v)
	}
	if v := dbVal(reflect.ValueOf("000001")); v != "000001" {
		t.Errorf("unexpected: %v", v)
	}
}

func TestBuildInsert(t *testing.T) {
	stmt := buildInsert("individual_stock", []string{"Stock_Code", "Date"}, 2)
	want := "INSERT IGNORE INTO individual_stock (`Stock_Code`,`Date`) VALUES (?,?),(?,?)"
	if stmt != want {
		t.Errorf("unexpected statement:\n%s\nwant\n%s", stmt, want)
	}
}

func TestRowVals(t *testing.T) {
	q := &model.IndividualStock{
		StockCode:  "000001",
		Date:       "2025-01-10",
		Close:      10.5,
		Amount100M: sql.NullFloat64{},
	}
	fidx := fieldIdx(reflect.TypeOf(model.IndividualStock{}))
	vals := rowVals(reflect.ValueOf(q).Elem(), []string{"Stock_Code", "Date", "Close", "Amount_100M"}, fidx)
	if vals[0] != "000001" || vals[1] != "2025-01-10" || vals[2] != 10.5 || vals[3] != nil {
		t.Errorf("unexpected: %+v", vals)
	}
}
