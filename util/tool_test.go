package util

import (
	"math"
	"testing"
)

func TestStr2Fnull(t *testing.T) {
	if f := Str2Fnull("3.14"); !f.Valid || f.Float64 != 3.14 {
		t.Errorf("unexpected: %+v", f)
	}
	if f := Str2Fnull(""); f.Valid {
		t.Errorf("empty string should be invalid: %+v", f)
	}
	if f := Str2Fnull("-"); f.Valid {
		t.Errorf("dash should be invalid: %+v", f)
	}
}

func TestStr2Snull(t *testing.T) {
	if s := Str2Snull(" nan "); s.Valid {
		t.Errorf("nan should be invalid: %+v", s)
	}
	if s := Str2Snull(" 软件服务 "); !s.Valid || s.String != "软件服务" {
		t.Errorf("unexpected: %+v", s)
	}
}

func TestPct2Fnull(t *testing.T) {
	if f := Pct2Fnull("12.34%"); !f.Valid || math.Abs(f.Float64-0.1234) > 1e-9 {
		t.Errorf("unexpected: %+v", f)
	}
	if f := Pct2Fnull("-5%"); !f.Valid || math.Abs(f.Float64+0.05) > 1e-9 {
		t.Errorf("unexpected: %+v", f)
	}
	if f := Pct2Fnull("--"); f.Valid {
		t.Errorf("placeholder should be invalid: %+v", f)
	}
}

func TestParseYuan(t *testing.T) {
	if f := ParseYuan("3.5亿"); !f.Valid || f.Float64 != 3.5e8 {
		t.Errorf("unexpected: %+v", f)
	}
	if f := ParseYuan("1200万"); !f.Valid || f.Float64 != 1.2e7 {
		t.Errorf("unexpected: %+v", f)
	}
	if f := ParseYuan("987.65"); !f.Valid || f.Float64 != 987.65 {
		t.Errorf("unexpected: %+v", f)
	}
}

func TestParse100M(t *testing.T) {
	if f := Parse100M("3.5亿"); !f.Valid || math.Abs(f.Float64-3.5) > 1e-9 {
		t.Errorf("unexpected: %+v", f)
	}
	if f := Parse100M("250000000"); !f.Valid || math.Abs(f.Float64-2.5) > 1e-9 {
		t.Errorf("unexpected: %+v", f)
	}
}

func TestNormDate(t *testing.T) {
	if d := NormDate("20240924"); d != "2024-09-24" {
		t.Errorf("unexpected: %s", d)
	}
	if d := NormDate("2024-09-24"); d != "2024-09-24" {
		t.Errorf("unexpected: %s", d)
	}
	if d := NormDate("2024-09-24 10:30:00"); d != "2024-09-24" {
		t.Errorf("unexpected: %s", d)
	}
	if d := NormDate(""); d != "" {
		t.Errorf("unexpected: %s", d)
	}
}

func TestCompact(t *testing.T) {
	if d := Compact("2024-09-24"); d != "20240924" {
		t.Errorf("unexpected: %s", d)
	}
}

func TestJoin(t *testing.T) {
	if s := Join([]string{"a", "b"}, ",", true); s != "'a','b'" {
		t.Errorf("unexpected: %s", s)
	}
	if s := Join([]string{"a", "b"}, ",", false); s != "a,b" {
		t.Errorf("unexpected: %s", s)
	}
}
