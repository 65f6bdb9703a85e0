package util

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

func Str2F64(s string) (f float64) {
	f64, e := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if e == nil {
		f = f64
	}
	return
}

func Str2Fnull(s string) (f sql.NullFloat64) {
	f64, e := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if e == nil {
		f.Float64 = f64
		f.Valid = true
	} else {
		f.Valid = false
	}
	return
}

func Str2Inull(s string) (i sql.NullInt64) {
	i64, e := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if e == nil {
		i.Int64 = i64
		i.Valid = true
	} else {
		i.Valid = false
	}
	return
}

func Str2Snull(s string) (snull sql.NullString) {
	v := strings.TrimSpace(s)
	if v == "" || strings.EqualFold(v, "nan") {
		snull.Valid = false
	} else {
		snull.String = v
		snull.Valid = true
	}
	return
}

//Pct2Fnull parses a percentage string such as "12.34%" into the
//fraction 0.1234. A bare number is treated the same way: "12.34" -> 0.1234.
func Pct2Fnull(s string) (f sql.NullFloat64) {
	f = Str2Fnull(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if f.Valid {
		f.Float64 /= 100
	}
	return
}

//ParseYuan parses an amount string into yuan, honoring the 万/亿 suffixes
//the provider mixes into monetary columns.
func ParseYuan(s string) (f sql.NullFloat64) {
	mod := 1.0
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, `万`) {
		s = strings.TrimSuffix(s, `万`)
		mod = 1e4
	} else if strings.HasSuffix(s, `亿`) {
		s = strings.TrimSuffix(s, `亿`)
		mod = 1e8
	}
	f64, e := strconv.ParseFloat(s, 64)
	if e == nil {
		f.Float64 = f64 * mod
		f.Valid = true
	} else {
		f.Valid = false
	}
	return
}

//Parse100M parses an amount string into 亿元 units (yuan ÷ 1e8).
func Parse100M(s string) (f sql.NullFloat64) {
	f = ParseYuan(s)
	if f.Valid {
		f.Float64 /= 1e8
	}
	return
}

//Join joins string elements, optionally single-quoting each.
func Join(ss []string, sep string, quote bool) string {
	if !quote {
		return strings.Join(ss, sep)
	}
	rs := ""
	for i, s := range ss {
		rs += fmt.Sprintf("'%s'", s)
		if i < len(ss)-1 {
			rs += sep
		}
	}
	return rs
}
