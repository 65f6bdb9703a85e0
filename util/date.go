package util

import (
	"fmt"
	"time"
)

const (
	//DateFormat is the canonical storage format for date columns.
	DateFormat = "2006-01-02"
	//CompactDateFormat is the yyyymmdd format upstream APIs take.
	CompactDateFormat = "20060102"
	//DateTimeFormat is the canonical storage format for datetime columns.
	DateTimeFormat = "2006-01-02 15:04:05"
)

//ParseDate parses a date string in either canonical or compact format.
func ParseDate(s string) (t time.Time, e error) {
	if t, e = time.Parse(DateFormat, s); e == nil {
		return
	}
	if t, e = time.Parse(CompactDateFormat, s); e == nil {
		return
	}
	if t, e = time.Parse(DateTimeFormat, s); e == nil {
		return
	}
	return t, fmt.Errorf("unable to parse date from string %s", s)
}

//NormDate normalizes a provider date string to canonical format,
//returns the input unchanged if it cannot be parsed.
func NormDate(s string) string {
	t, e := ParseDate(s)
	if e != nil {
		return s
	}
	return t.Format(DateFormat)
}

//Compact converts a canonical date string to yyyymmdd.
func Compact(s string) string {
	t, e := ParseDate(s)
	if e != nil {
		return s
	}
	return t.Format(CompactDateFormat)
}

//DaysSince returns fractional days elapsed since the given canonical date.
func DaysSince(then string) (float64, error) {
	t, err := time.Parse(DateFormat, then)
	if err != nil {
		return 0, err
	}
	return time.Since(t).Hours() / 24.0, nil
}
