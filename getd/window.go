package getd

import (
	"time"

	"github.com/stockagent/datapipe/util"
)

//Window is the inclusive fetch range decided for one symbol.
type Window struct {
	Start string
	End   string
	Skip  bool
}

//FetchWindow decides what to pull for a symbol from the table
//watermark state. latest is MAX(date) across the whole table, empty on
//cold start; processed reports whether this symbol already has rows at
//that date. A caught-up symbol skips; a lagging one resumes the day
//after the watermark; an unseen one backfills from the floor date.
func FetchWindow(latest string, processed bool, floor, today string) Window {
	if latest == "" {
		return boundedWindow(floor, today)
	}
	if processed {
		if latest >= today {
			return Window{Skip: true}
		}
		return boundedWindow(nextDay(latest), today)
	}
	return boundedWindow(floor, today)
}

func boundedWindow(start, today string) Window {
	if start > today {
		return Window{Skip: true}
	}
	return Window{Start: start, End: today}
}

func nextDay(date string) string {
	t, e := util.ParseDate(date)
	if e != nil {
		return date
	}
	return t.AddDate(0, 0, 1).Format(util.DateFormat)
}

//Today returns the current date in canonical format.
func Today() string {
	return time.Now().Format(util.DateFormat)
}
