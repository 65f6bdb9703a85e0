package getd

import "testing"

func TestFetchWindowColdStart(t *testing.T) {
	w := FetchWindow("", false, "2024-09-24", "2025-01-15")
	if w.Skip || w.Start != "2024-09-24" || w.End != "2025-01-15" {
		t.Errorf("unexpected window: %+v", w)
	}
}

func TestFetchWindowCaughtUp(t *testing.T) {
	w := FetchWindow("2025-01-15", true, "2024-09-24", "2025-01-15")
	if !w.Skip {
		t.Errorf("caught-up symbol should skip: %+v", w)
	}
	w = FetchWindow("2025-01-16", true, "2024-09-24", "2025-01-15")
	if !w.Skip {
		t.Errorf("ahead-of-today watermark should skip: %+v", w)
	}
}

func TestFetchWindowLagging(t *testing.T) {
	w := FetchWindow("2025-01-10", true, "2024-09-24", "2025-01-15")
	if w.Skip || w.Start != "2025-01-11" || w.End != "2025-01-15" {
		t.Errorf("unexpected window: %+v", w)
	}
}

func TestFetchWindowUnseenSymbol(t *testing.T) {
	w := FetchWindow("2025-01-10", false, "2024-09-24", "2025-01-15")
	if w.Skip || w.Start != "2024-09-24" || w.End != "2025-01-15" {
		t.Errorf("unseen symbol should backfill from floor: %+v", w)
	}
}

func TestFetchWindowFloorBeyondToday(t *testing.T) {
	w := FetchWindow("", false, "2025-02-01", "2025-01-15")
	if !w.Skip {
		t.Errorf("start beyond today should skip: %+v", w)
	}
}

func TestNextDayMonthRollover(t *testing.T) {
	if d := nextDay("2024-12-31"); d != "2025-01-01" {
		t.Errorf("unexpected: %s", d)
	}
}
