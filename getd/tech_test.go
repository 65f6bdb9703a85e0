package getd

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/stockagent/datapipe/model"
	"github.com/stockagent/datapipe/util"
)

func syntheticSeries(n int) *quoteSeries {
	se := &quoteSeries{}
	price := 10.
	for i := 0; i < n; i++ {
		// gentle uptrend with a wiggle
		price += 0.1
		if i%7 == 0 {
			price -= 0.25
		}
		se.dates = append(se.dates, dateAt(i))
		se.open = append(se.open, price-0.05)
		se.close = append(se.close, price)
		se.high = append(se.high, price+0.1)
		se.low = append(se.low, price-0.1)
		se.volume = append(se.volume, float64(1000+i*10))
	}
	se.turnover = make([]sql.NullFloat64, n)
	return se
}

func dateAt(i int) string {
	base := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, i).Format(util.DateFormat)
}

func TestHistSignal(t *testing.T) {
	if s := histSignal(0.5); s != model.SigGoldenCross {
		t.Errorf("unexpected: %s", s)
	}
	if s := histSignal(-0.5); s != model.SigDeathCross {
		t.Errorf("unexpected: %s", s)
	}
	if s := histSignal(math.NaN()); s != model.SigNeutral {
		t.Errorf("unexpected: %s", s)
	}
}

func TestLevelSignal(t *testing.T) {
	if s := levelSignal(75, 70, 30); s != model.SigOverbought {
		t.Errorf("unexpected: %s", s)
	}
	if s := levelSignal(25, 70, 30); s != model.SigOversold {
		t.Errorf("unexpected: %s", s)
	}
	if s := levelSignal(50, 70, 30); s != model.SigNeutral {
		t.Errorf("unexpected: %s", s)
	}
	if s := levelSignal(math.NaN(), 70, 30); s != model.SigNeutral {
		t.Errorf("unexpected: %s", s)
	}
}

func TestTech2Rows(t *testing.T) {
	se := syntheticSeries(80)
	rows := tech2Rows("000001", se)
	if len(rows) != 80 {
		t.Fatalf("unexpected row count: %d", len(rows))
	}
	last := rows[79]
	if !last.MA5.Valid || !last.MA20.Valid || !last.MA60.Valid {
		t.Errorf("moving averages should be valid at the tail: %+v", last)
	}
	if !last.RSI.Valid || last.RSI.Float64 <= 0 || last.RSI.Float64 >= 100 {
		t.Errorf("RSI out of range: %+v", last.RSI)
	}
	if !last.BBUpper.Valid || !last.BBLower.Valid ||
		last.BBUpper.Float64 <= last.BBMiddle.Float64 ||
		last.BBLower.Float64 >= last.BBMiddle.Float64 {
		t.Errorf("bollinger bands out of order: %+v %+v %+v", last.BBUpper, last.BBMiddle, last.BBLower)
	}
	if rows[0].MA20.Valid {
		t.Errorf("MA20 should be NULL inside the warm-up window: %+v", rows[0].MA20)
	}
	if !last.VolumeRatio.Valid || last.VolumeRatio.Float64 <= 0 {
		t.Errorf("volume ratio should be positive: %+v", last.VolumeRatio)
	}
	if !last.Volatility.Valid || last.Volatility.Float64 <= 0 {
		t.Errorf("volatility should be positive: %+v", last.Volatility)
	}
}

func TestTech1Rows(t *testing.T) {
	se := syntheticSeries(60)
	rows := tech1Rows("000001", se)
	if len(rows) != 60 {
		t.Fatalf("unexpected row count: %d", len(rows))
	}
	last := rows[59]
	if !last.KDJK.Valid || !last.KDJD.Valid || !last.KDJJ.Valid {
		t.Errorf("KDJ should be valid at the tail: %+v", last)
	}
	wantJ := 3*last.KDJK.Float64 - 2*last.KDJD.Float64
	if math.Abs(last.KDJJ.Float64-wantJ) > 1e-9 {
		t.Errorf("J != 3K-2D: %+v", last)
	}
	if last.MACDSignal != model.SigGoldenCross && last.MACDSignal != model.SigDeathCross {
		t.Errorf("unexpected macd signal: %s", last.MACDSignal)
	}
	hist := last.MACDDif.Float64 - last.MACDDea.Float64
	if (hist > 0) != (last.MACDSignal == model.SigGoldenCross) {
		t.Errorf("macd signal disagrees with hist sign: %+v", last)
	}
}
