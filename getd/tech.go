package getd

import (
	"database/sql"
	"math"

	"github.com/stockagent/datapipe/conf"
	"github.com/stockagent/datapipe/db"
	"github.com/stockagent/datapipe/indc"
	"github.com/stockagent/datapipe/model"
	"github.com/stockagent/datapipe/schema"
	"github.com/stockagent/datapipe/util"
)

//techLookbackDays pads the quote fetch before the window start so the
//longest indicator (MA60) has a full warm-up in trading days.
const techLookbackDays = 150

type quoteSeries struct {
	dates                          []string
	open, close, high, low, volume []float64
	turnover                       []sql.NullFloat64
}

func seriesFrom(qs []*model.IndividualStock) *quoteSeries {
	se := &quoteSeries{}
	for _, q := range qs {
		se.dates = append(se.dates, q.Date)
		se.open = append(se.open, q.Open)
		se.close = append(se.close, q.Close)
		se.high = append(se.high, q.High)
		se.low = append(se.low, q.Low)
		se.volume = append(se.volume, q.Volume)
		se.turnover = append(se.turnover, q.TurnoverRate)
	}
	return se
}

func fnull(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func histSignal(hist float64) string {
	switch {
	case math.IsNaN(hist):
		return model.SigNeutral
	case hist > 0:
		return model.SigGoldenCross
	default:
		return model.SigDeathCross
	}
}

func levelSignal(v, hi, lo float64) string {
	switch {
	case math.IsNaN(v):
		return model.SigNeutral
	case v > hi:
		return model.SigOverbought
	case v < lo:
		return model.SigOversold
	default:
		return model.SigNeutral
	}
}

//getTech1 derives the first indicator set from daily quotes using the
//shared per-symbol window decision.
func getTech1(env *Env, s *db.Session) (int64, error) {
	return runTech(env, s, model.TECH1, "trade_date", func(code string, se *quoteSeries) interface{} {
		return tech1Rows(code, se)
	})
}

//getTech2 derives the second indicator set.
func getTech2(env *Env, s *db.Session) (int64, error) {
	return runTech(env, s, model.TECH2, "date", func(code string, se *quoteSeries) interface{} {
		return tech2Rows(code, se)
	})
}

func runTech(env *Env, s *db.Session, tab model.DBTab, dateCol string,
	compute func(string, *quoteSeries) interface{}) (rows int64, e error) {
	latest, processed, e := tableWatermark(s, string(tab), "stock_code", dateCol)
	if e != nil {
		return 0, e
	}
	today := Today()
	floor := conf.Args.FixedStartDate
	etl, biz := etlStamp()
	var failed []string
	for i, stk := range env.Stks.List {
		if !pace(env.Ctx, i) {
			return rows, env.Ctx.Err()
		}
		w := FetchWindow(latest, processed[stk.Code], floor, today)
		if w.Skip {
			continue
		}
		t, err := env.Src.DailyKline(stk.Code, util.Compact(padBack(w.Start)), util.Compact(w.End))
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("%s %s fetch failed: %+v", tab, stk.Code, err)
			continue
		}
		if t.Empty() {
			continue
		}
		qs, err := schema.KlineFrom(t, stk.Code, etl, biz)
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("%s %s: %+v", tab, stk.Code, err)
			continue
		}
		recs := trimTech(compute(stk.Code, seriesFrom(qs)), w)
		n, err := SaveBatch(s, env.Pool, tab, recs)
		if err != nil {
			failed = append(failed, stk.Code)
			log.Warnf("%s %s write failed: %+v", tab, stk.Code, err)
			continue
		}
		rows += n
	}
	if len(failed) > 0 {
		log.Warnf("%s: %d symbols failed: %v", tab, len(failed), failed)
	}
	return rows, nil
}

func padBack(start string) string {
	t, e := util.ParseDate(start)
	if e != nil {
		return start
	}
	return t.AddDate(0, 0, -techLookbackDays).Format(util.DateFormat)
}

//trimTech drops the warm-up rows fetched before the window start.
func trimTech(recs interface{}, w Window) interface{} {
	switch rs := recs.(type) {
	case []*model.Tech1:
		var out []*model.Tech1
		for _, r := range rs {
			if r.TradeDate >= w.Start && r.TradeDate <= w.End {
				out = append(out, r)
			}
		}
		return out
	case []*model.Tech2:
		var out []*model.Tech2
		for _, r := range rs {
			if r.Date >= w.Start && r.Date <= w.End {
				out = append(out, r)
			}
		}
		return out
	}
	return recs
}

func tech1Rows(code string, se *quoteSeries) []*model.Tech1 {
	rsi := indc.RSI(se.close, 14)
	dif, dea, hist := indc.MACD(se.close, 5, 10, 30)
	k, d, j := indc.KDJ(se.high, se.low, se.close, 9, 3, 3)
	out := make([]*model.Tech1, len(se.dates))
	for i, dt := range se.dates {
		out[i] = &model.Tech1{
			TradeDate:    dt,
			StockCode:    code,
			Volume:       se.volume[i],
			TurnoverRate: se.turnover[i],
			RSI:          fnull(rsi[i]),
			MACDDif:      fnull(dif[i]),
			MACDDea:      fnull(dea[i]),
			MACDHist:     fnull(hist[i]),
			KDJK:         fnull(k[i]),
			KDJD:         fnull(d[i]),
			KDJJ:         fnull(j[i]),
			MACDSignal:   histSignal(hist[i]),
			RSISignal:    levelSignal(rsi[i], 70, 30),
			KDJSignal:    levelSignal(j[i], 80, 20),
		}
	}
	return out
}

func tech2Rows(code string, se *quoteSeries) []*model.Tech2 {
	ma5 := indc.SMA(se.close, 5)
	ma20 := indc.SMA(se.close, 20)
	ma60 := indc.SMA(se.close, 60)
	rsi := indc.RSI(se.close, 14)
	dif, dea, hist := indc.MACD(se.close, 12, 26, 9)
	upper, middle, lower := indc.Bollinger(se.close, 20, 2)
	volMA := indc.SMA(se.volume, 20)
	volRatio := indc.Ratio(se.volume, volMA)
	atr := indc.ATR(se.high, se.low, se.close, 14)
	roc := indc.ROC(se.close, 10)
	out := make([]*model.Tech2, len(se.dates))
	for i, dt := range se.dates {
		vol := math.NaN()
		if se.close[i] > 0 {
			vol = atr[i] / se.close[i] * 100
		}
		out[i] = &model.Tech2{
			Date:        dt,
			StockCode:   code,
			Open:        se.open[i],
			Close:       se.close[i],
			High:        se.high[i],
			Low:         se.low[i],
			Volume:      se.volume[i],
			MA5:         fnull(ma5[i]),
			MA20:        fnull(ma20[i]),
			MA60:        fnull(ma60[i]),
			RSI:         fnull(rsi[i]),
			MACD:        fnull(dif[i]),
			SignalLine:  fnull(dea[i]),
			MACDHist:    fnull(hist[i]),
			BBUpper:     fnull(upper[i]),
			BBMiddle:    fnull(middle[i]),
			BBLower:     fnull(lower[i]),
			VolumeMA:    fnull(volMA[i]),
			VolumeRatio: fnull(volRatio[i]),
			ATR:         fnull(atr[i]),
			Volatility:  fnull(vol),
			ROC:         fnull(roc[i]),
			MACDSignal:  histSignal(hist[i]),
			RSISignal:   levelSignal(rsi[i], 70, 30),
		}
	}
	return out
}
