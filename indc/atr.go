package indc

import "math"

//ATR is the n-day average true range as a rolling mean of the true
//range series.
func ATR(high, low, close []float64, n int) []float64 {
	ln := len(close)
	tr := make([]float64, ln)
	for i := 0; i < ln; i++ {
		if i == 0 {
			tr[i] = high[i] - low[i]
			continue
		}
		hl := high[i] - low[i]
		hc := math.Abs(high[i] - close[i-1])
		lc := math.Abs(low[i] - close[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}
	return SMA(tr, n)
}

//ROC is the n-day rate of change in percent.
func ROC(close []float64, n int) []float64 {
	out := nans(len(close))
	for i := n; i < len(close); i++ {
		if close[i-n] != 0 {
			out[i] = (close[i]/close[i-n] - 1) * 100
		}
	}
	return out
}

//Ratio divides two aligned series, NaN where the denominator is not
//positive.
func Ratio(num, den []float64) []float64 {
	out := nans(len(num))
	for i := range num {
		if den[i] > 0 {
			out[i] = num[i] / den[i]
		}
	}
	return out
}
