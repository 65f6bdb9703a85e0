package indc

import "math"

//RSI is the n-day relative strength index with Wilder smoothing.
//Values before the first full window are NaN.
func RSI(close []float64, n int) []float64 {
	out := nans(len(close))
	if len(close) <= n {
		return out
	}
	var gain, loss float64
	for i := 1; i <= n; i++ {
		d := close[i] - close[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgGain, avgLoss := gain/float64(n), loss/float64(n)
	out[n] = rsiVal(avgGain, avgLoss)
	for i := n + 1; i < len(close); i++ {
		d := close[i] - close[i-1]
		g, l := 0., 0.
		if d > 0 {
			g = d
		} else {
			l = -d
		}
		avgGain = (avgGain*float64(n-1) + g) / float64(n)
		avgLoss = (avgLoss*float64(n-1) + l) / float64(n)
		out[i] = rsiVal(avgGain, avgLoss)
	}
	return out
}

func rsiVal(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return math.NaN()
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
