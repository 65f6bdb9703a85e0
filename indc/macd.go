package indc

//MACD computes the moving average convergence divergence lines.
//dif = EMA(fast) - EMA(slow), dea = EMA(dif, signal), hist = dif - dea.
func MACD(close []float64, fast, slow, signal int) (dif, dea, hist []float64) {
	ef := EMA(close, fast)
	es := EMA(close, slow)
	dif = make([]float64, len(close))
	for i := range close {
		dif[i] = ef[i] - es[i]
	}
	dea = EMA(dif, signal)
	hist = make([]float64, len(close))
	for i := range close {
		hist[i] = dif[i] - dea[i]
	}
	return
}
