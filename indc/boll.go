package indc

//Bollinger returns the n-day bands at k standard deviations around the
//simple moving average.
func Bollinger(close []float64, n int, k float64) (upper, middle, lower []float64) {
	middle = SMA(close, n)
	sd := STD(close, n)
	upper = make([]float64, len(close))
	lower = make([]float64, len(close))
	for i := range close {
		upper[i] = middle[i] + k*sd[i]
		lower[i] = middle[i] - k*sd[i]
	}
	return
}
