package indc

import "math"

//KDJ computes the stochastic oscillator with the conventional
//recursive smoothing: K = (m-1)/m*K' + 1/m*RSV, D likewise over K,
//J = 3K - 2D. Both K and D seed at 50.
func KDJ(high, low, close []float64, n, m1, m2 int) (k, d, j []float64) {
	ln := len(close)
	k, d, j = nans(ln), nans(ln), nans(ln)
	hh := HHV(high, n)
	ll := LLV(low, n)
	pk, pd := 50., 50.
	for i := 0; i < ln; i++ {
		rng := hh[i] - ll[i]
		rsv := 50.
		if rng > 0 {
			rsv = (close[i] - ll[i]) / rng * 100
		}
		pk = (float64(m1-1)*pk + rsv) / float64(m1)
		pd = (float64(m2-1)*pd + pk) / float64(m2)
		k[i], d[i] = pk, pd
		j[i] = 3*pk - 2*pd
	}
	// the first n-1 positions have an incomplete range window
	for i := 0; i < n-1 && i < ln; i++ {
		k[i], d[i], j[i] = math.NaN(), math.NaN(), math.NaN()
	}
	return
}
