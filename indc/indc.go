//Package indc computes technical indicators over daily series. All
//functions return slices aligned with their input; positions inside
//the warm-up window hold NaN, which the persistence layer stores as
//NULL.
package indc

import (
	"math"

	"github.com/montanaflynn/stats"
)

//SMA is the simple moving average over an n-day window.
func SMA(vals []float64, n int) []float64 {
	out := nans(len(vals))
	for i := n - 1; i < len(vals); i++ {
		m, e := stats.Mean(vals[i-n+1 : i+1])
		if e != nil {
			continue
		}
		out[i] = m
	}
	return out
}

//EMA is the exponential moving average with smoothing 2/(n+1), seeded
//from the first value.
func EMA(vals []float64, n int) []float64 {
	out := nans(len(vals))
	if len(vals) == 0 {
		return out
	}
	alpha := 2. / float64(n+1)
	out[0] = vals[0]
	for i := 1; i < len(vals); i++ {
		out[i] = alpha*vals[i] + (1-alpha)*out[i-1]
	}
	return out
}

//STD is the rolling sample standard deviation over an n-day window.
func STD(vals []float64, n int) []float64 {
	out := nans(len(vals))
	for i := n - 1; i < len(vals); i++ {
		sd, e := stats.StandardDeviationSample(vals[i-n+1 : i+1])
		if e != nil {
			continue
		}
		out[i] = sd
	}
	return out
}

//LLV is the lowest value over an n-day window.
func LLV(vals []float64, n int) []float64 {
	out := nans(len(vals))
	for i := range vals {
		lo := i - n + 1
		if lo < 0 {
			lo = 0
		}
		m := vals[lo]
		for _, v := range vals[lo : i+1] {
			if v < m {
				m = v
			}
		}
		out[i] = m
	}
	return out
}

//HHV is the highest value over an n-day window.
func HHV(vals []float64, n int) []float64 {
	out := nans(len(vals))
	for i := range vals {
		lo := i - n + 1
		if lo < 0 {
			lo = 0
		}
		m := vals[lo]
		for _, v := range vals[lo : i+1] {
			if v > m {
				m = v
			}
		}
		out[i] = m
	}
	return out
}

func nans(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
