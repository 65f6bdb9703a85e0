package util

import (
	"github.com/shirou/gopsutil/cpu"
)

//CPUUsage returns current cpu busy percentage.
func CPUUsage() (busy float64, e error) {
	var ps []float64
	ps, e = cpu.Percent(0, false)
	if e != nil {
		return
	}
	return ps[0], e
}
