package indc

import (
	"math"
	"testing"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSMA(t *testing.T) {
	out := SMA([]float64{1, 2, 3, 4, 5}, 3)
	if !math.IsNaN(out[0]) || !math.IsNaN(out[1]) {
		t.Errorf("warm-up should be NaN: %v", out)
	}
	if !almost(out[2], 2) || !almost(out[3], 3) || !almost(out[4], 4) {
		t.Errorf("unexpected: %v", out)
	}
}

func TestEMASeed(t *testing.T) {
	out := EMA([]float64{10, 10, 10, 10}, 5)
	for i, v := range out {
		if !almost(v, 10) {
			t.Errorf("constant series must stay constant at %d: %v", i, out)
		}
	}
}

func TestSTD(t *testing.T) {
	out := STD([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 8)
	// sample std of the classic 2..9 set
	want := math.Sqrt(32. / 7.)
	if !almost(out[7], want) {
		t.Errorf("unexpected: %v, want %v", out[7], want)
	}
	if !math.IsNaN(out[6]) {
		t.Errorf("warm-up should be NaN: %v", out)
	}
}

func TestLLVHHV(t *testing.T) {
	vals := []float64{3, 1, 4, 1, 5}
	ll := LLV(vals, 3)
	hh := HHV(vals, 3)
	if !almost(ll[4], 1) || !almost(hh[4], 5) {
		t.Errorf("unexpected: %v %v", ll, hh)
	}
	if !almost(ll[0], 3) || !almost(hh[0], 3) {
		t.Errorf("short window should use available data: %v %v", ll, hh)
	}
}

func TestRSIBounds(t *testing.T) {
	up := make([]float64, 30)
	for i := range up {
		up[i] = float64(i)
	}
	out := RSI(up, 14)
	if !math.IsNaN(out[13]) {
		t.Errorf("warm-up should be NaN: %v", out[13])
	}
	if !almost(out[29], 100) {
		t.Errorf("monotonic rise should read 100: %v", out[29])
	}
	mixed := []float64{10, 11, 10, 12, 11, 13, 12, 14, 13, 15, 14, 16, 15, 17, 16, 18}
	out = RSI(mixed, 14)
	if v := out[15]; math.IsNaN(v) || v <= 0 || v >= 100 {
		t.Errorf("RSI out of range: %v", v)
	}
}

func TestMACDHist(t *testing.T) {
	close := make([]float64, 60)
	for i := range close {
		close[i] = 10 + 0.1*float64(i)
	}
	dif, dea, hist := MACD(close, 12, 26, 9)
	for i := range close {
		if !almost(hist[i], dif[i]-dea[i]) {
			t.Fatalf("hist must equal dif-dea at %d", i)
		}
	}
	// steady uptrend keeps the fast line above the slow one
	if dif[59] <= 0 {
		t.Errorf("uptrend should have positive dif: %v", dif[59])
	}
}

func TestKDJIdentity(t *testing.T) {
	high := []float64{11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22}
	low := []float64{9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	close := []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21}
	k, d, j := KDJ(high, low, close, 9, 3, 3)
	for i := 8; i < len(close); i++ {
		if !almost(j[i], 3*k[i]-2*d[i]) {
			t.Fatalf("J != 3K-2D at %d", i)
		}
	}
	if !math.IsNaN(k[7]) {
		t.Errorf("warm-up should be NaN: %v", k[7])
	}
}

func TestBollingerOrder(t *testing.T) {
	close := []float64{10, 11, 10, 12, 11, 13, 12, 14, 13, 15, 14, 16, 15, 17, 16, 18, 17, 19, 18, 20, 19}
	upper, middle, lower := Bollinger(close, 20, 2)
	i := len(close) - 1
	if !(upper[i] > middle[i] && middle[i] > lower[i]) {
		t.Errorf("bands out of order: %v %v %v", upper[i], middle[i], lower[i])
	}
}

func TestATRGapped(t *testing.T) {
	high := make([]float64, 20)
	low := make([]float64, 20)
	close := make([]float64, 20)
	for i := range high {
		high[i], low[i], close[i] = 11, 9, 10
	}
	// constant 2-point range: ATR settles at 2
	out := ATR(high, low, close, 14)
	if !almost(out[19], 2) {
		t.Errorf("unexpected: %v", out[19])
	}
}

func TestROC(t *testing.T) {
	close := make([]float64, 15)
	for i := range close {
		close[i] = 10 * math.Pow(1.01, float64(i))
	}
	out := ROC(close, 10)
	want := (math.Pow(1.01, 10) - 1) * 100
	if !almost(out[14], want) {
		t.Errorf("unexpected: %v, want %v", out[14], want)
	}
	if !math.IsNaN(out[9]) {
		t.Errorf("warm-up should be NaN: %v", out[9])
	}
}

func TestRatio(t *testing.T) {
	out := Ratio([]float64{4, 9}, []float64{2, 0})
	if !almost(out[0], 2) || !math.IsNaN(out[1]) {
		t.Errorf("unexpected: %v", out)
	}
}
