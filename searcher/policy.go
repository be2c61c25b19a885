package searcher

import "math"

const eps = 1e-8 // Keeps the exploration term alive before the first visit

type puct struct {
	numerator float64
}

func newPUCT(cPuct float64, N int) *puct {
	if N < 0 {
		panic("N cannot be negative")
	}
	return &puct{numerator: cPuct * math.Sqrt(float64(N)+eps)}
}

// evaluate scores an edge with total value w, visits n and prior p:
// PUCT = q + c*p*sqrt(N)/(1+n), with q = 0 for unvisited edges
func (u puct) evaluate(w float64, n int, p float64) float64 {
	q := 0.0
	if n > 0 {
		q = w / float64(n)
	}
	return q + u.numerator*p/float64(1+n)
}
