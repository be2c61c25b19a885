package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPUCT(t *testing.T) {
	t.Run("panics with negative parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			newPUCT(1.0, -1)
		}, "Should panic when N is negative")
	})
}

func TestPUCTEvaluate(t *testing.T) {
	t.Run("computing PUCT value", func(t *testing.T) {
		policy := newPUCT(1.5, 100)
		got := policy.evaluate(3.0, 4, 0.25)

		expected := 3.0/4 + 1.5*math.Sqrt(100+eps)*0.25/5
		require.InDelta(t, expected, got, 0.0001,
			"Should compute w/n + c*p*sqrt(N)/(1+n)")
	})

	t.Run("unvisited edges rank by prior", func(t *testing.T) {
		policy := newPUCT(1.0, 0)

		require.Greater(t, policy.evaluate(0, 0, 0.6), policy.evaluate(0, 0, 0.4),
			"Higher prior should win before any visit")
		require.Greater(t, policy.evaluate(0, 0, 0.1), 0.0,
			"Exploration term should be positive at N = 0")
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		policy1 := newPUCT(1.0, 100)
		policy2 := newPUCT(1.0, 1000)

		require.Greater(t, policy2.evaluate(5, 10, 0.5), policy1.evaluate(5, 10, 0.5),
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		policy := newPUCT(1.0, 100)

		require.Greater(t, policy.evaluate(0, 10, 0.5), policy.evaluate(0, 20, 0.5),
			"More child visits should decrease exploration term")
	})

	t.Run("exploitation term increases with value", func(t *testing.T) {
		policy := newPUCT(1.0, 100)

		require.Greater(t, policy.evaluate(8, 10, 0.5), policy.evaluate(2, 10, 0.5),
			"Higher value should increase exploitation term")
	})
}
