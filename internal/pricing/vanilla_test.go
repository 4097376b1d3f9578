package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlackScholesKnownValue(t *testing.T) {
	// Textbook reference point: S=K=100, T=1, r=5%, q=0, sigma=20%.
	call := BlackScholes(Call, 100, 100, 1.0, 0.05, 0.0, 0.20)
	assert.InDelta(t, 10.4506, call, 1e-3)

	put := BlackScholes(Put, 100, 100, 1.0, 0.05, 0.0, 0.20)
	assert.InDelta(t, 5.5735, put, 1e-3)
}

func TestBlackScholesPutCallParity(t *testing.T) {
	S, K, T, r, q, sigma := 105.0, 98.0, 0.75, 0.03, 0.015, 0.25

	call := BlackScholes(Call, S, K, T, r, q, sigma)
	put := BlackScholes(Put, S, K, T, r, q, sigma)

	lhs := call - put
	rhs := S*math.Exp(-q*T) - K*math.Exp(-r*T)
	assert.InDelta(t, rhs, lhs, 1e-9, "put-call parity violated")
}

func TestBlackScholesDegenerateInputs(t *testing.T) {
	t.Run("zero maturity is intrinsic", func(t *testing.T) {
		assert.Equal(t, 10.0, BlackScholes(Call, 110, 100, 0, 0.05, 0.0, 0.20))
		assert.Equal(t, 0.0, BlackScholes(Call, 90, 100, 0, 0.05, 0.0, 0.20))
		assert.Equal(t, 10.0, BlackScholes(Put, 90, 100, 0, 0.05, 0.0, 0.20))
	})

	t.Run("zero vol is discounted forward intrinsic", func(t *testing.T) {
		S, K, T, r := 100.0, 90.0, 1.0, 0.05
		fwd := S * math.Exp(r*T)
		want := math.Exp(-r*T) * (fwd - K)
		assert.InDelta(t, want, BlackScholes(Call, S, K, T, r, 0, 0), 1e-12)

		// deep out of the money put pays nothing
		assert.Equal(t, 0.0, BlackScholes(Put, S, K, T, r, 0, 0))
	})
}

func TestBlackScholesVega(t *testing.T) {
	t.Run("positive for live option", func(t *testing.T) {
		assert.Greater(t, BlackScholesVega(100, 100, 1.0, 0.05, 0.0, 0.20), 0.0)
	})

	t.Run("zero on degenerate inputs", func(t *testing.T) {
		assert.Equal(t, 0.0, BlackScholesVega(100, 100, 0, 0.05, 0.0, 0.20))
		assert.Equal(t, 0.0, BlackScholesVega(100, 100, 1.0, 0.05, 0.0, 0))
	})

	t.Run("matches bump-and-reprice", func(t *testing.T) {
		S, K, T, r, q, sigma := 100.0, 105.0, 0.5, 0.02, 0.01, 0.3
		h := 1e-5
		bumped := (BlackScholes(Call, S, K, T, r, q, sigma+h) - BlackScholes(Call, S, K, T, r, q, sigma-h)) / (2 * h)
		assert.InDelta(t, bumped, BlackScholesVega(S, K, T, r, q, sigma), 1e-6)
	})
}

func TestImpliedVolATM(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		// r == q keeps call and put equal at-the-money, so the solver's
		// call-side target coincides with both quotes.
		S, K, T, r, q := 100.0, 100.0, 0.5, 0.02, 0.02
		const sigma = 0.25
		call := BlackScholes(Call, S, K, T, r, q, sigma)
		put := BlackScholes(Put, S, K, T, r, q, sigma)
		require.InDelta(t, call, put, 1e-9)

		iv, err := ImpliedVolATM(S, K, T, r, q, call, put)
		require.NoError(t, err)
		assert.InDelta(t, sigma, iv, 1e-4)
	})

	t.Run("invalid expiry", func(t *testing.T) {
		_, err := ImpliedVolATM(100, 100, 0, 0.02, 0, 5, 5)
		assert.Error(t, err)
	})
}
