package pricing

import (
	"fmt"
	"math"
)

const sqrt2Pi = 2.5066282746310002

// BlackScholes calculates the price of a European option under the
// Black-Scholes-Merton model with a continuous dividend yield.
//
// Parameters:
//   - typ: Call or Put
//   - S: spot price of the underlying asset
//   - K: strike price of the option
//   - T: time to expiry in years
//   - r: risk-free interest rate (annual, continuously compounded)
//   - q: dividend yield (annual, continuously compounded)
//   - sigma: volatility of the underlying asset (annual, as a decimal)
//
// Returns:
//
//	The theoretical price of the option. If time to expiry or volatility is
//	zero, the price degenerates to the discounted intrinsic value of the
//	forward — never NaN.
func BlackScholes(
	typ OptionType,
	S float64, // spot
	K float64, // strike
	T float64, // time to expiry in years
	r float64, // risk-free rate
	q float64, // dividend yield
	sigma float64, // volatility
) float64 {

	if T <= 0 || sigma <= 0 {
		// deterministic limit: discounted intrinsic of the forward
		fwd := S * math.Exp((r-q)*math.Max(T, 0))
		return math.Exp(-r*math.Max(T, 0)) * math.Max(0, typ.Sign()*(fwd-K))
	}

	d1 := (math.Log(S/K) + (r-q+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
	d2 := d1 - sigma*math.Sqrt(T)

	if typ == Call {
		return S*math.Exp(-q*T)*normCDF(d1) - K*math.Exp(-r*T)*normCDF(d2)
	}
	return K*math.Exp(-r*T)*normCDF(-d2) - S*math.Exp(-q*T)*normCDF(-d1)
}

// BlackScholesVega calculates the vega of a European option: the sensitivity
// of the option price to a unit change in volatility. It is the same for
// calls and puts. Returns 0 if T or sigma is non-positive.
func BlackScholesVega(
	S float64,
	K float64,
	T float64,
	r float64,
	q float64,
	sigma float64,
) float64 {

	if T <= 0 || sigma <= 0 {
		return 0
	}

	d1 := (math.Log(S/K) + (r-q+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
	return S * math.Exp(-q*T) * normPDF(d1) * math.Sqrt(T)
}

// ImpliedVolATM calculates the implied volatility at-the-money using the
// Newton-Raphson method. It takes the underlying price S, strike K, time to
// expiry T (in years), risk-free rate r, dividend yield q, and both the call
// and put prices at the strike; the solver targets the average of the two,
// which at the money washes out small call/put quote asymmetries.
// Returns the implied volatility or an error if convergence fails.
func ImpliedVolATM(
	S, K, T, r, q float64,
	callPrice, putPrice float64,
) (float64, error) {

	if T <= 0 {
		return 0, fmt.Errorf("invalid expiry")
	}

	marketPrice := (callPrice + putPrice) / 2

	// Initial guess: 20%
	sigma := 0.20

	const (
		maxIter = 100
		tol     = 1e-6
	)

	for i := 0; i < maxIter; i++ {
		price := BlackScholes(Call, S, K, T, r, q, sigma)
		diff := price - marketPrice

		if math.Abs(diff) < tol {
			return sigma, nil
		}

		vega := BlackScholesVega(S, K, T, r, q, sigma)
		if vega < 1e-8 {
			break
		}

		sigma -= diff / vega

		// Guardrails
		if sigma <= 0 {
			sigma = 1e-4
		}
		if sigma > 5 {
			sigma = 5
		}
	}

	return 0, fmt.Errorf("implied vol did not converge")
}

// normPDF calculates the probability density function of the standard
// normal distribution: exp(-0.5 * x^2) / sqrt(2π).
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / sqrt2Pi
}

// normCDF computes the cumulative distribution function of the standard
// normal distribution using the error function.
func normCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}
