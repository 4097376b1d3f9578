// Package market bundles the scalar market inputs of a pricing request —
// spot, flat risk-free and dividend yield curves, flat Black volatility and
// an evaluation date — into the discounting and drift primitives the
// closed-form pricing formulas consume.
//
// A Snapshot is built fresh per pricing request and never mutated; a Process
// derived from it is safe to share across engine instances.
package market

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidMarketData is returned when a snapshot carries inputs the
// pricing model cannot accept (non-positive spot, negative volatility).
var ErrInvalidMarketData = errors.New("invalid market data")

// Snapshot holds the frozen market state at one evaluation instant.
type Snapshot struct {
	EvaluationDate time.Time `json:"evaluation_date"`
	Spot           float64   `json:"spot"`           // current underlying price, must be > 0
	RiskFreeRate   float64   `json:"risk_free_rate"` // continuously compounded, flat
	DividendYield  float64   `json:"dividend_yield"` // continuously compounded, flat
	Volatility     float64   `json:"volatility"`     // flat Black vol, must be >= 0
}

// Validate rejects inputs the Black-Scholes-Merton model is undefined for.
// Rates may be negative; volatility may be zero (deterministic limit).
func (s Snapshot) Validate() error {
	if s.Spot <= 0 {
		return fmt.Errorf("%w: spot must be positive, got %v", ErrInvalidMarketData, s.Spot)
	}
	if s.Volatility < 0 {
		return fmt.Errorf("%w: volatility must be non-negative, got %v", ErrInvalidMarketData, s.Volatility)
	}
	return nil
}

// Process is the Black-Scholes-Merton process descriptor derived from a
// validated snapshot: flat curves anchored at the evaluation date under
// Act/365F. It is an immutable value; all methods are pure.
type Process struct {
	snap Snapshot
}

// NewProcess validates the snapshot and wraps it in a process descriptor.
func NewProcess(snap Snapshot) (Process, error) {
	if err := snap.Validate(); err != nil {
		return Process{}, err
	}
	return Process{snap: snap}, nil
}

// Snapshot returns the market state the process was built from.
func (p Process) Snapshot() Snapshot { return p.snap }

// Spot returns the underlying price at the evaluation date.
func (p Process) Spot() float64 { return p.snap.Spot }

// RiskFreeRate returns the flat continuously compounded risk-free rate.
func (p Process) RiskFreeRate() float64 { return p.snap.RiskFreeRate }

// DividendYield returns the flat continuously compounded dividend yield.
func (p Process) DividendYield() float64 { return p.snap.DividendYield }

// Volatility returns the flat Black volatility.
func (p Process) Volatility() float64 { return p.snap.Volatility }

// YearFraction returns the Act/365F time from the evaluation date to d.
func (p Process) YearFraction(d time.Time) float64 {
	return Act365Fixed(p.snap.EvaluationDate, d)
}

// DiscountFactor returns e^{-r·t}, the risk-free discount factor for a
// cash flow t years from the evaluation date.
func (p Process) DiscountFactor(t float64) float64 {
	return math.Exp(-p.snap.RiskFreeRate * t)
}

// DividendFactor returns e^{-q·t}, the dividend-yield deflator over t years.
func (p Process) DividendFactor(t float64) float64 {
	return math.Exp(-p.snap.DividendYield * t)
}

// Forward returns the t-year forward of the spot, S·e^{(r-q)·t}.
func (p Process) Forward(t float64) float64 {
	return p.snap.Spot * math.Exp((p.snap.RiskFreeRate-p.snap.DividendYield)*t)
}

// StdDev returns the total standard deviation of log returns over t years,
// sigma·sqrt(t). Zero when t <= 0.
func (p Process) StdDev(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return p.snap.Volatility * math.Sqrt(t)
}
