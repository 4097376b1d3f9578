// Package pricing implements the analytic valuation of continuously
// monitored single-barrier options under the Black-Scholes-Merton model.
//
// The closed-form prices follow the Reiner-Rubinstein formulas: the four
// barrier kinds (Up-In, Up-Out, Down-In, Down-Out) for calls and puts are
// all assembled from six shared terms, so the in/out parity identity
//
//	NPV(In) + NPV(Out) == european vanilla NPV   (at zero rebate)
//
// holds structurally rather than by numerical accident. Greeks are central
// finite differences on the same closed-form value and are memoized per
// engine instance.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/contactkeval/barrier-pricer/internal/market"
)

var (
	// ErrInvalidExercise is returned when the exercise date precedes the
	// evaluation date. An exercise date equal to the evaluation date is
	// valid and prices to the immediate settlement value.
	ErrInvalidExercise = errors.New("invalid exercise")

	// ErrInvalidOption is returned for option terms outside the data
	// model: non-positive strike or barrier level, negative rebate.
	ErrInvalidOption = errors.New("invalid option terms")
)

// OptionType selects a call or put vanilla payoff.
type OptionType int

const (
	Call OptionType = iota
	Put
)

// Sign returns +1 for calls, -1 for puts (the φ of the barrier formulas).
func (t OptionType) Sign() float64 {
	if t == Call {
		return 1
	}
	return -1
}

func (t OptionType) String() string {
	if t == Call {
		return "Call"
	}
	return "Put"
}

// ParseOptionType accepts the UI spellings "Call"/"Put", case-insensitive.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return 0, fmt.Errorf("%w: unknown option type %q", ErrInvalidOption, s)
}

// BarrierKind is the tagged variant selecting among the four closed-form
// branches. Up barriers sit conceptually above spot, Down barriers below;
// In options activate on a barrier touch, Out options extinguish.
type BarrierKind int

const (
	UpIn BarrierKind = iota
	UpOut
	DownIn
	DownOut
)

// IsUp reports whether the barrier is monitored from below (Up-In, Up-Out).
func (k BarrierKind) IsUp() bool { return k == UpIn || k == UpOut }

// IsIn reports whether the option knocks in rather than out.
func (k BarrierKind) IsIn() bool { return k == UpIn || k == DownIn }

func (k BarrierKind) String() string {
	switch k {
	case UpIn:
		return "Up-In"
	case UpOut:
		return "Up-Out"
	case DownIn:
		return "Down-In"
	default:
		return "Down-Out"
	}
}

// ParseBarrierKind accepts the UI spellings ("Up-Out", "Down-In", ...),
// case-insensitive, with or without the hyphen.
func ParseBarrierKind(s string) (BarrierKind, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(s), "-", ""), "_", ""))
	switch norm {
	case "upin":
		return UpIn, nil
	case "upout":
		return UpOut, nil
	case "downin":
		return DownIn, nil
	case "downout":
		return DownOut, nil
	}
	return 0, fmt.Errorf("%w: unknown barrier kind %q", ErrInvalidOption, s)
}

// BarrierSpec describes the barrier feature of the option. A level on the
// "wrong" side of spot for the kind is unusual but legal; the engine prices
// it with the literal formula and never rejects it.
type BarrierSpec struct {
	Kind   BarrierKind `json:"kind"`
	Level  float64     `json:"level"`  // barrier price, > 0
	Rebate float64     `json:"rebate"` // fixed cash on knock-out / failed knock-in, >= 0
}

// VanillaPayoff is the plain terminal payoff the barrier wraps.
type VanillaPayoff struct {
	Type   OptionType `json:"type"`
	Strike float64    `json:"strike"` // > 0
}

// Intrinsic returns max(S-K, 0) for calls, max(K-S, 0) for puts.
func (p VanillaPayoff) Intrinsic(s float64) float64 {
	return math.Max(p.Type.Sign()*(s-p.Strike), 0)
}

// Engine prices one barrier option against one market process. It is a
// stateless function of its immutable inputs apart from the lazily computed,
// write-once results cache; repeated calls return identical values.
type Engine struct {
	proc     market.Process
	spec     BarrierSpec
	payoff   VanillaPayoff
	maturity time.Time
	tau      float64 // Act/365F time to maturity, >= 0

	results *Results // memoized NPV + Greeks, nil until first access
}

// NewEngine binds a process, barrier spec and vanilla payoff to a European
// exercise date. The exercise date must not precede the evaluation date;
// equality is the valid zero-maturity edge case.
func NewEngine(proc market.Process, spec BarrierSpec, payoff VanillaPayoff, maturity time.Time) (*Engine, error) {
	if payoff.Strike <= 0 {
		return nil, fmt.Errorf("%w: strike must be positive, got %v", ErrInvalidOption, payoff.Strike)
	}
	if spec.Level <= 0 {
		return nil, fmt.Errorf("%w: barrier level must be positive, got %v", ErrInvalidOption, spec.Level)
	}
	if spec.Rebate < 0 {
		return nil, fmt.Errorf("%w: rebate must be non-negative, got %v", ErrInvalidOption, spec.Rebate)
	}
	tau := proc.YearFraction(maturity)
	if tau < 0 {
		return nil, fmt.Errorf("%w: exercise date %s precedes evaluation date %s",
			ErrInvalidExercise,
			maturity.Format("2006-01-02"),
			proc.Snapshot().EvaluationDate.Format("2006-01-02"))
	}
	return &Engine{proc: proc, spec: spec, payoff: payoff, maturity: maturity, tau: tau}, nil
}

// TimeToMaturity returns the Act/365F year fraction to exercise.
func (e *Engine) TimeToMaturity() float64 { return e.tau }

// NPV returns the present value of the option.
func (e *Engine) NPV() float64 { return e.Results().NPV }

// barrierParams carries the scalar inputs of one closed-form evaluation.
// Greeks re-evaluate the formula with bumped copies of this struct, so it is
// deliberately decoupled from the engine's immutable fields.
type barrierParams struct {
	kind   BarrierKind
	typ    OptionType
	spot   float64
	strike float64
	level  float64
	rebate float64
	tau    float64
	rate   float64
	yield  float64
	vol    float64
}

func (e *Engine) params() barrierParams {
	return barrierParams{
		kind:   e.spec.Kind,
		typ:    e.payoff.Type,
		spot:   e.proc.Spot(),
		strike: e.payoff.Strike,
		level:  e.spec.Level,
		rebate: e.spec.Rebate,
		tau:    e.tau,
		rate:   e.proc.RiskFreeRate(),
		yield:  e.proc.DividendYield(),
		vol:    e.proc.Volatility(),
	}
}

// analyticNPV evaluates the closed-form barrier price. Degenerate inputs
// (zero maturity, zero total variance) are routed to their limiting values
// before any formula term that could divide by zero is formed.
func analyticNPV(p barrierParams) float64 {
	if p.tau == 0 {
		return settlementValue(p, p.spot)
	}
	v := p.vol * math.Sqrt(p.tau)
	if v == 0 {
		return deterministicValue(p)
	}

	S, K, H := p.spot, p.strike, p.level
	r, q, T := p.rate, p.yield, p.tau
	sigma := p.vol
	b := r - q // cost of carry

	phi := p.typ.Sign()
	eta := 1.0 // down barriers
	if p.kind.IsUp() {
		eta = -1.0
	}

	mu := (b - 0.5*sigma*sigma) / (sigma * sigma)
	lambda := math.Sqrt(mu*mu + 2*r/(sigma*sigma))

	dfr := math.Exp(-r * T)      // risk-free discount
	dfb := math.Exp((b - r) * T) // e^{-qT}: carry-adjusted deflator
	hs := H / S

	x1 := math.Log(S/K)/v + (1+mu)*v
	x2 := math.Log(S/H)/v + (1+mu)*v
	y1 := math.Log(H*H/(S*K))/v + (1+mu)*v
	y2 := math.Log(hs)/v + (1+mu)*v
	z := math.Log(hs)/v + lambda*v

	powMu := math.Pow(hs, 2*mu)
	powMu1 := math.Pow(hs, 2*(mu+1))

	fA := phi*S*dfb*normCDF(phi*x1) - phi*K*dfr*normCDF(phi*(x1-v))
	fB := phi*S*dfb*normCDF(phi*x2) - phi*K*dfr*normCDF(phi*(x2-v))
	fC := phi*S*dfb*powMu1*normCDF(eta*y1) - phi*K*dfr*powMu*normCDF(eta*(y1-v))
	fD := phi*S*dfb*powMu1*normCDF(eta*y2) - phi*K*dfr*powMu*normCDF(eta*(y2-v))

	// Rebate terms: E pays the rebate at expiry when an in-barrier is never
	// touched, F pays it at the hit time of an out-barrier.
	fE := p.rebate * dfr * (normCDF(eta*(x2-v)) - powMu*normCDF(eta*(y2-v)))
	fF := p.rebate * (math.Pow(hs, mu+lambda)*normCDF(eta*z) +
		math.Pow(hs, mu-lambda)*normCDF(eta*(z-2*lambda*v)))

	strikeAbove := K >= H

	var npv float64
	switch p.kind {
	case DownIn:
		if p.typ == Call {
			if strikeAbove {
				npv = fC + fE
			} else {
				npv = fA - fB + fD + fE
			}
		} else {
			if strikeAbove {
				npv = fB - fC + fD + fE
			} else {
				npv = fA + fE
			}
		}
	case UpIn:
		if p.typ == Call {
			if strikeAbove {
				npv = fA + fE
			} else {
				npv = fB - fC + fD + fE
			}
		} else {
			if strikeAbove {
				npv = fA - fB + fD + fE
			} else {
				npv = fC + fE
			}
		}
	case DownOut:
		if p.typ == Call {
			if strikeAbove {
				npv = fA - fC + fF
			} else {
				npv = fB - fD + fF
			}
		} else {
			if strikeAbove {
				npv = fA - fB + fC - fD + fF
			} else {
				npv = fF
			}
		}
	case UpOut:
		if p.typ == Call {
			if strikeAbove {
				npv = fF
			} else {
				npv = fA - fB + fC - fD + fF
			}
		} else {
			if strikeAbove {
				npv = fB - fD + fF
			} else {
				npv = fA - fC + fF
			}
		}
	}

	if math.IsNaN(npv) || math.IsInf(npv, 0) {
		// Internal guard: no degenerate numeric result may escape.
		return 0
	}
	return npv
}

// settlementValue is the option value at expiry: the knock decision is made
// from the terminal price alone. Out options pay intrinsic unless knocked
// (then the rebate); in options pay intrinsic only if knocked (else the
// rebate).
func settlementValue(p barrierParams, s float64) float64 {
	payoff := VanillaPayoff{Type: p.typ, Strike: p.strike}
	knocked := breaches(p.kind, s, p.level)
	if p.kind.IsIn() {
		if knocked {
			return payoff.Intrinsic(s)
		}
		return p.rebate
	}
	if knocked {
		return p.rebate
	}
	return payoff.Intrinsic(s)
}

// deterministicValue handles the zero-variance limit for tau > 0: the spot
// path S·e^{(r-q)t} is monotone, so the barrier is hit iff the spot or the
// terminal forward breaches the level. Cash flows discount from expiry.
func deterministicValue(p barrierParams) float64 {
	payoff := VanillaPayoff{Type: p.typ, Strike: p.strike}
	fwd := p.spot * math.Exp((p.rate-p.yield)*p.tau)
	df := math.Exp(-p.rate * p.tau)
	knocked := breaches(p.kind, p.spot, p.level) || breaches(p.kind, fwd, p.level)
	if p.kind.IsIn() {
		if knocked {
			return df * payoff.Intrinsic(fwd)
		}
		return df * p.rebate
	}
	if knocked {
		return df * p.rebate
	}
	return df * payoff.Intrinsic(fwd)
}

// breaches reports whether price s touches or crosses the barrier level for
// the given kind: at or above for Up barriers, at or below for Down.
func breaches(kind BarrierKind, s, level float64) bool {
	if kind.IsUp() {
		return s >= level
	}
	return s <= level
}
