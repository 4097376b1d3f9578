// Package scenario loads batch pricing requests from YAML files. Each
// scenario is the full frozen scalar set one engine evaluation needs; the
// field names and accepted spellings mirror the interactive inputs
// ("Call"/"Put", "Down-Out", ...).
package scenario

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/contactkeval/barrier-pricer/internal/market"
	"github.com/contactkeval/barrier-pricer/internal/pricing"
)

const dateLayout = "2006-01-02"

// Scenario is one named pricing request.
type Scenario struct {
	Name          string  `yaml:"name" json:"name"`
	Spot          float64 `yaml:"spot" json:"spot"`
	Strike        float64 `yaml:"strike" json:"strike"`
	Barrier       float64 `yaml:"barrier" json:"barrier"`
	Rebate        float64 `yaml:"rebate" json:"rebate"`
	RiskFreeRate  float64 `yaml:"risk_free_rate" json:"risk_free_rate"`
	DividendYield float64 `yaml:"dividend_yield" json:"dividend_yield"`
	Volatility    float64 `yaml:"volatility" json:"volatility"`
	// OptionType is "Call" or "Put"; BarrierType is one of "Up-In",
	// "Up-Out", "Down-In", "Down-Out". Dates use YYYY-MM-DD; the
	// evaluation date defaults to today when omitted.
	OptionType     string `yaml:"option_type" json:"option_type"`
	BarrierType    string `yaml:"barrier_type" json:"barrier_type"`
	EvaluationDate string `yaml:"evaluation_date" json:"evaluation_date"`
	MaturityDate   string `yaml:"maturity_date" json:"maturity_date"`
}

// File is the top-level YAML document.
type File struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Load reads and decodes a scenario file. Decoding is strict: unknown keys
// are errors, so typos in field names fail loudly instead of pricing with a
// silent zero.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a scenario document from raw YAML bytes.
func Parse(raw []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("invalid scenario file: %w", err)
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario file contains no scenarios")
	}
	for i := range f.Scenarios {
		if f.Scenarios[i].Name == "" {
			f.Scenarios[i].Name = fmt.Sprintf("scenario-%d", i+1)
		}
	}
	return &f, nil
}

// Engine builds the market process and pricing engine for the scenario.
// Input errors (bad enum spellings, bad dates, invalid market data or
// exercise) surface here, before any pricing happens.
func (s Scenario) Engine() (*pricing.Engine, error) {
	optType, err := pricing.ParseOptionType(s.OptionType)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	kind, err := pricing.ParseBarrierKind(s.BarrierType)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}

	evalDate := time.Now().UTC().Truncate(24 * time.Hour)
	if s.EvaluationDate != "" {
		evalDate, err = time.Parse(dateLayout, s.EvaluationDate)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: invalid evaluation_date: %w", s.Name, err)
		}
	}
	maturity, err := time.Parse(dateLayout, s.MaturityDate)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: invalid maturity_date: %w", s.Name, err)
	}

	proc, err := market.NewProcess(market.Snapshot{
		EvaluationDate: evalDate,
		Spot:           s.Spot,
		RiskFreeRate:   s.RiskFreeRate,
		DividendYield:  s.DividendYield,
		Volatility:     s.Volatility,
	})
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}

	eng, err := pricing.NewEngine(proc,
		pricing.BarrierSpec{Kind: kind, Level: s.Barrier, Rebate: s.Rebate},
		pricing.VanillaPayoff{Type: optType, Strike: s.Strike},
		maturity)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return eng, nil
}
