package market

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalDate = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

func TestAct365Fixed(t *testing.T) {
	t.Run("one year is 365 days", func(t *testing.T) {
		assert.InDelta(t, 1.0, Act365Fixed(evalDate, evalDate.AddDate(0, 0, 365)), 1e-12)
	})

	t.Run("same day is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Act365Fixed(evalDate, evalDate))
	})

	t.Run("reversed dates are negative", func(t *testing.T) {
		assert.Less(t, Act365Fixed(evalDate, evalDate.AddDate(0, 0, -30)), 0.0)
	})

	t.Run("half year", func(t *testing.T) {
		got := Act365Fixed(evalDate, evalDate.AddDate(0, 0, 182))
		assert.InDelta(t, 182.0/365.0, got, 1e-12)
	})
}

func TestSnapshotValidate(t *testing.T) {
	base := Snapshot{
		EvaluationDate: evalDate,
		Spot:           100,
		RiskFreeRate:   0.01,
		DividendYield:  0.0,
		Volatility:     0.20,
	}

	t.Run("valid snapshot passes", func(t *testing.T) {
		assert.NoError(t, base.Validate())
	})

	t.Run("zero spot rejected", func(t *testing.T) {
		s := base
		s.Spot = 0
		assert.ErrorIs(t, s.Validate(), ErrInvalidMarketData)
	})

	t.Run("negative spot rejected", func(t *testing.T) {
		s := base
		s.Spot = -10
		assert.ErrorIs(t, s.Validate(), ErrInvalidMarketData)
	})

	t.Run("negative volatility rejected", func(t *testing.T) {
		s := base
		s.Volatility = -0.1
		assert.ErrorIs(t, s.Validate(), ErrInvalidMarketData)
	})

	t.Run("zero volatility allowed", func(t *testing.T) {
		s := base
		s.Volatility = 0
		assert.NoError(t, s.Validate())
	})

	t.Run("negative rates allowed", func(t *testing.T) {
		s := base
		s.RiskFreeRate = -0.005
		s.DividendYield = -0.01
		assert.NoError(t, s.Validate())
	})
}

func TestProcessPrimitives(t *testing.T) {
	snap := Snapshot{
		EvaluationDate: evalDate,
		Spot:           100,
		RiskFreeRate:   0.05,
		DividendYield:  0.02,
		Volatility:     0.30,
	}
	proc, err := NewProcess(snap)
	require.NoError(t, err)

	t.Run("discount factor", func(t *testing.T) {
		assert.InDelta(t, math.Exp(-0.05*2), proc.DiscountFactor(2), 1e-15)
	})

	t.Run("dividend factor", func(t *testing.T) {
		assert.InDelta(t, math.Exp(-0.02*2), proc.DividendFactor(2), 1e-15)
	})

	t.Run("forward carries at r minus q", func(t *testing.T) {
		assert.InDelta(t, 100*math.Exp(0.03), proc.Forward(1), 1e-12)
	})

	t.Run("std dev scales with sqrt time", func(t *testing.T) {
		assert.InDelta(t, 0.30*math.Sqrt(0.25), proc.StdDev(0.25), 1e-15)
		assert.Equal(t, 0.0, proc.StdDev(0))
		assert.Equal(t, 0.0, proc.StdDev(-1))
	})

	t.Run("year fraction anchored at evaluation date", func(t *testing.T) {
		assert.InDelta(t, 1.0, proc.YearFraction(evalDate.AddDate(0, 0, 365)), 1e-12)
	})

	t.Run("invalid snapshot rejected", func(t *testing.T) {
		bad := snap
		bad.Spot = 0
		_, err := NewProcess(bad)
		assert.ErrorIs(t, err, ErrInvalidMarketData)
	})
}
