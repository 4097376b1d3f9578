package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayoffAtThresholds(t *testing.T) {
	t.Run("down-and-out call", func(t *testing.T) {
		eng := newTestEngine(t, DownOut, Call, 100, 100, 90, 0, 0.01, 0, 0.20, 365)
		assert.Equal(t, 0.0, eng.PayoffAt(85), "knocked out below the barrier")
		assert.Equal(t, 0.0, eng.PayoffAt(90), "touch counts as knocked")
		assert.Equal(t, 0.0, eng.PayoffAt(95), "alive but out of the money")
		assert.Equal(t, 10.0, eng.PayoffAt(110))
	})

	t.Run("up-and-out put", func(t *testing.T) {
		eng := newTestEngine(t, UpOut, Put, 100, 100, 115, 0, 0.01, 0, 0.20, 365)
		assert.Equal(t, 0.0, eng.PayoffAt(115), "touch counts as knocked")
		assert.Equal(t, 0.0, eng.PayoffAt(120), "knocked out above the barrier")
		assert.Equal(t, 10.0, eng.PayoffAt(90))
		assert.Equal(t, 0.0, eng.PayoffAt(110), "alive but out of the money")
	})

	t.Run("in kinds draw the same knock-to-zero rule", func(t *testing.T) {
		// Documented visualization quirk: the diagram zeroes knocked samples
		// even for knock-in options.
		eng := newTestEngine(t, DownIn, Call, 100, 100, 90, 0, 0.01, 0, 0.20, 365)
		assert.Equal(t, 0.0, eng.PayoffAt(85))
		assert.Equal(t, 10.0, eng.PayoffAt(110))
	})

	t.Run("rebate is ignored in the diagram", func(t *testing.T) {
		eng := newTestEngine(t, DownOut, Call, 100, 100, 90, 5.0, 0.01, 0, 0.20, 365)
		assert.Equal(t, 0.0, eng.PayoffAt(85))
	})
}

func TestPayoffDiagram(t *testing.T) {
	eng := newTestEngine(t, DownOut, Call, 100, 100, 90, 0, 0.01, 0, 0.20, 365)

	t.Run("spans half to one and a half spot", func(t *testing.T) {
		grid := eng.PayoffDiagram(200)
		assert.Len(t, grid, 200)
		assert.InDelta(t, 50.0, grid[0].Spot, 1e-9)
		assert.InDelta(t, 150.0, grid[len(grid)-1].Spot, 1e-9)
		assert.InDelta(t, 50.0, grid[len(grid)-1].Payoff, 1e-9)
	})

	t.Run("samples agree with PayoffAt", func(t *testing.T) {
		for _, gp := range eng.PayoffDiagram(11) {
			assert.Equal(t, eng.PayoffAt(gp.Spot), gp.Payoff)
		}
	})

	t.Run("tiny sample counts fall back to the default", func(t *testing.T) {
		assert.Len(t, eng.PayoffDiagram(0), DefaultGridSize)
		assert.Len(t, eng.PayoffDiagram(1), DefaultGridSize)
	})
}
