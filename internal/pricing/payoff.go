package pricing

// GridPoint is one sample of the terminal payoff diagram.
type GridPoint struct {
	Spot   float64 `json:"spot"`
	Payoff float64 `json:"payoff"`
}

// PayoffAt returns the terminal payoff used for diagram rendering at
// underlying price s. The knock test is a plain threshold: Up barriers knock
// at s >= level, Down barriers at s <= level. A knocked sample is drawn as
// zero for every kind — including the In kinds, where true economics would
// be zero until knocked instead — and the rebate is ignored; the diagram
// shows the intrinsic payoff shape only. Callers wanting economic value use
// NPV, not this.
func (e *Engine) PayoffAt(s float64) float64 {
	if breaches(e.spec.Kind, s, e.spec.Level) {
		return 0
	}
	return e.payoff.Intrinsic(s)
}

// DefaultGridSize is the sample count of the rendered payoff diagram.
const DefaultGridSize = 200

// PayoffDiagram samples PayoffAt over n evenly spaced points spanning
// 0.5x to 1.5x the current spot. n values below 2 fall back to
// DefaultGridSize.
func (e *Engine) PayoffDiagram(n int) []GridPoint {
	if n < 2 {
		n = DefaultGridSize
	}
	lo := 0.5 * e.proc.Spot()
	hi := 1.5 * e.proc.Spot()
	step := (hi - lo) / float64(n-1)

	grid := make([]GridPoint, n)
	for i := range grid {
		s := lo + float64(i)*step
		grid[i] = GridPoint{Spot: s, Payoff: e.PayoffAt(s)}
	}
	return grid
}
