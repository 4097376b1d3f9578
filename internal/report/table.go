package report

import (
	"fmt"
	"io"

	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"

	"github.com/contactkeval/barrier-pricer/internal/pricing"
)

// PrintResults renders one pricing result as a console table. Values are
// shown to 4 decimal places, gamma to 6, matching the typical magnitudes of
// the respective Greeks.
func PrintResults(w io.Writer, e Entry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Option", fmt.Sprintf("%s %s K=%.2f H=%.2f", e.BarrierType, e.OptionType, e.Strike, e.Barrier)})
	table.Append([]string{"Price", fmt.Sprintf("%.4f", e.NPV)})
	table.Append([]string{"Delta", fmt.Sprintf("%.4f", e.Delta)})
	table.Append([]string{"Gamma", fmt.Sprintf("%.6f", e.Gamma)})
	table.Append([]string{"Vega", fmt.Sprintf("%.4f", e.Vega)})
	table.Append([]string{"Theta", fmt.Sprintf("%.4f", e.Theta)})
	table.Append([]string{"Rho", fmt.Sprintf("%.4f", e.Rho)})
	table.Render()
}

// PrintDiagram tabulates the sampled payoff grid followed by a one-line
// summary (max and mean payoff over the span).
func PrintDiagram(w io.Writer, grid []pricing.GridPoint) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Underlying", "Payoff"})
	payoffs := make([]float64, 0, len(grid))
	for _, gp := range grid {
		table.Append([]string{fmt.Sprintf("%.2f", gp.Spot), fmt.Sprintf("%.4f", gp.Payoff)})
		payoffs = append(payoffs, gp.Payoff)
	}
	table.Render()

	max, err := stats.Max(payoffs)
	if err != nil {
		return
	}
	mean, err := stats.Mean(payoffs)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "payoff over span: max=%.4f mean=%.4f (%d samples)\n", max, mean, len(grid))
}
