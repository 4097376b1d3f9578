package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contactkeval/barrier-pricer/internal/pricing"
)

// Entry is one priced scenario ready for output.
type Entry struct {
	Name        string  `json:"name"`
	BarrierType string  `json:"barrier_type"`
	OptionType  string  `json:"option_type"`
	Spot        float64 `json:"spot"`
	Strike      float64 `json:"strike"`
	Barrier     float64 `json:"barrier"`
	pricing.Results
}

func WriteJSON(entries []Entry, outdir string) error {
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "results.json"), b, 0644)
}

func WriteCSV(entries []Entry, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "results.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	headers := []string{"name", "barrier_type", "option_type", "spot", "strike", "barrier", "npv", "delta", "gamma", "vega", "theta", "rho"}
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.Name,
			e.BarrierType,
			e.OptionType,
			fmt.Sprintf("%.4f", e.Spot),
			fmt.Sprintf("%.4f", e.Strike),
			fmt.Sprintf("%.4f", e.Barrier),
			fmt.Sprintf("%.4f", e.NPV),
			fmt.Sprintf("%.4f", e.Delta),
			fmt.Sprintf("%.6f", e.Gamma),
			fmt.Sprintf("%.4f", e.Vega),
			fmt.Sprintf("%.4f", e.Theta),
			fmt.Sprintf("%.4f", e.Rho),
		}
		_ = w.Write(row)
	}
	return nil
}
