package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/contactkeval/barrier-pricer/internal/logger"
	"github.com/contactkeval/barrier-pricer/internal/pricing"
	"github.com/contactkeval/barrier-pricer/internal/report"
	"github.com/contactkeval/barrier-pricer/internal/scenario"
	"github.com/contactkeval/barrier-pricer/internal/server"
)

const dateLayout = "2006-01-02"

var rootCmd = &cobra.Command{
	Use:   "barrier-pricer",
	Short: "Prices a single-barrier option and its Greeks under Black-Scholes-Merton",
	Long: `Prices a continuously monitored single-barrier option (Up-In, Up-Out,
Down-In, Down-Out; call or put) with the analytic Reiner-Rubinstein closed
form, reports NPV and the five standard Greeks, and optionally renders the
terminal payoff diagram over a 0.5x-1.5x spot span.`,
	Run: func(cmd *cobra.Command, args []string) {
		sc := scenarioFromFlags(cmd)

		eng, err := sc.Engine()
		if err != nil {
			log.Fatalf("building engine: %v", err)
		}

		res := eng.Results()
		report.PrintResults(os.Stdout, report.Entry{
			Name:        sc.Name,
			BarrierType: sc.BarrierType,
			OptionType:  sc.OptionType,
			Spot:        sc.Spot,
			Strike:      sc.Strike,
			Barrier:     sc.Barrier,
			Results:     res,
		})

		diagram, err := cmd.Flags().GetBool("diagram")
		if err != nil {
			log.Fatalf("error getting diagram flag: %v", err)
		}
		if diagram {
			n, err := cmd.Flags().GetInt("grid")
			if err != nil {
				log.Fatalf("error getting grid flag: %v", err)
			}
			report.PrintDiagram(os.Stdout, eng.PayoffDiagram(n))
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a REST server accepting pricing requests",
	Run: func(cmd *cobra.Command, args []string) {
		addr, err := cmd.Flags().GetString("port")
		if err != nil {
			log.Fatalf("error getting port flag: %v", err)
		}
		logger.Infof("starting REST server on %s", addr)
		log.Fatal(http.ListenAndServe(addr, server.Setup()))
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Price every scenario in a YAML file and write JSON/CSV reports",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := cmd.Flags().GetString("file")
		if err != nil {
			log.Fatalf("error getting file flag: %v", err)
		}
		outdir, err := cmd.Flags().GetString("out")
		if err != nil {
			log.Fatalf("error getting out flag: %v", err)
		}

		f, err := scenario.Load(path)
		if err != nil {
			log.Fatalf("loading scenarios: %v", err)
		}

		start := time.Now()
		entries := make([]report.Entry, 0, len(f.Scenarios))
		for _, sc := range f.Scenarios {
			eng, err := sc.Engine()
			if err != nil {
				log.Fatalf("scenario failed: %v", err)
			}
			entries = append(entries, report.Entry{
				Name:        sc.Name,
				BarrierType: sc.BarrierType,
				OptionType:  sc.OptionType,
				Spot:        sc.Spot,
				Strike:      sc.Strike,
				Barrier:     sc.Barrier,
				Results:     eng.Results(),
			})
		}

		if err := os.MkdirAll(outdir, 0755); err != nil {
			log.Fatalf("could not create output dir %s: %v", outdir, err)
		}
		if err := report.WriteJSON(entries, outdir); err != nil {
			log.Fatalf("writing JSON report: %v", err)
		}
		if err := report.WriteCSV(entries, outdir); err != nil {
			log.Fatalf("writing CSV report: %v", err)
		}
		logger.Infof("priced %d scenarios in %v, reports in %s", len(entries), time.Since(start), outdir)
	},
}

// scenarioFromFlags assembles a pricing request from the root command flags.
// The defaults mirror the original interactive tool: spot 100, strike 100,
// barrier 120, r 1%, vol 20%, no dividend, Down-Out call maturing in a year.
func scenarioFromFlags(cmd *cobra.Command) scenario.Scenario {
	getF := func(name string) float64 {
		v, err := cmd.Flags().GetFloat64(name)
		if err != nil {
			log.Fatalf("error getting %s flag: %v", name, err)
		}
		return v
	}
	getS := func(name string) string {
		v, err := cmd.Flags().GetString(name)
		if err != nil {
			log.Fatalf("error getting %s flag: %v", name, err)
		}
		return v
	}

	maturity := getS("maturity")
	if maturity == "" {
		maturity = time.Now().UTC().AddDate(1, 0, 0).Format(dateLayout)
	}

	return scenario.Scenario{
		Name:           "cli",
		Spot:           getF("spot"),
		Strike:         getF("strike"),
		Barrier:        getF("barrier"),
		Rebate:         getF("rebate"),
		RiskFreeRate:   getF("rate"),
		DividendYield:  getF("dividend"),
		Volatility:     getF("vol"),
		OptionType:     getS("option-type"),
		BarrierType:    getS("barrier-type"),
		EvaluationDate: getS("evaluation-date"),
		MaturityDate:   maturity,
	}
}

func main() {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().Int("verbosity", 1, "0=errors, 1=info, 2=debug, 3=trace")

	rootCmd.Flags().Float64("spot", 100.0, "Spot price of the underlying")
	rootCmd.Flags().Float64("strike", 100.0, "Strike price")
	rootCmd.Flags().Float64("barrier", 120.0, "Barrier level")
	rootCmd.Flags().Float64("rebate", 0.0, "Fixed cash rebate paid on knock-out / failed knock-in")
	rootCmd.Flags().Float64("rate", 0.01, "Risk-free rate (continuously compounded)")
	rootCmd.Flags().Float64("dividend", 0.0, "Dividend yield (continuously compounded)")
	rootCmd.Flags().Float64("vol", 0.20, "Volatility")
	rootCmd.Flags().String("option-type", "Call", "Option type: Call or Put")
	rootCmd.Flags().String("barrier-type", "Down-Out", "Barrier type: Up-In, Up-Out, Down-In or Down-Out")
	rootCmd.Flags().String("maturity", "", "Maturity date YYYY-MM-DD (default: one year from today)")
	rootCmd.Flags().String("evaluation-date", "", "Evaluation date YYYY-MM-DD (default: today)")
	rootCmd.Flags().Bool("diagram", false, "Print the sampled payoff diagram")
	rootCmd.Flags().Int("grid", pricing.DefaultGridSize, "Payoff diagram sample count")

	serveCmd.Flags().String("port", ":8080", "REST server listen address")

	batchCmd.Flags().String("file", "", "Path to YAML scenario file. This flag is required.")
	batchCmd.Flags().String("out", "./out", "Output directory for JSON/CSV reports")
	if err := batchCmd.MarkFlagRequired("file"); err != nil {
		log.Fatalf("marking flag required: %v", err)
	}

	rootCmd.AddCommand(serveCmd, batchCmd)

	cobra.OnInitialize(func() {
		v, err := rootCmd.PersistentFlags().GetInt("verbosity")
		if err != nil {
			return
		}
		// LOG_LEVEL (e.g. from .env) applies unless the flag was set explicitly.
		if !rootCmd.PersistentFlags().Changed("verbosity") {
			if lv, ok := os.LookupEnv("LOG_LEVEL"); ok {
				if parsed, perr := strconv.Atoi(lv); perr == nil {
					v = parsed
				}
			}
		}
		logger.SetVerbosity(v)
	})

	cobra.CheckErr(rootCmd.Execute())
}
