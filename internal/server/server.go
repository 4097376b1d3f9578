// Package server exposes the pricing engine over HTTP. The surface is
// deliberately small: one endpoint prices a request, one samples the payoff
// diagram, one reports health. All state lives in the request; the handlers
// build a fresh snapshot and engine per call.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/contactkeval/barrier-pricer/internal/logger"
	"github.com/contactkeval/barrier-pricer/internal/market"
	"github.com/contactkeval/barrier-pricer/internal/pricing"
	"github.com/contactkeval/barrier-pricer/internal/scenario"
)

// PriceResponse is the JSON body returned by POST /price.
type PriceResponse struct {
	Name            string  `json:"name,omitempty"`
	BarrierType     string  `json:"barrier_type"`
	OptionType      string  `json:"option_type"`
	TimeToMaturity  float64 `json:"time_to_maturity"`
	pricing.Results         // npv, delta, gamma, vega, theta, rho
}

// PayoffResponse is the JSON body returned by POST /payoff.
type PayoffResponse struct {
	Name string              `json:"name,omitempty"`
	Grid []pricing.GridPoint `json:"grid"`
}

// Setup builds the HTTP router.
func Setup() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/price", handlePrice).Methods(http.MethodPost)
	router.HandleFunc("/payoff", handlePayoff).Methods(http.MethodPost)
	router.HandleFunc("/health", handleHealth).Methods(http.MethodGet)

	return router
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// decodeEngine reads a scenario from the request body and builds its engine.
// A nil engine return means the response has already been written.
func decodeEngine(w http.ResponseWriter, r *http.Request, reqID string) (*pricing.Engine, *scenario.Scenario) {
	var sc scenario.Scenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		logger.WithField("request_id", reqID).Errorf("bad request body: %v", err)
		http.Error(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return nil, nil
	}
	eng, err := sc.Engine()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, market.ErrInvalidMarketData) ||
			errors.Is(err, pricing.ErrInvalidExercise) ||
			errors.Is(err, pricing.ErrInvalidOption) ||
			isParseError(err) {
			status = http.StatusBadRequest
		}
		logger.WithField("request_id", reqID).Errorf("engine construction failed: %v", err)
		http.Error(w, err.Error(), status)
		return nil, nil
	}
	return eng, &sc
}

// isParseError covers date parse failures, which wrap *time.ParseError
// rather than one of our sentinels.
func isParseError(err error) bool {
	var pe *time.ParseError
	return errors.As(err, &pe)
}

func handlePrice(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	eng, sc := decodeEngine(w, r, reqID)
	if eng == nil {
		return
	}

	res := eng.Results()
	logger.WithField("request_id", reqID).Infof("priced %s %s: npv=%.4f", sc.BarrierType, sc.OptionType, res.NPV)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(PriceResponse{
		Name:           sc.Name,
		BarrierType:    sc.BarrierType,
		OptionType:     sc.OptionType,
		TimeToMaturity: eng.TimeToMaturity(),
		Results:        res,
	})
}

func handlePayoff(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	eng, sc := decodeEngine(w, r, reqID)
	if eng == nil {
		return
	}

	grid := eng.PayoffDiagram(pricing.DefaultGridSize)
	logger.WithField("request_id", reqID).Debugf("sampled payoff grid: %d points", len(grid))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(PayoffResponse{Name: sc.Name, Grid: grid})
}
