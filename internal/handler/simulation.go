package handler

import (
	"context"
	"fmt"
	"log"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"finance-engine/internal/engine"
	"finance-engine/internal/model"
	"finance-engine/internal/random"
	"finance-engine/internal/summary"
)

func (h *Handler) HandleSimulation(ctx *fasthttp.RequestCtx) {
	var req model.SimulationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	in, opts, err := h.simulationInputs(&req)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	runCtx, cancel := context.WithTimeout(context.Background(), h.cfg.SimulationTimeout)
	defer cancel()

	trials, err := engine.RunTrials(runCtx, in, opts)
	if err != nil {
		log.Printf("simulation failed after %s: %v", time.Since(start), err)
		writeError(ctx, fasthttp.StatusServiceUnavailable, "Simulation did not complete: "+err.Error())
		return
	}

	resp := model.SimulationResponse{
		StartingYear: in.CurrentYear,
		EndYear:      in.EndYear,
		TrialCount:   opts.TrialCount,
		Seed:         opts.Seed,
		Summary:      summary.Summarize(trials),
	}
	if req.IncludeTrials {
		resp.Trials = trials
	}
	resp.CalculationMetadata = model.NewMetadata(start, model.OutcomeSuccess)

	log.Printf("simulation: %d trials over %d-%d in %dms", opts.TrialCount, in.CurrentYear+1, in.EndYear, resp.CalculationMetadata.CalculationDurationMs)
	writeJSON(ctx, fasthttp.StatusOK, resp)
}

// Years share the four-digit range of request dates.
const (
	minYear = 1
	maxYear = 9999
)

// simulationInputs fills request defaults from config and the clock.
func (h *Handler) simulationInputs(req *model.SimulationRequest) (*engine.Inputs, engine.Options, error) {
	in := &engine.Inputs{
		StartingBalance: req.StartingBalance,
		MonthlyExpenses: req.MonthlyExpenses,
		Jobs:            req.Jobs,
		LifeEvents:      req.LifeEvents,
		AssetClasses:    req.AssetClasses,
		Inflation:       req.Inflation,
		EndYear:         req.EndYear,
		CurrentYear:     req.CurrentYear,
	}
	if in.CurrentYear == 0 {
		in.CurrentYear = h.now().Year()
	}
	if in.EndYear == 0 {
		in.EndYear = h.cfg.DefaultEndYear
	}
	if in.CurrentYear < minYear || in.CurrentYear > maxYear || in.EndYear < minYear || in.EndYear > maxYear {
		return nil, engine.Options{}, fmt.Errorf("current_year and end_year must be between %d and %d", minYear, maxYear)
	}
	if in.EndYear-in.CurrentYear > h.cfg.MaxHorizonYears {
		return nil, engine.Options{}, fmt.Errorf("simulation horizon must not exceed %d years", h.cfg.MaxHorizonYears)
	}

	opts := engine.Options{
		TrialCount: req.TrialCount,
		Workers:    h.cfg.Workers,
		Seed:       req.Seed,
	}
	if opts.TrialCount == 0 {
		opts.TrialCount = h.cfg.TrialCount
	}
	if opts.TrialCount < 0 || opts.TrialCount > h.cfg.MaxTrialCount {
		return nil, opts, fmt.Errorf("trial_count must be between 1 and %d", h.cfg.MaxTrialCount)
	}

	if opts.Seed == 0 {
		opts.Seed = h.cfg.Seed
	}
	if opts.Seed == 0 {
		seed, err := random.NewSeed()
		if err != nil {
			return nil, opts, err
		}
		opts.Seed = seed
	}

	return in, opts, nil
}
