package handler

import (
	"bytes"
	"context"
	"errors"
	"log"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"finance-engine/internal/calculations"
	"finance-engine/internal/model"
	"finance-engine/internal/scheduleregistry"
	"finance-engine/internal/tax"
)

func (h *Handler) HandleTax(ctx *fasthttp.RequestCtx) {
	var req model.TaxRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	brackets := req.Brackets
	switch {
	case req.ScheduleID != "" && len(req.Brackets) > 0:
		writeError(ctx, fasthttp.StatusBadRequest, "Provide either schedule_id or brackets, not both")
		return
	case req.ScheduleID != "":
		regCtx, cancel := context.WithTimeout(context.Background(), h.cfg.ScheduleRegistryTimeout)
		defer cancel()

		var err error
		brackets, err = h.registry.Schedule(regCtx, req.ScheduleID)
		if err != nil {
			h.writeRegistryError(ctx, err)
			return
		}
	}

	writeJSON(ctx, fasthttp.StatusOK, calculations.Process(brackets, req.Calculations))
}

func (h *Handler) writeRegistryError(ctx *fasthttp.RequestCtx, err error) {
	var schedErr *tax.ScheduleError
	switch {
	case errors.Is(err, scheduleregistry.ErrDisabled):
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
	case errors.Is(err, scheduleregistry.ErrNotFound):
		writeError(ctx, fasthttp.StatusNotFound, err.Error())
	case errors.As(err, &schedErr):
		writeValidationError(ctx, fasthttp.StatusBadGateway, "Registry returned an invalid schedule", schedErr.Errors)
	default:
		log.Printf("schedule registry: %v", err)
		writeError(ctx, fasthttp.StatusBadGateway, err.Error())
	}
}

// HandleCSVParse accepts a raw CSV body and returns the brackets with their
// derived values.
func (h *Handler) HandleCSVParse(ctx *fasthttp.RequestCtx) {
	brackets, err := tax.ParseCSV(bytes.NewReader(ctx.PostBody()))
	if err != nil {
		var schedErr *tax.ScheduleError
		if errors.As(err, &schedErr) {
			writeValidationError(ctx, fasthttp.StatusUnprocessableEntity, "Invalid tax brackets", schedErr.Errors)
			return
		}
		writeError(ctx, fasthttp.StatusBadRequest, "Failed to parse CSV: "+err.Error())
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, model.CSVParseResponse{
		Brackets: brackets,
		Schedule: tax.PrepareSchedule(brackets),
	})
}

func (h *Handler) HandleCSVExport(ctx *fasthttp.RequestCtx) {
	var req model.CSVExportRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if errs := tax.Validate(req.Brackets); len(errs) > 0 {
		writeValidationError(ctx, fasthttp.StatusUnprocessableEntity, "Invalid tax brackets", errs)
		return
	}

	ctx.SetContentType("text/csv; charset=utf-8")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBodyString(tax.ExportCSV(req.Brackets))
}
