package handler

import (
	"log"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"finance-engine/internal/config"
	"finance-engine/internal/model"
	"finance-engine/internal/scheduleregistry"
)

type Handler struct {
	cfg      config.Config
	registry *scheduleregistry.Registry
	now      func() time.Time
}

func New(cfg config.Config, registry *scheduleregistry.Registry) *Handler {
	return &Handler{cfg: cfg, registry: registry, now: time.Now}
}

// Route dispatches POST requests by path.
func (h *Handler) Route(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	switch string(ctx.Path()) {
	case "/simulate":
		h.HandleSimulation(ctx)
	case "/tax":
		h.HandleTax(ctx)
	case "/tax/csv/parse":
		h.HandleCSVParse(ctx)
	case "/tax/csv/export":
		h.HandleCSVExport(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Printf("encode response for %s: %v", ctx.Path(), err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeValidationError(ctx, status, message, nil)
}

func writeValidationError(ctx *fasthttp.RequestCtx, status int, message string, errs []model.ValidationError) {
	body, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
		Errors:  errs,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
