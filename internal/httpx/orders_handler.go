package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/ariefcatur/order-cache-api/internal/orders"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const maxBody = 1 << 20

type Pinger interface {
	Ping(ctx context.Context) error
}

type OrdersHandler struct {
	Orders *orders.Service
	Checks map[string]Pinger // readiness, by store name
}

type statusResp struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.writeOrder)
	r.Get("/orders/{id:[0-9]+}", h.readOrder)
	r.Get("/readyz", h.ready)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the orders error set onto status codes. Error detail goes
// to the log, never into the response.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := http.StatusInternalServerError, "internal error"
	switch {
	case errors.Is(err, orders.ErrNotFound):
		code, msg = http.StatusNotFound, "Order not found"
	case errors.Is(err, orders.ErrMalformedInput):
		code, msg = http.StatusBadRequest, "invalid order payload"
	case errors.Is(err, orders.ErrInvalidTarget):
		code, msg = http.StatusBadRequest, "invalid target"
	case errors.Is(err, orders.ErrAlreadyExists):
		code, msg = http.StatusConflict, "Order already exists"
	case errors.Is(err, orders.ErrBackendUnavailable):
		code, msg = http.StatusServiceUnavailable, "backend unavailable"
	}
	reqID := middleware.GetReqID(r.Context())
	switch {
	case code >= http.StatusInternalServerError:
		log.Error().Err(err).Str("request_id", reqID).Msg("request failed")
	case code != http.StatusNotFound:
		log.Warn().Err(err).Str("request_id", reqID).Msg("request rejected")
	}
	writeJSON(w, code, statusResp{Status: "error", Message: msg})
}

func (h *OrdersHandler) writeOrder(w http.ResponseWriter, r *http.Request) {
	target, err := orders.ParseTarget(r.URL.Query().Get("target"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: read body: %v", orders.ErrMalformedInput, err))
		return
	}
	o, err := orders.Decode(body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	ctx = orders.WithTraceID(ctx, middleware.GetReqID(ctx))

	if err := h.Orders.Write(ctx, o, target); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, statusResp{Status: "success", Message: "Order written to " + string(target)})
}

func (h *OrdersHandler) readOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		// out of int64 range: cannot have been written
		writeError(w, r, orders.ErrNotFound)
		return
	}
	repopulate := slices.Contains(r.URL.Query()["target"], string(orders.TargetBoth))

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	res, err := h.Orders.Read(ctx, orderID, repopulate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *OrdersHandler) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{}
	code := http.StatusOK
	for name, p := range h.Checks {
		if err := p.Ping(ctx); err != nil {
			status[name] = err.Error()
			code = http.StatusServiceUnavailable
			continue
		}
		status[name] = "ok"
	}
	writeJSON(w, code, status)
}
