package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
	"github.com/rl1809/inventory-ledger/internal/core/service"
)

const requestIDHeader = "X-Request-ID"

type HTTPHandler struct {
	inventory        *service.InventoryService
	defaultThreshold decimal.Decimal
	logger           *zap.Logger
}

type QuantityHTTPRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

type ItemHTTPResponse struct {
	Name     string      `json:"name"`
	Quantity json.Number `json:"quantity"`
}

type MutationHTTPResponse struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	Quantity json.Number `json:"quantity,omitempty"`
	Journal  []string    `json:"journal,omitempty"`
}

func NewHTTPHandler(inventory *service.InventoryService, defaultThreshold decimal.Decimal, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{inventory: inventory, defaultThreshold: defaultThreshold, logger: logger}
}

// Routes returns the router serving the inventory API.
func (h *HTTPHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(h.requestLogger)

	r.Get("/health", h.HealthCheck)
	r.Route("/api", func(r chi.Router) {
		r.Get("/items", h.ListItems)
		r.Get("/items/{name}", h.GetItem)
		r.Post("/items/{name}/add", h.AddItem)
		r.Post("/items/{name}/remove", h.RemoveItem)
		r.Get("/low-items", h.LowItems)
		r.Post("/snapshot/save", h.SaveSnapshot)
		r.Post("/snapshot/load", h.LoadSnapshot)
	})
	return r
}

func (h *HTTPHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req QuantityHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, MutationHTTPResponse{Message: "invalid request body"})
		return
	}

	journal := &service.LineCollector{}
	if err := h.inventory.AddItem(name, req.Quantity, journal); err != nil {
		writeMutationError(w, err)
		return
	}

	qty, _ := h.inventory.Quantity(name)
	writeJSON(w, http.StatusOK, MutationHTTPResponse{
		Success:  true,
		Message:  "stock added",
		Quantity: json.Number(qty.String()),
		Journal:  journal.Lines(),
	})
}

func (h *HTTPHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req QuantityHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, MutationHTTPResponse{Message: "invalid request body"})
		return
	}

	if err := h.inventory.RemoveItem(name, req.Quantity); err != nil {
		writeMutationError(w, err)
		return
	}

	qty, _ := h.inventory.Quantity(name)
	writeJSON(w, http.StatusOK, MutationHTTPResponse{
		Success:  true,
		Message:  "stock removed",
		Quantity: json.Number(qty.String()),
	})
}

func (h *HTTPHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	qty, err := h.inventory.Quantity(name)
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ItemHTTPResponse{Name: name, Quantity: json.Number(qty.String())})
}

func (h *HTTPHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, itemsResponse(h.inventory.Items()))
}

func (h *HTTPHandler) LowItems(w http.ResponseWriter, r *http.Request) {
	threshold := h.defaultThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, MutationHTTPResponse{Message: "threshold must be numeric"})
			return
		}
		threshold = parsed
	}
	writeJSON(w, http.StatusOK, map[string][]string{"items": h.inventory.LowItems(threshold)})
}

func (h *HTTPHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	h.inventory.Save(r.Context())
	writeJSON(w, http.StatusOK, itemsResponse(h.inventory.Items()))
}

func (h *HTTPHandler) LoadSnapshot(w http.ResponseWriter, r *http.Request) {
	h.inventory.Load(r.Context())
	writeJSON(w, http.StatusOK, itemsResponse(h.inventory.Items()))
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug("http request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func itemsResponse(items []domain.Item) []ItemHTTPResponse {
	resp := make([]ItemHTTPResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, ItemHTTPResponse{Name: it.Name, Quantity: json.Number(it.Quantity.String())})
	}
	return resp
}

func writeMutationError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrOutOfRange):
		status = http.StatusBadRequest
		message = err.Error()
	}

	writeJSON(w, status, MutationHTTPResponse{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
