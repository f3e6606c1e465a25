package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"foodmarket/analytics-svc/internal/domain"
	"foodmarket/analytics-svc/internal/service"
	"foodmarket/pkg/logger"

	"github.com/gorilla/mux"
)

type Handler struct {
	Analytics service.AnalyticsInterface

	log *logger.Logger
}

func NewHandler(svc service.AnalyticsInterface, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{Analytics: svc, log: log.WithComponent("http")}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/analytics/popular-items", h.getPopularItems).Methods("GET")
	r.HandleFunc("/api/analytics/orders/summary", h.getOrderSummary).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(routeNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(routeNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"service":   "analytics-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getPopularItems(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Analytics.PopularItems(r.Context(), r.URL.Query().Get("period"))
	if errors.Is(err, domain.ErrInvalidPeriod) {
		writeError(w, http.StatusBadRequest, "Invalid period: must be one of today, all")
		return
	}
	if err != nil {
		h.log.Error("Failed to fetch popular items", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch popular items")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getOrderSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Analytics.OrderSummary(r.Context())
	if err != nil {
		h.log.Error("Failed to fetch order summary", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch order summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
