package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"marwad-digital-menu/analytics-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Analytics service.AnalyticsInterface
}

func NewHandler(svc service.AnalyticsInterface) *Handler {
	return &Handler{Analytics: svc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "analytics-svc"})
	}).Methods("GET")
	r.HandleFunc("/api/reports/daily", h.getDaily).Methods("GET")
	r.HandleFunc("/api/reports/top-items", h.getTopItems).Methods("GET")
	r.HandleFunc("/api/reports/range", h.getRange).Methods("GET")
}

func (h *Handler) getDaily(w http.ResponseWriter, r *http.Request) {
	report, err := h.Analytics.Daily(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) getTopItems(w http.ResponseWriter, r *http.Request) {
	limit := service.DefaultTopItems
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	items, err := h.Analytics.TopItems(r.Context(), r.URL.Query().Get("date"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.Analytics.Range(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError never answers a failed read with empty data.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrInvalidQuery) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	log.Printf("Report read failed: %v", err)
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Reports are temporarily unavailable"})
}
