package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"marwad-digital-menu/hub-svc/internal/domain"
	"marwad-digital-menu/hub-svc/internal/service"
	"marwad-digital-menu/hub-svc/internal/validation"

	"github.com/gorilla/mux"
)

// OrderAnnouncer fans a placed order out to the live clients.
type OrderAnnouncer interface {
	OrderPlaced(ctx context.Context, order *domain.Order)
}

type KitchenState interface {
	KitchenOpen() bool
}

type Handler struct {
	Orders   service.OrderServiceInterface
	Menu     service.MenuServiceInterface
	Settings service.SettingsServiceInterface
	Kitchen  KitchenState
	Announce OrderAnnouncer
}

func NewHandler(orders service.OrderServiceInterface, menu service.MenuServiceInterface,
	settings service.SettingsServiceInterface, kitchen KitchenState, announce OrderAnnouncer) *Handler {
	return &Handler{
		Orders:   orders,
		Menu:     menu,
		Settings: settings,
		Kitchen:  kitchen,
		Announce: announce,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/settings", h.getSettings).Methods("GET")
	r.HandleFunc("/api/kitchen", h.getKitchen).Methods("GET")
	r.HandleFunc("/api/customers/first-time", h.checkFirstTime).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "hub-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var in validation.OrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid JSON format: " + err.Error()})
		return
	}

	order, err := h.Orders.PlaceOrder(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	if h.Announce != nil {
		h.Announce.OrderPlaced(r.Context(), order)
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) getKitchen(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"isOpen": h.Kitchen.KitchenOpen()})
}

func (h *Handler) checkFirstTime(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	first, err := h.Orders.IsFirstTimeCustomer(r.Context(), phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"phone": phone, "isFirstTime": first})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		log.Printf("Store unavailable: %v", err)
		msg = "The store is temporarily unavailable, please retry"
	case http.StatusInternalServerError:
		log.Printf("Error handling request: %v", err)
		msg = "Internal error"
	}
	writeJSON(w, status, errorBody{Error: msg})
}

func statusFor(err error) int {
	var verr *validation.Error
	switch {
	case errors.Is(err, service.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrMenuItemNotFound),
		errors.Is(err, service.ErrExpenseNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrIllegalTransition),
		errors.Is(err, service.ErrStatusConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
