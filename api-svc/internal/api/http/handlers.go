package httpapi

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"foodmarket/api-svc/internal/domain"
	"foodmarket/api-svc/internal/service"
	"foodmarket/pkg/logger"

	"github.com/gorilla/mux"
)

const (
	adminTokenHeader = "X-Admin-Token"

	// maxBodyBytes is far above any cart or signup payload.
	maxBodyBytes = 1 << 20
)

type Handler struct {
	Restaurants service.RestaurantServiceInterface
	Menu        service.MenuServiceInterface
	Orders      service.OrderServiceInterface
	Gate        *service.AccessGate

	log *logger.Logger
}

func NewHandler(restSvc service.RestaurantServiceInterface, menuSvc service.MenuServiceInterface, orderSvc service.OrderServiceInterface, gate *service.AccessGate, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		Restaurants: restSvc,
		Menu:        menuSvc,
		Orders:      orderSvc,
		Gate:        gate,
		log:         log.WithComponent("http"),
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/admin/verify", h.verifyAdmin).Methods("POST")

	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/search/{query}", h.searchRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/signup", h.adminOnly(h.signupRestaurant)).Methods("POST")
	r.HandleFunc("/api/restaurants/{id:[0-9]+}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id:[0-9]+}", h.adminOnly(h.updateRestaurant)).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id:[0-9]+}", h.adminOnly(h.deleteRestaurant)).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{id:[0-9]+}/menu", h.getRestaurantMenu).Methods("GET")

	r.HandleFunc("/api/menu-items", h.adminOnly(h.createMenuItem)).Methods("POST")
	r.HandleFunc("/api/menu-items/{id:[0-9]+}", h.getMenuItem).Methods("GET")
	r.HandleFunc("/api/menu-items/{id:[0-9]+}", h.adminOnly(h.deleteMenuItem)).Methods("DELETE")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id:[0-9]+}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id:[0-9]+}/status", h.updateOrderStatus).Methods("PATCH")
	r.HandleFunc("/api/orders/{id:[0-9]+}/qrcode", h.getOrderQRCode).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(routeNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(routeNotFound)
	r.Use(idInRange)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// respondError maps the domain error kinds onto status codes. Anything that is
// not a known kind is a store failure: it is logged and answered with fallback.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var validation *domain.ValidationError
	var notFound *domain.NotFoundError
	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Message)
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, notFound.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized. Admin access required.")
	default:
		h.log.Error(fallback, "error", err, "method", r.Method, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// idInRange answers ids that cannot exist in a SERIAL column the same way as
// an unknown route, before they reach the store.
func idInRange(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw, ok := mux.Vars(r)["id"]; ok {
			id, err := strconv.Atoi(raw)
			if err != nil || id > math.MaxInt32 {
				routeNotFound(w, r)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// pathID reads an id already checked by idInRange.
func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}

func (h *Handler) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.Gate.Check(r.Header.Get(adminTokenHeader)); err != nil {
			h.log.Warn("Admin access denied", "method", r.Method, "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "Unauthorized. Admin access required.")
			return
		}
		next(w, r)
	}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"message":   "Food Delivery API is running",
		"service":   "api-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) verifyAdmin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	token, err := h.Gate.Verify(body.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid admin password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Restaurants.List(r.Context())
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch restaurants")
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) searchRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Restaurants.Search(r.Context(), mux.Vars(r)["query"])
	if err != nil {
		h.respondError(w, r, err, "Failed to search restaurants")
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Restaurants.Get(r.Context(), pathID(r))
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch restaurant")
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) signupRestaurant(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rest, err := h.Restaurants.Signup(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err, "Failed to sign up restaurant")
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	var update domain.RestaurantUpdate
	if !decodeBody(w, r, &update) {
		return
	}
	rest, err := h.Restaurants.Update(r.Context(), pathID(r), update)
	if err != nil {
		h.respondError(w, r, err, "Failed to update store")
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Restaurants.Delete(r.Context(), pathID(r))
	if err != nil {
		h.respondError(w, r, err, "Failed to delete store")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Store deleted successfully", "store": rest})
}

func (h *Handler) getRestaurantMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.ListAvailable(r.Context(), pathID(r))
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch menu items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Menu.Get(r.Context(), pathID(r))
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch menu item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMenuItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	item, err := h.Menu.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err, "Failed to create menu item")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Menu.Delete(r.Context(), pathID(r))
	if err != nil {
		h.respondError(w, r, err, "Failed to delete menu item")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Menu item deleted successfully", "item": item})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	order, err := h.Orders.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err, "Failed to create order")
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context())
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), pathID(r))
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	order, err := h.Orders.UpdateStatus(r.Context(), pathID(r), body.Status)
	if err != nil {
		h.respondError(w, r, err, "Failed to update order status")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Orders.TrackingQRCode(r.Context(), pathID(r))
	if err != nil {
		h.respondError(w, r, err, "Failed to generate QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
