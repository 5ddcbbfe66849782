package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Arbath/toko-online/internal/core/domain"
	"github.com/Arbath/toko-online/internal/core/service"
	"github.com/Arbath/toko-online/internal/port"
)

// HTTPHandler is the JSON surface over the order lifecycle and the ledger.
type HTTPHandler struct {
	orders    port.OrderRepository
	itemSet   *service.OrderItemSet
	ledger    *service.InventoryLedger
	lifecycle *service.OrderLifecycle
}

func NewHTTPHandler(
	orders port.OrderRepository,
	itemSet *service.OrderItemSet,
	ledger *service.InventoryLedger,
	lifecycle *service.OrderLifecycle,
) *HTTPHandler {
	return &HTTPHandler{
		orders:    orders,
		itemSet:   itemSet,
		ledger:    ledger,
		lifecycle: lifecycle,
	}
}

func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("POST /api/orders", h.CreateOrder)
	mux.HandleFunc("GET /api/orders/{id}", h.GetOrder)
	mux.HandleFunc("POST /api/orders/{id}/items", h.AddItem)
	mux.HandleFunc("POST /api/orders/{id}/confirm", h.ConfirmOrder)
	mux.HandleFunc("POST /api/orders/{id}/ship", h.ShipOrder)
	mux.HandleFunc("GET /api/inventory/{product_id}", h.GetStock)
	mux.HandleFunc("POST /api/inventory/{product_id}/restock", h.Restock)
}

type createOrderRequest struct {
	CustomerID string `json:"customer_id"`
}

type addItemRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type restockRequest struct {
	Amount int `json:"amount"`
}

type itemResponse struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type orderResponse struct {
	ID          string  `json:"id"`
	CustomerID  string  `json:"customer_id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.CustomerID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "customer_id is required"})
		return
	}

	order := domain.NewOrder(req.CustomerID)
	if err := h.orders.SaveOrder(r.Context(), order); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *HTTPHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "product_id is required"})
		return
	}

	order, err := h.orders.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	item, err := h.itemSet.Add(r.Context(), order, req.ProductID, req.Quantity, req.UnitPrice)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, itemResponse{
		ID:        item.ID,
		OrderID:   item.OrderID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
	})
}

func (h *HTTPHandler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	h.fire(w, r, domain.EventOrderConfirmed)
}

func (h *HTTPHandler) ShipOrder(w http.ResponseWriter, r *http.Request) {
	h.fire(w, r, domain.EventOrderShipped)
}

func (h *HTTPHandler) fire(w http.ResponseWriter, r *http.Request, event domain.EventName) {
	order, err := h.orders.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.lifecycle.Fire(r.Context(), event, order); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *HTTPHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	level, err := h.ledger.Level(r.Context(), r.PathValue("product_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"stock_level": level})
}

func (h *HTTPHandler) Restock(w http.ResponseWriter, r *http.Request) {
	var req restockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	productID := r.PathValue("product_id")
	if err := h.ledger.Increment(r.Context(), productID, req.Amount); err != nil {
		writeError(w, err)
		return
	}

	level, err := h.ledger.Level(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"stock_level": level})
}

func toOrderResponse(order *domain.Order) orderResponse {
	return orderResponse{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		Status:      order.Status(),
		TotalAmount: order.TotalAmount,
	}
}

func writeError(w http.ResponseWriter, err error) {
	var invalidTransition *domain.InvalidTransitionError
	var insufficientStock *domain.InsufficientStockError
	var validation *domain.ValidationError

	switch {
	case errors.Is(err, port.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.As(err, &invalidTransition):
		writeJSON(w, http.StatusConflict, errorResponse{Error: invalidTransition.Error()})
	case errors.As(err, &insufficientStock):
		writeJSON(w, http.StatusGone, errorResponse{Error: insufficientStock.Error()})
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validation.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
