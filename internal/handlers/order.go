package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"pedidos/internal/httpx"
	"pedidos/internal/inventory"
	"pedidos/internal/orders"
	"pedidos/internal/store"
)

// OrderHandler is the presentation boundary for order placement. It composes
// a candidate from the request, supplies the clock, and hands the candidate
// to the engine; every business condition comes back as a distinct error code
// so the UI can show an actionable message instead of a generic failure.
type OrderHandler struct {
	Composer *orders.Composer
	Engine   *orders.Engine
	Store    *store.OrderStore

	// Now supplies the order timestamp; overridable in tests.
	Now func() time.Time
}

func NewOrderHandler(c *orders.Composer, e *orders.Engine, s *store.OrderStore) *OrderHandler {
	return &OrderHandler{Composer: c, Engine: e, Store: s, Now: time.Now}
}

// List: GET /orders — summaries joined with the client name, newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	rows, total, err := h.Store.List(limit, offset)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_orders", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": total, "limit": limit, "offset": offset})
}

// Detail: GET /orders/detail?id= — the order with its line items.
func (h *OrderHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	o, err := h.Store.GetWithItems(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "order_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_order", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

// Create: POST /orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	type itemReq struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	type createReq struct {
		ClientID uint      `json:"client_id"`
		Items    []itemReq `json:"items"`
	}
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	selections := make([]orders.Selection, 0, len(req.Items))
	for _, it := range req.Items {
		selections = append(selections, orders.Selection{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	cand, err := h.Composer.Compose(r.Context(), req.ClientID, selections)
	if err != nil {
		writePlacementError(w, err)
		return
	}
	orderID, err := h.Engine.PlaceOrder(r.Context(), cand.ClientID, h.Now(), cand.Lines)
	if err != nil {
		writePlacementError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": orderID, "total": cand.Total})
}

// Availability: GET /orders/availability?product_id=&quantity= — pre-submit
// feedback only; placement re-checks inside its transaction.
func (h *OrderHandler) Availability(w http.ResponseWriter, r *http.Request) {
	pid, err := strconv.Atoi(r.URL.Query().Get("product_id"))
	if err != nil || pid <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_product_id", nil)
		return
	}
	qty, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil || qty < 1 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_quantity", nil)
		return
	}
	avail, err := h.Engine.CheckAvailability(r.Context(), uint(pid), qty)
	if err != nil {
		if errors.Is(err, inventory.ErrProductGone) {
			httpx.JSONError(w, http.StatusNotFound, "unknown_product", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "storage_failure", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"product_id":   avail.ProductID,
		"product_name": avail.ProductName,
		"requested":    avail.Requested,
		"available":    avail.Available,
		"sufficient":   avail.Sufficient(),
		"shortfall":    avail.Shortfall(),
	})
}

// writePlacementError maps the placement taxonomy onto distinct HTTP error
// codes. Conditions stay separate on purpose: the UI renders each one
// differently.
func writePlacementError(w http.ResponseWriter, err error) {
	var (
		invalidQty  *orders.InvalidQuantityError
		unknownCli  *orders.UnknownClientError
		unknownProd *orders.UnknownProductError
		short       *inventory.InsufficientStockError
	)
	switch {
	case errors.Is(err, orders.ErrEmptyOrder):
		httpx.JSONError(w, http.StatusBadRequest, "empty_order", nil)
	case errors.As(err, &invalidQty):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_quantity", map[string]any{
			"product_id": invalidQty.ProductID, "quantity": invalidQty.Quantity,
		})
	case errors.As(err, &unknownCli):
		httpx.JSONError(w, http.StatusNotFound, "unknown_client", map[string]any{"client_id": unknownCli.ClientID})
	case errors.As(err, &unknownProd):
		httpx.JSONError(w, http.StatusNotFound, "unknown_product", map[string]any{"product_id": unknownProd.ProductID})
	case errors.As(err, &short):
		httpx.JSONError(w, http.StatusConflict, "insufficient_stock", map[string]any{
			"product_name": short.ProductName,
			"requested":    short.Requested,
			"available":    short.Available,
		})
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "storage_failure", nil)
	}
}
