package server

import (
	"net/http"

	"gorm.io/gorm"

	"pedidos/internal/handlers"
	"pedidos/internal/httpx"
	"pedidos/internal/inventory"
	"pedidos/internal/orders"
	"pedidos/internal/store"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	clientStore := store.NewClientStore(db)
	productStore := store.NewProductStore(db)
	orderStore := store.NewOrderStore(db)
	ledger := inventory.NewLedger()

	// Client endpoints: list/create via /clients, update/delete via
	// /clients/update & /clients/delete for simplicity.
	ch := handlers.NewClientHandler(clientStore)
	mux.HandleFunc("/clients", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ch.List(w, r)
		case http.MethodPost:
			ch.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/clients/update", ch.Update)
	mux.HandleFunc("/clients/delete", ch.Delete)

	// Product endpoints
	ph := handlers.NewProductHandler(productStore)
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ph.List(w, r)
		case http.MethodPost:
			ph.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/products/update", ph.Update)
	mux.HandleFunc("/products/delete", ph.Delete)

	// Order endpoints — placement goes through the composer + engine, never
	// through a bare insert.
	composer := orders.NewComposer(db, clientStore, productStore)
	engine := orders.NewEngine(db, ledger, clientStore, orderStore)
	oh := handlers.NewOrderHandler(composer, engine, orderStore)
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			oh.List(w, r)
		case http.MethodPost:
			oh.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/orders/detail", oh.Detail)
	mux.HandleFunc("/orders/availability", oh.Availability)

	return WithRequestID(WithLogging(mux))
}
