package orders

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"pedidos/internal/inventory"
	"pedidos/internal/models"
	"pedidos/internal/store"
)

// Engine commits a candidate order as one atomic unit or leaves the store
// entirely unchanged. It is the sole write entry point for orders.
//
// The timestamp is caller-supplied so placements stay deterministic under
// test; the engine never reads a clock.
type Engine struct {
	db      *gorm.DB
	ledger  *inventory.Ledger
	clients *store.ClientStore
	orders  *store.OrderStore
}

func NewEngine(db *gorm.DB, ledger *inventory.Ledger, clients *store.ClientStore, orders *store.OrderStore) *Engine {
	return &Engine{db: db, ledger: ledger, clients: clients, orders: orders}
}

// PlaceOrder writes the order header, its line items and the matching stock
// decrements inside one transaction. Every validation the composer already
// ran is repeated here against live, in-transaction rows: a concurrent
// placement may have consumed stock, and a referenced row may have vanished,
// between composition and commit. The first failing line aborts the whole
// placement; no partial order is ever created.
//
// The total is computed from each line's captured unit price, not a
// re-fetched current price: the order must reflect what the customer was
// shown even if the price changed after composition.
func (e *Engine) PlaceOrder(ctx context.Context, clientID uint, placedAt time.Time, lines []Line) (uint, error) {
	if len(lines) == 0 {
		return 0, ErrEmptyOrder
	}
	for _, ln := range lines {
		if ln.Quantity < 1 {
			var pid uint
			if ln.ProductID != nil {
				pid = *ln.ProductID
			}
			return 0, &InvalidQuantityError{ProductID: pid, Quantity: ln.Quantity}
		}
		if ln.ProductID == nil {
			return 0, &UnknownProductError{}
		}
	}

	var orderID uint
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := e.clients.GetByID(tx, clientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &UnknownClientError{ClientID: clientID}
			}
			return &StorageError{Err: err}
		}

		// Availability pre-pass in submission order; the first shortfall
		// aborts before anything is written.
		for _, ln := range lines {
			avail, err := e.ledger.CheckAvailability(tx, *ln.ProductID, ln.Quantity)
			if err != nil {
				if errors.Is(err, inventory.ErrProductGone) {
					return &UnknownProductError{ProductID: *ln.ProductID}
				}
				return &StorageError{Err: err}
			}
			if !avail.Sufficient() {
				return &inventory.InsufficientStockError{
					ProductName: avail.ProductName,
					Requested:   ln.Quantity,
					Available:   avail.Available,
				}
			}
		}

		var total float64
		for _, ln := range lines {
			total += float64(ln.Quantity) * ln.UnitPrice
		}

		order := models.Order{ClientID: clientID, PlacedAt: placedAt, Total: total}
		if err := e.orders.InsertHeader(tx, &order); err != nil {
			return &StorageError{Err: err}
		}
		for _, ln := range lines {
			item := models.OrderItem{
				OrderID:     order.ID,
				ProductID:   ln.ProductID,
				ProductName: ln.ProductName,
				Quantity:    ln.Quantity,
				UnitPrice:   ln.UnitPrice,
			}
			if err := e.orders.InsertItem(tx, &item); err != nil {
				return &StorageError{Err: err}
			}
		}

		// The conditional decrement re-verifies stock at write time, which
		// makes the pre-pass above authoritative against concurrent
		// placements even without explicit row locks.
		for _, ln := range lines {
			if err := e.ledger.Decrement(tx, *ln.ProductID, ln.Quantity); err != nil {
				var short *inventory.InsufficientStockError
				switch {
				case errors.As(err, &short):
					return short
				case errors.Is(err, inventory.ErrProductGone):
					return &UnknownProductError{ProductID: *ln.ProductID}
				default:
					return &StorageError{Err: err}
				}
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// CheckAvailability answers "can quantity units of this product be sold right
// now" outside any transaction, for pre-submit feedback. The answer is not
// authoritative; PlaceOrder re-checks inside its own transaction.
func (e *Engine) CheckAvailability(ctx context.Context, productID uint, quantity int) (inventory.Availability, error) {
	return e.ledger.CheckAvailability(e.db.WithContext(ctx), productID, quantity)
}
