package orders

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pedidos/internal/store"
)

// Selection is one raw user line: a product and a requested quantity.
type Selection struct {
	ProductID uint
	Quantity  int
}

// Line is a validated line carrying the name and unit-price snapshots the
// stored item will keep, independent of later product changes.
type Line struct {
	ProductID   *uint
	ProductName string
	Quantity    int
	UnitPrice   float64
}

// Candidate is a composed order ready for the placement engine. Total is
// provisional, for display; the engine recomputes it from the same snapshot
// values at commit time with the same rule (quantity times unit price,
// summed, no intermediate rounding), so the two always match.
type Candidate struct {
	ClientID uint
	Lines    []Line
	Total    float64
}

// Composer turns raw selections into a candidate order. Its lookups give the
// user fast feedback but are not authoritative: referenced rows can change
// between composition and commit, so the engine re-validates everything
// inside the placement transaction. The composer does not reserve stock.
type Composer struct {
	db       *gorm.DB
	clients  *store.ClientStore
	products *store.ProductStore
}

func NewComposer(db *gorm.DB, clients *store.ClientStore, products *store.ProductStore) *Composer {
	return &Composer{db: db, clients: clients, products: products}
}

func (c *Composer) Compose(ctx context.Context, clientID uint, selections []Selection) (*Candidate, error) {
	if len(selections) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, sel := range selections {
		if sel.Quantity < 1 {
			return nil, &InvalidQuantityError{ProductID: sel.ProductID, Quantity: sel.Quantity}
		}
	}
	db := c.db.WithContext(ctx)
	if _, err := c.clients.GetByID(db, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &UnknownClientError{ClientID: clientID}
		}
		return nil, &StorageError{Err: err}
	}
	cand := &Candidate{ClientID: clientID, Lines: make([]Line, 0, len(selections))}
	for _, sel := range selections {
		p, err := c.products.GetByID(db, sel.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &UnknownProductError{ProductID: sel.ProductID}
			}
			return nil, &StorageError{Err: err}
		}
		pid := p.ID
		cand.Lines = append(cand.Lines, Line{
			ProductID:   &pid,
			ProductName: p.Name,
			Quantity:    sel.Quantity,
			UnitPrice:   p.UnitPrice,
		})
		cand.Total += float64(sel.Quantity) * p.UnitPrice
	}
	return cand, nil
}
