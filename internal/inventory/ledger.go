package inventory

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"pedidos/internal/models"
)

// ErrProductGone reports that the product row no longer exists.
var ErrProductGone = errors.New("product no longer exists")

// InsufficientStockError reports a stock shortfall for one line.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// Availability is the outcome of a stock read against a requested quantity.
type Availability struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}

func (a Availability) Sufficient() bool { return a.Available >= a.Requested }

func (a Availability) Shortfall() int {
	if s := a.Requested - a.Available; s > 0 {
		return s
	}
	return 0
}

// Ledger is the single source of truth for sellable stock. Every method takes
// the caller's scope so that all reads and writes of one placement share the
// placement's transaction; the ledger never opens a connection of its own.
type Ledger struct{}

func NewLedger() *Ledger { return &Ledger{} }

// CheckAvailability reads current stock without side effects. Callers outside
// a transaction get a non-authoritative answer: stock may change before they
// act on it.
func (l *Ledger) CheckAvailability(tx *gorm.DB, productID uint, quantity int) (Availability, error) {
	var p models.Product
	if err := tx.Select("id", "name", "stock").First(&p, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Availability{}, ErrProductGone
		}
		return Availability{}, pkgerrors.Wrap(err, "read stock")
	}
	return Availability{ProductID: p.ID, ProductName: p.Name, Requested: quantity, Available: p.Stock}, nil
}

// Decrement reduces stock by quantity with a conditional update, so the
// non-negative invariant is enforced at write time against the live row and
// never trusted from an earlier CheckAvailability call. Zero rows affected
// means the live stock no longer covers the request, or the product is gone;
// either way the caller must abort its transaction.
func (l *Ledger) Decrement(tx *gorm.DB, productID uint, quantity int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "decrement stock")
	}
	if res.RowsAffected == 0 {
		avail, err := l.CheckAvailability(tx, productID, quantity)
		if err != nil {
			return err
		}
		return &InsufficientStockError{
			ProductName: avail.ProductName,
			Requested:   quantity,
			Available:   avail.Available,
		}
	}
	return nil
}
