package orders

import (
	"errors"
	"fmt"
)

// ErrEmptyOrder rejects a placement with no line items. It is raised before
// any storage access.
var ErrEmptyOrder = errors.New("order has no line items")

// InvalidQuantityError reports a non-positive requested quantity.
type InvalidQuantityError struct {
	ProductID uint
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for product %d", e.Quantity, e.ProductID)
}

// UnknownClientError reports a client reference that does not resolve.
type UnknownClientError struct {
	ClientID uint
}

func (e *UnknownClientError) Error() string {
	return fmt.Sprintf("unknown client %d", e.ClientID)
}

// UnknownProductError reports a product reference that does not resolve,
// including a product deleted between composition and placement.
type UnknownProductError struct {
	ProductID uint
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product %d", e.ProductID)
}

// StorageError hides an unanticipated storage fault behind one opaque
// condition. It is never retried here; whether to retry is the caller's
// decision. The cause stays reachable for logs via Unwrap.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage failure: " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }
