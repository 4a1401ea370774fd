package store

import (
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"pedidos/internal/models"
)

// OrderStore persists order headers and line items. Orders are created only
// through the placement engine; the insert methods therefore always operate
// within the engine's transaction.
type OrderStore struct {
	DB *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore { return &OrderStore{DB: db} }

func (s *OrderStore) InsertHeader(tx *gorm.DB, o *models.Order) error {
	return tx.Create(o).Error
}

func (s *OrderStore) InsertItem(tx *gorm.DB, item *models.OrderItem) error {
	return tx.Create(item).Error
}

// Summary is one row of the order list view: the header joined with the
// client name, the way the listing displays it.
type Summary struct {
	ID         uint      `json:"id"`
	ClientName string    `json:"client_name"`
	PlacedAt   time.Time `json:"placed_at"`
	Total      float64   `json:"total"`
}

// List returns order summaries, most recent first.
func (s *OrderStore) List(limit, offset int) ([]Summary, int64, error) {
	var total int64
	if err := s.DB.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "count orders")
	}
	var rows []Summary
	err := s.DB.Model(&models.Order{}).
		Select("orders.id, clients.name AS client_name, orders.placed_at, orders.total").
		Joins("INNER JOIN clients ON clients.id = orders.client_id").
		Order("orders.placed_at DESC, orders.id DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, pkgerrors.Wrap(err, "list orders")
	}
	return rows, total, nil
}

// GetWithItems loads an order with its client and line items for the details
// view.
func (s *OrderStore) GetWithItems(id uint) (*models.Order, error) {
	var o models.Order
	if err := s.DB.Preload("Items").Preload("Client").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}
