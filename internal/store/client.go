package store

import (
	"strings"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"pedidos/internal/models"
)

// ClientStore persists clients. Reads that participate in an order placement
// take the caller's transaction handle instead of opening their own scope.
type ClientStore struct {
	DB *gorm.DB
}

func NewClientStore(db *gorm.DB) *ClientStore { return &ClientStore{DB: db} }

// GetByID reads within the supplied scope.
func (s *ClientStore) GetByID(tx *gorm.DB, id uint) (*models.Client, error) {
	var c models.Client
	if err := tx.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns clients matching q against name or email, newest first.
func (s *ClientStore) List(q string, limit, offset int) ([]models.Client, int64, error) {
	dbq := s.DB.Model(&models.Client{})
	if q != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
		dbq = dbq.Where("lower(name) LIKE ? OR lower(email) LIKE ?", like, like)
	}
	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "count clients")
	}
	var clients []models.Client
	if err := dbq.Order("id desc").Limit(limit).Offset(offset).Find(&clients).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "list clients")
	}
	return clients, total, nil
}

func (s *ClientStore) Create(c *models.Client) error { return s.DB.Create(c).Error }

func (s *ClientStore) Update(c *models.Client) error { return s.DB.Save(c).Error }

// Delete removes the client together with its orders and their items in one
// transaction, so the cascade holds even when the driver runs with foreign
// keys disabled.
func (s *ClientStore) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var orderIDs []uint
		if err := tx.Model(&models.Order{}).Where("client_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
			return pkgerrors.Wrap(err, "list client orders")
		}
		if len(orderIDs) > 0 {
			if err := tx.Where("order_id IN ?", orderIDs).Delete(&models.OrderItem{}).Error; err != nil {
				return pkgerrors.Wrap(err, "delete order items")
			}
			if err := tx.Where("id IN ?", orderIDs).Delete(&models.Order{}).Error; err != nil {
				return pkgerrors.Wrap(err, "delete orders")
			}
		}
		return tx.Delete(&models.Client{}, id).Error
	})
}
