package store

import (
	"strings"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"pedidos/internal/models"
)

// ProductStore persists products. Stock itself is only ever written through
// the inventory ledger; here the column is just another field on the row.
type ProductStore struct {
	DB *gorm.DB
}

func NewProductStore(db *gorm.DB) *ProductStore { return &ProductStore{DB: db} }

// GetByID reads within the supplied scope.
func (s *ProductStore) GetByID(tx *gorm.DB, id uint) (*models.Product, error) {
	var p models.Product
	if err := tx.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns products matching q against the name, newest first.
func (s *ProductStore) List(q string, limit, offset int) ([]models.Product, int64, error) {
	dbq := s.DB.Model(&models.Product{})
	if q != "" {
		like := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
		dbq = dbq.Where("lower(name) LIKE ?", like)
	}
	var total int64
	if err := dbq.Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "count products")
	}
	var products []models.Product
	if err := dbq.Order("id desc").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "list products")
	}
	return products, total, nil
}

func (s *ProductStore) Create(p *models.Product) error { return s.DB.Create(p).Error }

func (s *ProductStore) Update(p *models.Product) error { return s.DB.Save(p).Error }

// Delete removes the product while keeping historical order items readable:
// their back-reference is cleared, the name/price snapshots stay untouched.
func (s *ProductStore) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", id).Update("product_id", nil).Error; err != nil {
			return pkgerrors.Wrap(err, "detach order items")
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}
