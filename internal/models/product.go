package models

import "time"

// Product domain model. Stock counts sellable units and must never go
// negative; the inventory ledger owns every write to it.
type Product struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"not null;unique"`
	UnitPrice float64 `gorm:"not null"`
	Stock     int     `gorm:"not null;default:0"`
	// Historical order items outlive the product: the reference is cleared,
	// the name/price snapshots on the item stay.
	Items     []OrderItem `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
