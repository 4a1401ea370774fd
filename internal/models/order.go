package models

import "time"

// Order models
type Order struct {
	ID       uint      `gorm:"primaryKey"`
	ClientID uint      `gorm:"not null;index"`
	Client   Client    `gorm:"foreignKey:ClientID"`
	PlacedAt time.Time `gorm:"not null;index"`
	// Total is computed once at placement from the item snapshots and never
	// recomputed afterwards.
	Total     float64     `gorm:"not null"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem carries name and unit-price snapshots captured at order time so
// later product renames, price changes or deletion do not rewrite history.
// ProductID is a non-owning back-reference and becomes nil when the product
// is deleted.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey"`
	OrderID     uint    `gorm:"not null;index"`
	ProductID   *uint   `gorm:"index"`
	ProductName string  `gorm:"not null"`
	Quantity    int     `gorm:"not null"`
	UnitPrice   float64 `gorm:"not null"`
}
