package models

import "time"

// Client entity
type Client struct {
	ID    uint    `gorm:"primaryKey"`
	Name  string  `gorm:"not null;index"`
	Email *string `gorm:"uniqueIndex"` // optional; unique only when present
	Phone string
	// Deleting a client deletes its orders and their items.
	Orders    []Order `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
