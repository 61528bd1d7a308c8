package models

import (
	"time"
)

// OrderItem is a line in an order. Name, Image and Price are snapshots of the
// product at checkout time and must not follow later catalog edits.
type OrderItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"not null;index"`
	ProductID uint      `json:"product_id" gorm:"not null"`
	Name      string    `json:"name" gorm:"not null"`
	Image     string    `json:"image"`
	Price     float64   `json:"price" gorm:"not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
