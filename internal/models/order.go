package models

import (
	"time"
)

type ShippingAddress struct {
	FullName   string `json:"full_name" gorm:"not null"`
	Phone      string `json:"phone" gorm:"not null"`
	Email      string `json:"email"`
	Address    string `json:"address" gorm:"not null"`
	City       string `json:"city" gorm:"not null"`
	PostalCode string `json:"postal_code" gorm:"not null"`
	Country    string `json:"country" gorm:"not null"`
}

type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	OrderNumber     string          `json:"order_number" gorm:"unique;not null"`
	UserID          uint            `json:"user_id" gorm:"index"` // 0 = anonymous order
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"embedded;embeddedPrefix:shipping_"`
	ItemsPrice      float64         `json:"items_price" gorm:"not null"`
	ShippingPrice   float64         `json:"shipping_price" gorm:"not null"`
	TaxPrice        float64         `json:"tax_price" gorm:"not null"`
	Discount        float64         `json:"discount" gorm:"default:0"`
	TotalPrice      float64         `json:"total_price" gorm:"not null"`
	PaymentMethod   string          `json:"payment_method" gorm:"not null"`
	PaymentStatus   string          `json:"payment_status" gorm:"default:'pending'"` // pending, paid
	IsPaid          bool            `json:"is_paid" gorm:"default:false"`
	PaidAt          *time.Time      `json:"paid_at"`
	OrderStatus     string          `json:"order_status" gorm:"default:'pending'"` // pending, processing, shipped, delivered, cancelled
	DeliveredAt     *time.Time      `json:"delivered_at"`
	CouponCode      string          `json:"coupon_code"` // snapshot of the redeemed code, not a live reference
	OrderNotes      string          `json:"order_notes" gorm:"type:text"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

const PaymentMethodCOD = "cod"
