package models

import (
	"time"

	"gorm.io/gorm"
)

type Coupon struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	Code              string         `json:"code" gorm:"unique;not null"` // stored upper-cased
	DiscountType      string         `json:"discount_type" gorm:"not null"` // percentage, fixed
	DiscountValue     float64        `json:"discount_value" gorm:"not null"`
	MinPurchaseAmount float64        `json:"min_purchase_amount" gorm:"default:0"`
	MaxDiscountAmount *float64       `json:"max_discount_amount"` // nil = no cap
	ExpiryDate        *time.Time     `json:"expiry_date"`         // nil = never expires
	UsageLimit        *int           `json:"usage_limit"`         // nil = unlimited
	UsedCount         int            `json:"used_count" gorm:"default:0"`
	IsActive          bool           `json:"is_active" gorm:"default:true"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)
