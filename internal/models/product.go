package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Image        string         `json:"image"`
	Brand        string         `json:"brand"`
	Category     string         `json:"category"`
	Price        float64        `json:"price" gorm:"not null"`
	CountInStock int            `json:"count_in_stock" gorm:"default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
