package repository

import (
	"errors"
	"storefront/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *models.Order) error
	// CreateRedeemingCoupon persists the order and increments the coupon's
	// used_count in a single transaction. The increment is conditional on the
	// usage limit, so two concurrent checkouts cannot both consume a coupon's
	// last remaining use. Returns models.ErrCouponUsageExceeded (and persists
	// nothing) when the precondition fails.
	CreateRedeemingCoupon(order *models.Order, couponID uint) error
	GetByID(id uint) (*models.Order, error)
	GetByUserID(userID uint) ([]models.Order, error)
	GetAll() ([]models.Order, error)
	Update(order *models.Order) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) CreateRedeemingCoupon(order *models.Order, couponID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Coupon{}).
			Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", couponID).
			UpdateColumn("used_count", gorm.Expr("used_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrCouponUsageExceeded
		}
		return tx.Create(order).Error
	})
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByUserID(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}
