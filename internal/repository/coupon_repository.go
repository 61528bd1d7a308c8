package repository

import (
	"errors"
	"storefront/internal/models"
	"strings"

	"gorm.io/gorm"
)

type CouponRepository interface {
	Create(coupon *models.Coupon) error
	GetByID(id uint) (*models.Coupon, error)
	GetByCode(code string) (*models.Coupon, error)
	GetAll() ([]models.Coupon, error)
	Update(coupon *models.Coupon) error
	Delete(id uint) error
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(coupon *models.Coupon) error {
	coupon.Code = strings.ToUpper(coupon.Code)
	return r.db.Create(coupon).Error
}

func (r *couponRepository) GetByID(id uint) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.First(&coupon, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrCouponNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) GetByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.Where("code = ?", strings.ToUpper(code)).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrCouponNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) GetAll() ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := r.db.Order("created_at DESC").Find(&coupons).Error
	return coupons, err
}

func (r *couponRepository) Update(coupon *models.Coupon) error {
	coupon.Code = strings.ToUpper(coupon.Code)
	return r.db.Save(coupon).Error
}

func (r *couponRepository) Delete(id uint) error {
	return r.db.Delete(&models.Coupon{}, id).Error
}
