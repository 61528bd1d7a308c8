package services

import (
	"storefront/internal/models"
	"storefront/internal/repository"
	"strings"
	"time"
)

type CouponService interface {
	// Validate checks a coupon code against the activity window, usage limit
	// and minimum purchase. It is read-only: used_count is consumed only when
	// an order is actually placed.
	Validate(code string, cartSubtotal float64, now time.Time) (*models.Coupon, error)
	CreateCoupon(coupon *models.Coupon) error
	GetCouponByID(id uint) (*models.Coupon, error)
	GetAllCoupons() ([]models.Coupon, error)
	UpdateCoupon(id uint, updated *models.Coupon) (*models.Coupon, error)
	DeleteCoupon(id uint) error
}

type couponService struct {
	couponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponService{couponRepo: couponRepo}
}

func (s *couponService) Validate(code string, cartSubtotal float64, now time.Time) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByCode(strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if !coupon.IsActive {
		return nil, models.ErrCouponInactive
	}
	if coupon.ExpiryDate != nil && now.After(*coupon.ExpiryDate) {
		return nil, models.ErrCouponExpired
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return nil, models.ErrCouponUsageExceeded
	}
	if cartSubtotal < coupon.MinPurchaseAmount {
		return nil, models.ErrCouponBelowMinimum
	}
	return coupon, nil
}

// ComputeDiscount returns the discount amount for an eligible coupon applied
// to a cart subtotal. Percentage discounts are capped at MaxDiscountAmount
// when set; fixed discounts never exceed the subtotal.
func ComputeDiscount(coupon *models.Coupon, cartSubtotal float64) float64 {
	var amount float64
	switch coupon.DiscountType {
	case string(models.DiscountPercentage):
		amount = cartSubtotal * coupon.DiscountValue / 100
		if coupon.MaxDiscountAmount != nil && amount > *coupon.MaxDiscountAmount {
			amount = *coupon.MaxDiscountAmount
		}
	case string(models.DiscountFixed):
		amount = coupon.DiscountValue
		if amount > cartSubtotal {
			amount = cartSubtotal
		}
	}
	if amount < 0 {
		amount = 0
	}
	return roundCurrency(amount)
}

func (s *couponService) CreateCoupon(coupon *models.Coupon) error {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	coupon.UsedCount = 0
	return s.couponRepo.Create(coupon)
}

func (s *couponService) GetCouponByID(id uint) (*models.Coupon, error) {
	return s.couponRepo.GetByID(id)
}

func (s *couponService) GetAllCoupons() ([]models.Coupon, error) {
	return s.couponRepo.GetAll()
}

func (s *couponService) UpdateCoupon(id uint, updated *models.Coupon) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	coupon.Code = strings.ToUpper(strings.TrimSpace(updated.Code))
	coupon.DiscountType = updated.DiscountType
	coupon.DiscountValue = updated.DiscountValue
	coupon.MinPurchaseAmount = updated.MinPurchaseAmount
	coupon.MaxDiscountAmount = updated.MaxDiscountAmount
	coupon.ExpiryDate = updated.ExpiryDate
	coupon.UsageLimit = updated.UsageLimit
	coupon.IsActive = updated.IsActive
	// UsedCount is owned by order placement and is never edited here.

	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *couponService) DeleteCoupon(id uint) error {
	return s.couponRepo.Delete(id)
}
