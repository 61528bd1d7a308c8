package handlers

import (
	"net/http"
	"storefront/internal/models"
	"storefront/internal/services"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	couponService services.CouponService
}

func NewCouponHandler(couponService services.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

type couponRequest struct {
	Code              string     `json:"code" binding:"required,min=3,max=64"`
	DiscountType      string     `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue     float64    `json:"discount_value" binding:"required,gt=0"`
	MinPurchaseAmount float64    `json:"min_purchase_amount" binding:"gte=0"`
	MaxDiscountAmount *float64   `json:"max_discount_amount" binding:"omitempty,gt=0"`
	ExpiryDate        *time.Time `json:"expiry_date"`
	UsageLimit        *int       `json:"usage_limit" binding:"omitempty,gt=0"`
	IsActive          *bool      `json:"is_active"`
}

func (r *couponRequest) toModel() *models.Coupon {
	coupon := &models.Coupon{
		Code:              r.Code,
		DiscountType:      r.DiscountType,
		DiscountValue:     r.DiscountValue,
		MinPurchaseAmount: r.MinPurchaseAmount,
		MaxDiscountAmount: r.MaxDiscountAmount,
		ExpiryDate:        r.ExpiryDate,
		UsageLimit:        r.UsageLimit,
		IsActive:          true,
	}
	if r.IsActive != nil {
		coupon.IsActive = *r.IsActive
	}
	return coupon
}

func (r *couponRequest) validateValues() string {
	if r.DiscountType == string(models.DiscountPercentage) && r.DiscountValue > 100 {
		return "percentage discount value must be in (0,100]"
	}
	return ""
}

func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if msg := req.validateValues(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	coupon := req.toModel()
	if err := h.couponService.CreateCoupon(coupon); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, coupon)
}

func (h *CouponHandler) GetAllCoupons(c *gin.Context) {
	coupons, err := h.couponService.GetAllCoupons()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coupons)
}

func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon id"})
		return
	}

	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if msg := req.validateValues(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	coupon, svcErr := h.couponService.UpdateCoupon(uint(id), req.toModel())
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, coupon)
}

func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon id"})
		return
	}

	if err := h.couponService.DeleteCoupon(uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
