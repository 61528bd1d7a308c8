package services

import (
	"errors"
	"storefront/internal/models"
	"testing"
	"time"
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func TestCouponValidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	cases := []struct {
		name     string
		coupon   *models.Coupon
		code     string
		subtotal float64
		wantErr  error
	}{
		{
			name:    "unknown code",
			coupon:  &models.Coupon{Code: "SAVE10", DiscountType: "percentage", DiscountValue: 10, IsActive: true},
			code:    "NOPE",
			wantErr: models.ErrCouponNotFound,
		},
		{
			name:    "inactive",
			coupon:  &models.Coupon{Code: "SAVE10", DiscountType: "percentage", DiscountValue: 10, IsActive: false},
			code:    "SAVE10",
			wantErr: models.ErrCouponInactive,
		},
		{
			name:    "expired even when active",
			coupon:  &models.Coupon{Code: "SAVE10", DiscountType: "percentage", DiscountValue: 10, IsActive: true, ExpiryDate: timePtr(past)},
			code:    "SAVE10",
			wantErr: models.ErrCouponExpired,
		},
		{
			name:    "usage limit reached",
			coupon:  &models.Coupon{Code: "SAVE10", DiscountType: "percentage", DiscountValue: 10, IsActive: true, UsageLimit: intPtr(5), UsedCount: 5},
			code:    "SAVE10",
			wantErr: models.ErrCouponUsageExceeded,
		},
		{
			name:     "below minimum purchase",
			coupon:   &models.Coupon{Code: "SAVE10", DiscountType: "percentage", DiscountValue: 10, IsActive: true, MinPurchaseAmount: 50},
			code:     "SAVE10",
			subtotal: 49.99,
			wantErr:  models.ErrCouponBelowMinimum,
		},
		{
			name:     "eligible",
			coupon:   &models.Coupon{Code: "SAVE10", DiscountType: "percentage", DiscountValue: 10, IsActive: true, MinPurchaseAmount: 50, ExpiryDate: timePtr(future), UsageLimit: intPtr(5), UsedCount: 4},
			code:     "SAVE10",
			subtotal: 50,
		},
		{
			name:     "code lookup is case-insensitive",
			coupon:   &models.Coupon{Code: "SAVE10", DiscountType: "percentage", DiscountValue: 10, IsActive: true},
			code:     "save10",
			subtotal: 100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMockCouponRepo()
			if err := repo.Create(tc.coupon); err != nil {
				t.Fatalf("create coupon: %v", err)
			}
			svc := NewCouponService(repo)

			coupon, err := svc.Validate(tc.code, tc.subtotal, now)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Validate() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if coupon == nil || coupon.Code != tc.coupon.Code {
				t.Fatalf("Validate() returned wrong coupon: %+v", coupon)
			}
			// Validation is read-only.
			if got := repo.usedCount(tc.coupon.ID); got != tc.coupon.UsedCount {
				t.Errorf("used count mutated by Validate: got %d, want %d", got, tc.coupon.UsedCount)
			}
		})
	}
}

func TestComputeDiscount(t *testing.T) {
	cases := []struct {
		name     string
		coupon   *models.Coupon
		subtotal float64
		want     float64
	}{
		{
			name:     "percentage capped at max discount",
			coupon:   &models.Coupon{DiscountType: "percentage", DiscountValue: 10, MaxDiscountAmount: floatPtr(500)},
			subtotal: 10000,
			want:     500,
		},
		{
			name:     "percentage without cap",
			coupon:   &models.Coupon{DiscountType: "percentage", DiscountValue: 10},
			subtotal: 10000,
			want:     1000,
		},
		{
			name:     "fixed never exceeds subtotal",
			coupon:   &models.Coupon{DiscountType: "fixed", DiscountValue: 300},
			subtotal: 200,
			want:     200,
		},
		{
			name:     "fixed below subtotal",
			coupon:   &models.Coupon{DiscountType: "fixed", DiscountValue: 25},
			subtotal: 200,
			want:     25,
		},
		{
			name:     "percentage rounds to cents",
			coupon:   &models.Coupon{DiscountType: "percentage", DiscountValue: 15},
			subtotal: 33.33, // 4.9995 -> 5.00
			want:     5.00,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeDiscount(tc.coupon, tc.subtotal); got != tc.want {
				t.Errorf("ComputeDiscount() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestUpdateCouponPreservesUsedCount(t *testing.T) {
	repo := newMockCouponRepo()
	coupon := &models.Coupon{Code: "SAVE10", DiscountType: "percentage", DiscountValue: 10, IsActive: true, UsedCount: 7}
	if err := repo.Create(coupon); err != nil {
		t.Fatalf("create coupon: %v", err)
	}
	svc := NewCouponService(repo)

	updated, err := svc.UpdateCoupon(coupon.ID, &models.Coupon{
		Code:          "save20",
		DiscountType:  "percentage",
		DiscountValue: 20,
		UsedCount:     0, // must be ignored
		IsActive:      true,
	})
	if err != nil {
		t.Fatalf("UpdateCoupon() error: %v", err)
	}
	if updated.Code != "SAVE20" {
		t.Errorf("code = %q, want upper-cased SAVE20", updated.Code)
	}
	if updated.UsedCount != 7 {
		t.Errorf("used count = %d, want preserved 7", updated.UsedCount)
	}
}
