package models

import "errors"

// Domain errors shared by the repository and service layers. Handlers map
// these onto HTTP statuses with errors.Is.
var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponInactive      = errors.New("coupon is not active")
	ErrCouponExpired       = errors.New("coupon has expired")
	ErrCouponUsageExceeded = errors.New("coupon usage limit reached")
	ErrCouponBelowMinimum  = errors.New("cart total is below the coupon minimum purchase amount")

	ErrInvalidCart       = errors.New("cart is empty or contains invalid quantities")
	ErrTotalMismatch     = errors.New("client total does not match the computed total")
	ErrInvalidTransition = errors.New("order status transition not allowed")

	ErrNotAuthorized      = errors.New("not authorized")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
