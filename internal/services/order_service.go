package services

import (
	"fmt"
	"log"
	"math"
	"storefront/internal/models"
	"storefront/internal/repository"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderConfig carries the pricing parameters and status-machine policy.
type OrderConfig struct {
	Pricing PricingConfig

	// Payment methods that are collected before the order is placed. Orders
	// paid with one of these start with payment status paid.
	PrepaidMethods []string

	// AllowArbitraryTransitions disables the forward-only status machine and
	// lets an administrator set any status directly.
	AllowArbitraryTransitions bool

	// MarkCODPaidOnDelivery flips cash-on-delivery orders to paid when they
	// reach the delivered status.
	MarkCODPaidOnDelivery bool
}

// StatusNotifier is told about order status changes. Delivery is best-effort;
// failures are logged, never propagated.
type StatusNotifier interface {
	NotifyStatusChange(order *models.Order) error
}

type OrderItemInput struct {
	ProductID uint
	Quantity  int
}

type PlaceOrderInput struct {
	UserID          uint // 0 for anonymous checkout
	Items           []OrderItemInput
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
	CouponCode      string
	OrderNotes      string
	// ClientTotal is the total the storefront displayed. It is informational
	// only: the server recomputes every figure and rejects on mismatch.
	ClientTotal *float64
}

type OrderService interface {
	PlaceOrder(input *PlaceOrderInput) (*models.Order, error)
	GetOrderByID(id uint) (*models.Order, error)
	GetOrdersByUser(userID uint) ([]models.Order, error)
	GetAllOrders() ([]models.Order, error)
	UpdateStatus(id uint, newStatus string) (*models.Order, error)
	// TrackOrder returns the order only when the shipping email matches
	// case-insensitively. Any mismatch looks identical to a missing id.
	TrackOrder(id uint, email string) (*models.Order, error)
}

type orderService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	couponService CouponService
	config        OrderConfig
	notifier      StatusNotifier
	nowFunc       func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	couponService CouponService,
	config OrderConfig,
	notifier StatusNotifier,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		couponService: couponService,
		config:        config,
		notifier:      notifier,
		nowFunc:       time.Now,
	}
}

// statusTransitions is the forward-only status machine. Delivered and
// cancelled are terminal.
var statusTransitions = map[string][]string{
	string(models.OrderPending):    {string(models.OrderProcessing), string(models.OrderCancelled)},
	string(models.OrderProcessing): {string(models.OrderShipped), string(models.OrderCancelled)},
	string(models.OrderShipped):    {string(models.OrderDelivered)},
	string(models.OrderDelivered):  {},
	string(models.OrderCancelled):  {},
}

func (s *orderService) PlaceOrder(input *PlaceOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, models.ErrInvalidCart
	}

	// Snapshot the catalog: name, image and unit price are copied onto the
	// order line and stay frozen even if the product changes later.
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		if in.Quantity < 1 {
			return nil, models.ErrInvalidCart
		}
		product, err := s.productRepo.GetByID(in.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			Price:     product.Price,
			Quantity:  in.Quantity,
		})
	}

	itemsPrice, err := itemsSubtotal(items)
	if err != nil {
		return nil, err
	}
	shippingPrice := s.config.Pricing.shippingFor(itemsPrice)
	taxPrice := s.config.Pricing.taxFor(itemsPrice)

	now := s.nowFunc()

	var coupon *models.Coupon
	discount := 0.0
	couponCode := strings.ToUpper(strings.TrimSpace(input.CouponCode))
	if couponCode != "" {
		coupon, err = s.couponService.Validate(couponCode, itemsPrice, now)
		if err != nil {
			return nil, err
		}
		discount = ComputeDiscount(coupon, itemsPrice)
	}

	breakdown := aggregateTotals(itemsPrice, shippingPrice, taxPrice, discount)

	// Client-supplied totals are never trusted. Recompute and compare; on
	// disagreement the server value wins and the order is rejected.
	if input.ClientTotal != nil && math.Abs(*input.ClientTotal-breakdown.TotalPrice) >= 0.01 {
		return nil, models.ErrTotalMismatch
	}

	order := &models.Order{
		OrderNumber:     s.newOrderNumber(now),
		UserID:          input.UserID,
		Items:           items,
		ShippingAddress: input.ShippingAddress,
		ItemsPrice:      breakdown.ItemsPrice,
		ShippingPrice:   breakdown.ShippingPrice,
		TaxPrice:        breakdown.TaxPrice,
		Discount:        breakdown.Discount,
		TotalPrice:      breakdown.TotalPrice,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   string(models.PaymentPending),
		OrderStatus:     string(models.OrderPending),
		CouponCode:      couponCode,
		OrderNotes:      input.OrderNotes,
	}
	if s.isPrepaid(input.PaymentMethod) {
		order.PaymentStatus = string(models.PaymentPaid)
		order.IsPaid = true
		order.PaidAt = &now
	}

	// Coupon redemption and order persistence succeed or fail together, so
	// an abandoned or failed order never consumes a use.
	if coupon != nil {
		err = s.orderRepo.CreateRedeemingCoupon(order, coupon.ID)
	} else {
		err = s.orderRepo.Create(order)
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

func (s *orderService) GetOrdersByUser(userID uint) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

func (s *orderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

func (s *orderService) UpdateStatus(id uint, newStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	// Re-applying the current status is a no-op success.
	if order.OrderStatus == newStatus {
		return order, nil
	}

	if _, known := statusTransitions[newStatus]; !known {
		return nil, models.ErrInvalidTransition
	}
	if !s.config.AllowArbitraryTransitions && !transitionAllowed(order.OrderStatus, newStatus) {
		return nil, models.ErrInvalidTransition
	}

	order.OrderStatus = newStatus
	if newStatus == string(models.OrderDelivered) {
		now := s.nowFunc()
		order.DeliveredAt = &now
		if s.config.MarkCODPaidOnDelivery && order.PaymentMethod == models.PaymentMethodCOD && !order.IsPaid {
			order.PaymentStatus = string(models.PaymentPaid)
			order.IsPaid = true
			order.PaidAt = &now
		}
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyStatusChange(order); err != nil {
			log.Printf("Warning: Failed to notify status change for order %s: %v", order.OrderNumber, err)
		}
	}
	return order, nil
}

func (s *orderService) TrackOrder(id uint, email string) (*models.Order, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, models.ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(order.ShippingAddress.Email, email) {
		// Indistinguishable from a missing id so trackers cannot probe for
		// order existence.
		return nil, models.ErrOrderNotFound
	}
	return order, nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *orderService) isPrepaid(method string) bool {
	for _, m := range s.config.PrepaidMethods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

func (s *orderService) newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
