package handlers

import (
	"net/http"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type orderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type shippingAddressRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

type createOrderRequest struct {
	Items           []orderItemRequest     `json:"items" binding:"required"`
	ShippingAddress shippingAddressRequest `json:"shipping_address" binding:"required"`
	PaymentMethod   string                 `json:"payment_method" binding:"required"`
	CouponCode      string                 `json:"coupon_code"`
	OrderNotes      string                 `json:"order_notes"`
	TotalPrice      *float64               `json:"total_price"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	input := &services.PlaceOrderInput{
		UserID: c.GetUint(middleware.ContextUserID),
		ShippingAddress: models.ShippingAddress{
			FullName:   req.ShippingAddress.FullName,
			Phone:      req.ShippingAddress.Phone,
			Email:      req.ShippingAddress.Email,
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
		PaymentMethod: req.PaymentMethod,
		CouponCode:    req.CouponCode,
		OrderNotes:    req.OrderNotes,
		ClientTotal:   req.TotalPrice,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, services.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orderService.PlaceOrder(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, svcErr := h.orderService.GetOrderByID(uint(id))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	// Owners see their own orders; admins see everything. Anonymous orders
	// are fetched through the tracking endpoint instead.
	role := c.GetString(middleware.ContextRole)
	userID := c.GetUint(middleware.ContextUserID)
	if role != string(models.RoleAdmin) && (order.UserID == 0 || order.UserID != userID) {
		respondError(c, models.ErrOrderNotFound)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	orders, err := h.orderService.GetOrdersByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, svcErr := h.orderService.UpdateStatus(uint(id), req.Status)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) TrackOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Query("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	email := c.Query("email")

	order, svcErr := h.orderService.TrackOrder(uint(id), email)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, order)
}
