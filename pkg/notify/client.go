package notify

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"storefront/internal/models"
	"time"
)

// Client posts order status change events to an external webhook, e.g. a
// fulfillment system or a notification relay.
type Client struct {
	BaseURL    string
	Username   string
	Password   string
	HTTPClient *http.Client
}

type StatusChangeEvent struct {
	OrderNumber   string  `json:"order_number"`
	OrderStatus   string  `json:"order_status"`
	PaymentStatus string  `json:"payment_status"`
	TotalPrice    float64 `json:"total_price"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	Time          string  `json:"time"`
}

type webhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewClient(baseURL, username, password string) *Client {
	return &Client{
		BaseURL:  baseURL,
		Username: username,
		Password: password,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NotifyStatusChange posts the order's new status to the webhook.
func (c *Client) NotifyStatusChange(order *models.Order) error {
	event := StatusChangeEvent{
		OrderNumber:   order.OrderNumber,
		OrderStatus:   order.OrderStatus,
		PaymentStatus: order.PaymentStatus,
		TotalPrice:    order.TotalPrice,
		CustomerName:  order.ShippingAddress.FullName,
		CustomerPhone: order.ShippingAddress.Phone,
		Time:          time.Now().Format(time.RFC3339),
	}

	// Marshal to JSON
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	// Create HTTP request
	req, err := http.NewRequest("POST", c.BaseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	req.Header.Set("Content-Type", "application/json")

	if c.Username != "" {
		// Create Basic Auth token
		auth := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))
		req.Header.Set("Authorization", "Basic "+auth)
	}

	// Send request
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(body))
	}

	// Parse response when the webhook reports a structured result
	var response webhookResponse
	if err := json.Unmarshal(body, &response); err == nil && response.Message != "" && !response.Success {
		return fmt.Errorf("webhook rejected event: %s", response.Message)
	}

	return nil
}
