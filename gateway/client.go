// Package gateway is the HTTP client for the order API. Network failures,
// non-2xx responses, malformed JSON and success:false envelopes are all
// reported uniformly as a gateway failure; callers never distinguish
// transport trouble from server refusal beyond the attached message.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tacotown/models"
)

// ErrGateway marks any failure talking to the order gateway.
var ErrGateway = errors.New("gateway failure")

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a client for the API rooted at baseURL
// (e.g. http://localhost:8000/api). token may be empty; operator calls
// (UpdateStatus, Delete) need one.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Create submits a new order and returns the stored copy.
func (c *Client) Create(ctx context.Context, order models.Order) (models.Order, error) {
	body := map[string]any{
		"orderId":       order.OrderID,
		"customerName":  order.CustomerName,
		"customerEmail": order.CustomerEmail,
		"customerPhone": order.CustomerPhone,
		"orderItems":    order.Items,
		"totalAmount":   order.TotalAmount,
	}
	if order.Status != "" {
		body["status"] = order.Status
	}

	var stored models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", body, &stored); err != nil {
		return models.Order{}, err
	}
	return stored, nil
}

// List returns all orders, newest first.
func (c *Client) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus asks the gateway to move an order to the given status. The
// server is authoritative about whether the transition is legal.
func (c *Client) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	body := map[string]any{"status": status}
	return c.do(ctx, http.MethodPut, "/orders/"+orderID, body, nil)
}

// Delete removes an order. The gateway refuses unless the order is in a
// terminal state.
func (c *Client) Delete(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodDelete, "/orders/"+orderID, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrGateway, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrGateway, err)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("%w: %s", ErrGateway, msg)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: decode data: %v", ErrGateway, err)
		}
	}
	return nil
}
