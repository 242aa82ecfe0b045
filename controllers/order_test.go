package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tacotown/models"
)

func validRequest() createOrderRequest {
	return createOrderRequest{
		OrderID:       "ORD-1",
		CustomerName:  "Asha",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "9999999999",
		OrderItems:    []models.OrderItem{{Name: "Classic Taco", Quantity: 2, Price: 79}},
		TotalAmount:   158,
	}
}

func TestCreateOrderValidation(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := validRequest()
		if err := req.validate(); err != nil {
			t.Fatalf("validate: %v", err)
		}
	})

	t.Run("missing order id", func(t *testing.T) {
		req := validRequest()
		req.OrderID = ""
		if err := req.validate(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("missing customer name", func(t *testing.T) {
		req := validRequest()
		req.CustomerName = ""
		if err := req.validate(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("no order items", func(t *testing.T) {
		req := validRequest()
		req.OrderItems = nil
		if err := req.validate(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("zero total", func(t *testing.T) {
		req := validRequest()
		req.TotalAmount = 0
		if err := req.validate(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("zero-quantity item", func(t *testing.T) {
		req := validRequest()
		req.OrderItems = []models.OrderItem{{Name: "Classic Taco", Quantity: 0, Price: 79}}
		if err := req.validate(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		req := validRequest()
		req.Status = "pending"
		if err := req.validate(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("omitted status is fine", func(t *testing.T) {
		req := validRequest()
		req.Status = ""
		if err := req.validate(); err != nil {
			t.Fatalf("validate: %v", err)
		}
	})
}

func TestRespondEnvelope(t *testing.T) {
	t.Run("success carries data", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respondSuccess(rec, "Order saved successfully", map[string]string{"order_id": "ORD-1"})

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var env struct {
			Success bool              `json:"success"`
			Message string            `json:"message"`
			Data    map[string]string `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !env.Success || env.Data["order_id"] != "ORD-1" {
			t.Fatalf("envelope = %+v", env)
		}
	})

	t.Run("failure omits data", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respondError(rec, http.StatusNotFound, "Order not found")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
		var env map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if env["success"] != false || env["message"] != "Order not found" {
			t.Fatalf("envelope = %v", env)
		}
		if _, hasData := env["data"]; hasData {
			t.Fatal("failure response must omit data")
		}
	})
}
