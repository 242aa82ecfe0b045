// controllers/order.go
package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tacotown/models"
	"tacotown/utils"
)

// OrderController handles order-related requests
type OrderController struct {
	Collection   *mongo.Collection
	EmailService *utils.EmailService
	ShopEmail    string
	Log          *slog.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(client *mongo.Client, emailService *utils.EmailService, shopEmail string, log *slog.Logger) *OrderController {
	collection := client.Database("tacotown").Collection("orders")
	return &OrderController{
		Collection:   collection,
		EmailService: emailService,
		ShopEmail:    shopEmail,
		Log:          log,
	}
}

// EnsureIndexes creates the unique index on order_id.
func (oc *OrderController) EnsureIndexes(ctx context.Context) error {
	_, err := oc.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "order_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// createOrderRequest is the POST /orders body.
type createOrderRequest struct {
	OrderID       string             `json:"orderId"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	CustomerPhone string             `json:"customerPhone"`
	OrderItems    []models.OrderItem `json:"orderItems"`
	TotalAmount   float64            `json:"totalAmount"`
	Status        string             `json:"status"`
}

// validate rejects a request before anything reaches storage. The status
// field is optional; when present it must parse.
func (req *createOrderRequest) validate() error {
	if req.OrderID == "" || req.CustomerName == "" || len(req.OrderItems) == 0 || req.TotalAmount <= 0 {
		return errors.New("Missing required fields")
	}
	for _, item := range req.OrderItems {
		if item.Name == "" || item.Quantity < 1 || item.Price < 0 {
			return fmt.Errorf("Invalid order item: %s", item.Name)
		}
	}
	if req.Status != "" {
		if _, ok := models.ParseStatus(req.Status); !ok {
			return fmt.Errorf("Invalid status: %s", req.Status)
		}
	}
	return nil
}

// CreateOrder saves a new order. Status defaults to confirmed.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := models.StatusConfirmed
	if req.Status != "" {
		status, _ = models.ParseStatus(req.Status)
	}

	order := models.Order{
		OrderID:       req.OrderID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Items:         req.OrderItems,
		TotalAmount:   req.TotalAmount,
		Status:        status,
		CreatedAt:     time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	if _, err := oc.Collection.InsertOne(ctx, order); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			respondError(w, http.StatusConflict, "Order already exists")
			return
		}
		oc.Log.Error("insert order failed", "order_id", order.OrderID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to save order")
		return
	}

	oc.Log.Info("order created", "order_id", order.OrderID, "total", order.TotalAmount)

	// Best-effort shop alert; order creation never waits on email.
	if oc.ShopEmail != "" {
		go func(o models.Order) {
			if err := oc.EmailService.SendNewOrderAlert(oc.ShopEmail, o); err != nil {
				oc.Log.Warn("new order alert email failed", "order_id", o.OrderID, "error", err)
			}
		}(order)
	}

	respondSuccess(w, "Order saved successfully", order)
}

// GetOrders returns all orders, newest first.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := oc.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		oc.Log.Error("list orders failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		oc.Log.Error("decode orders failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	respondSuccess(w, "", orders)
}

// updateStatusRequest is the PUT /orders/{orderId} body.
type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus applies a lifecycle transition. The stored status is
// authoritative: a request whose implied from-state no longer matches is a
// conflict, and the client is expected to re-fetch rather than retry.
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID := vars["orderId"]

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Status == "" {
		respondError(w, http.StatusBadRequest, "Status is required")
		return
	}
	next, ok := models.ParseStatus(req.Status)
	if !ok {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid status: %s", req.Status))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var current models.Order
	err := oc.Collection.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&current)
	if err == mongo.ErrNoDocuments {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		oc.Log.Error("load order failed", "order_id", orderID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}

	if !current.Status.CanTransitionTo(next) {
		respondError(w, http.StatusConflict,
			fmt.Sprintf("Cannot change status from %s to %s", current.Status, next))
		return
	}

	// Guard on the observed status so a racing transition loses cleanly
	// instead of overwriting.
	res, err := oc.Collection.UpdateOne(ctx,
		bson.M{"order_id": orderID, "status": current.Status},
		bson.M{"$set": bson.M{"status": next}},
	)
	if err != nil {
		oc.Log.Error("update order failed", "order_id", orderID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}
	if res.MatchedCount == 0 {
		respondError(w, http.StatusConflict, "Order status changed concurrently")
		return
	}

	current.Status = next
	oc.Log.Info("order status updated", "order_id", orderID, "status", next)
	respondSuccess(w, "Order updated successfully", current)
}

// DeleteOrder removes an order, permitted only from a terminal state.
func (oc *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID := vars["orderId"]

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var current models.Order
	err := oc.Collection.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&current)
	if err == mongo.ErrNoDocuments {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		oc.Log.Error("load order failed", "order_id", orderID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	if !current.Status.Terminal() {
		respondError(w, http.StatusConflict,
			fmt.Sprintf("Cannot delete order in status %s", current.Status))
		return
	}

	if _, err := oc.Collection.DeleteOne(ctx, bson.M{"order_id": orderID}); err != nil {
		oc.Log.Error("delete order failed", "order_id", orderID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	oc.Log.Info("order deleted", "order_id", orderID)
	respondSuccess(w, "Order deleted successfully", nil)
}
