package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is one purchased line on an order.
type OrderItem struct {
	Name     string  `bson:"name" json:"name"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Price    float64 `bson:"price" json:"price"`
}

// Order represents a submitted purchase. The gateway's store owns it; clients
// hold transient copies keyed by OrderID.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OrderID       string             `bson:"order_id" json:"order_id"`
	CustomerName  string             `bson:"customer_name" json:"customer_name"`
	CustomerEmail string             `bson:"customer_email" json:"customer_email"`
	CustomerPhone string             `bson:"customer_phone" json:"customer_phone"`
	Items         []OrderItem        `bson:"order_items" json:"order_items"`
	TotalAmount   float64            `bson:"total_amount" json:"total_amount"`
	Status        OrderStatus        `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
