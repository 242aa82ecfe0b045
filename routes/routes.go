// routes/routes.go
package routes

import (
	"github.com/gorilla/mux"

	"tacotown/controllers"
	"tacotown/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, orderController *controllers.OrderController, menuController *controllers.MenuController, contactController *controllers.ContactController) {
	api := router.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/menu", menuController.GetMenu).Methods("GET")
	api.HandleFunc("/contact", contactController.SubmitContact).Methods("POST")

	// Order routes
	api.HandleFunc("/orders", orderController.CreateOrder).Methods("POST")
	api.HandleFunc("/orders", orderController.GetOrders).Methods("GET")

	// Operator routes
	operator := api.PathPrefix("/orders").Subrouter()
	operator.Use(middleware.AuthMiddleware)
	operator.Use(middleware.OperatorMiddleware)
	operator.HandleFunc("/{orderId}", orderController.UpdateOrderStatus).Methods("PUT")
	operator.HandleFunc("/{orderId}", orderController.DeleteOrder).Methods("DELETE")
}
