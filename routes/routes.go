package routes

import (
	"net/http"

	"emporia/auth"
	"emporia/cart"
	"emporia/items"
	"emporia/middleware"
	"emporia/orders"
	"emporia/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/itempic/*filepath", http.Dir("static/itempic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.GET("/api/auth/getAuth", middleware.Authenticate(auth.GetAuth))
	router.GET("/api/auth/profile/:id", middleware.Authenticate(auth.Profile))
}

func AddItemRoutes(router *httprouter.Router) {
	router.POST("/api/items/create", middleware.Authenticate(items.CreateItem))
	router.GET("/api/items/all-items", items.GetAllItems)
	router.GET("/api/items/item/:id", items.GetItemByID)
}

func AddCartRoutes(router *httprouter.Router) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.GET("/api/cart/summary", middleware.Authenticate(cart.GetCartSummary))
	router.POST("/api/cart/add", ratelim.RateLimit(middleware.Authenticate(cart.AddToCart)))
	router.PUT("/api/cart/update/:itemId", middleware.Authenticate(cart.UpdateCartItem))
	router.DELETE("/api/cart/remove/:itemId", middleware.Authenticate(cart.RemoveFromCart))
	router.DELETE("/api/cart/clear", middleware.Authenticate(cart.ClearCart))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.POST("/api/orders", ratelim.RateLimit(middleware.Authenticate(orders.CreateOrderHandler)))
	router.GET("/api/orders", middleware.Authenticate(orders.GetUserOrders))
	// httprouter cannot register /api/orders/summary alongside
	// /api/orders/:orderId; GetOrderOrSummary dispatches on the param.
	router.GET("/api/orders/:orderId", middleware.Authenticate(orders.GetOrderOrSummary))
	router.GET("/api/orders/:orderId/invoice", middleware.Authenticate(orders.OrderInvoice))
	router.PUT("/api/orders/:orderId/status", middleware.Authenticate(orders.UpdateOrderStatusHandler))
	router.PUT("/api/orders/:orderId/cancel", middleware.Authenticate(orders.CancelOrderHandler))
}
