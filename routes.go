package main

import (
	"github.com/afridaasad/craftique-backend/handlers"
	"github.com/afridaasad/craftique-backend/internal/analytics"
	"github.com/afridaasad/craftique-backend/internal/checkout"
	"github.com/afridaasad/craftique-backend/internal/metrics"
	"github.com/afridaasad/craftique-backend/internal/orders"
	"github.com/afridaasad/craftique-backend/internal/payment"
	"github.com/afridaasad/craftique-backend/models"
	"github.com/afridaasad/craftique-backend/utils"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// setupRoutes wires every endpoint. Role guards follow the same rule
// everywhere: buyers own carts/wishlists/addresses/orders, artisans own
// products and fulfil orders, admins see everything.
func setupRoutes(app *fiber.App, db *gorm.DB, codes checkout.CodeStore, gateway payment.Gateway) {
	checkoutSvc := checkout.NewService(db, codes)
	ordersSvc := orders.NewService(db)
	analyticsSvc := analytics.NewService(db)

	authHandler := handlers.NewAuthHandler(db)
	userHandler := handlers.NewUserHandler(db)
	productHandler := handlers.NewProductHandler(db)
	categoryHandler := handlers.NewCategoryHandler(db)
	cartHandler := handlers.NewCartHandler(db)
	wishlistHandler := handlers.NewWishlistHandler(db)
	addressHandler := handlers.NewAddressHandler(db)
	orderHandler := handlers.NewOrderHandler(db, checkoutSvc, ordersSvc)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutSvc)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsSvc)
	paymentHandler := handlers.NewPaymentHandler(gateway)
	adminHandler := handlers.NewAdminHandler(db)

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api")

	// Public
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Get("/products", productHandler.GetAllProducts)
	api.Get("/products/:id", productHandler.GetProduct)
	api.Get("/categories", categoryHandler.GetCategories)

	// Authenticated
	auth := api.Group("", utils.AuthMiddleware)
	auth.Get("/profile", userHandler.GetProfile)
	auth.Put("/profile", userHandler.UpdateProfile)
	auth.Put("/profile/password", userHandler.UpdatePassword)
	auth.Post("/payments/intent", paymentHandler.CreateIntent)

	// Role guards attach per route. Mounting them on an empty-prefix
	// group would register them against "/api" itself and block every
	// other role's routes.
	buyerOnly := utils.RequireRole(models.RoleBuyer)
	artisanOnly := utils.RequireRole(models.RoleArtisan)
	fulfilRoles := utils.RequireRole(models.RoleArtisan, models.RoleAdmin)

	// Buyer
	auth.Get("/cart", buyerOnly, cartHandler.GetCart)
	auth.Post("/cart", buyerOnly, cartHandler.AddCartItem)
	auth.Put("/cart/:id", buyerOnly, cartHandler.UpdateCartItem)
	auth.Delete("/cart/:id", buyerOnly, cartHandler.RemoveCartItem)
	auth.Get("/wishlist", buyerOnly, wishlistHandler.GetWishlist)
	auth.Post("/wishlist", buyerOnly, wishlistHandler.AddToWishlist)
	auth.Delete("/wishlist/:product_id", buyerOnly, wishlistHandler.RemoveFromWishlist)
	auth.Post("/addresses", buyerOnly, addressHandler.AddAddress)
	auth.Get("/addresses", buyerOnly, addressHandler.GetAddresses)
	auth.Delete("/addresses/:id", buyerOnly, addressHandler.DeleteAddress)
	auth.Post("/orders/buy-now", buyerOnly, orderHandler.BuyNow)
	auth.Get("/orders", buyerOnly, orderHandler.GetMyOrders)
	auth.Post("/checkout/initiate", buyerOnly, checkoutHandler.InitiateCheckout)
	auth.Post("/checkout/confirm", buyerOnly, checkoutHandler.ConfirmCheckout)

	// Artisan
	auth.Post("/products", artisanOnly, productHandler.CreateProduct)
	auth.Put("/products/:id", artisanOnly, productHandler.UpdateProduct)
	auth.Delete("/products/:id", artisanOnly, productHandler.DeleteProduct)
	auth.Patch("/products/:id/toggle", artisanOnly, productHandler.ToggleProductStatus)
	auth.Get("/my-products", artisanOnly, productHandler.GetMyProducts)
	auth.Get("/artisan/orders", artisanOnly, orderHandler.GetArtisanOrders)
	auth.Get("/artisan/analytics", artisanOnly, analyticsHandler.ArtisanDashboard)

	// Order status transitions: owning artisan or admin; ownership is
	// checked per order inside the service.
	auth.Patch("/orders/:id/status", fulfilRoles, orderHandler.UpdateOrderStatus)
	auth.Patch("/orders/:id/delivery", fulfilRoles, orderHandler.UpdateDeliveryStatus)

	// Admin
	admin := auth.Group("/admin", utils.RequireRole(models.RoleAdmin))
	admin.Get("/analytics", analyticsHandler.AdminDashboard)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/products", adminHandler.ListProducts)
	admin.Get("/orders", adminHandler.ListOrders)
}
