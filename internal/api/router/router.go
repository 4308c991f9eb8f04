package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"marketplace_service/internal/api/handlers"
	"marketplace_service/pkg/middlewares"
)

// RegisterRoutes 註冊所有路由
// @title Marketplace Service API
// @version 1.0
// @description API documentation for Marketplace Service
// @host localhost:8080
// @BasePath /
func RegisterRoutes(app *fiber.App,
	accountHandler *handlers.AccountHandler,
	catalogHandler *handlers.CatalogHandler,
	orderHandler *handlers.OrderHandler,
	messagingHandler *handlers.MessagingHandler,
) {
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", handlers.ConnectCheck)
	app.Post("/debug", handlers.DebugLogFlag)

	memberRoutes := app.Group("/member")
	memberRoutes.Post("/register", accountHandler.Register)
	memberRoutes.Post("/login", accountHandler.Login)

	memberRoutes.Use(middlewares.JWTMiddleware())
	memberRoutes.Post("/logout", accountHandler.Logout)
	memberRoutes.Post("/refresh", accountHandler.RefreshSession)

	storeRoutes := app.Group("/store")
	storeRoutes.Get("/products", catalogHandler.Storefront)
	storeRoutes.Get("/products/:slug", catalogHandler.ProductDetail)
	storeRoutes.Post("/orders", middlewares.JWTMiddleware(), orderHandler.PlaceOrder)

	sellerRoutes := app.Group("/seller")
	sellerRoutes.Use(middlewares.JWTMiddleware())

	// profile 路由不經過 gate，否則商家永遠無法建立資料
	sellerRoutes.Get("/profile", accountHandler.SellerProfile)
	sellerRoutes.Post("/profile", accountHandler.SaveSellerProfile)

	sellerRoutes.Use(SellerGate(accountHandler.Usecase))
	sellerRoutes.Get("/dashboard", catalogHandler.SellerProducts)
	sellerRoutes.Post("/products", catalogHandler.AddProduct)
	sellerRoutes.Put("/products/:id", catalogHandler.EditProduct)
	sellerRoutes.Post("/products/bulk-delete", catalogHandler.BulkDeleteProducts)
	sellerRoutes.Post("/products/:id/toggle", catalogHandler.ToggleProduct)
	sellerRoutes.Get("/orders", orderHandler.SellerOrders)
	sellerRoutes.Get("/delivery", orderHandler.Delivery)
	sellerRoutes.Post("/delivery", accountHandler.DeliverySettings)
	sellerRoutes.Get("/sales", orderHandler.Sales)
	sellerRoutes.Get("/payments", orderHandler.Payments)
	sellerRoutes.Get("/messages", messagingHandler.Inbox)
	sellerRoutes.Post("/messages", messagingHandler.SendMessage)
	sellerRoutes.Get("/messages/unread", messagingHandler.UnreadCount)
}
