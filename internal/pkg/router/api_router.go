package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/FelixBraun92/PawPantry/app/controllers"
	"github.com/FelixBraun92/PawPantry/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	app.Use(newRateLimiter())
	app.Use(middleware.TokenAuthMiddleware())

	auth := app.Group("/auth")
	auth.Post("/register", controllers.HandleRegister)
	auth.Post("/login", controllers.HandleLogin)

	users := app.Group("/users", middleware.RequireAuth)
	users.Get("/me", controllers.HandleGetMe)
	users.Patch("/me", controllers.HandleUpdateMe)

	pets := app.Group("/pets", middleware.RequireAuth)
	pets.Post("/", controllers.HandleCreatePet)
	pets.Get("/", controllers.HandleListPets)
	pets.Get("/:id", controllers.HandleGetPet)
	pets.Patch("/:id", controllers.HandleUpdatePet)
	pets.Delete("/:id", controllers.HandleDeletePet)

	products := app.Group("/products")
	products.Post("/", middleware.RequireAdmin, controllers.HandleAdminCreateProduct)
	products.Get("/", controllers.HandleListProducts)
	products.Get("/:id", controllers.HandleGetProduct)
	products.Get("/:id/reviews", controllers.HandleListReviews)
	products.Post("/:id/reviews", middleware.RequireAuth, controllers.HandleCreateReview)

	coupons := app.Group("/coupons")
	coupons.Get("/validate/:code", controllers.HandleValidateCoupon)
	coupons.Post("/apply", middleware.RequireAuth, controllers.HandleApplyCoupon)

	orders := app.Group("/orders", middleware.RequireAuth)
	orders.Post("/", controllers.HandleCreateOrder)
	orders.Get("/", controllers.HandleListMyOrders)
	orders.Post("/auto-cancel", middleware.RequireAdmin, controllers.HandleAdminAutoCancel)
	orders.Get("/:id", controllers.HandleGetOrder)
	orders.Patch("/:id/status", middleware.RequireAdmin, controllers.HandleAdminSetOrderStatus)
	orders.Post("/:id/cancel", controllers.HandleCancelOrder)
	orders.Get("/:id/invoice", controllers.HandleGetInvoice)

	subs := app.Group("/subscriptions", middleware.RequireAuth)
	subs.Post("/", controllers.HandleCreateSubscription)
	subs.Get("/", controllers.HandleListMySubscriptions)
	subs.Patch("/:id", controllers.HandleUpdateSubscription)
	subs.Delete("/:id", controllers.HandleDeleteSubscription)
	subs.Post("/:id/renew", controllers.HandleRenewSubscription)

	payments := app.Group("/payments")
	payments.Post("/checkout", middleware.RequireAuth, controllers.HandleCreateCheckout)
	payments.Post("/webhook", controllers.HandlePaymentWebhook)
	payments.Get("/status/:id", middleware.RequireAuth, controllers.HandlePaymentStatus)

	admin := app.Group("/admin", middleware.RequireAdmin)
	admin.Get("/users", controllers.HandleAdminListUsers)
	admin.Delete("/users/:id", controllers.HandleAdminDeleteUser)
	admin.Get("/products", controllers.HandleAdminListProducts)
	admin.Put("/products/:id", controllers.HandleAdminUpdateProduct)
	admin.Delete("/products/:id", controllers.HandleAdminDeleteProduct)
	admin.Post("/coupons", controllers.HandleAdminCreateCoupon)
	admin.Get("/orders", controllers.HandleAdminListOrders)
	admin.Patch("/reviews/:id/approve", controllers.HandleAdminApproveReview)
	admin.Get("/sales-stats", controllers.HandleAdminSalesStats)
	admin.Get("/notifications/low-stock", controllers.HandleAdminLowStock)

	analytics := admin.Group("/analytics")
	analytics.Get("/overview", controllers.HandleAdminAnalyticsOverview)
	analytics.Get("/revenue", controllers.HandleAdminAnalyticsRevenue)
	analytics.Get("/top-products", controllers.HandleAdminAnalyticsTopProducts)
	analytics.Get("/species-trends", controllers.HandleAdminAnalyticsSpeciesTrends)
	analytics.Get("/subscription-churn", controllers.HandleAdminAnalyticsChurn)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
