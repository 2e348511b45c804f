package routes

import (
	orderController "marketplace-api/controllers/orders"
	"marketplace-api/middlewares"

	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(app *fiber.App) {
	app.Post("/create/order/", middlewares.AuthMiddleware, orderController.CreateOrder)
	app.Get("/my/orders/", middlewares.AuthMiddleware, orderController.GetMyOrders)
	app.Patch("/order/:id/cancel", middlewares.AuthMiddleware, orderController.CancelOrder)
	app.Patch("/order/:id/return", middlewares.AuthMiddleware, orderController.ReturnOrder)

	app.Get("/seller/orders/", middlewares.AuthMiddleware, orderController.GetSellerOrders)
	app.Patch("/seller/order/:id/shipped", middlewares.AuthMiddleware, orderController.MarkOrderShipped)
	app.Patch("/seller/order/:id/completed", middlewares.AuthMiddleware, orderController.MarkOrderCompleted)

	app.Get("/admin/orders/", middlewares.AuthMiddleware, orderController.GetAllOrders)
}
