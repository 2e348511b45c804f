package routes

import (
	cartController "marketplace-api/controllers/cart"
	"marketplace-api/middlewares"

	"github.com/gofiber/fiber/v2"
)

func CartRoutes(app *fiber.App) {
	app.Post("/add/item/:productId/", middlewares.AuthMiddleware, cartController.AddItem)
	app.Patch("/cart/update/:productId/", middlewares.AuthMiddleware, cartController.UpdateQuantity)
	app.Delete("/remove/item/:productId/", middlewares.AuthMiddleware, cartController.RemoveItem)
	app.Delete("/cart/delete/", middlewares.AuthMiddleware, cartController.ClearCart)
	app.Get("/cart/", middlewares.AuthMiddleware, cartController.GetCart)
}
