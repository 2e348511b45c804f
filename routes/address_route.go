package routes

import (
	addressController "marketplace-api/controllers/addresses"
	"marketplace-api/middlewares"

	"github.com/gofiber/fiber/v2"
)

func AddressRoutes(app *fiber.App) {
	app.Post("/add/address/", middlewares.AuthMiddleware, addressController.AddAddress)
	app.Get("/show/address/", middlewares.AuthMiddleware, addressController.ShowAddress)
	app.Put("/update/address/", middlewares.AuthMiddleware, addressController.UpdateAddress)
}
