package routes

import (
	productController "marketplace-api/controllers/products"
	"marketplace-api/middlewares"

	"github.com/gofiber/fiber/v2"
)

func ProductsRoutes(app *fiber.App) {
	app.Post("/product/add/", middlewares.AuthMiddleware, productController.AddProduct)
	app.Put("/product/update/:id/", middlewares.AuthMiddleware, productController.UpdateProduct)
	app.Get("/products/", middlewares.AuthMiddleware, productController.GetSellerProducts)

	app.Get("/all/products/", productController.GetAllProducts)
	app.Get("/product/:id/", productController.GetProductDetails)
}
