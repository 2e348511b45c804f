package productController

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/middlewares"
	"marketplace-api/models"
	"marketplace-api/responses"
	"marketplace-api/services"
	"marketplace-api/stores"
)

var (
	productStore = stores.NewProductStore()
	userStore    = stores.NewUserStore()
	principals   = services.NewPrincipals(userStore)

	validate = validator.New()
)

type AddProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Discount    float64 `json:"discount" validate:"gte=0,lte=100"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
}

func AddProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	seller, ok := currentSeller(c, ctx)
	if !ok {
		return nil
	}

	var request AddProductRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&request); err != nil {
		return badRequest(c, "Invalid product fields: "+err.Error())
	}

	product := models.Product{
		Seller:      seller.Id,
		Name:        request.Name,
		Price:       request.Price,
		Discount:    request.Discount,
		FinalPrice:  models.FinalPriceFor(request.Price, request.Discount),
		Stock:       request.Stock,
		Description: request.Description,
		Category:    request.Category,
		ImageURL:    request.ImageURL,
	}

	if _, err := productStore.Insert(ctx, &product); err != nil {
		return responses.Error(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Product added successfully",
		Result:  &fiber.Map{"product": product},
	})
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Discount    *float64 `json:"discount"`
	Stock       *int     `json:"stock"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"image_url"`
}

// UpdateProduct patches a product owned by the calling seller. Changing
// price or discount recomputes final_price; stock writes here replace the
// counter and must not be used to adjust it concurrently with checkouts.
func UpdateProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	seller, ok := currentSeller(c, ctx)
	if !ok {
		return nil
	}

	productID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid product ID format")
	}

	product, err := productStore.Get(ctx, productID)
	if err != nil {
		return responses.Error(c, err)
	}
	if product == nil {
		return responses.Error(c, services.ErrProductNotFound)
	}
	if product.Seller != seller.Id {
		return c.Status(fiber.StatusForbidden).JSON(responses.APIResponse{
			Status:  fiber.StatusForbidden,
			Message: "You are not the owner of this product",
			Result:  nil,
		})
	}

	var request UpdateProductRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	fields := bson.M{}
	if request.Name != nil {
		fields["name"] = *request.Name
	}
	if request.Description != nil {
		fields["description"] = *request.Description
	}
	if request.Category != nil {
		fields["category"] = *request.Category
	}
	if request.ImageURL != nil {
		fields["image_url"] = *request.ImageURL
	}
	if request.Stock != nil {
		if *request.Stock < 0 {
			return badRequest(c, "Stock can not be negative")
		}
		fields["stock"] = *request.Stock
	}

	price := product.Price
	discount := product.Discount
	repriced := false
	if request.Price != nil {
		if *request.Price <= 0 {
			return badRequest(c, "Price must be greater than zero")
		}
		price = *request.Price
		fields["price"] = price
		repriced = true
	}
	if request.Discount != nil {
		if *request.Discount < 0 || *request.Discount > 100 {
			return badRequest(c, "Discount must be between 0 and 100")
		}
		discount = *request.Discount
		fields["discount"] = discount
		repriced = true
	}
	if repriced {
		fields["final_price"] = models.FinalPriceFor(price, discount)
	}

	if len(fields) == 0 {
		return badRequest(c, "Nothing to update")
	}

	if err := productStore.Update(ctx, productID, fields); err != nil {
		return responses.Error(c, err)
	}

	updated, err := productStore.Get(ctx, productID)
	if err != nil {
		return responses.Error(c, err)
	}
	if updated == nil {
		return responses.Error(c, services.ErrProductNotFound)
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Product updated successfully",
		Result:  &fiber.Map{"product": updated},
	})
}

func GetSellerProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	seller, ok := currentSeller(c, ctx)
	if !ok {
		return nil
	}

	products, err := productStore.ListBySeller(ctx, seller.Id)
	if err != nil {
		return responses.Error(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Products fetched successfully",
		Result:  &fiber.Map{"products": products},
	})
}

func GetAllProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	products, err := productStore.ListAll(ctx)
	if err != nil {
		return responses.Error(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Products fetched successfully",
		Result:  &fiber.Map{"products": products},
	})
}

func GetProductDetails(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid product ID format")
	}

	product, err := productStore.Get(ctx, productID)
	if err != nil {
		return responses.Error(c, err)
	}
	if product == nil {
		return responses.Error(c, services.ErrProductNotFound)
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Product fetched successfully",
		Result:  &fiber.Map{"product": product},
	})
}

func currentSeller(c *fiber.Ctx, ctx context.Context) (*models.User, bool) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		_ = c.Status(fiber.StatusUnauthorized).JSON(responses.APIResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
			Result:  nil,
		})
		return nil, false
	}

	seller, err := principals.AsSeller(ctx, userID)
	if err != nil {
		_ = responses.Error(c, err)
		return nil, false
	}
	return seller, true
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
		Status:  fiber.StatusBadRequest,
		Message: message,
		Result:  nil,
	})
}
