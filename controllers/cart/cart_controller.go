package cartController

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/middlewares"
	"marketplace-api/models"
	"marketplace-api/responses"
	"marketplace-api/services"
	"marketplace-api/stores"
)

var (
	cartStore    = stores.NewCartStore()
	productStore = stores.NewProductStore()
	userStore    = stores.NewUserStore()
	principals   = services.NewPrincipals(userStore)

	validate = validator.New()
)

type CartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// AddItem puts a product in the buyer's cart (or replaces its quantity).
// The price snapshot is taken here, from the product's current price and
// final price, and never refreshed afterwards.
func AddItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	buyer, productID, ok := cartRequestContext(c, ctx)
	if !ok {
		return nil
	}

	var request CartItemRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&request); err != nil {
		return badRequest(c, "Quantity must be at least 1")
	}

	product, err := productStore.Get(ctx, productID)
	if err != nil {
		return responses.Error(c, err)
	}
	if product == nil {
		return responses.Error(c, services.ErrProductNotFound)
	}

	line := models.CartLine{
		User:       buyer.Id,
		ItemID:     productID,
		Quantity:   request.Quantity,
		Price:      product.Price,
		FinalPrice: product.FinalPrice,
	}
	if err := cartStore.Upsert(ctx, line); err != nil {
		return responses.Error(c, err)
	}

	return totalsResponse(c, ctx, buyer.Id, "Product added")
}

func UpdateQuantity(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	buyer, productID, ok := cartRequestContext(c, ctx)
	if !ok {
		return nil
	}

	var request CartItemRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&request); err != nil {
		return badRequest(c, "Quantity must be at least 1")
	}

	matched, err := cartStore.SetQuantity(ctx, buyer.Id, productID, request.Quantity)
	if err != nil {
		return responses.Error(c, err)
	}
	if !matched {
		return notFound(c, "Item not found in cart")
	}

	return totalsResponse(c, ctx, buyer.Id, "Cart updated successfully")
}

func RemoveItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	buyer, productID, ok := cartRequestContext(c, ctx)
	if !ok {
		return nil
	}

	removed, err := cartStore.Remove(ctx, buyer.Id, productID)
	if err != nil {
		return responses.Error(c, err)
	}
	if !removed {
		return notFound(c, "Item not found")
	}

	return totalsResponse(c, ctx, buyer.Id, "Item removed")
}

func ClearCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	buyer, ok := currentBuyer(c, ctx)
	if !ok {
		return nil
	}

	if err := cartStore.ClearByUser(ctx, buyer.Id); err != nil {
		return responses.Error(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Cart cleared",
		Result:  nil,
	})
}

func GetCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	buyer, ok := currentBuyer(c, ctx)
	if !ok {
		return nil
	}

	lines, err := cartStore.ListByUser(ctx, buyer.Id)
	if err != nil {
		return responses.Error(c, err)
	}

	items := make([]fiber.Map, 0, len(lines))
	for _, line := range lines {
		entry := fiber.Map{
			"id":          line.Id.Hex(),
			"item_id":     line.ItemID.Hex(),
			"quantity":    line.Quantity,
			"price":       line.Price,
			"final_price": line.FinalPrice,
		}
		// Live product data is display-only here; the money fields above
		// stay the add-time snapshots.
		product, err := productStore.Get(ctx, line.ItemID)
		if err == nil && product != nil {
			entry["product_name"] = product.Name
			entry["image_url"] = product.ImageURL
		}
		items = append(items, entry)
	}

	total, finalTotal, err := services.CartTotals(ctx, cartStore, buyer.Id)
	if err != nil {
		return responses.Error(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Cart fetched successfully",
		Result: &fiber.Map{
			"items":         items,
			"total":         total,
			"with_discount": finalTotal,
		},
	})
}

func totalsResponse(c *fiber.Ctx, ctx context.Context, user primitive.ObjectID, message string) error {
	total, finalTotal, err := services.CartTotals(ctx, cartStore, user)
	if err != nil {
		return responses.Error(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Result: &fiber.Map{
			"total":         total,
			"with_discount": finalTotal,
		},
	})
}

func cartRequestContext(c *fiber.Ctx, ctx context.Context) (*models.User, primitive.ObjectID, bool) {
	buyer, ok := currentBuyer(c, ctx)
	if !ok {
		return nil, primitive.NilObjectID, false
	}

	productID, err := primitive.ObjectIDFromHex(c.Params("productId"))
	if err != nil {
		_ = badRequest(c, "Invalid product ID format")
		return nil, primitive.NilObjectID, false
	}
	return buyer, productID, true
}

func currentBuyer(c *fiber.Ctx, ctx context.Context) (*models.User, bool) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		_ = c.Status(fiber.StatusUnauthorized).JSON(responses.APIResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User ID not found in token",
			Result:  nil,
		})
		return nil, false
	}

	buyer, err := principals.AsBuyer(ctx, userID)
	if err != nil {
		_ = responses.Error(c, err)
		return nil, false
	}
	return buyer, true
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
		Status:  fiber.StatusBadRequest,
		Message: message,
		Result:  nil,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
		Status:  fiber.StatusNotFound,
		Message: message,
		Result:  nil,
	})
}
