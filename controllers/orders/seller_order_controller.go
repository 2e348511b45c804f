package orderController

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/middlewares"
	"marketplace-api/models"
	"marketplace-api/responses"
)

func GetSellerOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, ok := middlewares.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	seller, err := principals.AsSeller(ctx, userID)
	if err != nil {
		return responses.Error(c, err)
	}

	orders, err := orderStore.ListBySeller(ctx, seller.Id)
	if err != nil {
		return responses.Error(c, err)
	}

	return orderListResponse(c, orders)
}

func MarkOrderShipped(c *fiber.Ctx) error {
	return sellerTransition(c, models.StatusShipped)
}

func MarkOrderCompleted(c *fiber.Ctx) error {
	return sellerTransition(c, models.StatusCompleted)
}

func sellerTransition(c *fiber.Ctx, newStatus models.OrderStatus) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, ok := middlewares.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	orderID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid order ID format")
	}

	seller, err := principals.AsSeller(ctx, userID)
	if err != nil {
		return responses.Error(c, err)
	}

	order, err := statusManager.UpdateStatus(ctx, orderID, newStatus, seller)
	if err != nil {
		return responses.Error(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Order status updated to " + newStatus.String(),
		Result:  &fiber.Map{"order": orderJSON(*order)},
	})
}

// GetAllOrders lists every order in the system. Admin only.
func GetAllOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, ok := middlewares.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	if _, err := principals.AsAdmin(ctx, userID); err != nil {
		return responses.Error(c, err)
	}

	orders, err := orderStore.ListAll(ctx)
	if err != nil {
		return responses.Error(c, err)
	}

	return orderListResponse(c, orders)
}
