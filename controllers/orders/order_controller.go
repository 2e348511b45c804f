package orderController

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/middlewares"
	"marketplace-api/models"
	"marketplace-api/notifier"
	"marketplace-api/responses"
	"marketplace-api/services"
	"marketplace-api/stores"
)

var (
	cartStore        = stores.NewCartStore()
	productStore     = stores.NewProductStore()
	addressStore     = stores.NewAddressStore()
	orderStore       = stores.NewOrderStore()
	reservationStore = stores.NewReservationStore()
	userStore        = stores.NewUserStore()

	principals = services.NewPrincipals(userStore)
	assembler  = services.NewOrderAssembler(
		cartStore, productStore, addressStore, orderStore, reservationStore,
		notifier.NewEmailNotifier(userStore),
	)
	statusManager = services.NewOrderStatusManager(orderStore, productStore)
)

// Assembler exposes the checkout saga for background maintenance (the
// stale-reservation sweeper in main).
func Assembler() *services.OrderAssembler {
	return assembler
}

func CreateOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	userID, ok := middlewares.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	buyer, err := principals.AsBuyer(ctx, userID)
	if err != nil {
		return responses.Error(c, err)
	}

	result, err := assembler.CreateOrder(ctx, buyer)
	if err != nil {
		return responses.Error(c, err)
	}

	orders := make([]fiber.Map, 0, len(result.Orders))
	for _, o := range result.Orders {
		orders = append(orders, orderJSON(o))
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Orders created",
		Result: &fiber.Map{
			"orders":            orders,
			"grand_final_total": result.GrandFinalTotal,
		},
	})
}

func GetMyOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, ok := middlewares.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	buyer, err := principals.AsBuyer(ctx, userID)
	if err != nil {
		return responses.Error(c, err)
	}

	orders, err := orderStore.ListByUser(ctx, buyer.Id)
	if err != nil {
		return responses.Error(c, err)
	}

	return orderListResponse(c, orders)
}

func CancelOrder(c *fiber.Ctx) error {
	return buyerTransition(c, statusManager.CancelOrder, "Order cancelled successfully")
}

func ReturnOrder(c *fiber.Ctx) error {
	return buyerTransition(c, statusManager.ReturnOrder, "Order returned successfully")
}

func buyerTransition(
	c *fiber.Ctx,
	transition func(context.Context, primitive.ObjectID, *models.User) (*models.Order, error),
	message string,
) error {
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

	buyer, err := principals.AsBuyer(ctx, userID)
	if err != nil {
		return responses.Error(c, err)
	}

	order, err := transition(ctx, orderID, buyer)
	if err != nil {
		return responses.Error(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Result:  &fiber.Map{"order": orderJSON(*order)},
	})
}

func orderListResponse(c *fiber.Ctx, orders []models.Order) error {
	formatted := make([]fiber.Map, 0, len(orders))
	for _, o := range orders {
		formatted = append(formatted, orderJSON(o))
	}
	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Orders fetched successfully",
		Result:  &fiber.Map{"orders": formatted},
	})
}

// orderJSON renders an order with every identifier as a string.
func orderJSON(o models.Order) fiber.Map {
	items := make([]fiber.Map, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, fiber.Map{
			"item_id":     it.ItemID.Hex(),
			"quantity":    it.Quantity,
			"price":       it.Price,
			"final_price": it.FinalPrice,
			"title":       it.Title,
		})
	}

	out := fiber.Map{
		"id":          o.Id.Hex(),
		"user":        o.User.Hex(),
		"seller":      o.Seller.Hex(),
		"items":       items,
		"total":       o.Total,
		"final_total": o.FinalTotal,
		"status":      o.Status,
		"address": fiber.Map{
			"mobile_no": o.Address.MobileNo,
			"address":   o.Address.Address,
		},
		"created_at": o.CreatedAt,
	}
	if o.CancelledAt != nil {
		out["cancelled_at"] = o.CancelledAt
	}
	if o.ReturnedAt != nil {
		out["returned_at"] = o.ReturnedAt
	}
	return out
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(responses.APIResponse{
		Status:  fiber.StatusUnauthorized,
		Message: "User ID not found in token",
		Result:  nil,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(responses.APIResponse{
		Status:  fiber.StatusBadRequest,
		Message: message,
		Result:  nil,
	})
}
