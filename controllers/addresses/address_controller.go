package addressController

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"marketplace-api/middlewares"
	"marketplace-api/models"
	"marketplace-api/responses"
	"marketplace-api/services"
	"marketplace-api/stores"
)

var (
	addressStore = stores.NewAddressStore()
	userStore    = stores.NewUserStore()
	principals   = services.NewPrincipals(userStore)

	validate = validator.New()
)

type AddressRequest struct {
	MobileNo string `json:"mobile_no" validate:"required"`
	Address  string `json:"address" validate:"required"`
}

// AddAddress stores the buyer's delivery address. One address per user:
// a second insert is rejected.
func AddAddress(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	buyer, ok := currentBuyer(c, ctx)
	if !ok {
		return nil
	}

	var request AddressRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := validate.Struct(&request); err != nil {
		return badRequest(c, "Mobile number and address are required")
	}

	existing, err := addressStore.Get(ctx, buyer.Id)
	if err != nil {
		return responses.Error(c, err)
	}
	if existing != nil {
		return responses.Error(c, services.ErrAddressExists)
	}

	address := models.Address{
		User:     buyer.Id,
		MobileNo: request.MobileNo,
		Address:  request.Address,
	}
	if _, err := addressStore.Insert(ctx, &address); err != nil {
		return responses.Error(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Address added successfully",
		Result:  &fiber.Map{"address": addressJSON(address)},
	})
}

func ShowAddress(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	buyer, ok := currentBuyer(c, ctx)
	if !ok {
		return nil
	}

	address, err := addressStore.Get(ctx, buyer.Id)
	if err != nil {
		return responses.Error(c, err)
	}
	if address == nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
			Status:  fiber.StatusNotFound,
			Message: "Address not found",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Address fetched successfully",
		Result:  &fiber.Map{"address": addressJSON(*address)},
	})
}

type UpdateAddressRequest struct {
	MobileNo *string `json:"mobile_no"`
	Address  *string `json:"address"`
}

func UpdateAddress(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	buyer, ok := currentBuyer(c, ctx)
	if !ok {
		return nil
	}

	var request UpdateAddressRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Invalid request body")
	}

	fields := bson.M{}
	if request.MobileNo != nil {
		fields["mobile_no"] = *request.MobileNo
	}
	if request.Address != nil {
		fields["address"] = *request.Address
	}
	if len(fields) == 0 {
		return badRequest(c, "Nothing to update")
	}

	matched, err := addressStore.Update(ctx, buyer.Id, fields)
	if err != nil {
		return responses.Error(c, err)
	}
	if !matched {
		return c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
			Status:  fiber.StatusNotFound,
			Message: "Address not found",
			Result:  nil,
		})
	}

	updated, err := addressStore.Get(ctx, buyer.Id)
	if err != nil {
		return responses.Error(c, err)
	}
	if updated == nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.APIResponse{
			Status:  fiber.StatusNotFound,
			Message: "Address not found",
			Result:  nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.APIResponse{
		Status:  fiber.StatusOK,
		Message: "Address updated successfully",
		Result:  &fiber.Map{"address": addressJSON(*updated)},
	})
}

func addressJSON(a models.Address) fiber.Map {
	return fiber.Map{
		"id":        a.Id.Hex(),
		"mobile_no": a.MobileNo,
		"address":   a.Address,
	}
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
