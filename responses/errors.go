package responses

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"marketplace-api/services"
)

// StatusForError maps a business-rule failure to the HTTP status the client
// should see. Anything unrecognized is a storage or dependency failure.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrProductNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrUpdateConflict):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrAddressMissing),
		errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrSellerMissing),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrNoValidItems),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrStockConflict),
		errors.Is(err, services.ErrOrderHasNoItems),
		errors.Is(err, services.ErrOrderLocked),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrAddressExists):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// Error renders a service failure. Business failures carry their message to
// the client; unexpected ones, including a nil error, are logged and masked.
func Error(c *fiber.Ctx, err error) error {
	status := StatusForError(err)
	message := "internal server error"
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	} else {
		message = err.Error()
	}
	return c.Status(status).JSON(APIResponse{
		Status:  status,
		Message: message,
		Result:  nil,
	})
}
