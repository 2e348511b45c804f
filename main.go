package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"marketplace-api/configs"
	orderController "marketplace-api/controllers/orders"
	"marketplace-api/routes"
)

// Reservation intents older than this are assumed orphaned by a crashed
// checkout and their stock is given back.
const reservationTTL = 15 * time.Minute

func main() {
	_ = godotenv.Load()

	app := fiber.New()

	routes.CartRoutes(app)
	routes.AddressRoutes(app)
	routes.ProductsRoutes(app)
	routes.OrderRoutes(app)

	go sweepStaleReservations()

	log.Info().Str("port", configs.EnvPort()).Msg("server starting")
	if err := app.Listen(":" + configs.EnvPort()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func sweepStaleReservations() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := orderController.Assembler().ReleaseStaleReservations(ctx, reservationTTL); err != nil {
			log.Error().Err(err).Msg("stale reservation sweep failed")
		}
		cancel()
	}
}
