package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartTotals sums the snapshotted prices over a user's current cart lines:
// total over price, finalTotal over the discounted price. Pure read, no
// side effects.
func CartTotals(ctx context.Context, carts CartStore, user primitive.ObjectID) (total, finalTotal float64, err error) {
	lines, err := carts.ListByUser(ctx, user)
	if err != nil {
		return 0, 0, fmt.Errorf("cart totals: %w", err)
	}

	for _, line := range lines {
		qty := float64(line.Quantity)
		total += line.Price * qty
		finalTotal += line.FinalPrice * qty
	}
	return total, finalTotal, nil
}
