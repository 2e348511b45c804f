package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/models"
	"marketplace-api/services"
)

func TestCartTotals(t *testing.T) {
	user := primitive.NewObjectID()
	carts := &fakeCartStore{lines: []models.CartLine{
		{User: user, ItemID: primitive.NewObjectID(), Quantity: 2, Price: 100, FinalPrice: 90},
		{User: user, ItemID: primitive.NewObjectID(), Quantity: 3, Price: 20, FinalPrice: 15},
		{User: primitive.NewObjectID(), ItemID: primitive.NewObjectID(), Quantity: 10, Price: 500, FinalPrice: 500},
	}}

	total, finalTotal, err := services.CartTotals(context.Background(), carts, user)
	require.NoError(t, err)
	assert.Equal(t, 260.0, total)
	assert.Equal(t, 225.0, finalTotal)
}

func TestCartTotals_EmptyCart(t *testing.T) {
	carts := &fakeCartStore{}

	total, finalTotal, err := services.CartTotals(context.Background(), carts, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Zero(t, finalTotal)
}

func TestCartTotals_StoreError(t *testing.T) {
	carts := &fakeCartStore{listErr: assert.AnError}

	_, _, err := services.CartTotals(context.Background(), carts, primitive.NewObjectID())
	assert.ErrorIs(t, err, assert.AnError)
}
