package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"marketplace-api/models"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []models.OrderStatus{
		models.StatusPending,
		models.StatusShipped,
		models.StatusCompleted,
		models.StatusCancelledByBuyer,
		models.StatusReturned,
	} {
		assert.True(t, s.Valid(), s.String())
	}

	assert.False(t, models.OrderStatus("delivered").Valid())
	assert.False(t, models.OrderStatus("").Valid())
	assert.False(t, models.OrderStatus("Pending").Valid())
}

func TestOrderStatusLockedForSeller(t *testing.T) {
	assert.True(t, models.StatusCancelledByBuyer.LockedForSeller())
	assert.True(t, models.StatusReturned.LockedForSeller())

	assert.False(t, models.StatusPending.LockedForSeller())
	assert.False(t, models.StatusShipped.LockedForSeller())
	assert.False(t, models.StatusCompleted.LockedForSeller())
}
