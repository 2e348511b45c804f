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

type statusFixture struct {
	buyer    *models.User
	seller   *models.User
	product  *models.Product
	order    *models.Order
	orders   *fakeOrderStore
	products *fakeProductStore
	manager  *services.OrderStatusManager
}

func newStatusFixture(status models.OrderStatus) *statusFixture {
	buyer := &models.User{Id: primitive.NewObjectID(), Role: models.RoleBuyer}
	seller := &models.User{Id: primitive.NewObjectID(), Role: models.RoleSeller}
	product := &models.Product{Id: primitive.NewObjectID(), Seller: seller.Id, Name: "Oak Shelf", Stock: 1}

	order := &models.Order{
		Id:     primitive.NewObjectID(),
		User:   buyer.Id,
		Seller: seller.Id,
		Items: []models.OrderItem{
			{ItemID: product.Id, Quantity: 3, Price: 40, FinalPrice: 36, Title: "Oak Shelf"},
		},
		Total:      120,
		FinalTotal: 108,
		Status:     status,
	}

	f := &statusFixture{
		buyer:    buyer,
		seller:   seller,
		product:  product,
		order:    order,
		orders:   newFakeOrderStore(order),
		products: newFakeProductStore(product),
	}
	f.manager = services.NewOrderStatusManager(f.orders, f.products)
	return f
}

func TestUpdateStatus_Success(t *testing.T) {
	f := newStatusFixture(models.StatusPending)

	updated, err := f.manager.UpdateStatus(context.Background(), f.order.Id, models.StatusShipped, f.seller)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, updated.Status)
	assert.NotNil(t, updated.UpdatedAt)

	require.Len(t, f.orders.updateRequests, 1)
	assert.Equal(t, models.StatusPending, f.orders.updateRequests[0].from)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	f := newStatusFixture(models.StatusPending)

	_, err := f.manager.UpdateStatus(context.Background(), f.order.Id, models.OrderStatus("dispatched"), f.seller)
	assert.ErrorIs(t, err, services.ErrInvalidStatus)
}

func TestUpdateStatus_OrderNotFound(t *testing.T) {
	f := newStatusFixture(models.StatusPending)

	_, err := f.manager.UpdateStatus(context.Background(), primitive.NewObjectID(), models.StatusShipped, f.seller)
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}

func TestUpdateStatus_OwnershipChecks(t *testing.T) {
	t.Run("foreign_seller", func(t *testing.T) {
		f := newStatusFixture(models.StatusPending)
		other := &models.User{Id: primitive.NewObjectID(), Role: models.RoleSeller}

		_, err := f.manager.UpdateStatus(context.Background(), f.order.Id, models.StatusShipped, other)
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("no_items", func(t *testing.T) {
		f := newStatusFixture(models.StatusPending)
		f.orders.orders[f.order.Id].Items = nil

		_, err := f.manager.UpdateStatus(context.Background(), f.order.Id, models.StatusShipped, f.seller)
		assert.ErrorIs(t, err, services.ErrOrderHasNoItems)
	})

	t.Run("product_vanished", func(t *testing.T) {
		f := newStatusFixture(models.StatusPending)
		delete(f.products.products, f.product.Id)

		_, err := f.manager.UpdateStatus(context.Background(), f.order.Id, models.StatusShipped, f.seller)
		assert.ErrorIs(t, err, services.ErrProductNotFound)
	})
}

func TestUpdateStatus_BuyerTerminalStatesLockTheOrder(t *testing.T) {
	for _, locked := range []models.OrderStatus{models.StatusCancelledByBuyer, models.StatusReturned} {
		t.Run(string(locked), func(t *testing.T) {
			f := newStatusFixture(locked)

			_, err := f.manager.UpdateStatus(context.Background(), f.order.Id, models.StatusShipped, f.seller)
			assert.ErrorIs(t, err, services.ErrOrderLocked)
		})
	}
}

func TestUpdateStatus_ConcurrentModification(t *testing.T) {
	f := newStatusFixture(models.StatusPending)
	f.orders.forceNoUpdate = true

	_, err := f.manager.UpdateStatus(context.Background(), f.order.Id, models.StatusShipped, f.seller)
	assert.ErrorIs(t, err, services.ErrUpdateConflict)
}

func TestUpdateStatus_ReloadMissReportsNotFound(t *testing.T) {
	f := newStatusFixture(models.StatusPending)
	f.orders.vanishAfterUpdate = true

	updated, err := f.manager.UpdateStatus(context.Background(), f.order.Id, models.StatusShipped, f.seller)
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
	assert.Nil(t, updated)
}

func TestCancelOrder_OnlyFromPending(t *testing.T) {
	for _, status := range []models.OrderStatus{models.StatusShipped, models.StatusCompleted, models.StatusCancelledByBuyer, models.StatusReturned} {
		t.Run(string(status), func(t *testing.T) {
			f := newStatusFixture(status)

			_, err := f.manager.CancelOrder(context.Background(), f.order.Id, f.buyer)
			assert.ErrorIs(t, err, services.ErrInvalidTransition)
			assert.Empty(t, f.products.increments, "no restock on a rejected cancel")
		})
	}
}

func TestCancelOrder_RestocksAndStamps(t *testing.T) {
	f := newStatusFixture(models.StatusPending)

	updated, err := f.manager.CancelOrder(context.Background(), f.order.Id, f.buyer)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelledByBuyer, updated.Status)
	assert.NotNil(t, updated.CancelledAt)

	assert.Equal(t, 4, f.products.stock(f.product.Id), "stock goes up by exactly the ordered quantity")
}

func TestCancelOrder_ConcurrentLoserDoesNotRestock(t *testing.T) {
	f := newStatusFixture(models.StatusPending)
	f.orders.forceNoUpdate = true

	_, err := f.manager.CancelOrder(context.Background(), f.order.Id, f.buyer)
	assert.ErrorIs(t, err, services.ErrUpdateConflict)
	assert.Empty(t, f.products.increments, "only the winning transition restocks")
	assert.Equal(t, 1, f.products.stock(f.product.Id))
}

func TestCancelOrder_ReloadMissReportsNotFound(t *testing.T) {
	f := newStatusFixture(models.StatusPending)
	f.orders.vanishAfterUpdate = true

	updated, err := f.manager.CancelOrder(context.Background(), f.order.Id, f.buyer)
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
	assert.Nil(t, updated)
}

func TestCancelOrder_NotFoundForOtherBuyer(t *testing.T) {
	f := newStatusFixture(models.StatusPending)
	stranger := &models.User{Id: primitive.NewObjectID(), Role: models.RoleBuyer}

	_, err := f.manager.CancelOrder(context.Background(), f.order.Id, stranger)
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}

func TestCancelOrder_RestockFailureDoesNotBlockCancellation(t *testing.T) {
	f := newStatusFixture(models.StatusPending)

	// Second product restocks fine even though the first one fails.
	other := &models.Product{Id: primitive.NewObjectID(), Seller: f.seller.Id, Name: "Pine Stool", Stock: 0}
	f.products.products[other.Id] = other
	f.orders.orders[f.order.Id].Items = append(f.orders.orders[f.order.Id].Items,
		models.OrderItem{ItemID: other.Id, Quantity: 2, Price: 10, FinalPrice: 10, Title: "Pine Stool"})
	f.products.incrementErr[f.product.Id] = assert.AnError

	updated, err := f.manager.CancelOrder(context.Background(), f.order.Id, f.buyer)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelledByBuyer, updated.Status)
	assert.Equal(t, 2, f.products.stock(other.Id))
}

func TestReturnOrder_OnlyFromCompleted(t *testing.T) {
	for _, status := range []models.OrderStatus{models.StatusPending, models.StatusShipped, models.StatusCancelledByBuyer, models.StatusReturned} {
		t.Run(string(status), func(t *testing.T) {
			f := newStatusFixture(status)

			_, err := f.manager.ReturnOrder(context.Background(), f.order.Id, f.buyer)
			assert.ErrorIs(t, err, services.ErrInvalidTransition)
		})
	}
}

func TestReturnOrder_RestocksAndStamps(t *testing.T) {
	f := newStatusFixture(models.StatusCompleted)

	updated, err := f.manager.ReturnOrder(context.Background(), f.order.Id, f.buyer)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReturned, updated.Status)
	assert.NotNil(t, updated.ReturnedAt)
	assert.Equal(t, 4, f.products.stock(f.product.Id))
}

func TestCancelThenSellerTransitionIsLocked(t *testing.T) {
	f := newStatusFixture(models.StatusPending)

	_, err := f.manager.CancelOrder(context.Background(), f.order.Id, f.buyer)
	require.NoError(t, err)

	_, err = f.manager.UpdateStatus(context.Background(), f.order.Id, models.StatusShipped, f.seller)
	assert.ErrorIs(t, err, services.ErrOrderLocked)
}
