package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/models"
)

// OrderStatusManager enforces seller-authorized, monotonic status
// transitions and reconciles inventory when a buyer cancels or returns.
type OrderStatusManager struct {
	orders   OrderStore
	products ProductStore
}

func NewOrderStatusManager(orders OrderStore, products ProductStore) *OrderStatusManager {
	return &OrderStatusManager{orders: orders, products: products}
}

// UpdateStatus moves an order to newStatus on behalf of a seller. The
// seller must own every product referenced by the order, and orders in a
// buyer-initiated terminal state stay where they are.
func (m *OrderStatusManager) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, newStatus models.OrderStatus, seller *models.User) (*models.Order, error) {
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := m.orders.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order status: load order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if err := m.checkSellerOwnsOrder(ctx, order, seller); err != nil {
		return nil, err
	}

	if order.Status.LockedForSeller() {
		return nil, fmt.Errorf("%w: %s", ErrOrderLocked, order.Status)
	}

	modified, err := m.orders.UpdateStatus(ctx, orderID, order.Status, newStatus, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("order status: update: %w", err)
	}
	if modified == 0 {
		return nil, ErrUpdateConflict
	}

	updated, err := m.orders.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order status: reload order: %w", err)
	}
	if updated == nil {
		return nil, ErrOrderNotFound
	}
	return updated, nil
}

// CancelOrder cancels a pending order on behalf of its buyer and gives the
// ordered quantities back to stock.
func (m *OrderStatusManager) CancelOrder(ctx context.Context, orderID primitive.ObjectID, buyer *models.User) (*models.Order, error) {
	return m.buyerTransition(ctx, orderID, buyer, models.StatusPending, models.StatusCancelledByBuyer)
}

// ReturnOrder returns a completed order on behalf of its buyer and gives
// the ordered quantities back to stock.
func (m *OrderStatusManager) ReturnOrder(ctx context.Context, orderID primitive.ObjectID, buyer *models.User) (*models.Order, error) {
	return m.buyerTransition(ctx, orderID, buyer, models.StatusCompleted, models.StatusReturned)
}

func (m *OrderStatusManager) buyerTransition(ctx context.Context, orderID primitive.ObjectID, buyer *models.User, from, to models.OrderStatus) (*models.Order, error) {
	order, err := m.orders.GetForUser(ctx, orderID, buyer.Id)
	if err != nil {
		return nil, fmt.Errorf("order status: load order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if order.Status != from {
		return nil, fmt.Errorf("%w: allowed only from %q, order is %q", ErrInvalidTransition, from, order.Status)
	}

	// The conditional write decides the winner under concurrent requests;
	// only the winner restocks, so stock never goes up twice for one order.
	modified, err := m.orders.UpdateStatus(ctx, orderID, from, to, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("order status: update: %w", err)
	}
	if modified == 0 {
		return nil, ErrUpdateConflict
	}

	// Best-effort per item. A failed increment is an operational anomaly,
	// not a reason to keep the order alive.
	m.restock(ctx, order)

	updated, err := m.orders.GetForUser(ctx, orderID, buyer.Id)
	if err != nil {
		return nil, fmt.Errorf("order status: reload order: %w", err)
	}
	if updated == nil {
		return nil, ErrOrderNotFound
	}
	return updated, nil
}

func (m *OrderStatusManager) restock(ctx context.Context, order *models.Order) {
	for _, item := range order.Items {
		if item.Quantity <= 0 {
			continue
		}
		if err := m.products.Increment(ctx, item.ItemID, item.Quantity); err != nil {
			log.Error().Err(err).
				Str("order", order.Id.Hex()).
				Str("product", item.ItemID.Hex()).
				Int("quantity", item.Quantity).
				Msg("order status: restock failed")
		}
	}
}

func (m *OrderStatusManager) checkSellerOwnsOrder(ctx context.Context, order *models.Order, seller *models.User) error {
	if len(order.Items) == 0 {
		return ErrOrderHasNoItems
	}
	for _, item := range order.Items {
		product, err := m.products.Get(ctx, item.ItemID)
		if err != nil {
			return fmt.Errorf("order status: load product %s: %w", item.ItemID.Hex(), err)
		}
		if product == nil {
			return fmt.Errorf("%w: %s", ErrProductNotFound, item.ItemID.Hex())
		}
		if product.Seller != seller.Id {
			return ErrForbidden
		}
	}
	return nil
}
