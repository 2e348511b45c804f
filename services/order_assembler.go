package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/models"
)

// OrderAssembler turns a buyer's cart into one pending order per distinct
// seller. Stock reservation is the only step that is safe under concurrent
// checkouts; everything before it reads stale snapshots, so the reservation
// step must stay a conditional decrement and never a read-modify-write.
type OrderAssembler struct {
	carts        CartStore
	products     ProductStore
	addresses    AddressStore
	orders       OrderStore
	reservations ReservationStore
	notifier     Notifier
}

func NewOrderAssembler(carts CartStore, products ProductStore, addresses AddressStore, orders OrderStore, reservations ReservationStore, notifier Notifier) *OrderAssembler {
	return &OrderAssembler{
		carts:        carts,
		products:     products,
		addresses:    addresses,
		orders:       orders,
		reservations: reservations,
		notifier:     notifier,
	}
}

type CheckoutResult struct {
	Orders          []models.Order
	GrandFinalTotal float64
}

type sellerBucket struct {
	seller     primitive.ObjectID
	items      []models.OrderItem
	total      float64
	finalTotal float64
}

func (a *OrderAssembler) CreateOrder(ctx context.Context, buyer *models.User) (*CheckoutResult, error) {
	// 1) Address must exist and be complete.
	address, err := a.addresses.Get(ctx, buyer.Id)
	if err != nil {
		return nil, fmt.Errorf("order assembler: load address: %w", err)
	}
	if address == nil || address.Address == "" || address.MobileNo == "" {
		return nil, ErrAddressMissing
	}

	// 2) Cart lines.
	lines, err := a.carts.ListByUser(ctx, buyer.Id)
	if err != nil {
		return nil, fmt.Errorf("order assembler: load cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	// 3-4) Group cart lines into seller buckets. Money comes from the
	// cart-stored snapshots; title, seller and stock come from the live
	// product record.
	buckets := map[primitive.ObjectID]*sellerBucket{}
	var bucketOrder []primitive.ObjectID
	var reserve []models.ReservationItem

	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}

		product, err := a.products.Get(ctx, line.ItemID)
		if err != nil {
			return nil, fmt.Errorf("order assembler: load product %s: %w", line.ItemID.Hex(), err)
		}
		if product == nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.ItemID.Hex())
		}
		if product.Seller.IsZero() {
			return nil, fmt.Errorf("%w: %s", ErrSellerMissing, line.ItemID.Hex())
		}
		if product.Stock < line.Quantity {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
		}

		item := models.OrderItem{
			ItemID:     line.ItemID,
			Quantity:   line.Quantity,
			Price:      line.Price,
			FinalPrice: line.FinalPrice,
			Title:      product.Name,
		}

		bucket, ok := buckets[product.Seller]
		if !ok {
			bucket = &sellerBucket{seller: product.Seller}
			buckets[product.Seller] = bucket
			bucketOrder = append(bucketOrder, product.Seller)
		}
		bucket.items = append(bucket.items, item)
		bucket.total += item.Price * float64(item.Quantity)
		bucket.finalTotal += item.FinalPrice * float64(item.Quantity)

		reserve = append(reserve, models.ReservationItem{ItemID: line.ItemID, Quantity: line.Quantity})
	}

	// 5) Amount checks over the whole batch.
	if len(buckets) == 0 {
		return nil, ErrNoValidItems
	}
	grandFinalTotal := 0.0
	for _, b := range buckets {
		grandFinalTotal += b.finalTotal
	}
	if grandFinalTotal <= 0 {
		return nil, ErrInvalidAmount
	}

	// 6) Reserve stock under a write-ahead intent so a crash between the
	// decrements and the order inserts can be repaired by the sweeper.
	intent := &models.Reservation{
		Id:        uuid.NewString(),
		User:      buyer.Id,
		Items:     reserve,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.reservations.Insert(ctx, intent); err != nil {
		return nil, fmt.Errorf("order assembler: record reservation intent: %w", err)
	}

	var reserved []models.ReservationItem
	for _, r := range reserve {
		ok, err := a.products.ConditionalDecrement(ctx, r.ItemID, r.Quantity)
		if err == nil && !ok {
			err = fmt.Errorf("%w: product %s", ErrStockConflict, r.ItemID.Hex())
		}
		if err != nil {
			failed := a.compensate(ctx, reserved)
			a.settleIntent(ctx, intent.Id, reserve, failed)
			return nil, err
		}
		reserved = append(reserved, r)
	}

	// 7) One pending order per seller bucket.
	now := time.Now().UTC()
	snapshot := models.AddressSnapshot{MobileNo: address.MobileNo, Address: address.Address}

	var created []models.Order
	for _, seller := range bucketOrder {
		bucket := buckets[seller]
		order := models.Order{
			User:       buyer.Id,
			Seller:     bucket.seller,
			Items:      bucket.items,
			Total:      bucket.total,
			FinalTotal: bucket.finalTotal,
			Address:    snapshot,
			Status:     models.StatusPending,
			CreatedAt:  now,
		}

		id, err := a.orders.Insert(ctx, &order)
		if err != nil {
			// Orders already persisted stay committed. Stock held for the
			// remaining buckets is given back right away; whatever we fail
			// to give back stays on the intent for the sweeper.
			rest := itemsAfter(reserved, created)
			failed := a.compensate(ctx, rest)
			a.settleIntent(ctx, intent.Id, rest, failed)
			return nil, fmt.Errorf("order assembler: persist order for seller %s: %w", seller.Hex(), err)
		}
		order.Id = id
		created = append(created, order)

		itemIDs := make([]primitive.ObjectID, 0, len(bucket.items))
		for _, it := range bucket.items {
			itemIDs = append(itemIDs, it.ItemID)
		}
		if err := a.reservations.RemoveItems(ctx, intent.Id, itemIDs); err != nil {
			log.Warn().Err(err).Str("reservation", intent.Id).Msg("order assembler: failed to shrink reservation intent")
		}
	}

	// 8) Clear the cart. The orders are committed at this point, so a
	// failure here only leaves stale cart lines behind.
	if err := a.carts.ClearByUser(ctx, buyer.Id); err != nil {
		log.Error().Err(err).Str("user", buyer.Id.Hex()).Msg("order assembler: failed to clear cart after checkout")
	}

	a.dropIntent(ctx, intent.Id)

	// 9) Notify buyer and sellers. Never fails the checkout.
	if err := a.notifier.SendOrderEmails(ctx, buyer, created, grandFinalTotal); err != nil {
		log.Error().Err(err).Str("user", buyer.Id.Hex()).Msg("order assembler: order emails failed")
	}

	return &CheckoutResult{Orders: created, GrandFinalTotal: grandFinalTotal}, nil
}

// compensate gives back stock for every decrement that already succeeded,
// in reverse order, and returns the items it could not give back. A failed
// increment is logged and the rest still run.
func (a *OrderAssembler) compensate(ctx context.Context, reserved []models.ReservationItem) []models.ReservationItem {
	var failed []models.ReservationItem
	for i := len(reserved) - 1; i >= 0; i-- {
		r := reserved[i]
		if err := a.products.Increment(ctx, r.ItemID, r.Quantity); err != nil {
			log.Error().Err(err).
				Str("product", r.ItemID.Hex()).
				Int("quantity", r.Quantity).
				Msg("order assembler: stock compensation failed")
			failed = append(failed, r)
		}
	}
	return failed
}

func (a *OrderAssembler) dropIntent(ctx context.Context, id string) {
	if err := a.reservations.Delete(ctx, id); err != nil {
		log.Warn().Err(err).Str("reservation", id).Msg("order assembler: failed to delete reservation intent")
	}
}

// settleIntent closes out an intent after a rolled-back checkout. Items the
// compensation could not give back stay on the intent so the sweeper retries
// them; everything else, including items never decremented, is removed. The
// intent itself is deleted only once nothing is left on it.
func (a *OrderAssembler) settleIntent(ctx context.Context, id string, held, failed []models.ReservationItem) {
	if len(failed) == 0 {
		a.dropIntent(ctx, id)
		return
	}

	keep := map[primitive.ObjectID]bool{}
	for _, f := range failed {
		keep[f.ItemID] = true
	}
	var done []primitive.ObjectID
	for _, h := range held {
		if !keep[h.ItemID] {
			done = append(done, h.ItemID)
		}
	}
	if len(done) > 0 {
		if err := a.reservations.RemoveItems(ctx, id, done); err != nil {
			log.Warn().Err(err).Str("reservation", id).Msg("order assembler: failed to shrink reservation intent")
		}
	}
	log.Warn().Str("reservation", id).Int("items", len(failed)).
		Msg("order assembler: compensation incomplete, intent left for sweeper")
}

// itemsAfter returns the reserved items not covered by an already-persisted
// order.
func itemsAfter(reserved []models.ReservationItem, created []models.Order) []models.ReservationItem {
	persisted := map[primitive.ObjectID]bool{}
	for _, o := range created {
		for _, it := range o.Items {
			persisted[it.ItemID] = true
		}
	}
	var rest []models.ReservationItem
	for _, r := range reserved {
		if !persisted[r.ItemID] {
			rest = append(rest, r)
		}
	}
	return rest
}

// ReleaseStaleReservations restocks and deletes intents older than the
// given age. These are leftovers of checkouts that died between reserving
// stock and persisting orders.
func (a *OrderAssembler) ReleaseStaleReservations(ctx context.Context, olderThan time.Duration) error {
	cutoff := time.Now().UTC().Add(-olderThan)
	stale, err := a.reservations.ListOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("order assembler: list stale reservations: %w", err)
	}

	// Oldest first, so repeated partial sweeps still make progress.
	sort.Slice(stale, func(i, j int) bool { return stale[i].CreatedAt.Before(stale[j].CreatedAt) })

	for _, r := range stale {
		failed := a.compensate(ctx, r.Items)
		a.settleIntent(ctx, r.Id, r.Items, failed)
		if len(failed) == 0 {
			log.Info().Str("reservation", r.Id).Str("user", r.User.Hex()).Int("items", len(r.Items)).
				Msg("order assembler: released stale reservation")
		}
	}
	return nil
}
