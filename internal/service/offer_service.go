package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/grmlab/services-exchange/internal/cache"
	"github.com/grmlab/services-exchange/internal/domain"
	"github.com/grmlab/services-exchange/internal/repository"
	"github.com/grmlab/services-exchange/internal/serialize"
	"github.com/grmlab/services-exchange/internal/validation"
)

// OfferService coordinates offer reads and validated writes.
type OfferService struct {
	offers repository.OfferRepository
	orders repository.OrderRepository
	users  repository.UserRepository
	cache  *cache.CountCache
}

// OfferDependencies bundles collaborators for the offer service.
type OfferDependencies struct {
	OfferRepo  repository.OfferRepository
	OrderRepo  repository.OrderRepository
	UserRepo   repository.UserRepository
	CountCache *cache.CountCache
}

// NewOfferService constructs the service.
func NewOfferService(deps OfferDependencies) *OfferService {
	return &OfferService{
		offers: deps.OfferRepo,
		orders: deps.OrderRepo,
		users:  deps.UserRepo,
		cache:  deps.CountCache,
	}
}

// OfferCreateInput describes the offer creation payload.
type OfferCreateInput struct {
	OrderID    *int64
	ExecutorID *int64
}

// OfferUpdateInput describes a partial offer update payload.
type OfferUpdateInput struct {
	OrderID    *int64
	ExecutorID *int64
}

// List returns serialized offers enriched with the executor name, the
// derived approval flag and the parent order's start date.
func (s *OfferService) List(ctx context.Context, limit, offset int, filterBy, orderBy string, userPK, orderPK *int64) ([]map[string]any, error) {
	q := repository.NormalizeOfferQuery(limit, offset, filterBy, orderBy, userPK, orderPK)
	rows, err := s.offers.List(ctx, q)
	if err != nil {
		return nil, err
	}

	items := make([]map[string]any, 0, len(rows))
	for i := range rows {
		item := serialize.Offer(&rows[i].Offer)
		item["executor"] = rows[i].ExecutorName
		item["is_approved"] = rows[i].IsApproved
		item["start"] = serialize.FormatDate(rows[i].OrderStart)
		items = append(items, item)
	}
	return items, nil
}

// Get returns the serialized offer, or nil when the pk is invalid or the row
// is missing.
func (s *OfferService) Get(ctx context.Context, pk int64) (map[string]any, error) {
	if pk < 1 {
		return nil, nil
	}
	offer, err := s.offers.GetByID(ctx, pk)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return serialize.Offer(offer), nil
}

// Count returns the offer count for a filter, echoing the resolved
// parameters for client-side pagination math.
func (s *OfferService) Count(ctx context.Context, filterBy string, userPK, orderPK *int64) (map[string]any, error) {
	filterBy = repository.NormalizeOfferQuery(1, 0, filterBy, "", userPK, orderPK).FilterBy

	key := fmt.Sprintf("filter_by=%s&user_pk=%s&order_pk=%s", filterBy, pkKey(userPK), pkKey(orderPK))
	if cached, ok := s.cache.Get(ctx, "offers", key); ok {
		return cached, nil
	}

	count, err := s.offers.Count(ctx, filterBy, userPK, orderPK)
	if err != nil {
		return nil, err
	}
	result := map[string]any{
		"count":     count,
		"user_pk":   pkValue(userPK),
		"order_pk":  pkValue(orderPK),
		"filter_by": filterBy,
	}
	s.cache.Set(ctx, "offers", key, result)
	return result, nil
}

// Create validates both references, requires the executor role, rejects an
// offer from the order's current executor and persists in one transaction.
func (s *OfferService) Create(ctx context.Context, in OfferCreateInput) error {
	if msg := validation.Collect(
		validation.CheckPK(in.OrderID),
		validation.CheckPK(in.ExecutorID),
	); msg != "" {
		return errors.New(msg)
	}

	order, err := s.resolveOrder(ctx, *in.OrderID)
	if err != nil {
		return err
	}
	executor, err := s.resolveExecutor(ctx, *in.ExecutorID)
	if err != nil {
		return err
	}

	if domain.OfferApproved(order.ExecutorID, executor.ID) {
		return errors.New("Executor already in the order")
	}
	if executor.Role != domain.RoleExecutor {
		return errors.New("You have chosen not the executor")
	}

	offer := &domain.Offer{OrderID: order.ID, ExecutorID: executor.ID}
	if err := s.offers.Create(ctx, offer); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, "offers")
	return nil
}

// Update applies a partial update, re-checking the invariant against the
// effective post-update order/executor pair. The row is mutated in place and
// committed, never re-added.
func (s *OfferService) Update(ctx context.Context, pk int64, in OfferUpdateInput) error {
	if msg := validation.CheckPK(&pk); msg != "" {
		return errors.New(msg)
	}

	offer, err := s.offers.GetByID(ctx, pk)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("Offer not found")
		}
		return err
	}

	if in.OrderID == nil && in.ExecutorID == nil {
		return errors.New("Missing data")
	}

	reasons := []string{}
	if in.OrderID != nil {
		reasons = append(reasons, validation.CheckPK(in.OrderID))
	}
	if in.ExecutorID != nil {
		reasons = append(reasons, validation.CheckPK(in.ExecutorID))
	}
	if msg := validation.Collect(reasons...); msg != "" {
		return errors.New(msg)
	}

	// Effective pair: payload value, falling back to the stored one.
	orderID := offer.OrderID
	if in.OrderID != nil {
		orderID = *in.OrderID
	}
	executorID := offer.ExecutorID
	if in.ExecutorID != nil {
		executorID = *in.ExecutorID
	}

	order, err := s.resolveOrder(ctx, orderID)
	if err != nil {
		return err
	}
	executor, err := s.resolveExecutor(ctx, executorID)
	if err != nil {
		return err
	}

	if domain.OfferApproved(order.ExecutorID, executor.ID) {
		return errors.New("Executor already in the order")
	}
	if executor.Role != domain.RoleExecutor {
		return errors.New("You have chosen not the executor")
	}

	offer.OrderID = order.ID
	offer.ExecutorID = executor.ID

	if err := s.offers.Update(ctx, offer); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, "offers")
	return nil
}

// Delete removes an offer.
func (s *OfferService) Delete(ctx context.Context, pk int64) error {
	if msg := validation.CheckPK(&pk); msg != "" {
		return errors.New(msg)
	}
	if _, err := s.offers.GetByID(ctx, pk); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("Offer not found")
		}
		return err
	}
	if err := s.offers.Delete(ctx, pk); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("Offer not found")
		}
		return err
	}
	s.cache.Invalidate(ctx, "offers")
	return nil
}

func (s *OfferService) resolveOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("Order not found")
		}
		return nil, err
	}
	return order, nil
}

func (s *OfferService) resolveExecutor(ctx context.Context, id int64) (*domain.User, error) {
	executor, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("Executor not found")
		}
		return nil, err
	}
	return executor, nil
}
