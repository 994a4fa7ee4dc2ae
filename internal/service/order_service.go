package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/grmlab/services-exchange/internal/cache"
	"github.com/grmlab/services-exchange/internal/domain"
	"github.com/grmlab/services-exchange/internal/repository"
	"github.com/grmlab/services-exchange/internal/serialize"
	"github.com/grmlab/services-exchange/internal/validation"
)

// OrderService coordinates order reads and validated writes.
type OrderService struct {
	orders repository.OrderRepository
	users  repository.UserRepository
	cache  *cache.CountCache
	now    func() time.Time
}

// OrderDependencies bundles collaborators for the order service.
type OrderDependencies struct {
	OrderRepo  repository.OrderRepository
	UserRepo   repository.UserRepository
	CountCache *cache.CountCache
	Now        func() time.Time
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &OrderService{orders: deps.OrderRepo, users: deps.UserRepo, cache: deps.CountCache, now: now}
}

// OrderCreateInput describes the order creation payload. The end date is
// already parsed from its DD.MM.YYYY wire form; a malformed string arrives
// here as nil.
type OrderCreateInput struct {
	Description *string
	EndDate     *time.Time
	Address     *string
	Price       *int
	CustomerID  *int64
	ExecutorID  *int64
}

// OrderUpdateInput describes a partial order update payload.
type OrderUpdateInput struct {
	Description *string
	EndDate     *time.Time
	Address     *string
	Price       *int
	CustomerID  *int64
	ExecutorID  *int64
}

func (in OrderUpdateInput) empty() bool {
	return in.Description == nil && in.EndDate == nil && in.Address == nil &&
		in.Price == nil && in.CustomerID == nil && in.ExecutorID == nil
}

// List returns serialized orders enriched with participant names.
func (s *OrderService) List(ctx context.Context, limit, offset int, filterBy, orderBy string, userPK *int64) ([]map[string]any, error) {
	q := repository.NormalizeOrderQuery(limit, offset, filterBy, orderBy, userPK)
	rows, err := s.orders.List(ctx, q)
	if err != nil {
		return nil, err
	}

	items := make([]map[string]any, 0, len(rows))
	for i := range rows {
		item := serialize.Order(&rows[i].Order)
		item["customer"] = rows[i].CustomerName
		item["executor"] = rows[i].ExecutorName
		items = append(items, item)
	}
	return items, nil
}

// Get returns the serialized order, or nil when the pk is invalid or the row
// is missing.
func (s *OrderService) Get(ctx context.Context, pk int64) (map[string]any, error) {
	if pk < 1 {
		return nil, nil
	}
	order, err := s.orders.GetByID(ctx, pk)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return serialize.Order(order), nil
}

// Count returns the order count for a filter, echoing the resolved user pk.
func (s *OrderService) Count(ctx context.Context, filterBy string, userPK *int64) (map[string]any, error) {
	filterBy = repository.NormalizeOrderQuery(1, 0, filterBy, "", userPK).FilterBy

	key := fmt.Sprintf("filter_by=%s&user_pk=%s", filterBy, pkKey(userPK))
	if cached, ok := s.cache.Get(ctx, "orders", key); ok {
		return cached, nil
	}

	count, err := s.orders.Count(ctx, filterBy, userPK)
	if err != nil {
		return nil, err
	}
	result := map[string]any{"count": count, "pk": pkValue(userPK)}
	s.cache.Set(ctx, "orders", key, result)
	return result, nil
}

// Create validates the payload, resolves both participants, enforces the
// role and self-reference invariants, derives the display name and persists
// the order in one transaction. The start date is the creation day.
func (s *OrderService) Create(ctx context.Context, in OrderCreateInput) error {
	if msg := validation.Collect(
		validation.CheckDescription(in.Description),
		validation.CheckDate(in.EndDate, s.now()),
		validation.CheckAddress(in.Address),
		validation.CheckPrice(in.Price),
		validation.CheckPK(in.CustomerID),
		validation.CheckPK(in.ExecutorID),
	); msg != "" {
		return errors.New(msg)
	}

	customer, err := s.resolveUser(ctx, *in.CustomerID, "Customer")
	if err != nil {
		return err
	}
	executor, err := s.resolveUser(ctx, *in.ExecutorID, "Executor")
	if err != nil {
		return err
	}

	if customer.Role != domain.RoleCustomer {
		return errors.New("You have chosen not the customer")
	}
	if executor.Role != domain.RoleExecutor {
		return errors.New("You have chosen not the executor")
	}
	if customer.ID == executor.ID {
		return errors.New("The customer cannot be the executor")
	}

	order := &domain.Order{
		Name:        domain.OrderName(*in.Description),
		Description: *in.Description,
		StartDate:   s.now(),
		EndDate:     *in.EndDate,
		Address:     *in.Address,
		Price:       *in.Price,
		CustomerID:  customer.ID,
		ExecutorID:  executor.ID,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, "orders")
	return nil
}

// Update applies a partial update. The end date is validated against the
// order's own start date, and the cross-entity invariants are re-checked
// against the effective post-update participants.
func (s *OrderService) Update(ctx context.Context, pk int64, in OrderUpdateInput) error {
	if msg := validation.CheckPK(&pk); msg != "" {
		return errors.New(msg)
	}

	order, err := s.orders.GetByID(ctx, pk)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("Order not found")
		}
		return err
	}

	if in.empty() {
		return errors.New("Missing data")
	}

	reasons := []string{}
	if in.Description != nil {
		reasons = append(reasons, validation.CheckDescription(in.Description))
	}
	if in.EndDate != nil {
		reasons = append(reasons, validation.CheckDate(in.EndDate, order.StartDate))
	}
	if in.Address != nil {
		reasons = append(reasons, validation.CheckAddress(in.Address))
	}
	if in.Price != nil {
		reasons = append(reasons, validation.CheckPrice(in.Price))
	}
	if in.CustomerID != nil {
		reasons = append(reasons, validation.CheckPK(in.CustomerID))
	}
	if in.ExecutorID != nil {
		reasons = append(reasons, validation.CheckPK(in.ExecutorID))
	}
	if msg := validation.Collect(reasons...); msg != "" {
		return errors.New(msg)
	}

	// Effective participants: payload value, falling back to the stored one.
	customerID := order.CustomerID
	if in.CustomerID != nil {
		customerID = *in.CustomerID
	}
	executorID := order.ExecutorID
	if in.ExecutorID != nil {
		executorID = *in.ExecutorID
	}

	customer, err := s.resolveUser(ctx, customerID, "Customer")
	if err != nil {
		return err
	}
	executor, err := s.resolveUser(ctx, executorID, "Executor")
	if err != nil {
		return err
	}

	if customer.Role != domain.RoleCustomer {
		return errors.New("You have chosen not the customer")
	}
	if executor.Role != domain.RoleExecutor {
		return errors.New("You have chosen not the executor")
	}
	if customer.ID == executor.ID {
		return errors.New("The customer cannot be the executor")
	}

	if in.Description != nil {
		order.Description = *in.Description
		order.Name = domain.OrderName(*in.Description)
	}
	if in.EndDate != nil {
		order.EndDate = *in.EndDate
	}
	if in.Address != nil {
		order.Address = *in.Address
	}
	if in.Price != nil {
		order.Price = *in.Price
	}
	order.CustomerID = customerID
	order.ExecutorID = executorID

	if err := s.orders.Update(ctx, order); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, "orders")
	return nil
}

// Delete removes an order. Orders still referenced by offers are rejected by
// the store's RESTRICT constraints.
func (s *OrderService) Delete(ctx context.Context, pk int64) error {
	if msg := validation.CheckPK(&pk); msg != "" {
		return errors.New(msg)
	}
	if _, err := s.orders.GetByID(ctx, pk); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("Order not found")
		}
		return err
	}
	if err := s.orders.Delete(ctx, pk); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("Order not found")
		}
		return err
	}
	s.cache.Invalidate(ctx, "orders")
	return nil
}

func (s *OrderService) resolveUser(ctx context.Context, id int64, label string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New(label + " not found")
		}
		return nil, err
	}
	return user, nil
}

func pkKey(pk *int64) string {
	if pk == nil {
		return ""
	}
	return fmt.Sprintf("%d", *pk)
}

func pkValue(pk *int64) any {
	if pk == nil {
		return nil
	}
	return *pk
}
