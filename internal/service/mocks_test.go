package service_test

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/grmlab/services-exchange/internal/cache"
	"github.com/grmlab/services-exchange/internal/domain"
	"github.com/grmlab/services-exchange/internal/repository"
)

// noCache is a disabled count cache: nil client degrades to direct DB counts.
func noCache() *cache.CountCache { return cache.NewCountCache(nil, 0) }

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func pkPtr(i int64) *int64    { return &i }

// mockUserRepo implements repository.UserRepository in memory.
type mockUserRepo struct {
	users    map[int64]domain.User
	nextID   int64
	created  []domain.User
	updated  []domain.User
	deleted  []int64
	listRows []repository.UserRow
	countVal int64
	failWith error
}

func newMockUserRepo(users ...domain.User) *mockUserRepo {
	m := &mockUserRepo{users: map[int64]domain.User{}, nextID: 100}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) List(ctx context.Context, q repository.UserListQuery) ([]repository.UserRow, error) {
	return m.listRows, m.failWith
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := u
	return &cp, nil
}

func (m *mockUserRepo) Count(ctx context.Context, filterBy string) (int64, error) {
	return m.countVal, m.failWith
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = *user
	m.created = append(m.created, *user)
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.users[user.ID] = *user
	m.updated = append(m.updated, *user)
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.users, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// mockOrderRepo implements repository.OrderRepository in memory.
type mockOrderRepo struct {
	orders   map[int64]domain.Order
	nextID   int64
	created  []domain.Order
	updated  []domain.Order
	deleted  []int64
	listRows []repository.OrderRow
	countVal int64
	failWith error
}

func newMockOrderRepo(orders ...domain.Order) *mockOrderRepo {
	m := &mockOrderRepo{orders: map[int64]domain.Order{}, nextID: 200}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *mockOrderRepo) List(ctx context.Context, q repository.OrderListQuery) ([]repository.OrderRow, error) {
	return m.listRows, m.failWith
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	o, ok := m.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := o
	return &cp, nil
}

func (m *mockOrderRepo) Count(ctx context.Context, filterBy string, userPK *int64) (int64, error) {
	return m.countVal, m.failWith
}

func (m *mockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	order.ID = m.nextID
	m.orders[order.ID] = *order
	m.created = append(m.created, *order)
	return nil
}

func (m *mockOrderRepo) Update(ctx context.Context, order *domain.Order) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.orders[order.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.orders[order.ID] = *order
	m.updated = append(m.updated, *order)
	return nil
}

func (m *mockOrderRepo) Delete(ctx context.Context, id int64) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.orders[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.orders, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// mockOfferRepo implements repository.OfferRepository in memory.
type mockOfferRepo struct {
	offers   map[int64]domain.Offer
	nextID   int64
	created  []domain.Offer
	updated  []domain.Offer
	deleted  []int64
	listRows []repository.OfferRow
	countVal int64
	failWith error
}

func newMockOfferRepo(offers ...domain.Offer) *mockOfferRepo {
	m := &mockOfferRepo{offers: map[int64]domain.Offer{}, nextID: 300}
	for _, f := range offers {
		m.offers[f.ID] = f
	}
	return m
}

func (m *mockOfferRepo) List(ctx context.Context, q repository.OfferListQuery) ([]repository.OfferRow, error) {
	return m.listRows, m.failWith
}

func (m *mockOfferRepo) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	f, ok := m.offers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := f
	return &cp, nil
}

func (m *mockOfferRepo) Count(ctx context.Context, filterBy string, userPK, orderPK *int64) (int64, error) {
	return m.countVal, m.failWith
}

func (m *mockOfferRepo) Create(ctx context.Context, offer *domain.Offer) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	offer.ID = m.nextID
	m.offers[offer.ID] = *offer
	m.created = append(m.created, *offer)
	return nil
}

func (m *mockOfferRepo) Update(ctx context.Context, offer *domain.Offer) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.offers[offer.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.offers[offer.ID] = *offer
	m.updated = append(m.updated, *offer)
	return nil
}

func (m *mockOfferRepo) Delete(ctx context.Context, id int64) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.offers[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.offers, id)
	m.deleted = append(m.deleted, id)
	return nil
}
