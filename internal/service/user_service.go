package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/grmlab/services-exchange/internal/cache"
	"github.com/grmlab/services-exchange/internal/domain"
	"github.com/grmlab/services-exchange/internal/repository"
	"github.com/grmlab/services-exchange/internal/serialize"
	"github.com/grmlab/services-exchange/internal/validation"
)

// UserService coordinates user reads and validated writes.
type UserService struct {
	users repository.UserRepository
	cache *cache.CountCache
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	CountCache *cache.CountCache
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{users: deps.UserRepo, cache: deps.CountCache}
}

// UserCreateInput describes the user creation payload. Nil means the field
// was not provided.
type UserCreateInput struct {
	FirstName *string
	LastName  *string
	Age       *int
	Email     *string
	Role      *string
	Phone     *string
}

// UserUpdateInput describes a partial user update payload.
type UserUpdateInput struct {
	FirstName *string
	LastName  *string
	Age       *int
	Email     *string
	Role      *string
	Phone     *string
}

// List returns serialized users enriched with aggregate counts.
func (s *UserService) List(ctx context.Context, limit, offset int, filterBy, orderBy string) ([]map[string]any, error) {
	q := repository.NormalizeUserQuery(limit, offset, filterBy, orderBy)
	rows, err := s.users.List(ctx, q)
	if err != nil {
		return nil, err
	}

	items := make([]map[string]any, 0, len(rows))
	for i := range rows {
		item := serialize.User(&rows[i].User)
		item["orders_owner"] = rows[i].OrdersOwner
		item["orders_executor"] = rows[i].OrdersExecutor
		item["offers_total"] = rows[i].OffersTotal
		items = append(items, item)
	}
	return items, nil
}

// Get returns the serialized user, or nil when the pk is invalid or the row
// is missing. Missing rows are an explicit absence, never an error.
func (s *UserService) Get(ctx context.Context, pk int64) (map[string]any, error) {
	if pk < 1 {
		return nil, nil
	}
	user, err := s.users.GetByID(ctx, pk)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return serialize.User(user), nil
}

// Count returns the user count for a filter, served from cache when possible.
func (s *UserService) Count(ctx context.Context, filterBy string) (map[string]any, error) {
	filterBy = repository.NormalizeUserQuery(1, 0, filterBy, "").FilterBy

	key := "filter_by=" + filterBy
	if cached, ok := s.cache.Get(ctx, "users", key); ok {
		return cached, nil
	}

	count, err := s.users.Count(ctx, filterBy)
	if err != nil {
		return nil, err
	}
	result := map[string]any{"count": count}
	s.cache.Set(ctx, "users", key, result)
	return result, nil
}

// Create validates all fields, aggregates every failure reason and persists
// the user in one transaction.
func (s *UserService) Create(ctx context.Context, in UserCreateInput) error {
	if msg := validation.Collect(
		validation.CheckName(in.FirstName),
		validation.CheckName(in.LastName),
		validation.CheckAge(in.Age),
		validation.CheckEmail(in.Email),
		validation.CheckRole(in.Role),
		validation.CheckPhone(in.Phone),
	); msg != "" {
		return errors.New(msg)
	}

	user := &domain.User{
		FirstName: *in.FirstName,
		LastName:  *in.LastName,
		Age:       *in.Age,
		Email:     *in.Email,
		Role:      domain.Role(*in.Role),
		Phone:     *in.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, "users")
	return nil
}

// Update applies a partial update: only supplied fields are validated and
// merged into the stored row.
func (s *UserService) Update(ctx context.Context, pk int64, in UserUpdateInput) error {
	if msg := validation.CheckPK(&pk); msg != "" {
		return errors.New(msg)
	}

	user, err := s.users.GetByID(ctx, pk)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("User not found")
		}
		return err
	}

	if in.FirstName == nil && in.LastName == nil && in.Age == nil &&
		in.Email == nil && in.Role == nil && in.Phone == nil {
		return errors.New("Missing data")
	}

	reasons := []string{}
	if in.FirstName != nil {
		reasons = append(reasons, validation.CheckName(in.FirstName))
	}
	if in.LastName != nil {
		reasons = append(reasons, validation.CheckName(in.LastName))
	}
	if in.Age != nil {
		reasons = append(reasons, validation.CheckAge(in.Age))
	}
	if in.Email != nil {
		reasons = append(reasons, validation.CheckEmail(in.Email))
	}
	if in.Role != nil {
		reasons = append(reasons, validation.CheckRole(in.Role))
	}
	if in.Phone != nil {
		reasons = append(reasons, validation.CheckPhone(in.Phone))
	}
	if msg := validation.Collect(reasons...); msg != "" {
		return errors.New(msg)
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Age != nil {
		user.Age = *in.Age
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Role != nil {
		user.Role = domain.Role(*in.Role)
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, "users")
	return nil
}

// Delete removes a user. Rows still referenced by orders or offers are
// rejected by the store's RESTRICT constraints and surface as an error.
func (s *UserService) Delete(ctx context.Context, pk int64) error {
	if msg := validation.CheckPK(&pk); msg != "" {
		return errors.New(msg)
	}
	if _, err := s.users.GetByID(ctx, pk); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("User not found")
		}
		return err
	}
	if err := s.users.Delete(ctx, pk); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("User not found")
		}
		return err
	}
	s.cache.Invalidate(ctx, "users")
	return nil
}
