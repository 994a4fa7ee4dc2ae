package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grmlab/services-exchange/internal/domain"
)

// UserRow is a user record enriched with the aggregate counts the list
// endpoint reports.
type UserRow struct {
	User           domain.User
	OrdersOwner    int64
	OrdersExecutor int64
	OffersTotal    int64
}

// UserRepository defines persistence access for users.
type UserRepository interface {
	List(ctx context.Context, q UserListQuery) ([]UserRow, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Count(ctx context.Context, filterBy string) (int64, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) List(ctx context.Context, q UserListQuery) ([]UserRow, error) {
	base := `
        SELECT u.id, u.first_name, u.last_name, u.age, u.email, u.role, u.phone,
               COUNT(DISTINCT oo.id) AS orders_owner,
               COUNT(DISTINCT oe.id) AS orders_executor,
               COUNT(DISTINCT f.id)  AS offers_total
        FROM users u
        LEFT JOIN orders oo ON oo.customer_id = u.id
        LEFT JOIN orders oe ON oe.executor_id = u.id
        LEFT JOIN offers f  ON f.executor_id = u.id`

	where := ""
	args := []any{}
	switch q.FilterBy {
	case "customer":
		args = append(args, domain.RoleCustomer)
		where = fmt.Sprintf(" WHERE u.role=$%d", len(args))
	case "executor":
		args = append(args, domain.RoleExecutor)
		where = fmt.Sprintf(" WHERE u.role=$%d", len(args))
	}

	orderBy := map[string]string{
		"default":      "u.first_name, u.last_name",
		"age":          "u.age DESC",
		"age_asc":      "u.age",
		"owner":        "COUNT(DISTINCT oo.id) DESC",
		"owner_asc":    "COUNT(DISTINCT oo.id)",
		"executor":     "COUNT(DISTINCT oe.id) DESC",
		"executor_asc": "COUNT(DISTINCT oe.id)",
		"offers":       "COUNT(DISTINCT f.id) DESC",
		"offers_asc":   "COUNT(DISTINCT f.id)",
	}[q.OrderBy]

	query := fmt.Sprintf("%s%s GROUP BY u.id ORDER BY %s LIMIT %d OFFSET %d",
		base, where, orderBy, q.Limit, q.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []UserRow
	for rows.Next() {
		var row UserRow
		if err := rows.Scan(
			&row.User.ID,
			&row.User.FirstName,
			&row.User.LastName,
			&row.User.Age,
			&row.User.Email,
			&row.User.Role,
			&row.User.Phone,
			&row.OrdersOwner,
			&row.OrdersExecutor,
			&row.OffersTotal,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
        SELECT id, first_name, last_name, age, email, role, phone
        FROM users WHERE id=$1`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Age,
		&user.Email,
		&user.Role,
		&user.Phone,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Count(ctx context.Context, filterBy string) (int64, error) {
	query := `SELECT COUNT(*) FROM users`
	args := []any{}
	switch filterBy {
	case "customer":
		args = append(args, domain.RoleCustomer)
		query += " WHERE role=$1"
	case "executor":
		args = append(args, domain.RoleExecutor)
		query += " WHERE role=$1"
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (first_name, last_name, age, email, role, phone)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := tx.QueryRow(ctx, query,
		user.FirstName,
		user.LastName,
		user.Age,
		user.Email,
		user.Role,
		user.Phone,
	).Scan(&user.ID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET first_name=$1, last_name=$2, age=$3, email=$4, role=$5, phone=$6
        WHERE id=$7`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx, query,
		user.FirstName,
		user.LastName,
		user.Age,
		user.Email,
		user.Role,
		user.Phone,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}
