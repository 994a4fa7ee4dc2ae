package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grmlab/services-exchange/internal/domain"
)

// OrderRow is an order record enriched with the joined participant names.
type OrderRow struct {
	Order        domain.Order
	CustomerName string
	ExecutorName string
}

// OrderRepository defines persistence access for orders.
type OrderRepository interface {
	List(ctx context.Context, q OrderListQuery) ([]OrderRow, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Count(ctx context.Context, filterBy string, userPK *int64) (int64, error)
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id int64) error
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) List(ctx context.Context, q OrderListQuery) ([]OrderRow, error) {
	base := `
        SELECT o.id, o.name, o.description, o.start_date, o.end_date, o.address, o.price,
               o.customer_id, o.executor_id,
               CONCAT(c.first_name, ' ', c.last_name) AS customer,
               CONCAT(e.first_name, ' ', e.last_name) AS executor
        FROM orders o
        LEFT JOIN users c ON c.id = o.customer_id
        LEFT JOIN users e ON e.id = o.executor_id`

	where := ""
	args := []any{}
	switch q.FilterBy {
	case "customer":
		args = append(args, *q.UserPK)
		where = fmt.Sprintf(" WHERE o.customer_id=$%d", len(args))
	case "executor":
		args = append(args, *q.UserPK)
		where = fmt.Sprintf(" WHERE o.executor_id=$%d", len(args))
	}

	orderBy := map[string]string{
		"default":   "o.start_date",
		"start":     "o.start_date DESC",
		"start_asc": "o.start_date",
		"end":       "o.end_date DESC",
		"end_asc":   "o.end_date",
		"price":     "o.price DESC",
		"price_asc": "o.price",
	}[q.OrderBy]

	query := fmt.Sprintf("%s%s ORDER BY %s LIMIT %d OFFSET %d",
		base, where, orderBy, q.Limit, q.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []OrderRow
	for rows.Next() {
		var row OrderRow
		if err := rows.Scan(
			&row.Order.ID,
			&row.Order.Name,
			&row.Order.Description,
			&row.Order.StartDate,
			&row.Order.EndDate,
			&row.Order.Address,
			&row.Order.Price,
			&row.Order.CustomerID,
			&row.Order.ExecutorID,
			&row.CustomerName,
			&row.ExecutorName,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	const query = `
        SELECT id, name, description, start_date, end_date, address, price, customer_id, executor_id
        FROM orders WHERE id=$1`

	var order domain.Order
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.Name,
		&order.Description,
		&order.StartDate,
		&order.EndDate,
		&order.Address,
		&order.Price,
		&order.CustomerID,
		&order.ExecutorID,
	); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Count(ctx context.Context, filterBy string, userPK *int64) (int64, error) {
	query := `SELECT COUNT(*) FROM orders`
	args := []any{}
	switch filterBy {
	case "customer":
		if userPK != nil {
			args = append(args, *userPK)
			query += " WHERE customer_id=$1"
		}
	case "executor":
		if userPK != nil {
			args = append(args, *userPK)
			query += " WHERE executor_id=$1"
		}
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (name, description, start_date, end_date, address, price, customer_id, executor_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := tx.QueryRow(ctx, query,
		order.Name,
		order.Description,
		order.StartDate,
		order.EndDate,
		order.Address,
		order.Price,
		order.CustomerID,
		order.ExecutorID,
	).Scan(&order.ID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	const query = `
        UPDATE orders SET name=$1, description=$2, start_date=$3, end_date=$4, address=$5,
            price=$6, customer_id=$7, executor_id=$8
        WHERE id=$9`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx, query,
		order.Name,
		order.Description,
		order.StartDate,
		order.EndDate,
		order.Address,
		order.Price,
		order.CustomerID,
		order.ExecutorID,
		order.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}
