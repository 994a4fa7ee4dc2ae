package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grmlab/services-exchange/internal/domain"
)

// OfferRow is an offer record enriched with the executor name, the derived
// approval flag and the parent order's start date.
type OfferRow struct {
	Offer        domain.Offer
	ExecutorName string
	IsApproved   bool
	OrderStart   time.Time
}

// OfferRepository defines persistence access for offers.
type OfferRepository interface {
	List(ctx context.Context, q OfferListQuery) ([]OfferRow, error)
	GetByID(ctx context.Context, id int64) (*domain.Offer, error)
	Count(ctx context.Context, filterBy string, userPK, orderPK *int64) (int64, error)
	Create(ctx context.Context, offer *domain.Offer) error
	Update(ctx context.Context, offer *domain.Offer) error
	Delete(ctx context.Context, id int64) error
}

type offerRepository struct {
	pool *pgxpool.Pool
}

// NewOfferRepository returns a Postgres-backed implementation.
func NewOfferRepository(pool *pgxpool.Pool) OfferRepository {
	return &offerRepository{pool: pool}
}

// offerFilterClauses translates a normalized offer filter into WHERE clauses
// with positional placeholders. Shared by List and Count so the two can never
// disagree.
func offerFilterClauses(filterBy string, userPK, orderPK *int64) ([]string, []any) {
	clauses := []string{}
	args := []any{}

	switch filterBy {
	case "user":
		args = append(args, *userPK)
		clauses = append(clauses, fmt.Sprintf("f.executor_id=$%d", len(args)))
	case "order":
		args = append(args, *orderPK)
		clauses = append(clauses, fmt.Sprintf("f.order_id=$%d", len(args)))
	case "rejected":
		clauses = append(clauses, "o.executor_id <> f.executor_id")
	case "approved":
		clauses = append(clauses, "o.executor_id = f.executor_id")
	case "user_rejected":
		args = append(args, *userPK)
		clauses = append(clauses, "o.executor_id <> f.executor_id", fmt.Sprintf("f.executor_id=$%d", len(args)))
	case "user_approved":
		args = append(args, *userPK)
		clauses = append(clauses, "o.executor_id = f.executor_id", fmt.Sprintf("f.executor_id=$%d", len(args)))
	}
	return clauses, args
}

func (r *offerRepository) List(ctx context.Context, q OfferListQuery) ([]OfferRow, error) {
	base := `
        SELECT f.id, f.order_id, f.executor_id,
               CONCAT(u.first_name, ' ', u.last_name) AS user_full_name,
               COALESCE(o.executor_id = f.executor_id, FALSE) AS is_approved,
               o.start_date
        FROM offers f
        LEFT JOIN users u  ON u.id = f.executor_id
        LEFT JOIN orders o ON o.id = f.order_id`

	clauses, args := offerFilterClauses(q.FilterBy, q.UserPK, q.OrderPK)
	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	orderBy := map[string]string{
		"default":        "user_full_name",
		"user":           "user_full_name",
		"order":          "f.order_id",
		"order_date":     "o.start_date DESC",
		"order_date_asc": "o.start_date",
	}[q.OrderBy]

	query := fmt.Sprintf("%s%s ORDER BY %s LIMIT %d OFFSET %d",
		base, where, orderBy, q.Limit, q.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []OfferRow
	for rows.Next() {
		var row OfferRow
		if err := rows.Scan(
			&row.Offer.ID,
			&row.Offer.OrderID,
			&row.Offer.ExecutorID,
			&row.ExecutorName,
			&row.IsApproved,
			&row.OrderStart,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *offerRepository) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	const query = `SELECT id, order_id, executor_id FROM offers WHERE id=$1`

	var offer domain.Offer
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&offer.ID,
		&offer.OrderID,
		&offer.ExecutorID,
	); err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) Count(ctx context.Context, filterBy string, userPK, orderPK *int64) (int64, error) {
	base := `
        SELECT COUNT(*)
        FROM offers f
        LEFT JOIN orders o ON o.id = f.order_id`

	clauses, args := offerFilterClauses(filterBy, userPK, orderPK)
	query := base
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *offerRepository) Create(ctx context.Context, offer *domain.Offer) error {
	const query = `
        INSERT INTO offers (order_id, executor_id)
        VALUES ($1, $2)
        RETURNING id`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := tx.QueryRow(ctx, query, offer.OrderID, offer.ExecutorID).Scan(&offer.ID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *offerRepository) Update(ctx context.Context, offer *domain.Offer) error {
	const query = `UPDATE offers SET order_id=$1, executor_id=$2 WHERE id=$3`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx, query, offer.OrderID, offer.ExecutorID, offer.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}

func (r *offerRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx, `DELETE FROM offers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}
