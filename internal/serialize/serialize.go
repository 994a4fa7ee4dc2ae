// Package serialize is the sole translation boundary between store records
// and wire-facing response mappings. Dates render as DD.MM.YYYY on output and
// parse from the same format on input.
package serialize

import (
	"fmt"
	"time"

	"github.com/grmlab/services-exchange/internal/domain"
)

// DateLayout is the wire format for all date fields.
const DateLayout = "02.01.2006"

// FormatDate renders a date in wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a wire-format date string.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}

// User maps a user record to its scalar columns. A nil record serializes to
// nil, never an error.
func User(u *domain.User) map[string]any {
	if u == nil {
		return nil
	}
	return map[string]any{
		"id":         u.ID,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"age":        u.Age,
		"email":      u.Email,
		"role":       string(u.Role),
		"phone":      u.Phone,
	}
}

// Order maps an order record to its scalar columns.
func Order(o *domain.Order) map[string]any {
	if o == nil {
		return nil
	}
	return map[string]any{
		"id":          o.ID,
		"name":        o.Name,
		"description": o.Description,
		"start_date":  FormatDate(o.StartDate),
		"end_date":    FormatDate(o.EndDate),
		"address":     o.Address,
		"price":       o.Price,
		"customer_id": o.CustomerID,
		"executor_id": o.ExecutorID,
	}
}

// Offer maps an offer record to its scalar columns.
func Offer(f *domain.Offer) map[string]any {
	if f == nil {
		return nil
	}
	return map[string]any{
		"id":          f.ID,
		"order_id":    f.OrderID,
		"executor_id": f.ExecutorID,
	}
}
