package domain

import (
	"strings"
	"time"
)

// Order is a job posted by a customer and assigned to an executor.
type Order struct {
	ID          int64
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Address     string
	Price       int
	CustomerID  int64
	ExecutorID  int64
}

// OrderName derives the short display name of an order: the first four words
// of its description.
func OrderName(description string) string {
	words := strings.Fields(description)
	if len(words) > 4 {
		words = words[:4]
	}
	return strings.Join(words, " ")
}
