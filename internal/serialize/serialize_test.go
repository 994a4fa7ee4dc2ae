package serialize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grmlab/services-exchange/internal/domain"
	"github.com/grmlab/services-exchange/internal/serialize"
)

func TestDateRoundTrip(t *testing.T) {
	parsed, err := serialize.ParseDate("15.01.2030")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC), parsed)
	assert.Equal(t, "15.01.2030", serialize.FormatDate(parsed))
}

func TestParseDateRejectsOtherFormats(t *testing.T) {
	_, err := serialize.ParseDate("2030-01-15")
	assert.Error(t, err)

	_, err = serialize.ParseDate("")
	assert.Error(t, err)
}

func TestSerializeUser(t *testing.T) {
	assert.Nil(t, serialize.User(nil))

	u := &domain.User{
		ID:        7,
		FirstName: "Mary",
		LastName:  "Lindgren",
		Age:       30,
		Email:     "mary@example.com",
		Role:      domain.RoleCustomer,
		Phone:     "+79211234567",
	}
	assert.Equal(t, map[string]any{
		"id":         int64(7),
		"first_name": "Mary",
		"last_name":  "Lindgren",
		"age":        30,
		"email":      "mary@example.com",
		"role":       "customer",
		"phone":      "+79211234567",
	}, serialize.User(u))
}

func TestSerializeOrder(t *testing.T) {
	assert.Nil(t, serialize.Order(nil))

	o := &domain.Order{
		ID:          3,
		Name:        "Paint the garden fence",
		Description: "Paint the garden fence white before winter",
		StartDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Address:     "123456 Main St Apt",
		Price:       500,
		CustomerID:  1,
		ExecutorID:  2,
	}
	got := serialize.Order(o)
	assert.Equal(t, "01.03.2026", got["start_date"])
	assert.Equal(t, "01.04.2026", got["end_date"])
	assert.Equal(t, int64(3), got["id"])
	assert.Equal(t, 500, got["price"])
	assert.Len(t, got, 9)
}

func TestSerializeOffer(t *testing.T) {
	assert.Nil(t, serialize.Offer(nil))

	f := &domain.Offer{ID: 11, OrderID: 3, ExecutorID: 2}
	assert.Equal(t, map[string]any{
		"id":          int64(11),
		"order_id":    int64(3),
		"executor_id": int64(2),
	}, serialize.Offer(f))
}
