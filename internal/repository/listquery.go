package repository

// Per-resource defaults applied when a caller supplies limit < 1.
const (
	DefaultUserLimit  = 5
	DefaultOrderLimit = 10
	DefaultOfferLimit = 10
)

// Filter and order enumerations. These slices are the single source of truth:
// the first entry of each is the fallback for unrecognized values.
var (
	UserFilters = []string{"default", "customer", "executor"}
	UserOrders  = []string{"default", "age", "age_asc", "owner", "owner_asc", "executor", "executor_asc", "offers", "offers_asc"}

	OrderFilters = []string{"default", "customer", "executor"}
	OrderOrders  = []string{"default", "start", "start_asc", "end", "end_asc", "price", "price_asc"}

	OfferFilters = []string{"default", "user", "order", "rejected", "approved", "user_rejected", "user_approved"}
	OfferOrders  = []string{"default", "user", "order", "order_date", "order_date_asc"}
)

// UserListQuery is a normalized user list specification.
type UserListQuery struct {
	Limit    int
	Offset   int
	FilterBy string
	OrderBy  string
}

// OrderListQuery is a normalized order list specification.
type OrderListQuery struct {
	Limit    int
	Offset   int
	FilterBy string
	OrderBy  string
	UserPK   *int64
}

// OfferListQuery is a normalized offer list specification.
type OfferListQuery struct {
	Limit    int
	Offset   int
	FilterBy string
	OrderBy  string
	UserPK   *int64
	OrderPK  *int64
}

// NormalizeUserQuery clamps pagination and resolves enum fallbacks once, so
// the SQL translation never sees an out-of-range value.
func NormalizeUserQuery(limit, offset int, filterBy, orderBy string) UserListQuery {
	return UserListQuery{
		Limit:    clampLimit(limit, DefaultUserLimit),
		Offset:   clampOffset(offset),
		FilterBy: pickEnum(filterBy, UserFilters),
		OrderBy:  pickEnum(orderBy, UserOrders),
	}
}

// NormalizeOrderQuery normalizes an order list specification. Filters that
// need a user pk fall back to the default filter when none was supplied.
func NormalizeOrderQuery(limit, offset int, filterBy, orderBy string, userPK *int64) OrderListQuery {
	filterBy = pickEnum(filterBy, OrderFilters)
	if (filterBy == "customer" || filterBy == "executor") && userPK == nil {
		filterBy = OrderFilters[0]
	}
	return OrderListQuery{
		Limit:    clampLimit(limit, DefaultOrderLimit),
		Offset:   clampOffset(offset),
		FilterBy: filterBy,
		OrderBy:  pickEnum(orderBy, OrderOrders),
		UserPK:   userPK,
	}
}

// NormalizeOfferQuery normalizes an offer list specification. Filters that
// need a user or order pk fall back to the default filter when the pk is
// missing.
func NormalizeOfferQuery(limit, offset int, filterBy, orderBy string, userPK, orderPK *int64) OfferListQuery {
	filterBy = pickEnum(filterBy, OfferFilters)
	switch filterBy {
	case "user", "user_rejected", "user_approved":
		if userPK == nil {
			filterBy = OfferFilters[0]
		}
	case "order":
		if orderPK == nil {
			filterBy = OfferFilters[0]
		}
	}
	return OfferListQuery{
		Limit:    clampLimit(limit, DefaultOfferLimit),
		Offset:   clampOffset(offset),
		FilterBy: filterBy,
		OrderBy:  pickEnum(orderBy, OfferOrders),
		UserPK:   userPK,
		OrderPK:  orderPK,
	}
}

func clampLimit(limit, fallback int) int {
	if limit < 1 {
		return fallback
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

func pickEnum(value string, allowed []string) string {
	for _, entry := range allowed {
		if value == entry {
			return value
		}
	}
	return allowed[0]
}
