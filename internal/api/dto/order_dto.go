package dto

// CreateOrderRequest is the JSON order creation payload. Dates travel as
// DD.MM.YYYY strings.
type CreateOrderRequest struct {
	Description *string `json:"description"`
	EndDate     *string `json:"end_date"`
	Address     *string `json:"address"`
	Price       *int    `json:"price"`
	CustomerID  *int64  `json:"customer_id"`
	ExecutorID  *int64  `json:"executor_id"`
}

// UpdateOrderRequest is the partial JSON update payload.
type UpdateOrderRequest struct {
	Description *string `json:"description"`
	EndDate     *string `json:"end_date"`
	Address     *string `json:"address"`
	Price       *int    `json:"price"`
	CustomerID  *int64  `json:"customer_id"`
	ExecutorID  *int64  `json:"executor_id"`
}
