package dto

// CreateOfferRequest is the JSON offer creation payload.
type CreateOfferRequest struct {
	OrderID    *int64 `json:"order_id"`
	ExecutorID *int64 `json:"executor_id"`
}

// UpdateOfferRequest is the partial JSON update payload.
type UpdateOfferRequest struct {
	OrderID    *int64 `json:"order_id"`
	ExecutorID *int64 `json:"executor_id"`
}
