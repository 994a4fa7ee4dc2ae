package domain

// Offer is a proposal by an executor to take over an order's execution.
// Approval is derived, never stored: an offer is approved once the order's
// executor matches the offer's executor.
type Offer struct {
	ID         int64
	OrderID    int64
	ExecutorID int64
}

// OfferApproved reports whether an offer counts as approved for the given
// order executor.
func OfferApproved(orderExecutorID, offerExecutorID int64) bool {
	return orderExecutorID == offerExecutorID
}
