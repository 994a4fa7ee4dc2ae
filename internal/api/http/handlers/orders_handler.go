package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/grmlab/services-exchange/internal/api/dto"
	"github.com/grmlab/services-exchange/internal/serialize"
	"github.com/grmlab/services-exchange/internal/service"
	"github.com/grmlab/services-exchange/internal/validation"
)

// OrderOperations is the slice of OrderService the handler needs.
type OrderOperations interface {
	List(ctx context.Context, limit, offset int, filterBy, orderBy string, userPK *int64) ([]map[string]any, error)
	Get(ctx context.Context, pk int64) (map[string]any, error)
	Count(ctx context.Context, filterBy string, userPK *int64) (map[string]any, error)
	Create(ctx context.Context, in service.OrderCreateInput) error
	Update(ctx context.Context, pk int64, in service.OrderUpdateInput) error
	Delete(ctx context.Context, pk int64) error
}

// OrdersHandler manages order endpoints.
type OrdersHandler struct {
	service OrderOperations
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService OrderOperations) *OrdersHandler {
	return &OrdersHandler{service: orderService}
}

// List GET /orders/.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	items, err := h.service.List(c.Context(),
		c.QueryInt("limit", 0),
		c.QueryInt("offset", 0),
		c.Query("filter_by", "default"),
		c.Query("order_by", "default"),
		queryPK(c, "user_pk"),
	)
	if err != nil {
		return statusError(c, err.Error())
	}
	return c.JSON(items)
}

// Get GET /orders/:pk.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	pk, _ := paramPK(c)
	data, err := h.service.Get(c.Context(), pk)
	if err != nil {
		return statusError(c, err.Error())
	}
	return c.JSON(data)
}

// Count GET /orders/count.
func (h *OrdersHandler) Count(c *fiber.Ctx) error {
	result, err := h.service.Count(c.Context(),
		c.Query("filter_by", "default"),
		queryPK(c, "user_pk"),
	)
	if err != nil {
		return statusError(c, err.Error())
	}
	return c.JSON(result)
}

// Create POST /orders/ (JSON).
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return statusError(c, err.Error())
	}

	// A malformed date stays nil here so the date validator reports its
	// wrong-type reason alongside the other field reasons.
	endDate, _ := parseWireDate(req.EndDate)
	in := service.OrderCreateInput{
		Description: req.Description,
		EndDate:     endDate,
		Address:     req.Address,
		Price:       req.Price,
		CustomerID:  req.CustomerID,
		ExecutorID:  req.ExecutorID,
	}
	if err := h.service.Create(c.Context(), in); err != nil {
		return statusError(c, err.Error())
	}
	return statusOK(c)
}

// Update PUT /orders/:pk (partial JSON).
func (h *OrdersHandler) Update(c *fiber.Ctx) error {
	pk, ok := paramPK(c)
	if !ok {
		return statusError(c, validation.CheckPK(nil))
	}
	var req dto.UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return statusError(c, err.Error())
	}

	// On a partial update nil means "leave the field alone", so an
	// unparseable date cannot collapse to nil: the whole payload is
	// rejected before any field is applied.
	endDate, ok := parseWireDate(req.EndDate)
	if !ok {
		return statusError(c, validation.CheckDate(nil, time.Time{}))
	}

	in := service.OrderUpdateInput{
		Description: req.Description,
		EndDate:     endDate,
		Address:     req.Address,
		Price:       req.Price,
		CustomerID:  req.CustomerID,
		ExecutorID:  req.ExecutorID,
	}
	if err := h.service.Update(c.Context(), pk, in); err != nil {
		return statusError(c, err.Error())
	}
	return statusOK(c)
}

// Delete DELETE /orders/:pk.
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	pk, ok := paramPK(c)
	if !ok {
		return statusError(c, validation.CheckPK(nil))
	}
	if err := h.service.Delete(c.Context(), pk); err != nil {
		return statusError(c, err.Error())
	}
	return statusOK(c)
}

// parseWireDate parses a DD.MM.YYYY payload date. The second result is false
// only when a string was supplied but does not parse, which lets callers tell
// "absent" apart from "present but unparseable".
func parseWireDate(raw *string) (*time.Time, bool) {
	if raw == nil {
		return nil, true
	}
	t, err := serialize.ParseDate(*raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
