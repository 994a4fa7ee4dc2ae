package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/grmlab/services-exchange/internal/api/dto"
	"github.com/grmlab/services-exchange/internal/service"
	"github.com/grmlab/services-exchange/internal/validation"
)

// OfferOperations is the slice of OfferService the handler needs.
type OfferOperations interface {
	List(ctx context.Context, limit, offset int, filterBy, orderBy string, userPK, orderPK *int64) ([]map[string]any, error)
	Get(ctx context.Context, pk int64) (map[string]any, error)
	Count(ctx context.Context, filterBy string, userPK, orderPK *int64) (map[string]any, error)
	Create(ctx context.Context, in service.OfferCreateInput) error
	Update(ctx context.Context, pk int64, in service.OfferUpdateInput) error
	Delete(ctx context.Context, pk int64) error
}

// OffersHandler manages offer endpoints.
type OffersHandler struct {
	service OfferOperations
}

// NewOffersHandler constructs handler.
func NewOffersHandler(offerService OfferOperations) *OffersHandler {
	return &OffersHandler{service: offerService}
}

// List GET /offers/.
func (h *OffersHandler) List(c *fiber.Ctx) error {
	items, err := h.service.List(c.Context(),
		c.QueryInt("limit", 0),
		c.QueryInt("offset", 0),
		c.Query("filter_by", "default"),
		c.Query("order_by", "default"),
		queryPK(c, "user_pk"),
		queryPK(c, "order_pk"),
	)
	if err != nil {
		return statusError(c, err.Error())
	}
	return c.JSON(items)
}

// Get GET /offers/:pk.
func (h *OffersHandler) Get(c *fiber.Ctx) error {
	pk, _ := paramPK(c)
	data, err := h.service.Get(c.Context(), pk)
	if err != nil {
		return statusError(c, err.Error())
	}
	return c.JSON(data)
}

// Count GET /offers/count.
func (h *OffersHandler) Count(c *fiber.Ctx) error {
	result, err := h.service.Count(c.Context(),
		c.Query("filter_by", "default"),
		queryPK(c, "user_pk"),
		queryPK(c, "order_pk"),
	)
	if err != nil {
		return statusError(c, err.Error())
	}
	return c.JSON(result)
}

// Create POST /offers/ (JSON).
func (h *OffersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return statusError(c, err.Error())
	}

	in := service.OfferCreateInput{
		OrderID:    req.OrderID,
		ExecutorID: req.ExecutorID,
	}
	if err := h.service.Create(c.Context(), in); err != nil {
		return statusError(c, err.Error())
	}
	return statusOK(c)
}

// Update PUT /offers/:pk (partial JSON).
func (h *OffersHandler) Update(c *fiber.Ctx) error {
	pk, ok := paramPK(c)
	if !ok {
		return statusError(c, validation.CheckPK(nil))
	}
	var req dto.UpdateOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return statusError(c, err.Error())
	}

	in := service.OfferUpdateInput{
		OrderID:    req.OrderID,
		ExecutorID: req.ExecutorID,
	}
	if err := h.service.Update(c.Context(), pk, in); err != nil {
		return statusError(c, err.Error())
	}
	return statusOK(c)
}

// Delete DELETE /offers/:pk.
func (h *OffersHandler) Delete(c *fiber.Ctx) error {
	pk, ok := paramPK(c)
	if !ok {
		return statusError(c, validation.CheckPK(nil))
	}
	if err := h.service.Delete(c.Context(), pk); err != nil {
		return statusError(c, err.Error())
	}
	return statusOK(c)
}
