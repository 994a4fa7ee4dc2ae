package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/grmlab/services-exchange/internal/api/dto"
	"github.com/grmlab/services-exchange/internal/service"
	"github.com/grmlab/services-exchange/internal/validation"
)

// UserOperations is the slice of UserService the handler needs.
type UserOperations interface {
	List(ctx context.Context, limit, offset int, filterBy, orderBy string) ([]map[string]any, error)
	Get(ctx context.Context, pk int64) (map[string]any, error)
	Count(ctx context.Context, filterBy string) (map[string]any, error)
	Create(ctx context.Context, in service.UserCreateInput) error
	Update(ctx context.Context, pk int64, in service.UserUpdateInput) error
	Delete(ctx context.Context, pk int64) error
}

// UsersHandler manages user endpoints.
type UsersHandler struct {
	service UserOperations
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService UserOperations) *UsersHandler {
	return &UsersHandler{service: userService}
}

// List GET /users/.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	items, err := h.service.List(c.Context(),
		c.QueryInt("limit", 0),
		c.QueryInt("offset", 0),
		c.Query("filter_by", "default"),
		c.Query("order_by", "default"),
	)
	if err != nil {
		return statusError(c, err.Error())
	}
	return c.JSON(items)
}

// Get GET /users/:pk.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	pk, _ := paramPK(c)
	data, err := h.service.Get(c.Context(), pk)
	if err != nil {
		return statusError(c, err.Error())
	}
	return c.JSON(data)
}

// Count GET /users/count.
func (h *UsersHandler) Count(c *fiber.Ctx) error {
	result, err := h.service.Count(c.Context(), c.Query("filter_by", "default"))
	if err != nil {
		return statusError(c, err.Error())
	}
	return c.JSON(result)
}

// Create POST /users/ (form-encoded).
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return statusError(c, err.Error())
	}

	in := service.UserCreateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       parseAge(req.Age),
		Email:     req.Email,
		Role:      req.Role,
		Phone:     req.Phone,
	}
	if err := h.service.Create(c.Context(), in); err != nil {
		return statusError(c, err.Error())
	}
	return statusOK(c)
}

// Update PUT /users/:pk (partial JSON).
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	pk, ok := paramPK(c)
	if !ok {
		return statusError(c, validation.CheckPK(nil))
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return statusError(c, err.Error())
	}

	in := service.UserUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
		Email:     req.Email,
		Role:      req.Role,
		Phone:     req.Phone,
	}
	if err := h.service.Update(c.Context(), pk, in); err != nil {
		return statusError(c, err.Error())
	}
	return statusOK(c)
}

// Delete DELETE /users/:pk.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	pk, ok := paramPK(c)
	if !ok {
		return statusError(c, validation.CheckPK(nil))
	}
	if err := h.service.Delete(c.Context(), pk); err != nil {
		return statusError(c, err.Error())
	}
	return statusOK(c)
}

// parseAge converts the form's text age. Non-integer text counts as absent so
// the validator reports the wrong-type reason.
func parseAge(raw *string) *int {
	if raw == nil {
		return nil
	}
	age, err := strconv.Atoi(*raw)
	if err != nil {
		return nil
	}
	return &age
}
