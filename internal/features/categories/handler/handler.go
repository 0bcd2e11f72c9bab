package handler

import (
	"errors"
	"net/http"

	"ticket-sales/internal/core/logger"
	"ticket-sales/internal/core/server"
	"ticket-sales/internal/core/web"
	"ticket-sales/internal/features/categories/domain"
	"ticket-sales/internal/features/categories/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CategoryHandler handles HTTP requests for event categories.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Routes returns the category routing table. Categories are public.
func (h *CategoryHandler) Routes() []server.Route {
	return server.CRUD("/categories/", false, h.List, h.Create, h.Get, h.Update, h.Delete)
}

// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} domain.Category
// @Router /categories/ [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.service.List(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to list categories", err)
	}
	return c.Status(http.StatusOK).JSON(categories)
}

// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body domain.CategoryInput true "Category"
// @Success 201 {object} domain.Category
// @Failure 400 {object} web.ErrorResponse
// @Router /categories/ [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req domain.CategoryInput
	if err := web.BindJSON(c, &req); err != nil {
		return err
	}

	category, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "Failed to create category", err)
	}
	return c.Status(http.StatusCreated).JSON(category)
}

// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} domain.Category
// @Failure 404 {object} web.ErrorResponse
// @Router /categories/{id}/ [get]
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	category, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "Failed to get category", err)
	}
	return c.Status(http.StatusOK).JSON(category)
}

// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param category body domain.CategoryInput true "Category"
// @Success 200 {object} domain.Category
// @Failure 400 {object} web.ErrorResponse
// @Failure 404 {object} web.ErrorResponse
// @Router /categories/{id}/ [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	var patch domain.CategoryPatch
	if c.Method() == fiber.MethodPatch {
		if err := web.BindJSON(c, &patch); err != nil {
			return err
		}
	} else {
		var req domain.CategoryInput
		if err := web.BindJSON(c, &req); err != nil {
			return err
		}
		patch = req.Patch()
	}

	category, err := h.service.Update(c.UserContext(), id, patch)
	if err != nil {
		return h.fail(c, "Failed to update category", err)
	}
	return c.Status(http.StatusOK).JSON(category)
}

// @Summary Delete a category
// @Tags categories
// @Param id path int true "Category ID"
// @Success 204
// @Failure 404 {object} web.ErrorResponse
// @Router /categories/{id}/ [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, "Failed to delete category", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *CategoryHandler) fail(c *fiber.Ctx, msg string, err error) error {
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound):
		return web.NewError(http.StatusNotFound, "category not found")
	case errors.Is(err, domain.ErrCategoryNameTaken):
		return web.FieldError("name", domain.ErrCategoryNameTaken.Error())
	default:
		logger.WithRay(web.RayID(c)).Error(msg, zap.Error(err))
		return web.ErrInternal
	}
}
