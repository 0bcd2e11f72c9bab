package handler

import (
	"errors"
	"net/http"

	"ticket-sales/internal/core/logger"
	"ticket-sales/internal/core/server"
	"ticket-sales/internal/core/web"
	"ticket-sales/internal/features/customers/domain"
	"ticket-sales/internal/features/customers/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CustomerHandler handles HTTP requests for customer accounts.
type CustomerHandler struct {
	service ports.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// Routes returns the customer routing table. Every route needs a bearer token.
func (h *CustomerHandler) Routes() []server.Route {
	return server.CRUD("/customers/", true, h.List, h.Create, h.Get, h.Update, h.Delete)
}

// List handles GET /customers/.
// @Summary List customers visible to the caller
// @Tags customers
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Customer
// @Router /customers/ [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	p, err := web.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	customers, err := h.service.List(c.UserContext(), p)
	if err != nil {
		return h.fail(c, "Failed to list customers", err)
	}
	return c.Status(http.StatusOK).JSON(customers)
}

// Create handles POST /customers/.
// @Summary Create a customer
// @Tags customers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param customer body domain.CustomerInput true "Customer"
// @Success 201 {object} domain.Customer
// @Failure 400 {object} web.ErrorResponse
// @Failure 403 {object} web.ErrorResponse
// @Router /customers/ [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	p, err := web.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	var req domain.CustomerInput
	if err := web.BindJSON(c, &req); err != nil {
		return err
	}

	customer, err := h.service.Create(c.UserContext(), p, req)
	if err != nil {
		return h.fail(c, "Failed to create customer", err)
	}
	return c.Status(http.StatusCreated).JSON(customer)
}

// Get handles GET /customers/:id/.
// @Summary Get a customer
// @Tags customers
// @Security BearerAuth
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} web.ErrorResponse
// @Router /customers/{id}/ [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	p, err := web.CurrentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	customer, err := h.service.Get(c.UserContext(), p, id)
	if err != nil {
		return h.fail(c, "Failed to get customer", err)
	}
	return c.Status(http.StatusOK).JSON(customer)
}

// Update handles PUT and PATCH /customers/:id/.
// @Summary Update a customer
// @Tags customers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param customer body domain.CustomerInput true "Customer"
// @Success 200 {object} domain.Customer
// @Failure 400 {object} web.ErrorResponse
// @Failure 403 {object} web.ErrorResponse
// @Failure 404 {object} web.ErrorResponse
// @Router /customers/{id}/ [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	p, err := web.CurrentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	var patch domain.CustomerPatch
	if c.Method() == fiber.MethodPatch {
		if err := web.BindJSON(c, &patch); err != nil {
			return err
		}
	} else {
		var req domain.CustomerInput
		if err := web.BindJSON(c, &req); err != nil {
			return err
		}
		patch = req.Patch()
	}

	customer, err := h.service.Update(c.UserContext(), p, id, patch)
	if err != nil {
		return h.fail(c, "Failed to update customer", err)
	}
	return c.Status(http.StatusOK).JSON(customer)
}

// Delete handles DELETE /customers/:id/.
// @Summary Delete a customer
// @Tags customers
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 204
// @Failure 404 {object} web.ErrorResponse
// @Router /customers/{id}/ [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	p, err := web.CurrentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), p, id); err != nil {
		return h.fail(c, "Failed to delete customer", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *CustomerHandler) fail(c *fiber.Ctx, msg string, err error) error {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		return web.NewError(http.StatusNotFound, "customer not found")
	case errors.Is(err, domain.ErrEmailTaken):
		return web.FieldError("email", domain.ErrEmailTaken.Error())
	case errors.Is(err, domain.ErrPasswordRequired):
		return web.FieldError("password", "required")
	case errors.Is(err, domain.ErrPrivilegeEscalation):
		return web.NewError(http.StatusForbidden, domain.ErrPrivilegeEscalation.Error())
	default:
		logger.WithRay(web.RayID(c)).Error(msg, zap.Error(err))
		return web.ErrInternal
	}
}
