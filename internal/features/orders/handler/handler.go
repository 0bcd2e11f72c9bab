package handler

import (
	"errors"
	"net/http"

	"ticket-sales/internal/core/logger"
	"ticket-sales/internal/core/server"
	"ticket-sales/internal/core/web"
	"ticket-sales/internal/features/orders/domain"
	"ticket-sales/internal/features/orders/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	// service is the owner-scoped order service.
	service ports.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(s ports.OrderService) *OrderHandler {
	return &OrderHandler{
		service: s,
	}
}

// Routes returns the order routing table. Every route needs a bearer token.
func (h *OrderHandler) Routes() []server.Route {
	return server.CRUD("/orders/", true, h.ListOrders, h.CreateOrder, h.GetOrder, h.UpdateOrder, h.DeleteOrder)
}

// ListOrders handles GET /orders/.
// @Summary List orders
// @Description Staff and superusers see every order; customers see their own.
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Order
// @Failure 401 {object} web.ErrorResponse
// @Router /orders/ [get]
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	p, err := web.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	orders, err := h.service.List(c.UserContext(), p)
	if err != nil {
		return h.fail(c, "Failed to list orders", err)
	}
	return c.Status(http.StatusOK).JSON(orders)
}

// CreateOrder handles POST /orders/.
// @Summary Place an order
// @Description The order always belongs to the authenticated customer.
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param order body domain.OrderInput true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} web.ErrorResponse
// @Router /orders/ [post]
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	p, err := web.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	var req domain.OrderInput
	if err := web.BindJSON(c, &req); err != nil {
		return err
	}

	order, err := h.service.Create(c.UserContext(), p, req)
	if err != nil {
		return h.fail(c, "Failed to create order", err)
	}
	return c.Status(http.StatusCreated).JSON(order)
}

// GetOrder handles GET /orders/:id/.
// @Summary Get Order by ID
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} web.ErrorResponse
// @Router /orders/{id}/ [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	p, err := web.CurrentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.service.Get(c.UserContext(), p, id)
	if err != nil {
		return h.fail(c, "Failed to fetch order", err)
	}
	return c.Status(http.StatusOK).JSON(order)
}

// UpdateOrder handles PUT and PATCH /orders/:id/.
// @Summary Update an order
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param order body domain.OrderInput true "Order"
// @Success 200 {object} domain.Order
// @Failure 400 {object} web.ErrorResponse
// @Failure 404 {object} web.ErrorResponse
// @Router /orders/{id}/ [put]
func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	p, err := web.CurrentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	var patch domain.OrderPatch
	if c.Method() == fiber.MethodPatch {
		if err := web.BindJSON(c, &patch); err != nil {
			return err
		}
	} else {
		var req domain.OrderInput
		if err := web.BindJSON(c, &req); err != nil {
			return err
		}
		patch = req.Patch()
	}

	order, err := h.service.Update(c.UserContext(), p, id, patch)
	if err != nil {
		return h.fail(c, "Failed to update order", err)
	}
	return c.Status(http.StatusOK).JSON(order)
}

// DeleteOrder handles DELETE /orders/:id/. The order's tickets go with it.
// @Summary Delete an order
// @Tags orders
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 204
// @Failure 404 {object} web.ErrorResponse
// @Router /orders/{id}/ [delete]
func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	p, err := web.CurrentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), p, id); err != nil {
		return h.fail(c, "Failed to delete order", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *OrderHandler) fail(c *fiber.Ctx, msg string, err error) error {
	if errors.Is(err, domain.ErrOrderNotFound) {
		return web.NewError(http.StatusNotFound, "Order not found")
	}
	logger.WithRay(web.RayID(c)).Error(msg, zap.Error(err))
	return web.ErrInternal
}
