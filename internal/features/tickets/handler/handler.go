package handler

import (
	"errors"
	"net/http"

	"ticket-sales/internal/core/logger"
	"ticket-sales/internal/core/server"
	"ticket-sales/internal/core/web"
	"ticket-sales/internal/features/tickets/domain"
	"ticket-sales/internal/features/tickets/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TicketHandler handles HTTP requests for tickets.
type TicketHandler struct {
	service ports.TicketService
}

func NewTicketHandler(service ports.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

// Routes returns the ticket routing table. Every route needs a bearer token.
func (h *TicketHandler) Routes() []server.Route {
	return server.CRUD("/tickets/", true, h.List, h.Create, h.Get, h.Update, h.Delete)
}

// @Summary List tickets on the caller's orders
// @Tags tickets
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Ticket
// @Router /tickets/ [get]
func (h *TicketHandler) List(c *fiber.Ctx) error {
	p, err := web.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	tickets, err := h.service.List(c.UserContext(), p)
	if err != nil {
		return h.fail(c, "Failed to list tickets", err)
	}
	return c.Status(http.StatusOK).JSON(tickets)
}

// @Summary Add a ticket to an order
// @Tags tickets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param ticket body domain.TicketInput true "Ticket"
// @Success 201 {object} domain.Ticket
// @Failure 400 {object} web.ErrorResponse
// @Failure 403 {object} web.ErrorResponse
// @Router /tickets/ [post]
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	p, err := web.CurrentPrincipal(c)
	if err != nil {
		return err
	}

	var req domain.TicketInput
	if err := web.BindJSON(c, &req); err != nil {
		return err
	}

	ticket, err := h.service.Create(c.UserContext(), p, req)
	if err != nil {
		return h.fail(c, "Failed to create ticket", err)
	}
	return c.Status(http.StatusCreated).JSON(ticket)
}

// @Summary Get a ticket
// @Tags tickets
// @Security BearerAuth
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} domain.Ticket
// @Failure 404 {object} web.ErrorResponse
// @Router /tickets/{id}/ [get]
func (h *TicketHandler) Get(c *fiber.Ctx) error {
	p, err := web.CurrentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	ticket, err := h.service.Get(c.UserContext(), p, id)
	if err != nil {
		return h.fail(c, "Failed to get ticket", err)
	}
	return c.Status(http.StatusOK).JSON(ticket)
}

// @Summary Update a ticket
// @Tags tickets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param ticket body domain.TicketInput true "Ticket"
// @Success 200 {object} domain.Ticket
// @Failure 400 {object} web.ErrorResponse
// @Failure 403 {object} web.ErrorResponse
// @Failure 404 {object} web.ErrorResponse
// @Router /tickets/{id}/ [put]
func (h *TicketHandler) Update(c *fiber.Ctx) error {
	p, err := web.CurrentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	var patch domain.TicketPatch
	if c.Method() == fiber.MethodPatch {
		if err := web.BindJSON(c, &patch); err != nil {
			return err
		}
	} else {
		var req domain.TicketInput
		if err := web.BindJSON(c, &req); err != nil {
			return err
		}
		patch = req.Patch()
	}

	ticket, err := h.service.Update(c.UserContext(), p, id, patch)
	if err != nil {
		return h.fail(c, "Failed to update ticket", err)
	}
	return c.Status(http.StatusOK).JSON(ticket)
}

// @Summary Delete a ticket
// @Tags tickets
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Success 204
// @Failure 404 {object} web.ErrorResponse
// @Router /tickets/{id}/ [delete]
func (h *TicketHandler) Delete(c *fiber.Ctx) error {
	p, err := web.CurrentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), p, id); err != nil {
		return h.fail(c, "Failed to delete ticket", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *TicketHandler) fail(c *fiber.Ctx, msg string, err error) error {
	switch {
	case errors.Is(err, domain.ErrTicketNotFound):
		return web.NewError(http.StatusNotFound, "ticket not found")
	case errors.Is(err, domain.ErrUnknownOrder):
		return web.FieldError("order", domain.ErrUnknownOrder.Error())
	case errors.Is(err, domain.ErrUnknownEvent):
		return web.FieldError("event", domain.ErrUnknownEvent.Error())
	case errors.Is(err, domain.ErrForeignOrder):
		return web.NewError(http.StatusForbidden, domain.ErrForeignOrder.Error())
	default:
		logger.WithRay(web.RayID(c)).Error(msg, zap.Error(err))
		return web.ErrInternal
	}
}
