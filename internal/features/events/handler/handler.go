package handler

import (
	"errors"
	"net/http"

	"ticket-sales/internal/core/logger"
	"ticket-sales/internal/core/server"
	"ticket-sales/internal/core/web"
	"ticket-sales/internal/features/events/domain"
	"ticket-sales/internal/features/events/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// EventHandler handles HTTP requests for events.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// Routes returns the event routing table. Events are public.
func (h *EventHandler) Routes() []server.Route {
	return server.CRUD("/events/", false, h.List, h.Create, h.Get, h.Update, h.Delete)
}

// @Summary List events by start time
// @Tags events
// @Produce json
// @Success 200 {array} domain.Event
// @Router /events/ [get]
func (h *EventHandler) List(c *fiber.Ctx) error {
	events, err := h.service.List(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to list events", err)
	}
	return c.Status(http.StatusOK).JSON(events)
}

// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Param event body domain.EventInput true "Event"
// @Success 201 {object} domain.Event
// @Failure 400 {object} web.ErrorResponse
// @Router /events/ [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var req domain.EventInput
	if err := web.BindJSON(c, &req); err != nil {
		return err
	}

	event, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "Failed to create event", err)
	}
	return c.Status(http.StatusCreated).JSON(event)
}

// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} domain.Event
// @Failure 404 {object} web.ErrorResponse
// @Router /events/{id}/ [get]
func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	event, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "Failed to get event", err)
	}
	return c.Status(http.StatusOK).JSON(event)
}

// Update handles PUT (full replace) and PATCH (partial) on /events/:id/.
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param event body domain.EventInput true "Event"
// @Success 200 {object} domain.Event
// @Failure 400 {object} web.ErrorResponse
// @Failure 404 {object} web.ErrorResponse
// @Router /events/{id}/ [put]
func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	var event *domain.Event
	if c.Method() == fiber.MethodPatch {
		var patch domain.EventPatch
		if err := web.BindJSON(c, &patch); err != nil {
			return err
		}
		event, err = h.service.Update(c.UserContext(), id, patch)
	} else {
		var req domain.EventInput
		if err := web.BindJSON(c, &req); err != nil {
			return err
		}
		event, err = h.service.Replace(c.UserContext(), id, req)
	}
	if err != nil {
		return h.fail(c, "Failed to update event", err)
	}
	return c.Status(http.StatusOK).JSON(event)
}

// @Summary Delete an event
// @Tags events
// @Param id path int true "Event ID"
// @Success 204
// @Failure 404 {object} web.ErrorResponse
// @Failure 409 {object} web.ErrorResponse
// @Router /events/{id}/ [delete]
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, "Failed to delete event", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *EventHandler) fail(c *fiber.Ctx, msg string, err error) error {
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		return web.NewError(http.StatusNotFound, "event not found")
	case errors.Is(err, domain.ErrUnknownCategory):
		return web.FieldError("category", domain.ErrUnknownCategory.Error())
	case errors.Is(err, domain.ErrEventHasTickets):
		return web.NewError(http.StatusConflict, domain.ErrEventHasTickets.Error())
	default:
		logger.WithRay(web.RayID(c)).Error(msg, zap.Error(err))
		return web.ErrInternal
	}
}
