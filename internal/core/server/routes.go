package server

import (
	"strconv"
	"time"

	"ticket-sales/internal/core/metrics"

	"github.com/gofiber/fiber/v2"
)

// Route is one row of the routing table a feature hands to Mount.
type Route struct {
	Method  string
	Path    string
	Handler fiber.Handler
	// Auth puts the route behind the bearer token middleware.
	Auth bool
}

// CRUD builds the usual collection and item routes for a resource.
// base must end with a slash, e.g. "/events/".
func CRUD(base string, auth bool, list, create, get, update, remove fiber.Handler) []Route {
	item := base + ":id/"
	return []Route{
		{Method: fiber.MethodGet, Path: base, Handler: list, Auth: auth},
		{Method: fiber.MethodPost, Path: base, Handler: create, Auth: auth},
		{Method: fiber.MethodGet, Path: item, Handler: get, Auth: auth},
		{Method: fiber.MethodPut, Path: item, Handler: update, Auth: auth},
		{Method: fiber.MethodPatch, Path: item, Handler: update, Auth: auth},
		{Method: fiber.MethodDelete, Path: item, Handler: remove, Auth: auth},
	}
}

// observeRequests records request metrics. Handler errors are rendered here so
// the recorded status matches the response.
func observeRequests(c *fiber.Ctx) error {
	start := time.Now()
	if err := c.Next(); err != nil {
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			return herr
		}
	}

	route := c.Route().Path
	status := strconv.Itoa(c.Response().StatusCode())
	metrics.HTTPRequestsTotal.WithLabelValues(c.Method(), route, status).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
	return nil
}
