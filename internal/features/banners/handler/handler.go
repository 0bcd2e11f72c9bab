package handler

import (
	"errors"
	"net/http"

	"ticket-sales/internal/core/server"
	"ticket-sales/internal/core/web"
	"ticket-sales/internal/features/banners/domain"
	"ticket-sales/internal/features/banners/ports"

	"github.com/gofiber/fiber/v2"
)

// BannerHandler handles HTTP requests for banners.
type BannerHandler struct {
	service ports.BannerService
}

// NewBannerHandler creates a new BannerHandler.
func NewBannerHandler(service ports.BannerService) *BannerHandler {
	return &BannerHandler{
		service: service,
	}
}

// StatusResponse is returned by the move actions.
type StatusResponse struct {
	Status string `json:"status"`
}

// Routes returns the banner routing table. Banners are public.
func (h *BannerHandler) Routes() []server.Route {
	return append(
		server.CRUD("/banners/", false, h.ListBanners, h.CreateBanner, h.GetBanner, h.UpdateBanner, h.DeleteBanner),
		server.Route{Method: fiber.MethodPost, Path: "/banners/:id/move_up/", Handler: h.MoveUp},
		server.Route{Method: fiber.MethodPost, Path: "/banners/:id/move_down/", Handler: h.MoveDown},
	)
}

// ListBanners handles GET /banners/.
// @Summary List banners by rank
// @Tags banners
// @Produce json
// @Success 200 {array} domain.Banner
// @Failure 500 {object} web.ErrorResponse
// @Router /banners/ [get]
func (h *BannerHandler) ListBanners(c *fiber.Ctx) error {
	banners, err := h.service.List(c.UserContext())
	if err != nil {
		return h.fail(err)
	}
	return c.Status(http.StatusOK).JSON(banners)
}

// CreateBanner handles POST /banners/.
// @Summary Append a banner at the last rank
// @Tags banners
// @Accept json
// @Produce json
// @Param banner body domain.BannerInput true "Banner"
// @Success 201 {object} domain.Banner
// @Failure 400 {object} web.ErrorResponse
// @Failure 503 {object} web.ErrorResponse
// @Router /banners/ [post]
func (h *BannerHandler) CreateBanner(c *fiber.Ctx) error {
	var req domain.BannerInput
	if err := web.BindJSON(c, &req); err != nil {
		return err
	}

	banner, err := h.service.Append(c.UserContext(), req)
	if err != nil {
		return h.fail(err)
	}
	return c.Status(http.StatusCreated).JSON(banner)
}

// GetBanner handles GET /banners/:id/.
// @Summary Get a banner
// @Tags banners
// @Produce json
// @Param id path int true "Banner ID"
// @Success 200 {object} domain.Banner
// @Failure 404 {object} web.ErrorResponse
// @Router /banners/{id}/ [get]
func (h *BannerHandler) GetBanner(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	banner, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(err)
	}
	return c.Status(http.StatusOK).JSON(banner)
}

// UpdateBanner handles PUT and PATCH /banners/:id/. The rank cannot be changed here.
// @Summary Update a banner's content
// @Tags banners
// @Accept json
// @Produce json
// @Param id path int true "Banner ID"
// @Param banner body domain.BannerInput true "Banner"
// @Success 200 {object} domain.Banner
// @Failure 400 {object} web.ErrorResponse
// @Failure 404 {object} web.ErrorResponse
// @Router /banners/{id}/ [put]
func (h *BannerHandler) UpdateBanner(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	var patch domain.BannerPatch
	if c.Method() == fiber.MethodPatch {
		if err := web.BindJSON(c, &patch); err != nil {
			return err
		}
	} else {
		var req domain.BannerInput
		if err := web.BindJSON(c, &req); err != nil {
			return err
		}
		patch = req.Patch()
	}

	banner, err := h.service.Update(c.UserContext(), id, patch)
	if err != nil {
		return h.fail(err)
	}
	return c.Status(http.StatusOK).JSON(banner)
}

// DeleteBanner handles DELETE /banners/:id/.
// @Summary Delete a banner and close the gap in the ranking
// @Tags banners
// @Param id path int true "Banner ID"
// @Success 204
// @Failure 404 {object} web.ErrorResponse
// @Failure 503 {object} web.ErrorResponse
// @Router /banners/{id}/ [delete]
func (h *BannerHandler) DeleteBanner(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.fail(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// MoveUp handles POST /banners/:id/move_up/.
// @Summary Swap a banner with the one ranked above it
// @Tags banners
// @Produce json
// @Param id path int true "Banner ID"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} web.ErrorResponse
// @Failure 503 {object} web.ErrorResponse
// @Router /banners/{id}/move_up/ [post]
func (h *BannerHandler) MoveUp(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.service.MoveUp(c.UserContext(), id); err != nil {
		return h.fail(err)
	}
	return c.Status(http.StatusOK).JSON(StatusResponse{Status: "success"})
}

// MoveDown handles POST /banners/:id/move_down/.
// @Summary Swap a banner with the one ranked below it
// @Tags banners
// @Produce json
// @Param id path int true "Banner ID"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} web.ErrorResponse
// @Failure 503 {object} web.ErrorResponse
// @Router /banners/{id}/move_down/ [post]
func (h *BannerHandler) MoveDown(c *fiber.Ctx) error {
	id, err := web.ParamID(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.service.MoveDown(c.UserContext(), id); err != nil {
		return h.fail(err)
	}
	return c.Status(http.StatusOK).JSON(StatusResponse{Status: "success"})
}

// fail maps the banner sentinels; web.ErrorHandler reports everything else.
func (h *BannerHandler) fail(err error) error {
	if errors.Is(err, domain.ErrBannerNotFound) {
		return web.NewError(http.StatusNotFound, "banner not found")
	}
	return err
}
