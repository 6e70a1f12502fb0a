package handler

import (
	"net/http"

	"canteen/internal/config"
	"canteen/internal/middleware"
	"canteen/internal/repository"
	"canteen/internal/usecase"

	"github.com/labstack/echo/v4"
)

type NoticeHandler struct {
	uc *usecase.NoticeUsecase
}

func NewNoticeHandler(uc *usecase.NoticeUsecase) *NoticeHandler {
	return &NoticeHandler{uc: uc}
}

type noticeRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *NoticeHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.GET("/notices", h.latest)

	admin := e.Group("/admin/notices", middleware.AdminOnly(cfg, userRepo)...)
	admin.GET("", h.list)
	admin.POST("", h.create)
	admin.DELETE("/:id", h.delete)
}

func (h *NoticeHandler) latest(c echo.Context) error {
	limit, ok := queryInt(c, "limit", 5)
	if !ok {
		return badRequest(c, "invalid limit")
	}

	out, err := h.uc.Latest(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *NoticeHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *NoticeHandler) create(c echo.Context) error {
	var req noticeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Create(c.Request().Context(), req.Title, req.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *NoticeHandler) delete(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
