package handler

import (
	"net/http"

	"canteen/internal/config"
	"canteen/internal/domain/model"
	"canteen/internal/middleware"
	"canteen/internal/repository"
	"canteen/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/dashboard と /admin/stats/*
type AdminStatsHandler struct {
	uc *usecase.SalesUsecase
}

func NewAdminStatsHandler(uc *usecase.SalesUsecase) *AdminStatsHandler {
	return &AdminStatsHandler{uc: uc}
}

func (h *AdminStatsHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	admin := e.Group("/admin", middleware.AdminOnly(cfg, userRepo)...)

	admin.GET("/dashboard", h.dashboard)
	admin.GET("/stats/revenue", h.revenue)
	admin.GET("/stats/popular", h.popular)
	admin.GET("/stats/recent-orders", h.recentOrders)
	admin.GET("/stats/users/:id/spend", h.userSpend)
}

// ?status= は任意。不正値は400
func statusFilter(c echo.Context) (*model.OrderStatus, bool) {
	v := c.QueryParam("status")
	if v == "" {
		return nil, true
	}
	st, ok := model.ParseOrderStatus(v)
	if !ok {
		return nil, false
	}
	return &st, true
}

func (h *AdminStatsHandler) dashboard(c echo.Context) error {
	out, err := h.uc.Dashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminStatsHandler) revenue(c echo.Context) error {
	st, ok := statusFilter(c)
	if !ok {
		return writeError(c, usecase.ErrInvalidStatus)
	}

	total, err := h.uc.TotalRevenue(c.Request().Context(), st)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"status": st, "revenue": total})
}

func (h *AdminStatsHandler) popular(c echo.Context) error {
	limit, ok := queryInt(c, "limit", 5)
	if !ok {
		return badRequest(c, "invalid limit")
	}

	out, err := h.uc.PopularItems(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminStatsHandler) recentOrders(c echo.Context) error {
	limit, ok := queryInt(c, "limit", 10)
	if !ok {
		return badRequest(c, "invalid limit")
	}

	out, err := h.uc.RecentOrders(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminStatsHandler) userSpend(c echo.Context) error {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	st, ok := statusFilter(c)
	if !ok {
		return writeError(c, usecase.ErrInvalidStatus)
	}

	total, err := h.uc.UserSpend(c.Request().Context(), userID, st)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"user_id": userID, "status": st, "spend": total})
}
