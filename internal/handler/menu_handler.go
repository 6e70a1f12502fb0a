package handler

import (
	"net/http"
	"strconv"

	"canteen/internal/config"
	"canteen/internal/middleware"
	"canteen/internal/repository"
	"canteen/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /menu の公開APIと /admin/menu
type MenuHandler struct {
	uc        *usecase.CatalogUsecase
	ratingsUC *usecase.FeedbackUsecase
}

// DI
func NewMenuHandler(uc *usecase.CatalogUsecase, ratingsUC *usecase.FeedbackUsecase) *MenuHandler {
	return &MenuHandler{uc: uc, ratingsUC: ratingsUC}
}

type menuItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Shift       string          `json:"shift"`
	Available   *bool           `json:"available"`
}

func (r menuItemRequest) toInput() usecase.MenuItemInput {
	// 省略時は提供中
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return usecase.MenuItemInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Shift:       r.Shift,
		Available:   available,
	}
}

func (h *MenuHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	e.GET("/menu", h.list)
	e.GET("/menu/:id", h.detail)
	e.GET("/menu/:id/ratings", h.ratings)

	admin := e.Group("/admin/menu", middleware.AdminOnly(cfg, userRepo)...)
	admin.GET("", h.adminList)
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
	admin.POST("/:id/toggle", h.toggle)
}

// ?shift=lunch&available=true
func (h *MenuHandler) list(c echo.Context) error {
	availableOnly := true
	if v := c.QueryParam("available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "invalid available")
		}
		availableOnly = b
	}

	out, err := h.uc.ListMenu(c.Request().Context(), usecase.MenuQuery{
		Shift:         c.QueryParam("shift"),
		AvailableOnly: availableOnly,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MenuHandler) detail(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	out, err := h.uc.GetItem(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MenuHandler) ratings(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	out, err := h.ratingsUC.RatingsFor(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 管理者は提供停止中も含めて見る
func (h *MenuHandler) adminList(c echo.Context) error {
	out, err := h.uc.ListMenu(c.Request().Context(), usecase.MenuQuery{
		Shift: c.QueryParam("shift"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MenuHandler) create(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.CreateItem(c.Request().Context(), adminID, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *MenuHandler) update(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.UpdateItem(c.Request().Context(), adminID, id, req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MenuHandler) delete(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	if err := h.uc.DeleteItem(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MenuHandler) toggle(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}

	available, err := h.uc.ToggleAvailability(c.Request().Context(), adminID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"id": id, "available": available})
}
