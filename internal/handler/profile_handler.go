package handler

import (
	"net/http"

	"canteen/internal/config"
	"canteen/internal/domain/model"
	"canteen/internal/middleware"
	"canteen/internal/repository"
	"canteen/internal/usecase"
	auth "canteen/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// マイページ
type ProfileHandler struct {
	profileUC *auth.ProfileUsecase
	salesUC   *usecase.SalesUsecase
}

func NewProfileHandler(profileUC *auth.ProfileUsecase, salesUC *usecase.SalesUsecase) *ProfileHandler {
	return &ProfileHandler{profileUC: profileUC, salesUC: salesUC}
}

type updateProfileRequest struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type profileResponse struct {
	User  model.User           `json:"user"`
	Stats usecase.ProfileStats `json:"stats"`
}

func (h *ProfileHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/profile", middleware.Authenticated(cfg, userRepo)...)
	g.GET("", h.get)
	g.PUT("", h.update)
}

func (h *ProfileHandler) get(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	ctx := c.Request().Context()

	user, err := h.profileUC.Get(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}
	stats, err := h.salesUC.Profile(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, profileResponse{User: user, Stats: stats})
}

func (h *ProfileHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	user, err := h.profileUC.Update(c.Request().Context(), userID, auth.UpdateProfileInput{
		Username:        req.Username,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"user": user})
}
