package server

import (
	"net/http"

	"canteen/internal/config"
	"canteen/internal/handler"
	"canteen/internal/repository"

	"github.com/labstack/echo/v4"
)

// ルート登録に必要なhandler一式
type Handlers struct {
	Auth       *handler.AuthHandler
	Menu       *handler.MenuHandler
	Cart       *handler.CartHandler
	Order      *handler.OrderHandler
	Feedback   *handler.FeedbackHandler
	Profile    *handler.ProfileHandler
	Notice     *handler.NoticeHandler
	AdminOrder *handler.AdminOrderHandler
	AdminStats *handler.AdminStatsHandler
	AdminUser  *handler.AdminUserHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Auth.RegisterRoutes(e)
	h.Menu.RegisterRoutes(e, cfg, userRepo)
	h.Notice.RegisterRoutes(e, cfg, userRepo)
	h.Cart.RegisterRoutes(e, cfg, userRepo)
	h.Order.RegisterRoutes(e, cfg, userRepo)
	h.Feedback.RegisterRoutes(e, cfg, userRepo)
	h.Profile.RegisterRoutes(e, cfg, userRepo)
	h.AdminOrder.RegisterRoutes(e, cfg, userRepo)
	h.AdminStats.RegisterRoutes(e, cfg, userRepo)
	h.AdminUser.RegisterRoutes(e, cfg, userRepo)
}
