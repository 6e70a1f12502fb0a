package middleware

import (
	"errors"
	"net/http"

	"canteen/internal/config"
	"canteen/internal/repository"

	"github.com/labstack/echo/v4"
)

// JWT発行後に停止・削除されたユーザーを弾く。
// roleはDBの最新値で上書きする（降格を即時反映）。
func ActiveUserGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			rawUserID := c.Get(CtxUserIDKey)
			userID, ok := rawUserID.(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//DBから最新のuserを取得する
			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if err != nil {
				c.Logger().Error(err)
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			if !user.IsActive {
				return c.JSON(http.StatusForbidden, errorJSON("user is inactive"))
			}

			c.Set(CtxUserRoleKey, string(user.Role))
			return next(c)
		}
	}
}

// ルート登録用: JWT検証 → 有効ユーザー確認
func Authenticated(cfg config.Config, userRepo repository.UserRepository) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{AuthJWT(cfg), ActiveUserGuard(userRepo)}
}

// ルート登録用: 上に加えてADMINのみ
func AdminOnly(cfg config.Config, userRepo repository.UserRepository) []echo.MiddlewareFunc {
	return append(Authenticated(cfg, userRepo), AdminRoleGuard())
}
