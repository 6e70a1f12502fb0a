package handler

import (
	"net/http"
	"strconv"
	"strings"

	"canteen/internal/config"
	"canteen/internal/middleware"
	"canteen/internal/repository"
	"canteen/internal/usecase"
	auth "canteen/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// ユーザーの停止・再開と監査ログの閲覧
type AdminUserHandler struct {
	uc      *auth.UserAdminUsecase
	auditUC *usecase.AuditLogUsecase
}

func NewAdminUserHandler(uc *auth.UserAdminUsecase, auditUC *usecase.AuditLogUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc, auditUC: auditUC}
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	// /admin 配下は全部「JWT必須 + 有効ユーザー + ADMIN限定」
	admin := e.Group("/admin", middleware.AdminOnly(cfg, userRepo)...)

	admin.POST("/users/:id/deactivate", h.deactivate)
	admin.POST("/users/:id/activate", h.activate)
	admin.GET("/audit-logs", h.auditLogs)
}

func (h *AdminUserHandler) deactivate(c echo.Context) error {
	return h.setActive(c, false)
}

func (h *AdminUserHandler) activate(c echo.Context) error {
	return h.setActive(c, true)
}

func (h *AdminUserHandler) setActive(c echo.Context, active bool) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid user_id")
	}

	user, err := h.uc.SetActive(c.Request().Context(), adminID, userID, active)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"user": user})
}

// ?resource_type=order&resource_id=&action=A,B&actor_id=&from=&to=&limit=&offset=
func (h *AdminUserHandler) auditLogs(c echo.Context) error {
	limit, ok := queryInt(c, "limit", 50)
	if !ok {
		return badRequest(c, "invalid limit")
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return badRequest(c, "invalid offset")
	}
	resourceID, ok := queryOptionalID(c, "resource_id")
	if !ok {
		return badRequest(c, "invalid resource_id")
	}
	actorID, ok := queryOptionalID(c, "actor_id")
	if !ok {
		return badRequest(c, "invalid actor_id")
	}
	from, err := usecase.ParseDateTimeRFC3339(c.QueryParam("from"))
	if err != nil {
		return badRequest(c, "invalid from")
	}
	to, err := usecase.ParseDateTimeRFC3339(c.QueryParam("to"))
	if err != nil {
		return badRequest(c, "invalid to")
	}

	var actions []string
	if v := c.QueryParam("action"); v != "" {
		actions = strings.Split(v, ",")
	}

	out, err := h.auditUC.List(c.Request().Context(), usecase.AuditLogQuery{
		ActorUserID:  actorID,
		ResourceType: c.QueryParam("resource_type"),
		ResourceID:   resourceID,
		Actions:      actions,
		From:         from,
		To:           to,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 未指定は nil
func queryOptionalID(c echo.Context, name string) (*int64, bool) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}
	return &id, true
}
