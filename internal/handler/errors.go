package handler

import (
	"errors"
	"net/http"
	"strconv"

	"canteen/internal/middleware"
	"canteen/internal/usecase"
	auth "canteen/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// usecaseのエラー → HTTPステータス。変換はここだけで行う
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrInvalidQuantity),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidRating),
		errors.Is(err, usecase.ErrInvalidShift),
		errors.Is(err, usecase.ErrEmptyCart):
		status = http.StatusBadRequest
	case errors.Is(err, usecase.ErrUnauthorized),
		errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, usecase.ErrNotOwner),
		errors.Is(err, auth.ErrUserInactive):
		status = http.StatusForbidden
	case errors.Is(err, usecase.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrItemUnavailable),
		errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrConflict):
		status = http.StatusConflict
	}

	//500 は中身を出さずにログだけ残す
	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
		msg := "internal error"
		if errors.Is(err, usecase.ErrCheckoutFailed) {
			msg = usecase.ErrCheckoutFailed.Error()
		}
		return c.JSON(status, ErrorResponse{Error: msg})
	}
	return c.JSON(status, ErrorResponse{Error: err.Error()})
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok || id <= 0 {
		return 0, false
	}

	return id, true
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// パスパラメータの正のID
func parseIDParam(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// 未指定ならdef
func queryInt(c echo.Context, name string, def int) (int, bool) {
	v := c.QueryParam(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
