package usecase

import (
	"errors"
	"fmt"
)

// usecaseが返すエラー。HTTPステータスへの変換はhandler側だけで行う。
var (
	//400 入力不足
	ErrValidation      = errors.New("validation error")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidRating   = errors.New("invalid rating")
	ErrInvalidShift    = errors.New("invalid shift")
	ErrEmptyCart       = errors.New("cart is empty")

	//401 認証失敗
	ErrUnauthorized = errors.New("unauthorized")
	//403 他人のカート・注文
	ErrNotOwner = errors.New("not owner")
	//404
	ErrNotFound = errors.New("not found")

	//409 提供停止中、状態遷移できない
	ErrItemUnavailable   = errors.New("item unavailable")
	ErrInvalidTransition = errors.New("invalid status transition")
	//競合
	ErrConflict = errors.New("conflict")

	//500 原因をラップして返す
	ErrCheckoutFailed = errors.New("checkout failed")
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
