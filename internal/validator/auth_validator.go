package validator

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"canteen/internal/usecase"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 80
	minPasswordLength = 8
)

// 英数字と _ . - のみ
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

// 入力チェックだけを行う（DBは見ない。重複は一意制約で検出する）
type AuthValidator struct{}

func NewAuthValidator() *AuthValidator {
	return &AuthValidator{}
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", usecase.ErrValidation, msg)
}

// サインアップの入力を検証
func (v *AuthValidator) ValidateRegister(username, password, confirm string) error {
	if err := v.ValidateUsername(username); err != nil {
		return err
	}
	return v.ValidateNewPassword(password, confirm)
}

// ログインの入力を検証
func (v *AuthValidator) ValidateLogin(username, password string) error {
	// 必須チェック
	if username == "" || password == "" {
		return invalid("username and password are required")
	}
	return nil
}

func (v *AuthValidator) ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLength || n > maxUsernameLength {
		return invalid(fmt.Sprintf("username must be %d-%d characters", minUsernameLength, maxUsernameLength))
	}
	if !usernamePattern.MatchString(username) {
		return invalid("username may contain letters, digits, '_', '.' and '-'")
	}
	return nil
}

// パスワード最低文字数（8）と確認用の一致
func (v *AuthValidator) ValidateNewPassword(password, confirm string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return invalid(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if password != confirm {
		return invalid("passwords do not match")
	}
	return nil
}
