// Package auth は会員登録・ログイン・プロフィール更新。
// ここで発行したJWTのsub(ユーザーID)が、注文系usecaseに渡るユーザーになる。
package auth

import (
	"errors"
	"time"

	"canteen/internal/domain/model"
)

var (
	// ユーザー名またはパスワードが違う
	ErrInvalidCredentials = errors.New("invalid credentials")

	// 停止済みユーザー
	ErrUserInactive = errors.New("user is inactive")
)

// 入力チェックの約束（実装はvalidatorパッケージ）
type CredentialValidator interface {
	ValidateRegister(username, password, confirm string) error
	ValidateLogin(username, password string) error
	ValidateUsername(username string) error
	ValidateNewPassword(password, confirm string) error
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// token 形
type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
