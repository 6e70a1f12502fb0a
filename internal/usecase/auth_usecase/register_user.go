package auth

import (
	"context"
	"errors"
	"strings"

	"canteen/internal/domain/model"
	"canteen/internal/repository"
	"canteen/internal/usecase"
)

// 会員登録の入力
type RegisterUserInput struct {
	Username        string
	Password        string
	ConfirmPassword string
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	userRepo  repository.UserRepository
	validator CredentialValidator
	hasher    PasswordHasher
	clock     Clock
}

// DI
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	validator CredentialValidator,
	hasher PasswordHasher,
	clock Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo:  userRepo,
		validator: validator,
		hasher:    hasher,
		clock:     clock,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (model.User, error) {
	username := strings.TrimSpace(in.Username)

	if err := u.validator.ValidateRegister(username, in.Password, in.ConfirmPassword); err != nil {
		return model.User{}, err
	}

	return createUser(ctx, u.userRepo, u.hasher, u.clock, username, in.Password, model.RoleUser)
}

// ユーザー名の重複は一意制約で検出する
func createUser(ctx context.Context, users repository.UserRepository, hasher PasswordHasher, clock Clock, username, password string, role model.Role) (model.User, error) {
	// パスワードをハッシュ化
	hashed, err := hasher.Hash(password)
	if err != nil {
		return model.User{}, err
	}

	now := clock.Now()
	user := &model.User{
		Username:     username,
		PasswordHash: hashed, // ハッシュを保存（平文は保存しない）
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.User{}, usecase.ErrConflict
		}
		return model.User{}, err
	}
	return *user, nil
}
