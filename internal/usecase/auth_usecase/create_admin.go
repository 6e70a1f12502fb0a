package auth

import (
	"context"
	"errors"
	"strings"

	"canteen/internal/domain/model"
	"canteen/internal/repository"
)

// seedコマンド用。既にいればそのユーザーを返す
type CreateAdminUsecase struct {
	userRepo  repository.UserRepository
	validator CredentialValidator
	hasher    PasswordHasher
	clock     Clock
}

func NewCreateAdminUsecase(
	userRepo repository.UserRepository,
	validator CredentialValidator,
	hasher PasswordHasher,
	clock Clock,
) *CreateAdminUsecase {
	return &CreateAdminUsecase{
		userRepo:  userRepo,
		validator: validator,
		hasher:    hasher,
		clock:     clock,
	}
}

// createdは今回作成したかどうか
func (u *CreateAdminUsecase) Execute(ctx context.Context, username, password string) (model.User, bool, error) {
	username = strings.TrimSpace(username)

	existing, err := u.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.User{}, false, err
	}

	if err := u.validator.ValidateRegister(username, password, password); err != nil {
		return model.User{}, false, err
	}

	user, err := createUser(ctx, u.userRepo, u.hasher, u.clock, username, password, model.RoleAdmin)
	if err != nil {
		return model.User{}, false, err
	}
	return user, true, nil
}
