package auth

import (
	"context"
	"errors"
	"strings"

	"canteen/internal/domain/model"
	"canteen/internal/repository"
	"canteen/internal/usecase"
)

// 空欄の項目は変更しない
type UpdateProfileInput struct {
	Username        string
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

type ProfileUsecase struct {
	userRepo  repository.UserRepository
	validator CredentialValidator
	hasher    PasswordHasher
	verifier  PasswordVerifier
}

func NewProfileUsecase(
	userRepo repository.UserRepository,
	validator CredentialValidator,
	hasher PasswordHasher,
	verifier PasswordVerifier,
) *ProfileUsecase {
	return &ProfileUsecase{
		userRepo:  userRepo,
		validator: validator,
		hasher:    hasher,
		verifier:  verifier,
	}
}

func (u *ProfileUsecase) Get(ctx context.Context, userID int64) (model.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, usecase.ErrNotFound
	}
	return user, err
}

// 変更には現在のパスワードが必要
func (u *ProfileUsecase) Update(ctx context.Context, userID int64, in UpdateProfileInput) (model.User, error) {
	if userID <= 0 {
		return model.User{}, usecase.ErrUnauthorized
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, usecase.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}

	if !u.verifier.Verify(in.CurrentPassword, user.PasswordHash) {
		return model.User{}, ErrInvalidCredentials
	}

	if name := strings.TrimSpace(in.Username); name != "" && name != user.Username {
		if err := u.validator.ValidateUsername(name); err != nil {
			return model.User{}, err
		}
		user.Username = name
	}

	if in.NewPassword != "" {
		if err := u.validator.ValidateNewPassword(in.NewPassword, in.ConfirmPassword); err != nil {
			return model.User{}, err
		}
		hashed, err := u.hasher.Hash(in.NewPassword)
		if err != nil {
			return model.User{}, err
		}
		user.PasswordHash = hashed
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.User{}, usecase.ErrConflict
		}
		return model.User{}, err
	}
	return user, nil
}
