package auth

import (
	"context"
	"errors"

	"canteen/internal/domain/model"
	"canteen/internal/repository"
	"canteen/internal/usecase"
)

// 管理者によるユーザーの停止・再開
type UserAdminUsecase struct {
	userRepo  repository.UserRepository
	auditRepo repository.AuditLogRepository
}

func NewUserAdminUsecase(userRepo repository.UserRepository, auditRepo repository.AuditLogRepository) *UserAdminUsecase {
	return &UserAdminUsecase{userRepo: userRepo, auditRepo: auditRepo}
}

// 停止中のユーザーは発行済みJWTでもアクセスできなくなる
func (u *UserAdminUsecase) SetActive(ctx context.Context, actorID int64, userID int64, active bool) (model.User, error) {
	if actorID <= 0 {
		return model.User{}, usecase.ErrUnauthorized
	}
	// 自分自身は止められない
	if actorID == userID && !active {
		return model.User{}, usecase.ErrConflict
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, usecase.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	if user.IsActive == active {
		return user, nil
	}

	user.IsActive = active
	if err := u.userRepo.Update(ctx, user); err != nil {
		return model.User{}, err
	}

	action := model.AuditActionDeactivateUser
	if active {
		action = model.AuditActionActivateUser
	}
	entry := usecase.NewAuditEntry(actorID, action, user.ID,
		map[string]bool{"is_active": !active}, map[string]bool{"is_active": active})
	if err := u.auditRepo.Create(ctx, entry); err != nil {
		return model.User{}, err
	}
	return user, nil
}
