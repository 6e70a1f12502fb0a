package repository

import (
	"canteen/internal/domain/model"
	"context"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成。ユーザー名の重複は ErrDuplicate
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	// ユーザー名・パスワード・最後のログインなどの更新
	Update(ctx context.Context, user model.User) error
	Count(ctx context.Context) (int64, error)
}
