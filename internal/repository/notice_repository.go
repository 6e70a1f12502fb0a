package repository

import (
	"context"

	"canteen/internal/domain/model"
)

type NoticeRepository interface {
	Create(ctx context.Context, n model.Notice) (model.Notice, error)
	// 新しい順。limit<=0 なら全件
	ListLatest(ctx context.Context, limit int) ([]model.Notice, error)
	Delete(ctx context.Context, id int64) error
}
