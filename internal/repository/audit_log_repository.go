package repository

import (
	"context"
	"time"

	"canteen/internal/domain/model"
)

// 監査ログの絞り込み。値はusecaseで検証済みのものが来る
type AuditLogFilter struct {
	ActorUserID  *int64
	ResourceType *model.AuditResourceType
	ResourceID   *int64
	// いずれかに一致（空なら全操作）
	Actions []model.AuditAction
	From    *time.Time
	To      *time.Time

	Limit  int
	Offset int
}

type AuditLogRepository interface {
	// 管理者の変更操作と同じTxで1件追記する
	Create(ctx context.Context, log model.AuditLog) error
	// 新しい順
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
