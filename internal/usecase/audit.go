package usecase

import (
	"context"
	"encoding/json"
	"time"

	"canteen/internal/domain/model"
	repo "canteen/internal/repository"
)

// 監査ログ用のJSON。失敗しても空にするだけ
func auditJSON(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// 対象の種類は操作から決まる
func NewAuditEntry(actorID int64, action model.AuditAction, resID int64, before, after interface{}) model.AuditLog {
	return model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: action.ResourceType(),
		ResourceID:   resID,
		BeforeJSON:   auditJSON(before),
		AfterJSON:    auditJSON(after),
		CreatedAt:    time.Now(),
	}
}

// Tx内で監査ログを1件残す
func writeAudit(ctx context.Context, r repo.AuditLogRepository, actorID int64, action model.AuditAction, resID int64, before, after interface{}) error {
	return r.Create(ctx, NewAuditEntry(actorID, action, resID, before, after))
}

// 監査ログの閲覧（管理者）
type AuditLogUsecase struct {
	logs repo.AuditLogRepository
}

func NewAuditLogUsecase(logs repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{logs: logs}
}

// /admin/audit-logs のクエリ。文字列はここで検証する
type AuditLogQuery struct {
	ActorUserID  *int64
	ResourceType string
	ResourceID   *int64
	Actions      []string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

func (u *AuditLogUsecase) List(ctx context.Context, q AuditLogQuery) ([]model.AuditLog, error) {
	if q.Limit == 0 {
		q.Limit = 50
	}
	if q.Limit < 0 || q.Limit > 200 {
		return []model.AuditLog{}, validationError("invalid limit")
	}
	if q.Offset < 0 {
		return []model.AuditLog{}, validationError("invalid offset")
	}
	if q.From != nil && q.To != nil && !q.From.Before(*q.To) {
		return []model.AuditLog{}, validationError("from must be before to")
	}

	f := repo.AuditLogFilter{
		ActorUserID: q.ActorUserID,
		ResourceID:  q.ResourceID,
		From:        q.From,
		To:          q.To,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}

	if q.ResourceType != "" {
		rt, ok := model.ParseAuditResourceType(q.ResourceType)
		if !ok {
			return []model.AuditLog{}, validationError("invalid resource_type")
		}
		f.ResourceType = &rt
	}
	// resource_id は種類とセットで意味を持つ
	if f.ResourceID != nil && f.ResourceType == nil {
		return []model.AuditLog{}, validationError("resource_id requires resource_type")
	}

	for _, s := range q.Actions {
		a, ok := model.ParseAuditAction(s)
		if !ok {
			return []model.AuditLog{}, validationError("invalid action")
		}
		if f.ResourceType != nil && a.ResourceType() != *f.ResourceType {
			return []model.AuditLog{}, validationError("action does not match resource_type")
		}
		f.Actions = append(f.Actions, a)
	}

	return u.logs.List(ctx, f)
}
