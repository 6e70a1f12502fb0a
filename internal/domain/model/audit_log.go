package model

import (
	"strings"
	"time"
)

// メニュー更新、注文ステータス更新など。
type AuditAction string

const (
	//注文ステータスを更新した操作。
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	//注文を明細ごと削除した操作。
	AuditActionDeleteOrder AuditAction = "DELETE_ORDER"

	AuditActionCreateMenuItem AuditAction = "CREATE_MENU_ITEM"
	AuditActionUpdateMenuItem AuditAction = "UPDATE_MENU_ITEM"
	AuditActionDeleteMenuItem AuditAction = "DELETE_MENU_ITEM"
	//提供可否の切り替え
	AuditActionToggleMenuItem AuditAction = "TOGGLE_MENU_ITEM"

	AuditActionActivateUser   AuditAction = "ACTIVATE_USER"
	AuditActionDeactivateUser AuditAction = "DEACTIVATE_USER"
)

// 操作ごとの対象の種類
var auditActionResources = map[AuditAction]AuditResourceType{
	AuditActionUpdateOrderStatus: AuditResourceOrder,
	AuditActionDeleteOrder:       AuditResourceOrder,
	AuditActionCreateMenuItem:    AuditResourceMenuItem,
	AuditActionUpdateMenuItem:    AuditResourceMenuItem,
	AuditActionDeleteMenuItem:    AuditResourceMenuItem,
	AuditActionToggleMenuItem:    AuditResourceMenuItem,
	AuditActionActivateUser:      AuditResourceUser,
	AuditActionDeactivateUser:    AuditResourceUser,
}

// 大文字小文字は問わない。未知の操作は false
func ParseAuditAction(s string) (AuditAction, bool) {
	a := AuditAction(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := auditActionResources[a]
	return a, ok
}

func (a AuditAction) ResourceType() AuditResourceType {
	return auditActionResources[a]
}

// 何に対する操作か
type AuditResourceType string

const (
	//注文に対する操作。
	AuditResourceOrder AuditResourceType = "order"

	//メニューに対する操作。
	AuditResourceMenuItem AuditResourceType = "menu_item"

	AuditResourceUser AuditResourceType = "user"
)

func ParseAuditResourceType(s string) (AuditResourceType, bool) {
	switch rt := AuditResourceType(strings.ToLower(strings.TrimSpace(s))); rt {
	case AuditResourceOrder, AuditResourceMenuItem, AuditResourceUser:
		return rt, true
	default:
		return "", false
	}
}

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	//IDは監査ログの主キー
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作した管理者のID。
	ActorUserID int64 `gorm:"not null;index" json:"actor_user_id"`

	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	//対象の種類（order / menu_item / user）。
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`

	ResourceID int64 `gorm:"not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
