package model

import "time"

// カートの明細。(user_id, menu_item_id) で1行だけ。
// 価格は持たない（チェックアウト時点のメニュー価格を使う）。
type CartLine struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"not null;uniqueIndex:idx_cart_lines_user_item,priority:1" json:"user_id"`
	MenuItemID int64     `gorm:"not null;uniqueIndex:idx_cart_lines_user_item,priority:2;index" json:"menu_item_id"`
	MenuItem   *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Quantity   int64     `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
