package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 食事の時間帯。メニューの区分であり、チェックアウト時の注文の単位でもある。
type Shift string

const (
	ShiftBreakfast Shift = "breakfast"
	ShiftLunch     Shift = "lunch"
	ShiftDinner    Shift = "dinner"
	ShiftSupper    Shift = "supper"
)

// 表示・注文作成の順番
var Shifts = []Shift{ShiftBreakfast, ShiftLunch, ShiftDinner, ShiftSupper}

// 金額は小数2桁
const PriceScale int32 = 2

func ParseShift(s string) (Shift, bool) {
	sh := Shift(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Shifts {
		if v == sh {
			return sh, true
		}
	}
	return "", false
}

// 未知の時間帯は最後に並べる
func (s Shift) Rank() int {
	for i, v := range Shifts {
		if v == s {
			return i
		}
	}
	return len(Shifts)
}

type MenuItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Shift       Shift           `gorm:"type:varchar(20);not null;index" json:"shift"`
	Available   bool            `gorm:"not null" json:"available"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}
