package repository

import (
	"context"

	"canteen/internal/domain/model"
)

// メニューごとの評価の合計と件数
type RatingAggregate struct {
	MenuItemID int64
	Sum        int64
	Count      int64
}

type FeedbackRepository interface {
	Create(ctx context.Context, fb model.Feedback) (model.Feedback, error)

	// 評価が1件も無いメニューは結果に含まれない
	AggregateByMenuItemIDs(ctx context.Context, menuItemIDs []int64) ([]RatingAggregate, error)

	// 新しい順。userIDがnilなら全員分
	ListRecent(ctx context.Context, userID *int64, limit int) ([]model.Feedback, error)
	Count(ctx context.Context) (int64, error)
}
