package repository

import (
	"context"

	"canteen/internal/domain/model"
	repo "canteen/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeedbackGormRepository struct {
	db *gorm.DB
}

func NewFeedbackGormRepository(db *gorm.DB) *FeedbackGormRepository {
	return &FeedbackGormRepository{db: db}
}

// 追記のみ。同じユーザー・同じメニューでも何件でも残す
func (r *FeedbackGormRepository) Create(ctx context.Context, fb model.Feedback) (model.Feedback, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&fb).Error; err != nil {
		return model.Feedback{}, err
	}
	return fb, nil
}

func (r *FeedbackGormRepository) AggregateByMenuItemIDs(ctx context.Context, menuItemIDs []int64) ([]repo.RatingAggregate, error) {
	if len(menuItemIDs) == 0 {
		return []repo.RatingAggregate{}, nil
	}

	var rows []struct {
		MenuItemID  int64
		RatingSum   int64
		RatingCount int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Feedback{}).
		Select("menu_item_id, SUM(rating) AS rating_sum, COUNT(*) AS rating_count").
		Where("menu_item_id IN ?", menuItemIDs).
		Group("menu_item_id").
		Scan(&rows).Error
	if err != nil {
		return []repo.RatingAggregate{}, err
	}

	out := make([]repo.RatingAggregate, 0, len(rows))
	for _, row := range rows {
		out = append(out, repo.RatingAggregate{
			MenuItemID: row.MenuItemID,
			Sum:        row.RatingSum,
			Count:      row.RatingCount,
		})
	}
	return out, nil
}

func (r *FeedbackGormRepository) ListRecent(ctx context.Context, userID *int64, limit int) ([]model.Feedback, error) {
	q := r.db.WithContext(ctx).
		Preload("User").
		Preload("MenuItem", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() })
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var items []model.Feedback
	if err := q.Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return []model.Feedback{}, err
	}
	return items, nil
}

func (r *FeedbackGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Feedback{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
