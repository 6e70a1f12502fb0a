package repository

import (
	"context"

	"canteen/internal/domain/model"
	repo "canteen/internal/repository"

	"gorm.io/gorm"
)

type noticeGormRepository struct {
	db *gorm.DB
}

func NewNoticeGormRepository(db *gorm.DB) repo.NoticeRepository {
	return &noticeGormRepository{db: db}
}

func (r *noticeGormRepository) Create(ctx context.Context, n model.Notice) (model.Notice, error) {
	if err := r.db.WithContext(ctx).Create(&n).Error; err != nil {
		return model.Notice{}, err
	}
	return n, nil
}

func (r *noticeGormRepository) ListLatest(ctx context.Context, limit int) ([]model.Notice, error) {
	q := r.db.WithContext(ctx).Order("created_at desc").Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var items []model.Notice
	if err := q.Find(&items).Error; err != nil {
		return []model.Notice{}, err
	}
	return items, nil
}

func (r *noticeGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Notice{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
