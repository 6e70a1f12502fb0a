package repository

import (
	"context"
	"errors"
	"sort"

	"canteen/internal/domain/model"
	repo "canteen/internal/repository"

	"gorm.io/gorm"
)

type MenuItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewMenuItemGormRepository(db *gorm.DB) *MenuItemGormRepository {
	return &MenuItemGormRepository{db: db}
}

// 時間帯→id の順で返す。削除済みは含まない。
func (r *MenuItemGormRepository) List(ctx context.Context, q repo.MenuListQuery) ([]model.MenuItem, error) {
	tx := r.db.WithContext(ctx).Model(&model.MenuItem{})

	if q.Shift != nil {
		tx = tx.Where("shift = ?", *q.Shift)
	}
	if q.AvailableOnly {
		tx = tx.Where("available = ?", true)
	}

	var items []model.MenuItem
	if err := tx.Order("id asc").Find(&items).Error; err != nil {
		return []model.MenuItem{}, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Shift.Rank() < items[j].Shift.Rank()
	})
	return items, nil
}

func (r *MenuItemGormRepository) FindByID(ctx context.Context, id int64) (model.MenuItem, error) {
	var m model.MenuItem
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.MenuItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.MenuItem{}, err
	}
	return m, nil
}

func (r *MenuItemGormRepository) Create(ctx context.Context, m model.MenuItem) (model.MenuItem, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.MenuItem{}, err
	}
	return m, nil
}

// false/0 も更新したいのでmapで渡す
func (r *MenuItemGormRepository) Update(ctx context.Context, m model.MenuItem) error {
	res := r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("id = ?", m.ID).Updates(map[string]interface{}{
		"name":        m.Name,
		"description": m.Description,
		"price":       m.Price,
		"shift":       m.Shift,
		"available":   m.Available,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *MenuItemGormRepository) ToggleAvailable(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.MenuItem{}).
		Where("id = ?", id).
		Update("available", gorm.Expr("NOT available"))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, repo.ErrNotFound
	}

	m, err := r.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return m.Available, nil
}

// deleted_at を埋めるだけ。注文明細からは引き続き参照できる
func (r *MenuItemGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.MenuItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *MenuItemGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.MenuItem{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
