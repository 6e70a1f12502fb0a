package repository

import (
	"context"
	"errors"
	"time"

	"canteen/internal/domain/model"
	repo "canteen/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartLineGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartLineGormRepository(db *gorm.DB) *CartLineGormRepository {
	return &CartLineGormRepository{db: db}
}

func (r *CartLineGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	var lines []model.CartLine

	if err := r.db.WithContext(ctx).
		Preload("MenuItem").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&lines).Error; err != nil {
		return []model.CartLine{}, err
	}
	return lines, nil
}

// 同じユーザーの同時チェックアウトはここで直列化される
func (r *CartLineGormRepository) ListByUserIDForUpdate(ctx context.Context, userID int64) ([]model.CartLine, error) {
	var lines []model.CartLine

	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("MenuItem").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&lines).Error; err != nil {
		return []model.CartLine{}, err
	}
	return lines, nil
}

// INSERT ... ON CONFLICT (user_id, menu_item_id) DO UPDATE で1文で加算する
func (r *CartLineGormRepository) AddQuantity(ctx context.Context, userID int64, menuItemID int64, qty int64) error {
	if qty <= 0 {
		return errors.New("invalid quantity")
	}

	now := time.Now()
	line := model.CartLine{
		UserID:     userID,
		MenuItemID: menuItemID,
		Quantity:   qty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "menu_item_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_lines.quantity + excluded.quantity"),
				"updated_at": gorm.Expr("excluded.updated_at"),
			}),
		}).
		Create(&line).Error
}

func (r *CartLineGormRepository) UpdateQuantity(ctx context.Context, cartLineID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartLine{}).
		Where("id = ?", cartLineID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartLineGormRepository) FindByID(ctx context.Context, cartLineID int64) (model.CartLine, error) {
	var line model.CartLine

	err := r.db.WithContext(ctx).
		Where("id = ?", cartLineID).
		First(&line).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartLine{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartLine{}, err
	}
	return line, nil
}

func (r *CartLineGormRepository) DeleteByID(ctx context.Context, cartLineID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.CartLine{}, cartLineID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartLineGormRepository) DeleteByIDs(ctx context.Context, cartLineIDs []int64) error {
	if len(cartLineIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", cartLineIDs).Delete(&model.CartLine{}).Error
}

// 0件でもエラーにしない（空カートのクリア）
func (r *CartLineGormRepository) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CartLine{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *CartLineGormRepository) DeleteByMenuItemID(ctx context.Context, menuItemID int64) error {
	return r.db.WithContext(ctx).Where("menu_item_id = ?", menuItemID).Delete(&model.CartLine{}).Error
}

func (r *CartLineGormRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.CartLine{}).
		Joins("JOIN menu_items ON menu_items.id = cart_lines.menu_item_id AND menu_items.deleted_at IS NULL").
		Where("cart_lines.user_id = ?", userID).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}
