package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"canteen/internal/domain/model"
	repo "canteen/internal/repository"

	"github.com/shopspring/decimal"
)

// メニュー＋評価。MenuItem自体は書き換えない
type MenuItemWithRating struct {
	model.MenuItem
	Rating RatingSummary `json:"rating"`
}

type MenuQuery struct {
	Shift         string
	AvailableOnly bool
}

// 管理者のメニュー作成・更新
type MenuItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Shift       string
	Available   bool
}

type CatalogUsecase struct {
	tx        repo.TransactionManager
	menuItems repo.MenuItemRepository
	feedbacks repo.FeedbackRepository
}

func NewCatalogUsecase(tx repo.TransactionManager, menuItems repo.MenuItemRepository, feedbacks repo.FeedbackRepository) *CatalogUsecase {
	return &CatalogUsecase{tx: tx, menuItems: menuItems, feedbacks: feedbacks}
}

// 時間帯→id の順。各メニューに評価を付けて返す
func (u *CatalogUsecase) ListMenu(ctx context.Context, q MenuQuery) ([]MenuItemWithRating, error) {
	rq := repo.MenuListQuery{AvailableOnly: q.AvailableOnly}
	if strings.TrimSpace(q.Shift) != "" {
		sh, ok := model.ParseShift(q.Shift)
		if !ok {
			return []MenuItemWithRating{}, ErrInvalidShift
		}
		rq.Shift = &sh
	}

	items, err := u.menuItems.List(ctx, rq)
	if err != nil {
		return []MenuItemWithRating{}, err
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	ratings, err := ratingsForItems(ctx, u.feedbacks, ids)
	if err != nil {
		return []MenuItemWithRating{}, err
	}

	outs := make([]MenuItemWithRating, 0, len(items))
	for _, it := range items {
		outs = append(outs, MenuItemWithRating{MenuItem: it, Rating: ratings[it.ID]})
	}
	return outs, nil
}

func (u *CatalogUsecase) GetItem(ctx context.Context, id int64) (MenuItemWithRating, error) {
	item, err := u.menuItems.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return MenuItemWithRating{}, ErrNotFound
		}
		return MenuItemWithRating{}, err
	}

	ratings, err := ratingsForItems(ctx, u.feedbacks, []int64{id})
	if err != nil {
		return MenuItemWithRating{}, err
	}
	return MenuItemWithRating{MenuItem: item, Rating: ratings[id]}, nil
}

func (u *CatalogUsecase) CreateItem(ctx context.Context, actorID int64, in MenuItemInput) (model.MenuItem, error) {
	item, err := buildMenuItem(in)
	if err != nil {
		return model.MenuItem{}, err
	}

	var created model.MenuItem
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		created, err = r.MenuItems().Create(ctx, item)
		if err != nil {
			return err
		}
		return writeAudit(ctx, r.AuditLogs(), actorID, model.AuditActionCreateMenuItem, created.ID, nil, created)
	})
	if err != nil {
		return model.MenuItem{}, err
	}
	return created, nil
}

// 価格を変えても既存の注文明細には影響しない（unit_priceを持っているため）
func (u *CatalogUsecase) UpdateItem(ctx context.Context, actorID int64, id int64, in MenuItemInput) (model.MenuItem, error) {
	item, err := buildMenuItem(in)
	if err != nil {
		return model.MenuItem{}, err
	}
	item.ID = id

	var updated model.MenuItem
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.MenuItems().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := r.MenuItems().Update(ctx, item); err != nil {
			return err
		}
		updated, err = r.MenuItems().FindByID(ctx, id)
		if err != nil {
			return err
		}
		return writeAudit(ctx, r.AuditLogs(), actorID, model.AuditActionUpdateMenuItem, id, before, updated)
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.MenuItem{}, ErrNotFound
		}
		return model.MenuItem{}, err
	}
	return updated, nil
}

// 論理削除。カートに入っている分は同じTxで消す
func (u *CatalogUsecase) DeleteItem(ctx context.Context, actorID int64, id int64) error {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.MenuItems().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := r.CartLines().DeleteByMenuItemID(ctx, id); err != nil {
			return err
		}
		if err := r.MenuItems().SoftDelete(ctx, id); err != nil {
			return err
		}
		return writeAudit(ctx, r.AuditLogs(), actorID, model.AuditActionDeleteMenuItem, id, before, nil)
	})
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// 提供可否を反転して、反転後の値を返す
func (u *CatalogUsecase) ToggleAvailability(ctx context.Context, actorID int64, id int64) (bool, error) {
	var available bool
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		available, err = r.MenuItems().ToggleAvailable(ctx, id)
		if err != nil {
			return err
		}
		return writeAudit(ctx, r.AuditLogs(), actorID, model.AuditActionToggleMenuItem, id,
			map[string]bool{"available": !available}, map[string]bool{"available": available})
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	return available, nil
}

// 入力チェック
func buildMenuItem(in MenuItemInput) (model.MenuItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.MenuItem{}, validationError("name is required")
	}
	if utf8.RuneCountInString(name) > 100 {
		return model.MenuItem{}, validationError("name too long")
	}
	if in.Price.IsNegative() {
		return model.MenuItem{}, validationError("price must be >= 0")
	}
	if !in.Price.Equal(in.Price.Round(model.PriceScale)) {
		return model.MenuItem{}, validationError("price must have at most 2 decimal places")
	}
	sh, ok := model.ParseShift(in.Shift)
	if !ok {
		return model.MenuItem{}, ErrInvalidShift
	}

	return model.MenuItem{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Shift:       sh,
		Available:   in.Available,
	}, nil
}
