package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"canteen/internal/domain/model"
	repo "canteen/internal/repository"
)

const maxCommentLength = 1000

// 評価の集計結果。エンティティには書き戻さない
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type SubmitFeedbackInput struct {
	MenuItemID int64
	Rating     int
	Comment    string
}

type FeedbackOutput struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username,omitempty"`
	MenuItemID   int64     `json:"menu_item_id"`
	MenuItemName string    `json:"menu_item_name,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

type FeedbackUsecase struct {
	feedbacks repo.FeedbackRepository
	menuItems repo.MenuItemRepository
}

func NewFeedbackUsecase(feedbacks repo.FeedbackRepository, menuItems repo.MenuItemRepository) *FeedbackUsecase {
	return &FeedbackUsecase{feedbacks: feedbacks, menuItems: menuItems}
}

// 1メニューの平均と件数。評価なしは (0, 0)
func (u *FeedbackUsecase) RatingsFor(ctx context.Context, menuItemID int64) (RatingSummary, error) {
	if _, err := u.menuItems.FindByID(ctx, menuItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return RatingSummary{}, ErrNotFound
		}
		return RatingSummary{}, err
	}

	m, err := ratingsForItems(ctx, u.feedbacks, []int64{menuItemID})
	if err != nil {
		return RatingSummary{}, err
	}
	return m[menuItemID], nil
}

func (u *FeedbackUsecase) RatingsForItems(ctx context.Context, menuItemIDs []int64) (map[int64]RatingSummary, error) {
	return ratingsForItems(ctx, u.feedbacks, menuItemIDs)
}

// 評価を追記する（同じメニューへの再投稿も可）
func (u *FeedbackUsecase) Submit(ctx context.Context, userID int64, in SubmitFeedbackInput) (FeedbackOutput, error) {
	if userID <= 0 {
		return FeedbackOutput{}, ErrUnauthorized
	}
	if in.Rating < model.MinRating || in.Rating > model.MaxRating {
		return FeedbackOutput{}, ErrInvalidRating
	}
	comment := strings.TrimSpace(in.Comment)
	if utf8.RuneCountInString(comment) > maxCommentLength {
		return FeedbackOutput{}, validationError("comment too long")
	}

	item, err := u.menuItems.FindByID(ctx, in.MenuItemID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return FeedbackOutput{}, ErrNotFound
		}
		return FeedbackOutput{}, err
	}

	fb, err := u.feedbacks.Create(ctx, model.Feedback{
		UserID:     userID,
		MenuItemID: item.ID,
		Rating:     in.Rating,
		Comment:    comment,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return FeedbackOutput{}, err
	}

	fb.MenuItem = &item
	return toFeedbackOutput(fb), nil
}

// 全員分の新しい評価
func (u *FeedbackUsecase) Recent(ctx context.Context, limit int) ([]FeedbackOutput, error) {
	return recentFeedback(ctx, u.feedbacks, nil, limit)
}

func (u *FeedbackUsecase) RecentByUser(ctx context.Context, userID int64, limit int) ([]FeedbackOutput, error) {
	return recentFeedback(ctx, u.feedbacks, &userID, limit)
}

// 評価の無いメニューは (0, 0) を入れて返す
func ratingsForItems(ctx context.Context, feedbacks repo.FeedbackRepository, menuItemIDs []int64) (map[int64]RatingSummary, error) {
	out := make(map[int64]RatingSummary, len(menuItemIDs))
	for _, id := range menuItemIDs {
		out[id] = RatingSummary{}
	}
	if len(menuItemIDs) == 0 {
		return out, nil
	}

	aggs, err := feedbacks.AggregateByMenuItemIDs(ctx, menuItemIDs)
	if err != nil {
		return nil, err
	}
	for _, a := range aggs {
		if a.Count == 0 {
			continue
		}
		out[a.MenuItemID] = RatingSummary{
			Average: float64(a.Sum) / float64(a.Count),
			Count:   a.Count,
		}
	}
	return out, nil
}

func recentFeedback(ctx context.Context, feedbacks repo.FeedbackRepository, userID *int64, limit int) ([]FeedbackOutput, error) {
	if limit < 1 || limit > 100 {
		return []FeedbackOutput{}, validationError("invalid limit")
	}
	items, err := feedbacks.ListRecent(ctx, userID, limit)
	if err != nil {
		return []FeedbackOutput{}, err
	}

	outs := make([]FeedbackOutput, 0, len(items))
	for _, fb := range items {
		outs = append(outs, toFeedbackOutput(fb))
	}
	return outs, nil
}

func toFeedbackOutput(fb model.Feedback) FeedbackOutput {
	out := FeedbackOutput{
		ID:         fb.ID,
		UserID:     fb.UserID,
		MenuItemID: fb.MenuItemID,
		Rating:     fb.Rating,
		Comment:    fb.Comment,
		CreatedAt:  fb.CreatedAt,
	}
	if fb.User != nil {
		out.Username = fb.User.Username
	}
	if fb.MenuItem != nil {
		out.MenuItemName = fb.MenuItem.Name
	}
	return out
}
