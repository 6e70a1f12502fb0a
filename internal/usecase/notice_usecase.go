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

type NoticeUsecase struct {
	notices repo.NoticeRepository
}

func NewNoticeUsecase(notices repo.NoticeRepository) *NoticeUsecase {
	return &NoticeUsecase{notices: notices}
}

// トップに出す件数
func (u *NoticeUsecase) Latest(ctx context.Context, limit int) ([]model.Notice, error) {
	if limit < 1 || limit > 100 {
		return []model.Notice{}, validationError("invalid limit")
	}
	return u.notices.ListLatest(ctx, limit)
}

func (u *NoticeUsecase) List(ctx context.Context) ([]model.Notice, error) {
	return u.notices.ListLatest(ctx, 0)
}

func (u *NoticeUsecase) Create(ctx context.Context, title, content string) (model.Notice, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return model.Notice{}, validationError("title and content are required")
	}
	if utf8.RuneCountInString(title) > 200 {
		return model.Notice{}, validationError("title too long")
	}

	return u.notices.Create(ctx, model.Notice{
		Title:     title,
		Content:   content,
		CreatedAt: time.Now(),
	})
}

func (u *NoticeUsecase) Delete(ctx context.Context, id int64) error {
	err := u.notices.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
