package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "tabletennis_backend/internals/features/news/posts/model"
	"tabletennis_backend/internals/helpers/apperror"
)

type NewsService struct {
	DB *gorm.DB
}

func NewNewsService(db *gorm.DB) *NewsService {
	return &NewsService{DB: db}
}

type ListFilter struct {
	Status   string
	Category string
}

func (s *NewsService) Create(ctx context.Context, m *model.NewsPostModel) error {
	if strings.TrimSpace(m.Title) == "" {
		return apperror.ValidationFields(map[string][]string{"title": {"required"}})
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.FromGorm("create news", err)
	}
	return nil
}

func (s *NewsService) List(ctx context.Context, f ListFilter) ([]model.NewsPostModel, error) {
	q := s.DB.WithContext(ctx).Model(&model.NewsPostModel{})
	if v := strings.TrimSpace(f.Status); v != "" {
		q = q.Where("status = ?", v)
	}
	if v := strings.TrimSpace(f.Category); v != "" {
		q = q.Where("category = ?", v)
	}

	rows := make([]model.NewsPostModel, 0)
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, apperror.FromGorm("list news", err)
	}
	return rows, nil
}

func (s *NewsService) Get(ctx context.Context, id uuid.UUID) (*model.NewsPostModel, error) {
	var m model.NewsPostModel
	if err := s.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, apperror.FromGorm("get news", err)
	}
	return &m, nil
}

// Update applies changes to a loaded post and saves it. The returned string is
// the image URL the post had before, so callers can clean up a replaced file.
func (s *NewsService) Update(ctx context.Context, id uuid.UUID, apply func(*model.NewsPostModel) error) (*model.NewsPostModel, *string, error) {
	var (
		out      model.NewsPostModel
		oldImage *string
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, "id = ?", id).Error; err != nil {
			return apperror.FromGorm("get news", err)
		}
		oldImage = out.Image
		if err := apply(&out); err != nil {
			return err
		}
		if strings.TrimSpace(out.Title) == "" {
			return apperror.ValidationFields(map[string][]string{"title": {"required"}})
		}
		if err := tx.Save(&out).Error; err != nil {
			return apperror.FromGorm("update news", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &out, oldImage, nil
}

// Delete removes a post and returns it as it was.
func (s *NewsService) Delete(ctx context.Context, id uuid.UUID) (*model.NewsPostModel, error) {
	var m model.NewsPostModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, "id = ?", id).Error; err != nil {
			return apperror.FromGorm("get news", err)
		}
		if err := tx.Delete(&model.NewsPostModel{}, "id = ?", id).Error; err != nil {
			return apperror.FromGorm("delete news", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}
