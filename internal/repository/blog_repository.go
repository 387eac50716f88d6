package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blogpost/internal/model"
)

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Create(blog *model.Blog) error {
	if err := r.db.Create(blog).Error; err != nil {
		return fmt.Errorf("create blog failed: %w", err)
	}
	return nil
}

func (r *BlogRepository) GetByID(id uint) (*model.Blog, error) {
	var blog model.Blog
	if err := r.db.First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query blog by id failed: %w", err)
	}
	return &blog, nil
}

// ListNewestFirst returns every post ordered by creation time, newest first.
func (r *BlogRepository) ListNewestFirst() ([]model.Blog, error) {
	var blogs []model.Blog
	if err := r.db.Order("created_at DESC").Find(&blogs).Error; err != nil {
		return nil, fmt.Errorf("list blogs failed: %w", err)
	}
	return blogs, nil
}

func (r *BlogRepository) Update(blog *model.Blog) error {
	if err := r.db.Save(blog).Error; err != nil {
		return fmt.Errorf("update blog failed: %w", err)
	}
	return nil
}

func (r *BlogRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Blog{}, id).Error; err != nil {
		return fmt.Errorf("delete blog failed: %w", err)
	}
	return nil
}
