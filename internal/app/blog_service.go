package app

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"blogpost/internal/model"
	"blogpost/internal/repository"
)

var (
	ErrBlogNotFound  = errors.New("blog post not found")
	ErrTitleRequired = errors.New("title must not be empty")
	ErrBodyRequired  = errors.New("body must not be empty")
)

// ImageStore persists uploaded post images. Save returns the bare filename
// the image was stored under; Remove of a missing file is not an error.
type ImageStore interface {
	Save(file *multipart.FileHeader) (string, error)
	Remove(filename string) error
}

type BlogService struct {
	blogRepo *repository.BlogRepository
	images   ImageStore
}

type CreateBlogInput struct {
	Title string
	Body  string
	Image *multipart.FileHeader
}

type UpdateBlogInput struct {
	ID          uint
	Title       string
	Body        string
	Image       *multipart.FileHeader
	RemoveImage bool
}

func NewBlogService(blogRepo *repository.BlogRepository, images ImageStore) *BlogService {
	return &BlogService{blogRepo: blogRepo, images: images}
}

// Create writes the uploaded image before the database insert and removes it
// again if the insert fails, so the uploads dir never references a row that
// was never committed.
func (s *BlogService) Create(input CreateBlogInput) (*model.Blog, error) {
	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if body == "" {
		return nil, ErrBodyRequired
	}

	var filename string
	if input.Image != nil {
		var err error
		filename, err = s.images.Save(input.Image)
		if err != nil {
			return nil, fmt.Errorf("save image failed: %w", err)
		}
	}

	blog := &model.Blog{
		Title:     title,
		Body:      body,
		ImageFile: filename,
	}
	if err := s.blogRepo.Create(blog); err != nil {
		if filename != "" {
			if rmErr := s.images.Remove(filename); rmErr != nil {
				log.Printf("remove orphaned upload %q failed: %v", filename, rmErr)
			}
		}
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) Get(id uint) (*model.Blog, error) {
	if id == 0 {
		return nil, ErrBlogNotFound
	}
	blog, err := s.blogRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}
	return blog, nil
}

func (s *BlogService) List() ([]model.Blog, error) {
	return s.blogRepo.ListNewestFirst()
}

// Update overwrites title and body, and either replaces the stored image,
// clears it, or leaves it alone. The previous file is deleted only after the
// row update succeeds; a failed deletion is logged and the update stands.
func (s *BlogService) Update(input UpdateBlogInput) (*model.Blog, error) {
	blog, err := s.Get(input.ID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if body == "" {
		return nil, ErrBodyRequired
	}

	var stale string
	switch {
	case input.Image != nil:
		filename, err := s.images.Save(input.Image)
		if err != nil {
			return nil, fmt.Errorf("save image failed: %w", err)
		}
		stale = blog.ImageFile
		blog.ImageFile = filename
	case input.RemoveImage:
		stale = blog.ImageFile
		blog.ImageFile = ""
	}

	blog.Title = title
	blog.Body = body

	if err := s.blogRepo.Update(blog); err != nil {
		if input.Image != nil && blog.ImageFile != "" {
			if rmErr := s.images.Remove(blog.ImageFile); rmErr != nil {
				log.Printf("remove orphaned upload %q failed: %v", blog.ImageFile, rmErr)
			}
		}
		return nil, err
	}

	if stale != "" {
		if rmErr := s.images.Remove(stale); rmErr != nil {
			log.Printf("remove stale upload %q failed: %v", stale, rmErr)
		}
	}
	return blog, nil
}

// Delete drops the row first; the image file removal afterwards is best
// effort, so a filesystem hiccup can orphan a file but never a reference.
func (s *BlogService) Delete(id uint) error {
	blog, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.blogRepo.Delete(id); err != nil {
		return err
	}

	if blog.ImageFile != "" {
		if rmErr := s.images.Remove(blog.ImageFile); rmErr != nil {
			log.Printf("remove upload %q failed: %v", blog.ImageFile, rmErr)
		}
	}
	return nil
}
