package app

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogpost/internal/model"
	sqliteClient "blogpost/internal/platform/sqlite"
	"blogpost/internal/repository"
	"blogpost/internal/upload"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqliteClient.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Blog{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestBlogService(t *testing.T) (*BlogService, string) {
	t.Helper()
	uploadsDir := t.TempDir()
	service := NewBlogService(
		repository.NewBlogRepository(newTestDB(t)),
		upload.NewDiskStore(uploadsDir),
	)
	return service, uploadsDir
}

func makeFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	files := req.MultipartForm.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestBlogCreateValidation(t *testing.T) {
	service, _ := newTestBlogService(t)

	tests := []struct {
		name    string
		input   CreateBlogInput
		wantErr error
	}{
		{"empty title", CreateBlogInput{Title: "   ", Body: "content"}, ErrTitleRequired},
		{"empty body", CreateBlogInput{Title: "Hello", Body: "\n\t"}, ErrBodyRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(tt.input)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	blogs, err := service.List()
	require.NoError(t, err)
	assert.Empty(t, blogs, "rejected submissions must not create records")
}

func TestBlogCreateWithoutImage(t *testing.T) {
	service, _ := newTestBlogService(t)

	blog, err := service.Create(CreateBlogInput{Title: "Hello", Body: "World"})
	require.NoError(t, err)
	require.NotZero(t, blog.ID)
	assert.Equal(t, "Hello", blog.Title)
	assert.Equal(t, "World", blog.Body)
	assert.Empty(t, blog.ImageFile)
	assert.WithinDuration(t, time.Now(), blog.CreatedAt, 5*time.Second)
}

func TestBlogCreateWithImage(t *testing.T) {
	service, uploadsDir := newTestBlogService(t)

	blog, err := service.Create(CreateBlogInput{
		Title: "With image",
		Body:  "body",
		Image: makeFileHeader(t, "../shot.png", "png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "shot.png", blog.ImageFile)
	assert.FileExists(t, filepath.Join(uploadsDir, "shot.png"))
}

func TestBlogListNewestFirst(t *testing.T) {
	service, _ := newTestBlogService(t)

	first, err := service.Create(CreateBlogInput{Title: "first", Body: "b"})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	second, err := service.Create(CreateBlogInput{Title: "second", Body: "b"})
	require.NoError(t, err)

	blogs, err := service.List()
	require.NoError(t, err)
	require.Len(t, blogs, 2)
	assert.Equal(t, second.ID, blogs[0].ID)
	assert.Equal(t, first.ID, blogs[1].ID)
}

func TestBlogGetNotFound(t *testing.T) {
	service, _ := newTestBlogService(t)

	_, err := service.Get(999)
	require.ErrorIs(t, err, ErrBlogNotFound)
}

func TestBlogUpdateValidation(t *testing.T) {
	service, _ := newTestBlogService(t)

	blog, err := service.Create(CreateBlogInput{Title: "keep", Body: "keep"})
	require.NoError(t, err)

	_, err = service.Update(UpdateBlogInput{ID: blog.ID, Title: " ", Body: "new"})
	require.ErrorIs(t, err, ErrTitleRequired)
	_, err = service.Update(UpdateBlogInput{ID: blog.ID, Title: "new", Body: " "})
	require.ErrorIs(t, err, ErrBodyRequired)

	unchanged, err := service.Get(blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep", unchanged.Title)
	assert.Equal(t, "keep", unchanged.Body)
}

func TestBlogUpdateReplacesImage(t *testing.T) {
	service, uploadsDir := newTestBlogService(t)

	blog, err := service.Create(CreateBlogInput{
		Title: "post",
		Body:  "body",
		Image: makeFileHeader(t, "old.png", "old"),
	})
	require.NoError(t, err)

	updated, err := service.Update(UpdateBlogInput{
		ID:    blog.ID,
		Title: "post",
		Body:  "body",
		Image: makeFileHeader(t, "new.png", "new"),
	})
	require.NoError(t, err)

	assert.Equal(t, "new.png", updated.ImageFile)
	assert.FileExists(t, filepath.Join(uploadsDir, "new.png"))
	assert.NoFileExists(t, filepath.Join(uploadsDir, "old.png"), "stale image must be removed")
}

func TestBlogUpdateKeepsImageWhenNoneSupplied(t *testing.T) {
	service, uploadsDir := newTestBlogService(t)

	blog, err := service.Create(CreateBlogInput{
		Title: "post",
		Body:  "body",
		Image: makeFileHeader(t, "keep.png", "img"),
	})
	require.NoError(t, err)

	updated, err := service.Update(UpdateBlogInput{ID: blog.ID, Title: "edited", Body: "edited"})
	require.NoError(t, err)

	assert.Equal(t, "keep.png", updated.ImageFile)
	assert.FileExists(t, filepath.Join(uploadsDir, "keep.png"))
}

func TestBlogUpdateRemovesImageOnRequest(t *testing.T) {
	service, uploadsDir := newTestBlogService(t)

	blog, err := service.Create(CreateBlogInput{
		Title: "post",
		Body:  "body",
		Image: makeFileHeader(t, "gone.png", "img"),
	})
	require.NoError(t, err)

	updated, err := service.Update(UpdateBlogInput{
		ID:          blog.ID,
		Title:       "post",
		Body:        "body",
		RemoveImage: true,
	})
	require.NoError(t, err)

	assert.Empty(t, updated.ImageFile)
	assert.NoFileExists(t, filepath.Join(uploadsDir, "gone.png"))
}

func TestBlogUpdateRefreshesTimestamp(t *testing.T) {
	service, _ := newTestBlogService(t)

	blog, err := service.Create(CreateBlogInput{Title: "post", Body: "body"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	updated, err := service.Update(UpdateBlogInput{ID: blog.ID, Title: "post", Body: "changed"})
	require.NoError(t, err)

	assert.True(t, updated.UpdatedAt.After(blog.UpdatedAt))
}

func TestBlogDeleteWithImage(t *testing.T) {
	service, uploadsDir := newTestBlogService(t)

	blog, err := service.Create(CreateBlogInput{
		Title: "doomed",
		Body:  "body",
		Image: makeFileHeader(t, "doomed.png", "img"),
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(blog.ID))

	_, err = service.Get(blog.ID)
	require.ErrorIs(t, err, ErrBlogNotFound)
	assert.NoFileExists(t, filepath.Join(uploadsDir, "doomed.png"))
}

func TestBlogDeleteWithoutImage(t *testing.T) {
	service, _ := newTestBlogService(t)

	blog, err := service.Create(CreateBlogInput{Title: "plain", Body: "body"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(blog.ID))
	_, err = service.Get(blog.ID)
	require.ErrorIs(t, err, ErrBlogNotFound)
}

func TestBlogDeleteNotFound(t *testing.T) {
	service, _ := newTestBlogService(t)
	require.ErrorIs(t, service.Delete(42), ErrBlogNotFound)
}

func TestBlogDeleteSurvivesMissingFile(t *testing.T) {
	service, uploadsDir := newTestBlogService(t)

	blog, err := service.Create(CreateBlogInput{
		Title: "post",
		Body:  "body",
		Image: makeFileHeader(t, "vanished.png", "img"),
	})
	require.NoError(t, err)

	// someone removed the file out from under us
	require.NoError(t, os.Remove(filepath.Join(uploadsDir, "vanished.png")))

	require.NoError(t, service.Delete(blog.ID))
	_, err = service.Get(blog.ID)
	require.ErrorIs(t, err, ErrBlogNotFound)
}
