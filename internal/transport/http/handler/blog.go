package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blogpost/internal/app"
)

type BlogHandler struct {
	blogService *app.BlogService
}

func NewBlogHandler(blogService *app.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

func (h *BlogHandler) List(c *gin.Context) {
	blogs, err := h.blogService.List()
	if err != nil {
		renderError(c, "Could not load posts.")
		return
	}
	c.HTML(http.StatusOK, "index.html", pageData(c, gin.H{
		"Blogs": blogs,
	}))
}

func (h *BlogHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		renderNotFound(c)
		return
	}

	blog, err := h.blogService.Get(id)
	if err != nil {
		if errors.Is(err, app.ErrBlogNotFound) {
			renderNotFound(c)
			return
		}
		renderError(c, "Could not load the post.")
		return
	}

	c.HTML(http.StatusOK, "detail.html", pageData(c, gin.H{
		"Blog": blog,
	}))
}

func (h *BlogHandler) CreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "create.html", pageData(c, nil))
}

func (h *BlogHandler) Submit(c *gin.Context) {
	image, err := formImage(c)
	if err != nil {
		flash(c, "The upload could not be read; it may exceed the size limit.")
		c.Redirect(http.StatusFound, "/createblog")
		return
	}

	blog, err := h.blogService.Create(app.CreateBlogInput{
		Title: c.PostForm("title"),
		Body:  c.PostForm("body"),
		Image: image,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrTitleRequired), errors.Is(err, app.ErrBodyRequired):
			flash(c, err.Error())
		default:
			flash(c, "Could not create the post.")
		}
		c.Redirect(http.StatusFound, "/createblog")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/success/%d", blog.ID))
}

func (h *BlogHandler) Success(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		renderNotFound(c)
		return
	}

	blog, err := h.blogService.Get(id)
	if err != nil {
		if errors.Is(err, app.ErrBlogNotFound) {
			renderNotFound(c)
			return
		}
		renderError(c, "Could not load the post.")
		return
	}

	c.HTML(http.StatusOK, "success.html", pageData(c, gin.H{
		"Blog": blog,
	}))
}

func (h *BlogHandler) EditForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		renderNotFound(c)
		return
	}

	blog, err := h.blogService.Get(id)
	if err != nil {
		if errors.Is(err, app.ErrBlogNotFound) {
			renderNotFound(c)
			return
		}
		renderError(c, "Could not load the post.")
		return
	}

	c.HTML(http.StatusOK, "edit.html", pageData(c, gin.H{
		"Blog": blog,
	}))
}

func (h *BlogHandler) Edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		renderNotFound(c)
		return
	}
	editURL := fmt.Sprintf("/posts/edits/%d", id)

	image, err := formImage(c)
	if err != nil {
		flash(c, "The upload could not be read; it may exceed the size limit.")
		c.Redirect(http.StatusFound, editURL)
		return
	}

	_, err = h.blogService.Update(app.UpdateBlogInput{
		ID:          id,
		Title:       c.PostForm("title"),
		Body:        c.PostForm("body"),
		Image:       image,
		RemoveImage: c.PostForm("remove_image") != "",
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrBlogNotFound):
			renderNotFound(c)
		case errors.Is(err, app.ErrTitleRequired), errors.Is(err, app.ErrBodyRequired):
			flash(c, err.Error())
			c.Redirect(http.StatusFound, editURL)
		default:
			flash(c, "Could not update the post.")
			c.Redirect(http.StatusFound, editURL)
		}
		return
	}

	flash(c, "Post updated.")
	c.Redirect(http.StatusFound, "/")
}

// Delete removes the post and its image. Anything unexpected is logged by
// the service and turned into a flash message here; the listing always
// renders afterwards.
func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		renderNotFound(c)
		return
	}

	if err := h.blogService.Delete(id); err != nil {
		if errors.Is(err, app.ErrBlogNotFound) {
			renderNotFound(c)
			return
		}
		flash(c, "Could not delete the post.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	flash(c, "Post deleted.")
	c.Redirect(http.StatusFound, "/")
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// formImage fetches the optional "file" form field. A form without the
// field, a non-multipart form, or an empty file input all mean "no image".
func formImage(c *gin.Context) (*multipart.FileHeader, error) {
	file, err := c.FormFile("file")
	switch {
	case err == nil:
		if file.Filename == "" || file.Size == 0 {
			return nil, nil
		}
		return file, nil
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, nil
	default:
		return nil, err
	}
}
