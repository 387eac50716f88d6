package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"blogpost/internal/app"
	"blogpost/internal/transport/http/middleware"
)

type AuthHandler struct {
	authService *app.AuthService
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", pageData(c, nil))
}

func (h *AuthHandler) Register(c *gin.Context) {
	_, err := h.authService.Register(app.RegisterInput{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			flash(c, "All fields are required and the password must be at least 8 characters.")
		case errors.Is(err, app.ErrUsernameExists):
			flash(c, "That username is already taken.")
		case errors.Is(err, app.ErrEmailExists):
			flash(c, "That email is already registered.")
		default:
			flash(c, "Registration failed, please try again.")
		}
		c.Redirect(http.StatusFound, "/register")
		return
	}

	flash(c, "Account created, please log in.")
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", pageData(c, gin.H{
		"Next": c.Query("next"),
	}))
}

func (h *AuthHandler) Login(c *gin.Context) {
	next := c.PostForm("next")

	user, err := h.authService.Login(app.LoginInput{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	})
	if err != nil {
		// one message for unknown user and wrong password alike
		flash(c, "Invalid username or password.")
		target := "/login"
		if next != "" {
			target += "?next=" + url.QueryEscape(next)
		}
		c.Redirect(http.StatusFound, target)
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserIDKey, user.ID)
	session.Set(middleware.SessionUsernameKey, user.Username)
	if err := session.Save(); err != nil {
		renderError(c, "Could not establish a session.")
		return
	}

	c.Redirect(http.StatusFound, safeNext(next))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.AddFlash("You have been logged out.")
	_ = session.Save()
	c.Redirect(http.StatusFound, "/")
}

// safeNext only honours local paths so the login redirect can never be
// pointed at another host.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
