package http

import (
	"html/template"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	appsvc "blogpost/internal/app"
	"blogpost/internal/bootstrap"
	"blogpost/internal/repository"
	"blogpost/internal/transport/http/handler"
	"blogpost/internal/transport/http/middleware"
	"blogpost/internal/upload"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.BodyLimit(app.Config.Uploads.MaxUploadBytes()))

	store := cookie.NewStore([]byte(app.Config.Auth.SessionSecret))
	router.Use(sessions.Sessions(app.Config.Auth.SessionName, store))

	router.SetHTMLTemplate(template.Must(
		template.ParseFS(templatesFS, "templates/*.html"),
	))

	userRepo := repository.NewUserRepository(app.DB)
	blogRepo := repository.NewBlogRepository(app.DB)
	authService := appsvc.NewAuthService(userRepo)
	blogService := appsvc.NewBlogService(blogRepo, upload.NewDiskStore(app.Config.Uploads.Dir))

	healthHandler := handler.NewHealthHandler(app)
	authHandler := handler.NewAuthHandler(authService)
	blogHandler := handler.NewBlogHandler(blogService)

	router.Static("/uploads", app.Config.Uploads.Dir)
	router.GET("/healthz", healthHandler.Check)

	// read side, open to everyone; the older route names stay as aliases
	router.GET("/", blogHandler.List)
	router.GET("/listblogs", blogHandler.List)
	router.GET("/blog/:id", blogHandler.Detail)
	router.GET("/detail/:id", blogHandler.Detail)
	router.GET("/success/:id", blogHandler.Success)

	router.GET("/register", authHandler.RegisterForm)
	router.POST("/register", authHandler.Register)
	router.GET("/login", authHandler.LoginForm)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)

	// every write goes through the login gate
	protected := router.Group("/", middleware.RequireLogin())
	protected.GET("/create", blogHandler.CreateForm)
	protected.GET("/createblog", blogHandler.CreateForm)
	protected.POST("/submit", blogHandler.Submit)
	protected.GET("/posts/edits/:id", blogHandler.EditForm)
	protected.POST("/posts/edits/:id", blogHandler.Edit)
	protected.GET("/delete/:id", blogHandler.Delete)

	return router
}
