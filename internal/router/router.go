// File: internal/router/router.go
package router

import (
	"personal-blog/internal/cache"
	"personal-blog/internal/database"
	"personal-blog/internal/handler"
	"personal-blog/internal/handler/auth"
	"personal-blog/internal/handler/pages"
	"personal-blog/internal/handler/posts"
	"personal-blog/internal/middleware"
	"personal-blog/internal/service"

	"github.com/labstack/echo/v4"
)

// Setup registers the session middleware and every route.
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, sessions *service.Sessions) {
	e.Use(middleware.LoadSession(db, sessions))

	// blog
	e.GET("/", posts.ListPostsHandler(db))
	e.GET("/post/:post_id", posts.ShowPostHandler(db))
	e.POST("/post/:post_id", posts.CreateCommentHandler(db))

	// accounts
	e.GET("/register", auth.RegisterPageHandler())
	e.POST("/register", auth.RegisterHandler(db, sessions))
	e.GET("/login", auth.LoginPageHandler())
	e.POST("/login", auth.LoginHandler(db, sessions))
	e.GET("/logout", auth.LogoutHandler(sessions))

	// admin-only post editor
	e.GET("/new-post", posts.NewPostPageHandler(), middleware.RequireAdmin)
	e.POST("/new-post", posts.CreatePostHandler(db), middleware.RequireAdmin)
	e.GET("/edit-post/:post_id", posts.EditPostPageHandler(db), middleware.RequireAdmin)
	e.POST("/edit-post/:post_id", posts.EditPostHandler(db), middleware.RequireAdmin)
	e.GET("/delete/:post_id", posts.DeletePostHandler(db), middleware.RequireAdmin)

	// pages
	e.GET("/about", pages.AboutHandler())
	e.GET("/contact", pages.ContactHandler(), middleware.RequireLogin)

	api := e.Group("/api")
	api.GET("/ping", handler.PingHandler(db, cch))
}
