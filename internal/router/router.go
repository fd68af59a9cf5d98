package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nikajr10/project-management/internal/handler"
	"github.com/nikajr10/project-management/internal/middleware"
)

type Deps struct {
	DB             *gorm.DB
	JWTSecret      string
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	ProjectHandler *handler.ProjectHandler
	TaskHandler    *handler.TaskHandler
	SetupHandler   *handler.SetupHandler
}

func Setup(r *gin.Engine, deps Deps) {
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api/v1")

	// Public routes (no auth)
	api.POST("/auth/login", deps.AuthHandler.Login)
	api.POST("/auth/register", deps.AuthHandler.Register)
	api.POST("/setup/init", deps.SetupHandler.Init)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(deps.JWTSecret, deps.DB))
	{
		authed.GET("/auth/me", deps.AuthHandler.GetMe)

		// Boards
		projects := authed.Group("/projects")
		{
			projects.POST("", middleware.RequireAdmin(), deps.ProjectHandler.Create)
			projects.GET("", deps.ProjectHandler.List)
			projects.GET("/:id", deps.ProjectHandler.GetDetail)
		}

		// Tasks
		tasks := authed.Group("/tasks")
		{
			tasks.POST("", deps.TaskHandler.Create)
			tasks.PUT("/:id", deps.TaskHandler.Update)
			tasks.POST("/move", deps.TaskHandler.Move)
		}

		// Admin user management
		admin := authed.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/users", deps.UserHandler.ListUsers)
			admin.POST("/users", deps.UserHandler.CreateUser)
			admin.PUT("/users/:id/projects", deps.UserHandler.AssignProjects)
		}
	}
}
