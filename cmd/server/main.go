package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/nikajr10/project-management/internal/cache"
	"github.com/nikajr10/project-management/internal/config"
	"github.com/nikajr10/project-management/internal/handler"
	"github.com/nikajr10/project-management/internal/model"
	"github.com/nikajr10/project-management/internal/router"
	"github.com/nikajr10/project-management/internal/service"
)

func main() {
	// Load config
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Database
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.ProjectAssignment{},
		&model.BoardColumn{},
		&model.TaskItem{},
	); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	// Redis (board view cache); optional
	var boardCache *cache.BoardCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		boardCache = cache.NewBoardCache(rdb)
	}

	// Services
	authService := service.NewAuthService(db, cfg.JWT.Secret, cfg.JWT.ExpireHours)
	scopeService := service.NewScopeService(db)
	boardService := service.NewBoardService(db, scopeService, boardCache)
	projectService := service.NewProjectService(db)
	taskService := service.NewTaskService(db, boardCache)

	// Seed the configured admin account on first boot
	if err := authService.EnsureAdmin(cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService, boardService)
	taskHandler := handler.NewTaskHandler(taskService)
	setupHandler := handler.NewSetupHandler(authService)

	// Gin engine
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// Setup routes
	router.Setup(r, router.Deps{
		DB:             db,
		JWTSecret:      cfg.JWT.Secret,
		AuthHandler:    authHandler,
		UserHandler:    userHandler,
		ProjectHandler: projectHandler,
		TaskHandler:    taskHandler,
		SetupHandler:   setupHandler,
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
