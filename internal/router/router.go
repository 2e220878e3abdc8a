package router

import (
	"log"

	"github.com/chatwave/backend/internal/handlers"
	"github.com/chatwave/backend/internal/middleware"
	"github.com/chatwave/backend/internal/models"
	"github.com/chatwave/backend/internal/observability"
	"github.com/chatwave/backend/internal/repositories"
	"github.com/chatwave/backend/internal/ws"
	"github.com/chatwave/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.Logger())
	e.Use(observability.HTTPMetricsMiddleware())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	// AutoMigrate models
	err := db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.PrivateMessage{},
		&models.Friendship{},
		&models.Notification{},
		&models.Post{},
		&models.Comment{},
		&models.PostLike{},
		&models.PasswordReset{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", observability.MetricsHandler())

	// Uploaded files are served straight off disk
	e.Static("/uploads", cfg.UploadDir)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	presenceRepo := repositories.NewPostgresPresenceRepository(db)
	messageRepo := repositories.NewPostgresMessageRepository(db)
	pmRepo := repositories.NewPostgresPrivateMessageRepository(db)
	friendshipRepo := repositories.NewPostgresFriendshipRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	resetRepo := repositories.NewPostgresPasswordResetRepository(db)

	hub := ws.NewHub()

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, presenceRepo, resetRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Websocket push channel (token auth via query param) ---
	chatWS := ws.NewChatWebSocketHandler(hub, userRepo, cfg.JWTSecret)
	e.GET("/ws/chat", chatWS.Handle)
	log.Println("Websocket route configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	api.Use(middleware.LoadUser(userRepo, presenceRepo))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	authHandler.RegisterProtectedRoutes(api)

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Public chat routes
	chatHandler := handlers.NewChatHandler(messageRepo, presenceRepo, hub)
	chatHandler.RegisterChatRoutes(api)
	log.Println("Chat routes configured.")

	// Private message routes
	pmHandler := handlers.NewPrivateMessageHandler(pmRepo, userRepo, notificationRepo, hub)
	pmHandler.RegisterPrivateMessageRoutes(api)
	log.Println("Private message routes configured.")

	// Friendship routes
	friendshipHandler := handlers.NewFriendshipHandler(friendshipRepo, userRepo, notificationRepo)
	friendshipHandler.RegisterFriendshipRoutes(api)
	log.Println("Friendship routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, notificationRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, notificationRepo)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Upload routes
	uploadHandler := handlers.NewUploadHandler(cfg.UploadDir)
	uploadHandler.RegisterUploadRoutes(api)
	log.Println("Upload routes configured.")

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	adminHandler := handlers.NewAdminHandler(userRepo)
	adminHandler.RegisterAdminRoutes(admin)
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")
}
