package router

import (
	"context"
	"log"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/soykat/vibely/backend/internal/handlers"
	"github.com/soykat/vibely/backend/internal/middleware"
	"github.com/soykat/vibely/backend/internal/models"
	"github.com/soykat/vibely/backend/internal/realtime"
	"github.com/soykat/vibely/backend/internal/repositories"
	"github.com/soykat/vibely/backend/internal/services"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes wires repositories, services, the realtime hub and all routes.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, mongoDatabase string, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
		&models.ChatMessage{},
		&models.Follow{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Repositories ---
	mongoDB := mgClient.Database(mongoDatabase)
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	storyRepo := repositories.NewMongoStoryRepository(mongoDB)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	chatMessageRepo := repositories.NewPostgresChatMessageRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)

	// --- Content registry: everything likeable/commentable registers here.
	// Reel is reserved and stays unregistered.
	registry := repositories.NewContentRegistry()
	registry.Register(models.TargetPost, repositories.NewPostContentStore(postRepo))
	registry.Register(models.TargetStory, repositories.NewStoryContentStore(storyRepo))
	registry.Register(models.TargetComment, repositories.NewCommentContentStore(commentRepo))

	// Expired stories are swept in the background; reads filter on
	// expires_at anyway, so sweep latency is invisible to clients.
	go sweepExpiredStories(storyRepo)

	// --- Realtime hub ---
	hub := realtime.NewHub(chatMessageRepo)

	// --- Services ---
	notificationService := services.NewNotificationService(notificationRepo, userRepo, hub)
	likeService := services.NewLikeService(likeRepo, registry, userRepo)
	commentService := services.NewCommentService(commentRepo, registry, userRepo, notificationService)
	followService := services.NewFollowService(followRepo, userRepo, notificationService)

	// --- Websocket endpoint (token-less handshake; identity via userId param)
	wsHandler := handlers.NewWSHandler(hub)
	wsHandler.RegisterWSRoutes(e)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())

	handlers.NewUserHandler(userRepo).RegisterProfileRoutes(api)
	handlers.NewPostHandler(postRepo, userRepo).RegisterPostRoutes(api)
	handlers.NewStoryHandler(storyRepo, userRepo).RegisterStoryRoutes(api)
	handlers.NewLikeHandler(likeService).RegisterLikeRoutes(api)
	handlers.NewCommentHandler(commentService).RegisterCommentRoutes(api)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api)
	handlers.NewChatHandler(chatMessageRepo).RegisterChatRoutes(api)
	handlers.NewFollowHandler(followService).RegisterFollowRoutes(api)

	log.Println("All routes configured.")
}

func sweepExpiredStories(stories repositories.StoryRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := stories.DeleteExpiredStories(ctx); err != nil {
			log.Printf("story sweep failed: %v", err)
		}
		cancel()
	}
}
