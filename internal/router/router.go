package router

import (
	"log"

	"github.com/hashtag-app/backend/internal/cache"
	"github.com/hashtag-app/backend/internal/graph"
	"github.com/hashtag-app/backend/internal/handlers"
	"github.com/hashtag-app/backend/internal/middleware"
	"github.com/hashtag-app/backend/internal/models"
	"github.com/hashtag-app/backend/internal/repositories"
	"github.com/hashtag-app/backend/internal/services"
	"github.com/hashtag-app/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(middleware.IdentityMiddleware())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, rdb *redis.Client, presigner services.ObjectPresigner, cfg *config.Config) error {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Bookmark{},
		&models.Follow{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Initialize Services ---
	store := cache.NewRedisStore(rdb)
	mailer := services.NewMailService(cfg.OperatorEmail)
	notificationService := services.NewNotificationService(notificationRepo, store)
	postService := services.NewPostService(postRepo, likeRepo, bookmarkRepo, notificationService, mailer)
	googleVerifier := services.NewGoogleIDTokenVerifier(cfg.GoogleAudience)
	userService := services.NewUserService(userRepo, followRepo, notificationService, mailer, store, googleVerifier)
	storageService := services.NewStorageService(presigner, cfg.AWSBucketName)
	log.Println("Services configured.")

	// --- GraphQL schema and endpoint ---
	resolver := graph.NewResolver(postService, userService, storageService)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return err
	}

	graphqlHandler := handlers.NewGraphQLHandler(schema)
	graphqlHandler.RegisterGraphQLRoutes(e)
	log.Println("GraphQL endpoint configured.")

	return nil
}
