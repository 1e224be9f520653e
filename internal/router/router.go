package router

import (
	"time"

	"postlike/internal/config"
	"postlike/internal/handlers"
	"postlike/internal/middleware"
	"postlike/internal/repository"
	"postlike/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Services holds everything the HTTP layer calls into.
type Services struct {
	DB        *gorm.DB
	Tokens    *services.TokenService
	Identity  *services.IdentityService
	Posts     *services.PostService
	Reactions *services.ReactionService
	Analytics *services.AnalyticsService
	Activity  *services.ActivityService
}

// NewServices builds the service graph on top of one database handle.
func NewServices(conn *gorm.DB, cfg *config.Config) *Services {
	repo := repository.New(conn)
	tokens := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	hasher := services.NewPasswordHasher(cfg.Security.BcryptCost)

	return &Services{
		DB:        conn,
		Tokens:    tokens,
		Identity:  services.NewIdentityService(repo, hasher, tokens),
		Posts:     services.NewPostService(repo),
		Reactions: services.NewReactionService(repo),
		Analytics: services.NewAnalyticsService(repo),
		Activity:  services.NewActivityService(repo),
	}
}

// New returns an engine with the middleware chain and every route mounted.
func New(svc *Services, corsCfg config.CORSConfig) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(corsCfg))

	RegisterRoutes(r, svc)
	return r
}

func corsMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	if len(cfg.AllowOrigins) == 0 {
		return cors.Default()
	}
	corsConfig := cors.DefaultConfig()
	for _, origin := range cfg.AllowOrigins {
		if origin == "*" {
			corsConfig.AllowAllOrigins = true
		}
	}
	if !corsConfig.AllowAllOrigins {
		corsConfig.AllowOrigins = cfg.AllowOrigins
	}
	corsConfig.AddAllowHeaders("Authorization", "X-Request-Id")
	corsConfig.AddExposeHeaders("X-Request-Id")
	corsConfig.MaxAge = 12 * time.Hour
	return cors.New(corsConfig)
}

func RegisterRoutes(r *gin.Engine, svc *Services) {
	// Handlers
	authHandler := handlers.NewAuthHandler(svc.Identity)
	postHandler := handlers.NewPostHandler(svc.Posts, svc.Reactions)
	analyticsHandler := handlers.NewAnalyticsHandler(svc.Analytics)
	userHandler := handlers.NewUserHandler(svc.Activity)
	healthHandler := handlers.NewHealthHandler(svc.DB)

	// Public routes
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/healthz", healthHandler.Health)

	// Protected routes
	api := r.Group("/api")
	api.Use(middleware.AuthRequired(svc.Tokens))
	api.Use(middleware.TrackActivity(svc.Activity))
	{
		api.GET("", postHandler.List)
		api.POST("", postHandler.Create)
		api.GET("/analytics", analyticsHandler.CountLikes)
		api.GET("/user-activity", userHandler.Activity)
		api.GET("/:postId", postHandler.Detail)
		api.PUT("/:postId", postHandler.React)
	}
}
