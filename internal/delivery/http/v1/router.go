package v1

import (
	"net/http"
	"time"

	"corvus-contact/config"
	"corvus-contact/internal/delivery/http/middleware"
	"corvus-contact/internal/delivery/http/response"
	"corvus-contact/internal/domain"
	"corvus-contact/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC   domain.ContactUsecase
	HealthUC    usecase.HealthUsecase // nil reports liveness only
	RateLimiter *middleware.RateLimiter // nil disables rate limiting
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	production := deps.Config != nil && deps.Config.IsProduction()
	frontendURL := ""
	if deps.Config != nil {
		frontendURL = deps.Config.FrontendURL
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig(frontendURL, production))) // CORS must be first!
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
		c.Abort()
	}))
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	api := r.Group("/api")

	var contactLimit gin.HandlerFunc
	if deps.RateLimiter != nil && deps.Config != nil {
		window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
		api.Use(deps.RateLimiter.Middleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))
		contactLimit = deps.RateLimiter.Middleware(middleware.ContactRateLimitConfig(deps.Config.RateLimitContactThreshold, window))
	}

	// Health Check
	api.GET("/health", healthHandler(deps.HealthUC))

	NewContactHandler(api, deps.ContactUC, contactLimit)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Not found")
	})

	return r
}
