package v1

import (
	"net/http"
	"time"

	"go-freelance-backend/config"
	"go-freelance-backend/internal/delivery/http/middleware"
	"go-freelance-backend/internal/delivery/http/response"
	"go-freelance-backend/internal/domain"
	"go-freelance-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	FreelancerUC domain.FreelancerUsecase
	SearchUC     domain.SearchUsecase
	JWTManager   *auth.JWTManager
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// CORS must run before anything that can short-circuit the request.
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	r.Use(middleware.RateLimitMiddleware(
		middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Message(c, http.StatusOK, "System operational")
	})

	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth endpoints get a tighter per-IP budget on top of the global one.
	public := v1.Group("")
	authLimited := v1.Group("")
	authLimited.Use(middleware.RateLimitMiddleware(
		middleware.AuthRateLimitConfig(deps.Config.RateLimitAuthThreshold, window)))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWTManager))
	{
		NewAuthHandler(authLimited, protected, deps.AuthUC, deps.JWTManager, deps.Config)
		NewFreelancerHandler(public, protected, deps.FreelancerUC, deps.SearchUC)
		NewSearchHandler(public, deps.SearchUC)
		NewMiscHandler(public)
	}

	return r
}
