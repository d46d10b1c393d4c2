package handlers

import (
	"fmt"
	"slices"

	"github.com/SscSPs/opahours_backend/cmd/docs"
	portssvc "github.com/SscSPs/opahours_backend/internal/core/ports/services"
	"github.com/SscSPs/opahours_backend/internal/dto"
	"github.com/SscSPs/opahours_backend/internal/middleware"
	"github.com/SscSPs/opahours_backend/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return fmt.Errorf("registering validators: %w", err)
		}
	}

	r.Use(cors.New(corsConfig(cfg)))

	loginLimiter, err := middleware.NewIPRateLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("invalid LOGIN_RATE_LIMIT %q: %w", cfg.LoginRateLimit, err)
	}

	r.GET("/health", getHealth)

	setupAPIV1Routes(r, cfg, services, middleware.RateLimit(loginLimiter))

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

func corsConfig(cfg *config.Config) cors.Config {
	cc := cors.DefaultConfig()
	cc.AllowHeaders = append(cc.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	cc.ExposeHeaders = []string{middleware.RequestIDHeader}
	cc.AllowCredentials = true
	if len(cfg.CORSOrigins) == 0 || slices.Contains(cfg.CORSOrigins, "*") {
		// credentials cannot be combined with a literal wildcard
		cc.AllowOriginFunc = func(string) bool { return true }
		return cc
	}
	cc.AllowOrigins = cfg.CORSOrigins
	return cc
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limit gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1")

	// auth routes decide per endpoint whether a bearer token is needed
	registerAuthRoutes(v1, cfg, services, limit)

	protected := v1.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
	registerUserRoutes(protected, services.User)
	registerPartyRoutes(protected, services.Client, services.Person)
	registerWorkLogRoutes(protected, services.WorkLog)
	registerInvoiceRoutes(protected, services.Invoice)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
