package router

import (
	"net/http"
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Ruwaid884/verity-vendor-secure/internal/config"
	"github.com/Ruwaid884/verity-vendor-secure/internal/handler"
	"github.com/Ruwaid884/verity-vendor-secure/internal/infra"
	"github.com/Ruwaid884/verity-vendor-secure/internal/middleware"
	"github.com/Ruwaid884/verity-vendor-secure/internal/repository"
	"github.com/Ruwaid884/verity-vendor-secure/internal/service"
	"github.com/Ruwaid884/verity-vendor-secure/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, cipher *infra.AccountCipher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	vendorRepo := repository.NewVendorRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(rdb, cfg.ReviewNotifyEmail)
	vendorSvc := service.NewVendorService(vendorRepo, auditRepo, cipher, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	vendorsH := handler.NewVendorsHandler(vendorSvc)
	auditH := handler.NewAuditHandler(vendorSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Protected routes — tokens come from the external identity provider
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/api/v1", jwtMW)
	{
		vendors := v1.Group("/vendors")
		{
			vendors.POST("", middleware.RequireRole(middleware.RoleAdmin, middleware.RoleVendor), vendorsH.Create)
			vendors.GET("", vendorsH.List)
			vendors.GET("/pending", middleware.RequireRole(middleware.RoleAdmin, middleware.RoleApprover), vendorsH.Pending)
			vendors.GET("/:id", vendorsH.Get)
			vendors.PUT("/:id", middleware.RequireRole(middleware.RoleAdmin, middleware.RoleVendor), vendorsH.Update)
			vendors.PATCH("/:id/submit", middleware.RequireRole(middleware.RoleAdmin, middleware.RoleVendor), vendorsH.Submit)
			vendors.PATCH("/:id/approve", middleware.RequireRole(middleware.RoleAdmin, middleware.RoleApprover), vendorsH.Approve)
			vendors.PATCH("/:id/reject", middleware.RequireRole(middleware.RoleAdmin, middleware.RoleApprover), vendorsH.Reject)
			vendors.PATCH("/:id/activate", middleware.RequireRole(middleware.RoleAdmin), vendorsH.Activate)
			vendors.DELETE("/:id", middleware.RequireRole(middleware.RoleAdmin), vendorsH.Delete)
			vendors.GET("/:id/audit", middleware.RequireRole(middleware.RoleAdmin, middleware.RoleApprover), vendorsH.AuditTrail)
		}

		v1.GET("/audit/recent", middleware.RequireRole(middleware.RoleAdmin), auditH.Recent)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Endpoint not found",
			"path":    c.Request.URL.Path,
		})
	})

	return r
}
