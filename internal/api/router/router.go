package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"intern-dtr/backend/config"
	"intern-dtr/backend/internal/api/handler"
	"intern-dtr/backend/internal/api/middleware"
	"intern-dtr/backend/pkg/jwt"
	"intern-dtr/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(2 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证），登录注册加速率限制防暴力破解
		auth := v1.Group("/auth")
		{
			loginLimit := middleware.RateLimit(rdb, 10, time.Minute)
			auth.POST("/register", loginLimit, h.Auth.Register)
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 实习档案模块
			internship := authorized.Group("/internship")
			{
				internship.GET("", h.Internship.GetInternship)
				internship.PUT("", h.Internship.UpdateInternship)
				internship.GET("/stats", h.Internship.GetStats)
			}

			// 打卡记录模块
			records := authorized.Group("/records")
			{
				records.PUT("", h.Record.SaveRecord)
				records.DELETE("", h.Record.DeleteRecord)
				records.POST("/mark", h.Record.MarkDay)
				records.POST("/quick-log", h.Record.QuickLog)
				records.POST("/holidays/import", h.Record.ImportHolidays)
			}

			// 日历模块
			authorized.GET("/calendar", h.Calendar.GetCalendar)

			// 导出模块
			authorized.GET("/export/dtr", h.Export.ExportDTR)
		}
	}

	return r
}
