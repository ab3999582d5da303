package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rodi229/Soft-Project/config"
	"github.com/Rodi229/Soft-Project/internal/api/handler"
	"github.com/Rodi229/Soft-Project/internal/api/middleware"
	"github.com/Rodi229/Soft-Project/pkg/jwt"
	"github.com/Rodi229/Soft-Project/pkg/redis"
)

// maxBodyBytes 请求体上限。
// 申请人记录可内嵌 base64 编码的简历文件，上限放宽到 10MB
const maxBodyBytes = 10 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 申请人模块（所有路由以 program 查询参数区分 GIP / TUPAD 集合）
			applicants := authorized.Group("/applicants")
			{
				applicants.GET("", h.Applicant.ListApplicants)
				applicants.POST("", h.Applicant.CreateApplicant)
				applicants.GET("/:id", h.Applicant.GetApplicant)
				applicants.PUT("/:id", h.Applicant.UpdateApplicant)
				applicants.POST("/:id/archive", h.Applicant.ArchiveApplicant)
				applicants.POST("/:id/unarchive", h.Applicant.UnarchiveApplicant)
				applicants.DELETE("/:id", middleware.RoleAuth("admin"), h.Applicant.DeleteApplicant)
			}

			// 统计模块
			statistics := authorized.Group("/statistics")
			{
				statistics.GET("", h.Statistics.GetStatistics)
				statistics.GET("/barangays", h.Statistics.GetBarangayStatistics)
				statistics.GET("/status", h.Statistics.GetStatusStatistics)
				statistics.GET("/genders", h.Statistics.GetGenderStatistics)
				statistics.GET("/years", h.Statistics.GetAvailableYears)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/applicants/csv", h.Export.ExportApplicantsCSV)
				export.GET("/applicants/xlsx", h.Export.ExportApplicantsXLSX)
				export.GET("/applicants/print", h.Export.ExportApplicantsPrint)
				export.GET("/statistics/csv", h.Export.ExportStatisticsCSV)
				export.GET("/statistics/print", h.Export.ExportStatisticsPrint)
			}
		}
	}

	return r
}
