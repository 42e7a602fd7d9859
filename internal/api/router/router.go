package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/config"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/api/handler"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/api/middleware"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/internal/model"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/jwt"
	"github.com/tachikawaloohcs-sketch/Loohcs-kichijoji-tachikawa/pkg/redis"
)

// リクエストボディは 1MB まで
const maxBodyBytes = 1 << 20

// Setup Gin ルーターを初期化して返す
// rdb は nil 可（レート制限とトークン失効が無効になるだけ）
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── グローバルミドルウェア ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(&cfg.Server.CORS))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── ヘルスチェック ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	loginRateLimit := middleware.RateLimit(rdb, logger, 10, time.Minute)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 認証モジュール（認証不要）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", loginRateLimit, h.Auth.Login)
			auth.POST("/register", loginRateLimit, h.Auth.Register)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 認証必須ルート
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// ユーザーモジュール
			authorized.GET("/instructors", h.User.ListInstructors)
			authorized.GET("/instructors/:id/shifts", h.Shift.ListAvailable)
			authorized.GET("/users/:id", h.User.GetByID)

			// シフトモジュール
			shifts := authorized.Group("/shifts")
			{
				shifts.POST("", middleware.RoleAuth(model.RoleInstructor), h.Shift.Create)
				shifts.GET("/mine", middleware.RoleAuth(model.RoleInstructor), h.Shift.ListMine)
				shifts.DELETE("/:id", middleware.RoleAuth(model.RoleInstructor, model.RoleAdmin), h.Shift.Delete)
			}

			// 予約モジュール
			bookings := authorized.Group("/bookings")
			{
				bookings.POST("", middleware.RoleAuth(model.RoleStudent), h.Booking.Create)
				bookings.POST("/force", middleware.RoleAuth(model.RoleInstructor, model.RoleAdmin), h.Booking.ForceCreate)
				bookings.GET("/mine", middleware.RoleAuth(model.RoleStudent), h.Booking.ListMine)
				bookings.DELETE("/:id", middleware.RoleAuth(model.RoleStudent), h.Booking.Cancel)
				bookings.GET("/history", middleware.RoleAuth(model.RoleInstructor), h.Booking.History)
				bookings.GET("/:id/report", middleware.RoleAuth(model.RoleInstructor, model.RoleAdmin), h.Report.GetByBooking)
			}

			// カルテモジュール
			authorized.POST("/reports", middleware.RoleAuth(model.RoleInstructor), h.Report.Submit)

			// 日程リクエストモジュール
			requests := authorized.Group("/schedule-requests")
			{
				requests.POST("", middleware.RoleAuth(model.RoleStudent), h.Request.Create)
				requests.GET("/mine", middleware.RoleAuth(model.RoleStudent), h.Request.ListMine)
				requests.GET("/pending", middleware.RoleAuth(model.RoleInstructor), h.Request.ListPending)
				requests.POST("/:id/approve", middleware.RoleAuth(model.RoleInstructor), h.Request.Approve)
				requests.POST("/:id/reject", middleware.RoleAuth(model.RoleInstructor), h.Request.Reject)
			}

			// アーカイブ閲覧（講師用）
			authorized.GET("/archive/students", middleware.RoleAuth(model.RoleInstructor), h.Archive.ListLicensed)

			// 合否結果（講師・管理者）
			students := authorized.Group("/students", middleware.RoleAuth(model.RoleInstructor, model.RoleAdmin))
			{
				students.GET("/:id/admission-results", h.Admission.List)
				students.PUT("/:id/admission-results", h.Admission.Replace)
			}

			// カレンダーエクスポート（本人の予定）
			authorized.GET("/export/calendar.ics", h.Export.ExportICS)

			// ── 管理者モジュール ──
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				admin.GET("/users", h.User.AdminList)
				admin.GET("/schedule", h.Shift.MasterSchedule)

				admin.POST("/shifts", h.Shift.AdminCreate)
				admin.POST("/bookings", h.Booking.ForceCreate)

				admin.POST("/users/:id/archive", h.Archive.Archive)
				admin.DELETE("/users/:id/archive", h.Archive.Unarchive)
				admin.POST("/archive-accesses", h.Archive.Grant)
				admin.GET("/archive-accesses", h.Archive.ListAccesses)
				admin.DELETE("/archive-accesses", h.Archive.Revoke)
				admin.GET("/archive/users", h.Archive.Search)

				admin.GET("/settings", h.Setting.List)
				admin.GET("/settings/:key", h.Setting.Get)
				admin.PUT("/settings", h.Setting.Upsert)

				admin.GET("/export/schedule", h.Export.ExportMasterSchedule)
			}
		}
	}

	return r
}
