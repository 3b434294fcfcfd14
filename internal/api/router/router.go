package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/config"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/api/handler"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/api/middleware"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/jwt"
)

// Deps 路由层的可选依赖；未配置 Redis 时二者均为 nil
type Deps struct {
	Blacklist middleware.TokenBlacklist
	Limiter   middleware.Limiter
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, deps Deps, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	admin := middleware.RoleAuth(jwt.RoleAdmin)
	staff := middleware.RoleAuth(jwt.RoleAdmin, jwt.RoleTrainer)

	api := r.Group("/api")
	{
		// ── 公开接口 ──
		api.GET("/health", h.Health.Health)
		api.POST("/auth/login",
			middleware.RateLimit(deps.Limiter, cfg.Server.LoginLimit, cfg.Server.LoginWindow),
			h.Auth.Login)

		// ── 需要会话的接口 ──
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, deps.Blacklist, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 教练
			trainers := authorized.Group("/trainers")
			{
				trainers.GET("", h.Trainer.ListTrainers)
				trainers.GET("/:id", h.Trainer.GetTrainer)
				trainers.POST("", admin, h.Trainer.CreateTrainer)
				trainers.PUT("/:id", admin, h.Trainer.UpdateTrainer)
				trainers.DELETE("/:id", admin, h.Trainer.DeleteTrainer)
				trainers.POST("/:id/deactivate", admin, h.Trainer.DeactivateTrainer)
				trainers.POST("/:id/activate", admin, h.Trainer.ActivateTrainer)
			}

			// 课程
			courses := authorized.Group("/courses")
			{
				courses.GET("", h.Course.ListCourses)
				courses.GET("/:id", h.Course.GetCourse)
				courses.POST("", admin, h.Course.CreateCourse)
				courses.PUT("/:id", admin, h.Course.UpdateCourse)
				courses.DELETE("/:id", admin, h.Course.DeleteCourse)
			}

			// 周覆盖分配：教练也可调整
			assignments := authorized.Group("/weekly-assignments")
			{
				assignments.GET("", h.WeeklyAssignment.GetAssignment)
				assignments.GET("/batch", h.WeeklyAssignment.GetWeek)
				assignments.POST("", staff, h.WeeklyAssignment.SetAssignment)
				assignments.DELETE("", staff, h.WeeklyAssignment.ClearAssignment)
			}

			// 取消 / 假期周 / 假期例外
			cancelled := authorized.Group("/cancelled-courses")
			{
				cancelled.GET("", h.Calendar.ListCancelled)
				cancelled.POST("", admin, h.Calendar.CancelCourse)
				cancelled.DELETE("", admin, h.Calendar.RestoreCourse)
			}
			holidays := authorized.Group("/holiday-weeks")
			{
				holidays.GET("", h.Calendar.ListHolidayWeeks)
				holidays.POST("", admin, h.Calendar.SetHolidayWeek)
				holidays.DELETE("", admin, h.Calendar.ClearHolidayWeek)
				holidays.POST("/import", admin, h.Calendar.ImportHolidayWeeks)
			}
			exceptions := authorized.Group("/course-exceptions")
			{
				exceptions.GET("", h.Calendar.ListExceptions)
				exceptions.POST("", admin, h.Calendar.AddException)
				exceptions.DELETE("", admin, h.Calendar.RemoveException)
			}
			authorized.GET("/weeks/resolve", h.Calendar.ResolveWeek)

			// 特殊活动
			activities := authorized.Group("/special-activities")
			{
				activities.GET("", h.SpecialActivity.ListActivities)
				activities.GET("/rows", h.SpecialActivity.ListActivityRows)
				activities.GET("/:id", h.SpecialActivity.GetActivity)
				activities.POST("", admin, h.SpecialActivity.CreateActivity)
				activities.PUT("/:id", admin, h.SpecialActivity.UpdateActivity)
				activities.DELETE("/:id", admin, h.SpecialActivity.DeleteActivity)
			}

			// 备注
			activityNotes := authorized.Group("/activity-notes")
			{
				activityNotes.GET("", h.Note.ListActivityNotes)
				activityNotes.POST("", staff, h.Note.CreateActivityNote)
				activityNotes.PUT("/:id", staff, h.Note.UpdateActivityNote)
				activityNotes.DELETE("/:id", staff, h.Note.DeleteActivityNote)
			}
			notes := authorized.Group("/notes")
			{
				notes.GET("", h.Note.ListCourseNotes)
				notes.POST("", staff, h.Note.CreateCourseNote)
				notes.PUT("/:id", staff, h.Note.UpdateCourseNote)
				notes.DELETE("/:id", staff, h.Note.DeleteCourseNote)
			}

			// 工时统计与导出
			authorized.GET("/trainer-hours/:year", h.Hours.TrainerHours)
			authorized.GET("/trainer-hours/:year/:month", h.Hours.TrainerHours)

			export := authorized.Group("/export")
			{
				export.GET("/trainer-hours/:year", admin, h.Export.ExportTrainerHours)
				export.GET("/trainer-hours/:year/:month", admin, h.Export.ExportTrainerHours)
				export.GET("/week.ics", h.Export.ExportWeekICS)
			}
		}
	}

	return r
}
