package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/XpertCoder-Software-Solutions/Watanya-Back/config"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/api/handler"
	"github.com/XpertCoder-Software-Solutions/Watanya-Back/internal/api/middleware"
)

const healthPath = "/health"

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时不启用限流；db 为 nil 时健康检查不探测数据库
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger, healthPath))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	// ── 健康检查 ──
	r.GET(healthPath, healthCheck(db))

	api := r.Group("/api")
	api.Use(middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger))
	{
		// 系统设置（单例）
		api.POST("/setting", h.Setting.CreateSetting)
		api.GET("/setting", h.Setting.GetSetting)
		api.PUT("/setting/:id", h.Setting.UpdateSetting)

		admin := api.Group("/admin")
		{
			subjects := admin.Group("/subjects")
			{
				subjects.GET("", h.Subject.ListSubjects)
				subjects.POST("", h.Subject.CreateSubject)
				subjects.GET("/:id", h.Subject.GetSubject)
				subjects.PUT("/:id", h.Subject.UpdateSubject)
				subjects.DELETE("/:id", h.Subject.DeleteSubject)
			}

			doctors := admin.Group("/doctors")
			{
				doctors.GET("", h.Doctor.ListDoctors)
				doctors.POST("", h.Doctor.CreateDoctor)
				doctors.GET("/:id", h.Doctor.GetDoctor)
				doctors.PUT("/:id", h.Doctor.UpdateDoctor)
				doctors.DELETE("/:id", h.Doctor.DeleteDoctor)
			}

			students := admin.Group("/students")
			{
				students.GET("", h.Student.ListStudents)
				students.POST("", h.Student.CreateStudent)
				// 静态段优先于 /:id
				students.GET("/export", h.Export.ExportStudents)
				students.GET("/:id", h.Student.GetStudent)
				students.PUT("/:id", h.Student.UpdateStudent)
				students.DELETE("/:id", h.Student.DeleteStudent)
			}
		}

		doctor := api.Group("/doctor")
		{
			doctor.GET("/:doctor_id/subjects", h.Subject.ListDoctorSubjects)
			doctor.GET("/:doctor_id/subjects/without-grades", h.Subject.ListDoctorSubjectsWithoutGrades)
			doctor.PUT("/subject/:subject_id", h.Subject.UpdateSubjectGrades)
			doctor.GET("/subject/:subject_id/grades/export", h.Export.ExportSubjectGrades)
		}

		student := api.Group("/student")
		{
			student.POST("/:student_id/grades", h.Grade.SubmitGrade)
			student.GET("/:student_id/grades", h.Grade.ListStudentGrades)
		}
	}

	return r
}

// healthCheck 存活探针；数据库不可达时返回 503
func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
				err = sqlDB.PingContext(ctx)
				cancel()
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
