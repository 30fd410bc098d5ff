package http

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordgroups/internal/auth"
)

// requestLogFormat extends gin's default access log with the request id.
func requestLogFormat(param gin.LogFormatterParams) string {
	return fmt.Sprintf("[GIN] %v | %3d | %13v | %15s | %-7s %#v | %s\n%s",
		param.TimeStamp.Format(time.RFC3339),
		param.StatusCode,
		param.Latency,
		param.ClientIP,
		param.Method,
		param.Path,
		param.Keys[ContextKeyRequestID],
		param.ErrorMessage,
	)
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(gin.LoggerWithFormatter(requestLogFormat))
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	requireUser := func(c *gin.Context) { c.Next() }
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
		requireUser = cfg.AuthMiddleware.RequireUser()
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/metrics", metrics.Handler())

	api := router.Group("/api")

	if cfg.AuthController != nil && cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		cfg.AuthController.RegisterRoutes(api.Group("/auth"))
	}

	if cfg.LanguageStore != nil {
		languages := NewLanguagesController(cfg.LanguageStore)
		api.GET("/languages", languages.GetAllLanguages)
	}

	if cfg.WordGroupStore != nil {
		groups := NewWordGroupsController(cfg.WordGroupStore, cfg.TaskQueue)
		api.GET("/wordgroups", groups.List)
		api.GET("/wordgroups/pagination", groups.Pagination)
		api.GET("/wordgroups/:id", groups.Get)
		api.POST("/wordgroups", requireUser, groups.Create)
		api.POST("/wordgroups/bulk", requireUser, groups.Bulk)
		api.PUT("/wordgroups/:id", requireUser, groups.Update)
		api.DELETE("/wordgroups/:id", requireUser, groups.Delete)

		if cfg.TagStore != nil {
			tags := NewTagsController(cfg.TagStore, cfg.WordGroupStore)
			api.GET("/tags", tags.GetAllTags)
			api.GET("/tags/:name/wordgroups", tags.GetWordGroupsByTag)
		}
	}

	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue)
		api.GET("/tasks/types", tasksController.ListTaskTypes)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/run/:type", requireUser, tasksController.RunTask)
	}

	return router
}
