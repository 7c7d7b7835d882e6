package app

import (
	"org_diagnostics/docs"
	"org_diagnostics/internal/middleware"
	"org_diagnostics/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 页面（表单 / 报告）
	a.registerPageRoutes(router, c, s)

	// 2. JSON 接口
	a.registerAPIRoutes(router, c, s)
}

func (a *App) registerPageRoutes(router *gin.Engine, c *controllers, s *services) {
	router.GET("/", c.assessment.Index)

	pages := router.Group("/sessions/:id")
	pages.Use(middleware.SessionMiddleware(s.session))
	{
		pages.GET("", c.assessment.Form)
		pages.POST("/submit", c.assessment.SubmitForm)
		pages.GET("/report", c.assessment.ReportPage)
		pages.POST("/reset", c.assessment.ResetForm)
		pages.GET("/chart.svg", c.assessment.Chart)
		pages.GET("/export.xlsx", c.assessment.Export)
	}
}

func (a *App) registerAPIRoutes(router *gin.Engine, c *controllers, s *services) {
	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.GET("/catalog", c.assessment.GetCatalog)
		api.POST("/sessions", c.assessment.CreateSession)
	}

	session := api.Group("/sessions/:id")
	session.Use(middleware.SessionMiddleware(s.session))
	{
		session.GET("", c.assessment.GetSession)
		session.POST("/submit", c.assessment.Submit)
		session.GET("/report", c.assessment.GetReport)
		session.POST("/reset", c.assessment.Reset)
		session.GET("/export", c.assessment.Export)
		session.GET("/chart.svg", c.assessment.Chart)
	}
}
