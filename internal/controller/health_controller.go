package controller

import (
	"net/http"
	"org_diagnostics/internal/catalog"
	"org_diagnostics/internal/service"
	"org_diagnostics/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Catalogs *catalog.Store
	Sessions *service.SessionService
}

func NewHealthController(catalogs *catalog.Store, sessions *service.SessionService) *HealthController {
	return &HealthController{Catalogs: catalogs, Sessions: sessions}
}

// @Summary 健康检查
// @Description 检查目录是否已加载
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	cat := c.Catalogs.Current()
	if cat == nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Catalog unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"catalog": gin.H{
				"source":     cat.Source,
				"categories": len(cat.Categories),
				"subtopics":  cat.SubtopicCount(),
				"loadedAt":   cat.LoadedAt,
			},
			"sessions": c.Sessions.Len(),
		},
	})
}
