package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/config"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/store"
)

// Handler API 处理器
type Handler struct {
	store     *store.Store
	cfg       *config.AppConfig
	downloads *exportDownloadStore
}

// NewHandler 创建 API 处理器
func NewHandler(store *store.Store, cfg *config.AppConfig) *Handler {
	return &Handler{
		store:     store,
		cfg:       cfg,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 批量导入
	router.POST("/import", h.Import)

	// 批量导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)

	// 线路查询
	router.GET("/tours", h.ListTours)
}
