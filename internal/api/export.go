package api

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/config"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/exporter"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/format"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/model"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/schema"
)

// 下载令牌有效期
const downloadTTL = 30 * time.Minute

// ExportRequest 导出请求
type ExportRequest struct {
	Format string `json:"format"` // xlsx / csv，默认 xlsx
	Status string `json:"status"` // 状态过滤，空为全部
	Limit  int    `json:"limit"`  // 行数上限，0 取配置默认值
}

// Export 批量导出线路
// POST /api/export
// 文件写入 exports 目录，返回一次性下载地址。
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
			return
		}
	}

	ext := "xlsx"
	var adapter format.Adapter = format.NewExcelAdapter(schema.Columns())
	if req.Format == "csv" {
		ext = "csv"
		adapter = format.NewCSVAdapter(schema.Columns())
	}

	limit := req.Limit
	if limit <= 0 {
		limit = h.cfg.Export.DefaultLimit
	}

	exp := exporter.NewExporter(h.store)
	data, err := exp.Export(model.ExportOptions{Status: req.Status, Limit: limit}, adapter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("导出失败: %v", err)})
		return
	}

	fileName := fmt.Sprintf("tours_export_%s.%s", time.Now().Format("20060102_150405"), ext)
	filePath := config.GetDataPath(h.cfg, "exports", fileName)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写出导出文件失败"})
		return
	}

	token := h.downloads.put(filePath, fileName, downloadTTL)

	c.JSON(http.StatusOK, gin.H{
		"fileName":    fileName,
		"downloadUrl": fmt.Sprintf("/api/export/download/%s", token),
	})
}

// DownloadExport 下载导出文件
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	dl, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接不存在或已过期"})
		return
	}

	contentType := "text/csv; charset=utf-8"
	if len(dl.fileName) > 5 && dl.fileName[len(dl.fileName)-5:] == ".xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", dl.fileName))
	c.Header("Content-Type", contentType)
	c.File(dl.filePath)
}
