package api

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/format"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/importer"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/model"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/schema"
)

// Import 批量导入线路
// POST /api/import  (multipart: file, dryRun)
// 按扩展名选择格式适配器，.xlsx 走工作簿，其余按分隔文本处理。
func (h *Handler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取上传文件失败"})
		return
	}

	opts := model.ImportOptions{
		DryRun: c.DefaultPostForm("dryRun", "false") == "true",
	}

	adapter := adapterForFilename(header.Filename)

	coordinator := importer.NewCoordinator(h.store)
	result := coordinator.Run(data, adapter, opts)

	c.JSON(http.StatusOK, result)
}

// adapterForFilename 按扩展名选择格式适配器
func adapterForFilename(name string) format.Adapter {
	cols := schema.Columns()
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return format.NewExcelAdapter(cols)
	}
	return format.NewCSVAdapter(cols)
}
