package exporter

import (
	"fmt"

	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/format"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/model"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/schema"
)

// TourSource 导出数据源
// 返回的文档要求关联和全部语言都已加载。
type TourSource interface {
	ListTours(status string, limit int) ([]*model.Tour, error)
}

// Exporter 线路导出器
type Exporter struct {
	src  TourSource
	cols []schema.Column
}

// NewExporter 创建导出器
func NewExporter(src TourSource) *Exporter {
	return &Exporter{
		src:  src,
		cols: schema.Columns(),
	}
}

// Export 查询、展开并序列化
// 没有部分结果：查询失败则整次导出失败。
func (e *Exporter) Export(opts model.ExportOptions, adapter format.Adapter) ([]byte, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = model.DefaultExportLimit
	}

	tours, err := e.src.ListTours(opts.Status, limit)
	if err != nil {
		return nil, fmt.Errorf("读取线路数据失败: %w", err)
	}

	rows := make([]format.Row, 0, len(tours))
	for _, t := range tours {
		rows = append(rows, Flatten(t, e.cols))
	}

	return adapter.Serialize(rows)
}
