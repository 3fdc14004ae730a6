package model

import "time"

// TypedRow 校验并完成类型转换后的行
// 键为物理列键（按语言展开后的键），值为字段的最终类型。
type TypedRow map[string]any

// String 读取字符串字段，缺失时返回空串
func (r TypedRow) String(key string) string {
	v, _ := r[key].(string)
	return v
}

// Float 读取数值字段
func (r TypedRow) Float(key string) (float64, bool) {
	v, ok := r[key].(float64)
	return v, ok
}

// Bool 读取布尔字段
func (r TypedRow) Bool(key string) bool {
	v, _ := r[key].(bool)
	return v
}

// Strings 读取字符串数组字段
func (r TypedRow) Strings(key string) []string {
	v, _ := r[key].([]string)
	return v
}

// RowError 行级错误
// Row 为 1 起始的行号（表头为第 1 行，首个数据行为第 2 行）；整批失败时为 0。
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// RowWarning 行级警告
type RowWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult 导入结果汇总
// 逐行累积，行与行之间互不回滚。
type ImportResult struct {
	Created  int           `json:"created"`
	Skipped  int           `json:"skipped"`
	Errors   []RowError    `json:"errors"`
	Warnings []RowWarning  `json:"warnings"`
	Duration time.Duration `json:"duration"`
}

// ImportOptions 导入选项
type ImportOptions struct {
	DryRun bool `json:"dryRun"` // 只校验与解析，不落库
}

// DefaultExportLimit 导出行数默认上限
const DefaultExportLimit = 10000

// ExportOptions 导出选项
type ExportOptions struct {
	Status string `json:"status,omitempty"` // 状态过滤，空为全部
	Limit  int    `json:"limit,omitempty"`  // 0 时取 DefaultExportLimit
}
