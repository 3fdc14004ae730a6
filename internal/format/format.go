package format

import "strings"

// Row 物理列键到原始单元格值的映射
// 两种物理格式在校验之前都先归一到这个形状，业务管线只认它。
type Row map[string]string

// Empty 整行是否为空（所有单元格去空白后都为空）
func (r Row) Empty() bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Adapter 物理格式适配器
// 解析失败属于批级致命错误，由调用方整体中止。
type Adapter interface {
	// Parse 把文件字节解析为行集合
	Parse(data []byte) ([]Row, error)
	// Serialize 把行集合按注册表顺序写成文件字节
	Serialize(rows []Row) ([]byte, error)
}
