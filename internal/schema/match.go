package schema

import (
	"regexp"
	"strings"
)

var spaceRe = regexp.MustCompile(`\s+`)

// NormalizeHeader 规范化表头单元格
// 去首尾空白、折叠连续空白、统一小写；模糊匹配的两侧都经过它。
func NormalizeHeader(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\t", " ")
	name = spaceRe.ReplaceAllString(name, " ")
	return strings.ToLower(name)
}

// HeaderMatcher 表头到物理列键的模糊匹配器
// 显示名和原始键都可命中，因此重新导入自己的导出、或直接用键当表头都能工作。
type HeaderMatcher struct {
	byNormalized map[string]string
}

// NewHeaderMatcher 从注册表构建匹配器
func NewHeaderMatcher(cols []Column) *HeaderMatcher {
	m := &HeaderMatcher{byNormalized: make(map[string]string)}
	for _, c := range cols {
		keys := c.Keys()
		labels := c.Labels()
		for i, key := range keys {
			m.byNormalized[NormalizeHeader(key)] = key
			m.byNormalized[NormalizeHeader(labels[i])] = key
		}
	}
	return m
}

// Match 将表头单元格解析为物理列键
func (m *HeaderMatcher) Match(cell string) (string, bool) {
	key, ok := m.byNormalized[NormalizeHeader(cell)]
	return key, ok
}
