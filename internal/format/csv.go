package format

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/schema"
)

// utf8BOM 写在文件最前面，Excel 依赖它识别 UTF-8
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// sepHint 分隔符提示行，Excel 打开 CSV 时读取
const sepHint = "sep=,"

// CSVAdapter 字符分隔文本适配器
type CSVAdapter struct {
	cols    []schema.Column
	matcher *schema.HeaderMatcher
}

// NewCSVAdapter 创建 CSV 适配器
func NewCSVAdapter(cols []schema.Column) *CSVAdapter {
	return &CSVAdapter{
		cols:    cols,
		matcher: schema.NewHeaderMatcher(cols),
	}
}

// Serialize 写出 BOM + sep 提示行 + 显示名表头 + 数据行
// 数据行按注册表键顺序排列，引号转义交给标准 CSV 写出器。
func (a *CSVAdapter) Serialize(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	buf.WriteString(sepHint + "\n")

	w := csv.NewWriter(&buf)
	if err := w.Write(schema.HeaderLabels(a.cols)); err != nil {
		return nil, fmt.Errorf("写表头失败: %w", err)
	}

	keys := schema.ColumnKeys(a.cols)
	for _, row := range rows {
		record := make([]string, len(keys))
		for i, key := range keys {
			record[i] = row[key]
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("写数据行失败: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse 解析 CSV 字节
// 容忍 BOM、sep 提示行、空行和列数不一致的行；表头经过模糊匹配，
// 未识别的列忽略；引号结构损坏返回单个批级错误。
func (a *CSVAdapter) Parse(data []byte) ([]Row, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // 行列数允许与表头不同

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV 结构损坏: %w", err)
	}

	// 跳过 sep 提示行与全空行，找到表头
	var header []string
	start := 0
	for i, rec := range records {
		if isSepHint(rec) || recordEmpty(rec) {
			continue
		}
		header = rec
		start = i + 1
		break
	}
	if header == nil {
		return []Row{}, nil
	}

	// 表头单元格 → 物理列键
	keyByIndex := make(map[int]string)
	for i, cell := range header {
		if key, ok := a.matcher.Match(cell); ok {
			keyByIndex[i] = key
		}
	}
	// 一个都匹配不上说明拿错了文件，静默吞掉会让整次导入变成无声空跑
	if len(keyByIndex) == 0 {
		return nil, errors.New("表头没有匹配到任何已知列")
	}

	rows := make([]Row, 0, len(records)-start)
	for _, rec := range records[start:] {
		if recordEmpty(rec) {
			continue
		}
		row := Row{}
		for i, cell := range rec {
			if key, ok := keyByIndex[i]; ok {
				row[key] = strings.TrimSpace(cell)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isSepHint(rec []string) bool {
	return len(rec) >= 1 && strings.HasPrefix(strings.TrimSpace(rec[0]), "sep=")
}

func recordEmpty(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
