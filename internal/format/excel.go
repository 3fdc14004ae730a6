package format

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/schema"
)

// SheetName 工作表名
const SheetName = "Tours"

// 列宽上下限
const (
	minColWidth = 10
	maxColWidth = 50
)

// neutralFill 不属于任何已知分组的列使用的底色
const neutralFill = "#E2E8F0"

// sectionFill 表头分组底色：列序号区间（0 起始，含两端）到颜色的静态映射
type sectionFill struct {
	from, to int
	color    string
}

// headerSections 表头分组
// 区间按展开后的物理列顺序计：标识 / 文本内容 / 条目列表 / 价格时长 / 行程 / 属性 / 关联
var headerSections = []sectionFill{
	{0, 1, "#DBEAFE"},
	{2, 10, "#DCFCE7"},
	{11, 22, "#FEF9C3"},
	{23, 26, "#FFEDD5"},
	{27, 31, "#FCE7F3"},
	{32, 37, "#E0E7FF"},
	{38, 40, "#F3E8FF"},
}

func fillForColumn(idx int) string {
	for _, s := range headerSections {
		if idx >= s.from && idx <= s.to {
			return s.color
		}
	}
	return neutralFill
}

// ExcelAdapter 工作簿适配器
type ExcelAdapter struct {
	cols    []schema.Column
	matcher *schema.HeaderMatcher
}

// NewExcelAdapter 创建 Excel 适配器
func NewExcelAdapter(cols []schema.Column) *ExcelAdapter {
	return &ExcelAdapter{
		cols:    cols,
		matcher: schema.NewHeaderMatcher(cols),
	}
}

// Serialize 写出单个工作表
// 表头加粗、按分组上色并冻结首行；列宽取表头与单元格的较长者，限制在固定区间内。
func (a *ExcelAdapter) Serialize(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	keys := schema.ColumnKeys(a.cols)
	labels := schema.HeaderLabels(a.cols)

	// 表头样式按底色缓存，同色列共用一个样式 ID
	styleByColor := make(map[string]int)
	for i, label := range labels {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, label); err != nil {
			return nil, err
		}

		color := fillForColumn(i)
		styleID, ok := styleByColor[color]
		if !ok {
			styleID, err = f.NewStyle(&excelize.Style{
				Font:      &excelize.Font{Bold: true},
				Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
				Alignment: &excelize.Alignment{Horizontal: "center"},
			})
			if err != nil {
				return nil, err
			}
			styleByColor[color] = styleID
		}
		if err := f.SetCellStyle(SheetName, cell, cell, styleID); err != nil {
			return nil, err
		}
	}

	// 数据行
	for r, row := range rows {
		for c, key := range keys {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, row[key]); err != nil {
				return nil, err
			}
		}
	}

	// 冻结表头行
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	// 自适应列宽，按字符数而不是字节数计，瑞典语/德语内容才不会被放大
	for i, key := range keys {
		width := utf8.RuneCountInString(labels[i])
		for _, row := range rows {
			if l := utf8.RuneCountInString(row[key]); l > width {
				width = l
			}
		}
		if width < minColWidth {
			width = minColWidth
		}
		if width > maxColWidth {
			width = maxColWidth
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, float64(width)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse 读取第一个工作表
// 表头经过模糊匹配（显示名或原始键均可，大小写与空白不敏感）；
// 一个都匹配不上视为致命错误；单元格值一律转成字符串；全空行跳过。
func (a *ExcelAdapter) Parse(data []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("无法读取工作簿: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("工作簿没有工作表")
	}

	// GetRows 已把数值单元格转成十进制字符串
	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}
	if len(grid) == 0 {
		return []Row{}, nil
	}

	keyByIndex := make(map[int]string)
	for i, cell := range grid[0] {
		if key, ok := a.matcher.Match(cell); ok {
			keyByIndex[i] = key
		}
	}
	if len(keyByIndex) == 0 {
		return nil, errors.New("表头没有匹配到任何已知列")
	}

	rows := make([]Row, 0, len(grid)-1)
	for _, rec := range grid[1:] {
		row := Row{}
		empty := true
		for i, cell := range rec {
			key, ok := keyByIndex[i]
			if !ok {
				continue
			}
			v := strings.TrimSpace(cell)
			row[key] = v
			if v != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
