package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/format"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/model"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/schema"
)

// Validator 行校验器
// 把未定型的字符串行转换成带类型的行；一行的所有字段错误一次收齐，不在首个错误处中断。
type Validator struct {
	cols []schema.Column
}

// NewValidator 创建行校验器
func NewValidator(cols []schema.Column) *Validator {
	return &Validator{cols: cols}
}

// Validate 校验并转换一行
// rowNum 为 1 起始的行号（表头占第 1 行，首个数据行为第 2 行）。
// 注册表之外的列直接忽略，保证注册表扩列后旧文件仍可导入。
func (v *Validator) Validate(row format.Row, rowNum int) (model.TypedRow, []model.RowError) {
	typed := model.TypedRow{}
	var errs []model.RowError

	addErr := func(field, msg string) {
		errs = append(errs, model.RowError{Row: rowNum, Field: field, Message: msg})
	}

	for _, col := range v.cols {
		if col.Localized {
			for _, loc := range model.Locales() {
				key := schema.LocalizedKey(col.Key, loc)
				// 必填只约束默认语言，其余语言在导入构建时回退
				required := col.Required && loc == model.DefaultLocale
				v.validateCell(col, key, strings.TrimSpace(row[key]), required, typed, addErr)
			}
			continue
		}
		v.validateCell(col, col.Key, strings.TrimSpace(row[col.Key]), col.Required, typed, addErr)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return typed, nil
}

// validateCell 校验单个物理列，switch 必须覆盖所有物理类型
func (v *Validator) validateCell(col schema.Column, key, raw string, required bool, typed model.TypedRow, addErr func(field, msg string)) {
	switch col.Type {
	case schema.TypeText, schema.TypeRichText, schema.TypeRelationship:
		if raw == "" {
			if required {
				addErr(key, "必填字段不能为空")
			}
			return
		}
		typed[key] = raw

	case schema.TypeNumber:
		if raw == "" {
			if required {
				addErr(key, "必填字段不能为空")
			}
			return
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			if required {
				addErr(key, fmt.Sprintf("不是合法数字: %q", raw))
			}
			// 可选数值列解析失败按缺失处理，不报错
			return
		}
		if col.Min != nil && f < *col.Min {
			addErr(key, fmt.Sprintf("不能小于 %v", *col.Min))
			return
		}
		typed[key] = f

	case schema.TypeBoolean:
		// 只有字面量 "true" 和 "1" 为真，其余（含空）一律为假，永不报错
		typed[key] = raw == "true" || raw == "1"

	case schema.TypeSelect:
		if raw == "" {
			if col.Default != "" {
				typed[key] = col.Default
				return
			}
			if required {
				addErr(key, "必填字段不能为空")
			}
			return
		}
		if !contains(col.Options, raw) {
			addErr(key, fmt.Sprintf("取值 %q 不在 %s 之内", raw, strings.Join(col.Options, "/")))
			return
		}
		typed[key] = raw

	case schema.TypeMultiselect:
		items := splitList(raw)
		for _, item := range items {
			if !contains(col.Options, item) {
				addErr(key, fmt.Sprintf("取值 %q 不在 %s 之内", item, strings.Join(col.Options, "/")))
				return
			}
		}
		typed[key] = items

	case schema.TypeArray, schema.TypeLocalizedArray, schema.TypeRelationshipMany:
		// 分号列表：逐项去空白、丢弃空项，空输入得到空数组，永不报错
		typed[key] = splitList(raw)

	case schema.TypePoint:
		// 输入 "lat,lng"，存储时交换为 [lng,lat]；解析失败按缺失处理
		if p, ok := parsePoint(raw); ok {
			typed[key] = p
		}
	}
}

// splitList 按分号拆分列表，去空白并丢弃空项
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ";")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// parsePoint 解析 "lat,lng"，成功时按几何约定返回 [lng,lat]
func parsePoint(raw string) (model.Point, bool) {
	if raw == "" {
		return model.Point{}, false
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return model.Point{}, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return model.Point{}, false
	}
	return model.Point{lng, lat}, true
}

func contains(items []string, v string) bool {
	for _, it := range items {
		if it == v {
			return true
		}
	}
	return false
}
