package schema

import (
	"fmt"

	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/model"
)

// PhysicalType 列的物理类型
// 封闭枚举：flatten / validate / unflatten 三处 switch 必须穷尽所有取值。
type PhysicalType string

const (
	TypeText             PhysicalType = "text"
	TypeNumber           PhysicalType = "number"
	TypeBoolean          PhysicalType = "boolean"
	TypeSelect           PhysicalType = "select"
	TypeMultiselect      PhysicalType = "multiselect"
	TypeArray            PhysicalType = "array"
	TypeRelationship     PhysicalType = "relationship"
	TypeRelationshipMany PhysicalType = "relationshipMany"
	TypeRichText         PhysicalType = "richtext"
	TypePoint            PhysicalType = "point"
	TypeLocalizedArray   PhysicalType = "localizedArray"
)

// Column 列定义
// 注册表中的顺序是列位置的唯一依据，表头生成、导出展开、导入解析都从它推导。
type Column struct {
	Key        string       // 物理列键（按语言展开前）
	Path       string       // 文档内路径
	Type       PhysicalType
	Localized  bool
	ItemField  string   // localizedArray 的子字段名
	Label      string   // 表头显示名
	Required   bool     // 必填（按语言展开的列只要求默认语言）
	Options    []string // select / multiselect 的合法取值
	Default    string   // select 缺省值
	Min        *float64 // number 下限
	Collection string   // relationship 的目标集合
}

func minv(v float64) *float64 { return &v }

// Columns 线路的列注册表
func Columns() []Column {
	return []Column{
		{Key: "slug", Path: "slug", Type: TypeText, Label: "Slug", Required: true},
		{Key: "status", Path: "status", Type: TypeSelect, Label: "Status",
			Options: []string{"draft", "published", "archived"}, Default: "draft"},
		{Key: "title", Path: "title", Type: TypeText, Localized: true, Label: "Title", Required: true},
		{Key: "shortDescription", Path: "shortDescription", Type: TypeText, Localized: true, Label: "Short Description", Required: true},
		{Key: "description", Path: "description", Type: TypeRichText, Localized: true, Label: "Description"},
		{Key: "highlights", Path: "highlights", Type: TypeLocalizedArray, Localized: true, ItemField: "text", Label: "Highlights"},
		{Key: "included", Path: "included", Type: TypeLocalizedArray, Localized: true, ItemField: "text", Label: "Included"},
		{Key: "excluded", Path: "excluded", Type: TypeLocalizedArray, Localized: true, ItemField: "text", Label: "Excluded"},
		{Key: "whatToBring", Path: "whatToBring", Type: TypeLocalizedArray, Localized: true, ItemField: "text", Label: "What To Bring"},
		{Key: "pricing_basePrice", Path: "pricing.basePrice", Type: TypeNumber, Label: "Base Price", Required: true, Min: minv(0)},
		{Key: "pricing_priceType", Path: "pricing.priceType", Type: TypeSelect, Label: "Price Type",
			Options: []string{"per_person", "per_group"}, Required: true},
		{Key: "pricing_currency", Path: "pricing.currency", Type: TypeSelect, Label: "Currency",
			Options: []string{"SEK", "EUR"}, Default: "SEK"},
		{Key: "duration_hours", Path: "duration.hours", Type: TypeNumber, Label: "Duration (hours)", Required: true, Min: minv(0.5)},
		{Key: "logistics_meetingPointName", Path: "logistics.meetingPointName", Type: TypeText, Localized: true, Label: "Meeting Point Name", Required: true},
		{Key: "logistics_meetingPoint", Path: "logistics.meetingPoint", Type: TypePoint, Label: "Meeting Point (lat,lng)"},
		{Key: "logistics_maxGroupSize", Path: "logistics.maxGroupSize", Type: TypeNumber, Label: "Max Group Size"},
		{Key: "languages", Path: "languages", Type: TypeMultiselect, Label: "Languages",
			Options: []string{"sv", "en", "de"}},
		{Key: "difficulty", Path: "difficulty", Type: TypeSelect, Label: "Difficulty",
			Options: []string{"easy", "moderate", "challenging"}, Default: "easy"},
		{Key: "accessibility_wheelchairAccessible", Path: "accessibility.wheelchairAccessible", Type: TypeBoolean, Label: "Wheelchair Accessible"},
		{Key: "accessibility_strollerFriendly", Path: "accessibility.strollerFriendly", Type: TypeBoolean, Label: "Stroller Friendly"},
		{Key: "ageRecommendation_minAge", Path: "ageRecommendation.minAge", Type: TypeNumber, Label: "Min Age"},
		{Key: "ageRecommendation_maxAge", Path: "ageRecommendation.maxAge", Type: TypeNumber, Label: "Max Age"},
		{Key: "guide_slug", Path: "guide", Type: TypeRelationship, Label: "Guide Slug", Required: true, Collection: "guides"},
		{Key: "categories_slugs", Path: "categories", Type: TypeRelationshipMany, Label: "Category Slugs", Collection: "categories"},
		{Key: "neighborhoods_slugs", Path: "neighborhoods", Type: TypeRelationshipMany, Label: "Neighborhood Slugs", Collection: "neighborhoods"},
		{Key: "images", Path: "images", Type: TypeArray, Label: "Image URLs"},
	}
}

// LocalizedKey 按语言展开后的物理列键
func LocalizedKey(key string, locale model.Locale) string {
	return fmt.Sprintf("%s_%s", key, locale)
}

// Keys 列定义展开后的物理列键
// 按语言展开的列恰好产生 |Locales| 个键，顺序跟随语言列表。
func (c Column) Keys() []string {
	if !c.Localized {
		return []string{c.Key}
	}
	keys := make([]string, 0, len(model.Locales()))
	for _, loc := range model.Locales() {
		keys = append(keys, LocalizedKey(c.Key, loc))
	}
	return keys
}

// Labels 列定义展开后的表头显示名
func (c Column) Labels() []string {
	if !c.Localized {
		return []string{c.Label}
	}
	labels := make([]string, 0, len(model.Locales()))
	for _, loc := range model.Locales() {
		labels = append(labels, fmt.Sprintf("%s (%s)", c.Label, loc.DisplayName()))
	}
	return labels
}

// ColumnKeys 注册表的有序物理列键
func ColumnKeys(cols []Column) []string {
	keys := make([]string, 0, len(cols))
	for _, c := range cols {
		keys = append(keys, c.Keys()...)
	}
	return keys
}

// HeaderLabels 注册表的有序表头显示名
// 导出与导入必须使用同一函数，保证表头位置与键位置不漂移。
func HeaderLabels(cols []Column) []string {
	labels := make([]string, 0, len(cols))
	for _, c := range cols {
		labels = append(labels, c.Labels()...)
	}
	return labels
}
