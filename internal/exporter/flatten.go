package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/format"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/model"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/richtext"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/schema"
)

// Flatten 把一个线路文档展开成覆盖全部物理列的扁平行
// 这是一个全函数：渲染不了的字段降级为空串，绝不失败。
// 导出方向不做语言回退——缺失的语言就是空串，不用默认语言顶替。
func Flatten(t *model.Tour, cols []schema.Column) format.Row {
	row := format.Row{}
	for _, col := range cols {
		if col.Localized {
			for _, loc := range model.Locales() {
				row[schema.LocalizedKey(col.Key, loc)] = flattenLocalized(t, col, loc)
			}
			continue
		}
		row[col.Key] = flattenPlain(t, col)
	}
	return row
}

// flattenLocalized 渲染按语言展开的列
func flattenLocalized(t *model.Tour, col schema.Column, loc model.Locale) string {
	switch col.Key {
	case "title":
		return t.Title.Get(loc)
	case "shortDescription":
		return t.ShortDescription.Get(loc)
	case "description":
		if t.Description == nil {
			return ""
		}
		return richtext.ToPlainText(t.Description[loc])
	case "highlights":
		return joinItems(t.Highlights, loc)
	case "included":
		return joinItems(t.Included, loc)
	case "excluded":
		return joinItems(t.Excluded, loc)
	case "whatToBring":
		return joinItems(t.WhatToBring, loc)
	case "logistics_meetingPointName":
		return t.Logistics.MeetingPointName.Get(loc)
	}
	return ""
}

// flattenPlain 渲染不分语言的列
func flattenPlain(t *model.Tour, col schema.Column) string {
	switch col.Key {
	case "slug":
		return t.Slug
	case "status":
		return string(t.Status)
	case "pricing_basePrice":
		return formatFloat(t.Pricing.BasePrice)
	case "pricing_priceType":
		return t.Pricing.PriceType
	case "pricing_currency":
		return t.Pricing.Currency
	case "duration_hours":
		return formatFloat(t.Duration.Hours)
	case "logistics_meetingPoint":
		// 存储顺序是 [lng,lat]，对外翻回 "lat,lng"
		if p := t.Logistics.MeetingPoint; p != nil {
			return fmt.Sprintf("%s,%s", formatFloat(p.Lat()), formatFloat(p.Lng()))
		}
		return ""
	case "logistics_maxGroupSize":
		return formatFloatPtr(t.Logistics.MaxGroupSize)
	case "languages":
		return strings.Join(t.Languages, ";")
	case "difficulty":
		return t.Difficulty
	case "accessibility_wheelchairAccessible":
		return formatBoolPtr(t.Accessibility.WheelchairAccessible)
	case "accessibility_strollerFriendly":
		return formatBoolPtr(t.Accessibility.StrollerFriendly)
	case "ageRecommendation_minAge":
		return formatFloatPtr(t.AgeRecommendation.MinAge)
	case "ageRecommendation_maxAge":
		return formatFloatPtr(t.AgeRecommendation.MaxAge)
	case "guide_slug":
		// 有自然键用自然键，只有代理 ID 时退回 ID 字符串
		if t.Guide.Slug != "" {
			return t.Guide.Slug
		}
		if t.Guide.ID != 0 {
			return strconv.FormatInt(t.Guide.ID, 10)
		}
		return ""
	case "categories_slugs":
		return joinSlugs(t.Categories)
	case "neighborhoods_slugs":
		return joinSlugs(t.Neighborhoods)
	case "images":
		urls := make([]string, 0, len(t.Images))
		for _, m := range t.Images {
			if m.URL != "" {
				urls = append(urls, m.URL)
			}
		}
		return strings.Join(urls, ";")
	}
	return ""
}

// joinItems 按语言取条目列表并用分号连接声明的子字段
func joinItems(items model.LocaleItems, loc model.Locale) string {
	if items == nil {
		return ""
	}
	texts := make([]string, 0, len(items[loc]))
	for _, it := range items[loc] {
		texts = append(texts, it.Text)
	}
	return strings.Join(texts, ";")
}

// joinSlugs 分号连接自然键，解析不出自然键的条目跳过
func joinSlugs(rels []model.Relation) string {
	slugs := make([]string, 0, len(rels))
	for _, r := range rels {
		if r.Slug != "" {
			slugs = append(slugs, r.Slug)
		}
	}
	return strings.Join(slugs, ";")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatFloatPtr(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

// formatBoolPtr 布尔转字面量，值不存在（既非真也非假）时为空串
func formatBoolPtr(b *bool) string {
	if b == nil {
		return ""
	}
	if *b {
		return "true"
	}
	return "false"
}
