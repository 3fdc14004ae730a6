package importer

import (
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/model"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/richtext"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/schema"
)

// ResolvedRelations 关系解析结果
// 解析由协调器完成，这里只原样接收代理 ID，保持构建函数纯粹、可独立测试。
type ResolvedRelations struct {
	Guide         model.Relation
	Categories    []model.Relation
	Neighborhoods []model.Relation
}

// BuildTour 把带类型的行和已解析的关系组装成建档载荷
// 按语言展开的字段必须填满所有语言：某个语言的列为空时用默认语言的值回填。
// 注意这与导出方向相反——导出从不凭空合成值。
func BuildTour(typed model.TypedRow, rel ResolvedRelations) *model.Tour {
	t := &model.Tour{
		Slug:   typed.String("slug"),
		Status: model.TourStatus(typed.String("status")),

		Title:            localeText(typed, "title"),
		ShortDescription: localeText(typed, "shortDescription"),
		Description:      localeRich(typed, "description"),

		Highlights:  localeItems(typed, "highlights"),
		Included:    localeItems(typed, "included"),
		Excluded:    localeItems(typed, "excluded"),
		WhatToBring: localeItems(typed, "whatToBring"),

		Pricing: model.Pricing{
			PriceType: typed.String("pricing_priceType"),
			Currency:  typed.String("pricing_currency"),
		},
		Languages:  typed.Strings("languages"),
		Difficulty: typed.String("difficulty"),

		Guide:         rel.Guide,
		Categories:    rel.Categories,
		Neighborhoods: rel.Neighborhoods,
	}

	if f, ok := typed.Float("pricing_basePrice"); ok {
		t.Pricing.BasePrice = f
	}
	if f, ok := typed.Float("duration_hours"); ok {
		t.Duration.Hours = f
	}

	t.Logistics.MeetingPointName = localeText(typed, "logistics_meetingPointName")
	if p, ok := typed["logistics_meetingPoint"].(model.Point); ok {
		t.Logistics.MeetingPoint = &p
	}
	if f, ok := typed.Float("logistics_maxGroupSize"); ok {
		t.Logistics.MaxGroupSize = &f
	}

	wheelchair := typed.Bool("accessibility_wheelchairAccessible")
	stroller := typed.Bool("accessibility_strollerFriendly")
	t.Accessibility.WheelchairAccessible = &wheelchair
	t.Accessibility.StrollerFriendly = &stroller

	if f, ok := typed.Float("ageRecommendation_minAge"); ok {
		t.AgeRecommendation.MinAge = &f
	}
	if f, ok := typed.Float("ageRecommendation_maxAge"); ok {
		t.AgeRecommendation.MaxAge = &f
	}

	for _, url := range typed.Strings("images") {
		t.Images = append(t.Images, model.Media{URL: url})
	}

	return t
}

// localeText 读取按语言展开的文本，空语言回退到默认语言
func localeText(typed model.TypedRow, key string) model.LocaleText {
	def := typed.String(schema.LocalizedKey(key, model.DefaultLocale))
	out := model.LocaleText{}
	for _, loc := range model.Locales() {
		v := typed.String(schema.LocalizedKey(key, loc))
		if v == "" {
			v = def
		}
		if v != "" {
			out[loc] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// localeItems 读取按语言展开的条目列表，空语言回退到默认语言
func localeItems(typed model.TypedRow, key string) model.LocaleItems {
	def := typed.Strings(schema.LocalizedKey(key, model.DefaultLocale))
	out := model.LocaleItems{}
	for _, loc := range model.Locales() {
		vals := typed.Strings(schema.LocalizedKey(key, loc))
		if len(vals) == 0 {
			vals = def
		}
		if len(vals) == 0 {
			continue
		}
		items := make([]model.TextItem, 0, len(vals))
		for _, v := range vals {
			items = append(items, model.TextItem{Text: v})
		}
		out[loc] = items
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// localeRich 读取按语言展开的纯文本并构建富文本树，空语言回退到默认语言
func localeRich(typed model.TypedRow, key string) model.LocaleRich {
	def := typed.String(schema.LocalizedKey(key, model.DefaultLocale))
	out := model.LocaleRich{}
	for _, loc := range model.Locales() {
		v := typed.String(schema.LocalizedKey(key, loc))
		if v == "" {
			v = def
		}
		if v == "" {
			continue
		}
		out[loc] = richtext.FromPlainText(v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
