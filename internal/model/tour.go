package model

import (
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/richtext"
)

// TourStatus 线路状态
type TourStatus string

const (
	StatusDraft     TourStatus = "draft"     // 草稿
	StatusPublished TourStatus = "published" // 已发布
	StatusArchived  TourStatus = "archived"  // 已下架
)

// Point 地理坐标，存储顺序为 [经度, 纬度]（GeoJSON 约定）
type Point [2]float64

// Lng 经度
func (p Point) Lng() float64 { return p[0] }

// Lat 纬度
func (p Point) Lat() float64 { return p[1] }

// TextItem 小条目记录（亮点/包含/不包含/携带物品）
type TextItem struct {
	Text string `json:"text"`
}

// LocaleItems 按语言划分的条目列表
type LocaleItems map[Locale][]TextItem

// LocaleRich 按语言划分的富文本
type LocaleRich map[Locale]*richtext.Document

// Pricing 价格信息
type Pricing struct {
	BasePrice float64 `json:"basePrice"`
	PriceType string  `json:"priceType"` // per_person / per_group
	Currency  string  `json:"currency"`
}

// Duration 时长信息
type Duration struct {
	Hours float64 `json:"hours"`
}

// Logistics 集合与行程信息
type Logistics struct {
	MeetingPointName LocaleText `json:"meetingPointName"`
	MeetingPoint     *Point     `json:"meetingPoint,omitempty"`
	MaxGroupSize     *float64   `json:"maxGroupSize,omitempty"`
}

// Accessibility 无障碍信息
type Accessibility struct {
	WheelchairAccessible *bool `json:"wheelchairAccessible,omitempty"`
	StrollerFriendly     *bool `json:"strollerFriendly,omitempty"`
}

// AgeRecommendation 年龄建议
type AgeRecommendation struct {
	MinAge *float64 `json:"minAge,omitempty"`
	MaxAge *float64 `json:"maxAge,omitempty"`
}

// Relation 关系引用：文档内部用代理 ID，交换边界用 slug
type Relation struct {
	ID   int64  `json:"id,omitempty"`
	Slug string `json:"slug,omitempty"`
}

// Media 媒体引用
type Media struct {
	URL string `json:"url"`
}

// Tour 线路文档
// 标量叶子可能是普通值，也可能是按语言划分的映射；slug 是自然键，全局唯一。
type Tour struct {
	ID     int64      `json:"id,omitempty"`
	Slug   string     `json:"slug"`
	Status TourStatus `json:"status"`

	Title            LocaleText `json:"title"`
	ShortDescription LocaleText `json:"shortDescription"`
	Description      LocaleRich `json:"description,omitempty"`

	Highlights  LocaleItems `json:"highlights,omitempty"`
	Included    LocaleItems `json:"included,omitempty"`
	Excluded    LocaleItems `json:"excluded,omitempty"`
	WhatToBring LocaleItems `json:"whatToBring,omitempty"`

	Pricing           Pricing           `json:"pricing"`
	Duration          Duration          `json:"duration"`
	Logistics         Logistics         `json:"logistics"`
	Languages         []string          `json:"languages,omitempty"`
	Difficulty        string            `json:"difficulty,omitempty"`
	Accessibility     Accessibility     `json:"accessibility"`
	AgeRecommendation AgeRecommendation `json:"ageRecommendation"`

	Guide         Relation   `json:"guide"`
	Categories    []Relation `json:"categories,omitempty"`
	Neighborhoods []Relation `json:"neighborhoods,omitempty"`
	Images        []Media    `json:"images,omitempty"`
}
