package model

// Locale 内容语言
type Locale string

const (
	LocaleSV Locale = "sv" // 瑞典语（默认）
	LocaleEN Locale = "en" // 英语
	LocaleDE Locale = "de" // 德语
)

// DefaultLocale 默认/回退语言
const DefaultLocale = LocaleSV

// Locales 返回固定顺序的语言列表
// 所有按语言展开的列都遵循这个顺序
func Locales() []Locale {
	return []Locale{LocaleSV, LocaleEN, LocaleDE}
}

// DisplayName 语言的显示名称（用于表头）
func (l Locale) DisplayName() string {
	switch l {
	case LocaleSV:
		return "Swedish"
	case LocaleEN:
		return "English"
	case LocaleDE:
		return "German"
	}
	return string(l)
}

// LocaleText 按语言划分的文本值
type LocaleText map[Locale]string

// Get 获取指定语言的值，不存在时返回空串
func (t LocaleText) Get(l Locale) string {
	if t == nil {
		return ""
	}
	return t[l]
}
