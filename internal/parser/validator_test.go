package parser

import (
	"testing"

	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/format"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/model"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/schema"
)

// validRow 最小合法行
func validRow() format.Row {
	return format.Row{
		"slug":                          "test-tour",
		"title_sv":                      "Test",
		"shortDescription_sv":           "x",
		"pricing_basePrice":             "500",
		"pricing_priceType":             "per_person",
		"duration_hours":                "2",
		"guide_slug":                    "erik-guide",
		"logistics_meetingPointName_sv": "Central",
	}
}

func newTestValidator() *Validator {
	return NewValidator(schema.Columns())
}

func TestValidate_MinimalValidRow(t *testing.T) {
	t.Parallel()

	typed, errs := newTestValidator().Validate(validRow(), 2)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}

	if typed.String("slug") != "test-tour" {
		t.Fatalf("slug = %q", typed.String("slug"))
	}
	if f, ok := typed.Float("pricing_basePrice"); !ok || f != 500 {
		t.Fatalf("basePrice = %v %v", f, ok)
	}
	// 缺省值：status/currency/difficulty 回落到声明的默认
	if typed.String("status") != "draft" {
		t.Fatalf("status default = %q", typed.String("status"))
	}
	if typed.String("pricing_currency") != "SEK" {
		t.Fatalf("currency default = %q", typed.String("pricing_currency"))
	}
	if typed.String("difficulty") != "easy" {
		t.Fatalf("difficulty default = %q", typed.String("difficulty"))
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	t.Parallel()

	row := validRow()
	delete(row, "slug")
	row["title_sv"] = "   "

	_, errs := newTestValidator().Validate(row, 4)
	if len(errs) < 2 {
		t.Fatalf("expected errors for slug and title_sv, got %+v", errs)
	}

	fields := map[string]int{}
	for _, e := range errs {
		if e.Row != 4 {
			t.Fatalf("error carries row %d, want 4", e.Row)
		}
		fields[e.Field]++
	}
	if fields["slug"] == 0 || fields["title_sv"] == 0 {
		t.Fatalf("missing expected fields in %+v", errs)
	}
}

func TestValidate_CollectsAllErrorsAtOnce(t *testing.T) {
	t.Parallel()

	row := validRow()
	row["pricing_basePrice"] = "abc"
	row["pricing_priceType"] = "per_moon"
	row["duration_hours"] = "0.1"

	_, errs := newTestValidator().Validate(row, 2)
	if len(errs) != 3 {
		t.Fatalf("expected 3 collected errors, got %d: %+v", len(errs), errs)
	}
}

func TestValidate_NumberMinimums(t *testing.T) {
	t.Parallel()

	cases := []struct {
		key   string
		value string
		ok    bool
	}{
		{"pricing_basePrice", "-5", false},
		{"pricing_basePrice", "0", true},
		{"duration_hours", "0.4", false},
		{"duration_hours", "0.5", true},
	}

	for _, tc := range cases {
		row := validRow()
		row[tc.key] = tc.value
		_, errs := newTestValidator().Validate(row, 2)
		if tc.ok && len(errs) != 0 {
			t.Fatalf("%s=%s: unexpected errors %+v", tc.key, tc.value, errs)
		}
		if !tc.ok {
			if len(errs) != 1 || errs[0].Field != tc.key {
				t.Fatalf("%s=%s: expected single error on field, got %+v", tc.key, tc.value, errs)
			}
		}
	}
}

func TestValidate_BooleanCoercion(t *testing.T) {
	t.Parallel()

	// 只有字面量 "true" 和 "1" 为真
	cases := map[string]bool{
		"true":  true,
		"1":     true,
		"false": false,
		"":      false,
		"yes":   false,
		"TRUE":  false,
		"0":     false,
	}

	for input, want := range cases {
		row := validRow()
		row["accessibility_wheelchairAccessible"] = input
		typed, errs := newTestValidator().Validate(row, 2)
		if len(errs) != 0 {
			t.Fatalf("input %q: boolean must never error, got %+v", input, errs)
		}
		if got := typed.Bool("accessibility_wheelchairAccessible"); got != want {
			t.Fatalf("input %q: got %v, want %v", input, got, want)
		}
	}
}

func TestValidate_SemicolonArrays(t *testing.T) {
	t.Parallel()

	row := validRow()
	row["highlights_sv"] = " Slottet ; ; Vasamuseet ;"
	row["images"] = ""

	typed, errs := newTestValidator().Validate(row, 2)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}

	got := typed.Strings("highlights_sv")
	if len(got) != 2 || got[0] != "Slottet" || got[1] != "Vasamuseet" {
		t.Fatalf("highlights = %v", got)
	}
	if imgs := typed.Strings("images"); len(imgs) != 0 {
		t.Fatalf("empty input must yield empty array, got %v", imgs)
	}
}

func TestValidate_PointAxisSwap(t *testing.T) {
	t.Parallel()

	row := validRow()
	row["logistics_meetingPoint"] = "59.3293,18.0686"

	typed, errs := newTestValidator().Validate(row, 2)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}

	p, ok := typed["logistics_meetingPoint"].(model.Point)
	if !ok {
		t.Fatal("point missing from typed row")
	}
	// 输入 lat,lng → 存储 [lng,lat]
	if p.Lng() != 18.0686 || p.Lat() != 59.3293 {
		t.Fatalf("point = %v", p)
	}
}

func TestValidate_PointGarbageIsAbsentNotError(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "garbage", "59.3", "a,b", "1,2,3"} {
		row := validRow()
		row["logistics_meetingPoint"] = input
		typed, errs := newTestValidator().Validate(row, 2)
		if len(errs) != 0 {
			t.Fatalf("input %q: point must never error, got %+v", input, errs)
		}
		if _, present := typed["logistics_meetingPoint"]; present {
			t.Fatalf("input %q: point must be absent", input)
		}
	}
}

func TestValidate_OptionalNumericGarbageIsAbsent(t *testing.T) {
	t.Parallel()

	row := validRow()
	row["ageRecommendation_minAge"] = "sju"
	row["logistics_maxGroupSize"] = ""

	typed, errs := newTestValidator().Validate(row, 2)
	if len(errs) != 0 {
		t.Fatalf("optional numerics must never error, got %+v", errs)
	}
	if _, ok := typed.Float("ageRecommendation_minAge"); ok {
		t.Fatal("non-numeric optional must be absent")
	}
	if _, ok := typed.Float("logistics_maxGroupSize"); ok {
		t.Fatal("empty optional must be absent")
	}
}

func TestValidate_SelectAndMultiselectOptions(t *testing.T) {
	t.Parallel()

	row := validRow()
	row["status"] = "vilande"
	_, errs := newTestValidator().Validate(row, 2)
	if len(errs) != 1 || errs[0].Field != "status" {
		t.Fatalf("expected select option error, got %+v", errs)
	}

	row = validRow()
	row["languages"] = "sv;fi"
	_, errs = newTestValidator().Validate(row, 2)
	if len(errs) != 1 || errs[0].Field != "languages" {
		t.Fatalf("expected multiselect option error, got %+v", errs)
	}

	row = validRow()
	row["languages"] = "sv; en ;de"
	typed, errs := newTestValidator().Validate(row, 2)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if got := typed.Strings("languages"); len(got) != 3 {
		t.Fatalf("languages = %v", got)
	}
}

func TestValidate_UnknownColumnsIgnored(t *testing.T) {
	t.Parallel()

	row := validRow()
	row["framtida_kolumn"] = "whatever"

	typed, errs := newTestValidator().Validate(row, 2)
	if len(errs) != 0 {
		t.Fatalf("unknown columns must be ignored, got %+v", errs)
	}
	if _, present := typed["framtida_kolumn"]; present {
		t.Fatal("unknown column leaked into typed row")
	}
}

func TestValidate_NonDefaultLocaleNotRequired(t *testing.T) {
	t.Parallel()

	// 只有默认语言受必填约束，其余语言留空合法
	row := validRow()
	row["title_en"] = ""
	row["title_de"] = ""

	_, errs := newTestValidator().Validate(row, 2)
	if len(errs) != 0 {
		t.Fatalf("non-default locales must not be required, got %+v", errs)
	}
}
