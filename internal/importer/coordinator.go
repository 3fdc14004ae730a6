package importer

import (
	"fmt"
	"time"

	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/format"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/model"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/parser"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/schema"
)

// Repository 文档仓库
// 协调器只做三类访问：取全部已存在的自然键、取关系集合的 slug→ID 查找表、建档。
type Repository interface {
	TourSlugs() (map[string]struct{}, error)
	LookupSlugIDs(collection string) (map[string]int64, error)
	CreateTour(t *model.Tour) (int64, error)
}

// Coordinator 导入协调器
// 逐行顺序推进：解析 → 校验 → 查重 → 关系解析 → 建档/跳过/出错，
// 行与行互不影响，批内查重依赖行序，因此不做并行。
type Coordinator struct {
	repo      Repository
	validator *parser.Validator
}

// NewCoordinator 创建导入协调器
func NewCoordinator(repo Repository) *Coordinator {
	return &Coordinator{
		repo:      repo,
		validator: parser.NewValidator(schema.Columns()),
	}
}

// Run 执行一次导入
// 所有结果都以数据形式汇总返回，唯一的整批中止情形是输入不可解析（记为第 0 行错误）。
func (c *Coordinator) Run(data []byte, adapter format.Adapter, opts model.ImportOptions) *model.ImportResult {
	start := time.Now()
	result := &model.ImportResult{
		Errors:   []model.RowError{},
		Warnings: []model.RowWarning{},
	}
	defer func() { result.Duration = time.Since(start) }()

	rows, err := adapter.Parse(data)
	if err != nil {
		result.Errors = append(result.Errors, model.RowError{
			Row:     0,
			Message: fmt.Sprintf("解析输入失败: %v", err),
		})
		return result
	}

	if len(rows) == 0 {
		result.Warnings = append(result.Warnings, model.RowWarning{
			Row:     0,
			Message: "没有可导入的数据行",
		})
		return result
	}

	// 预取：已存在的自然键 + 各关系集合的查找表，整批只查一次
	known, err := c.repo.TourSlugs()
	if err != nil {
		result.Errors = append(result.Errors, model.RowError{
			Row:     0,
			Message: fmt.Sprintf("读取现有线路失败: %v", err),
		})
		return result
	}
	guides, err := c.repo.LookupSlugIDs("guides")
	if err != nil {
		result.Errors = append(result.Errors, model.RowError{
			Row:     0,
			Message: fmt.Sprintf("读取向导列表失败: %v", err),
		})
		return result
	}
	categories, err := c.repo.LookupSlugIDs("categories")
	if err != nil {
		result.Errors = append(result.Errors, model.RowError{
			Row:     0,
			Message: fmt.Sprintf("读取分类列表失败: %v", err),
		})
		return result
	}
	neighborhoods, err := c.repo.LookupSlugIDs("neighborhoods")
	if err != nil {
		result.Errors = append(result.Errors, model.RowError{
			Row:     0,
			Message: fmt.Sprintf("读取街区列表失败: %v", err),
		})
		return result
	}

	for i, row := range rows {
		// 表头占第 1 行，首个数据行为第 2 行
		rowNum := i + 2

		if row.Empty() {
			continue
		}

		typed, errs := c.validator.Validate(row, rowNum)
		if len(errs) > 0 {
			result.Errors = append(result.Errors, errs...)
			continue
		}

		// 查重：预取集合和本批已接受的行都算已知
		slug := typed.String("slug")
		if _, dup := known[slug]; dup {
			result.Warnings = append(result.Warnings, model.RowWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("slug %q 已存在，跳过", slug),
			})
			result.Skipped++
			continue
		}

		// 必选关系找不到会阻断整行，这是唯一阻断行的关系失败
		guideSlug := typed.String("guide_slug")
		guideID, ok := guides[guideSlug]
		if !ok {
			result.Errors = append(result.Errors, model.RowError{
				Row:     rowNum,
				Field:   "guide_slug",
				Message: fmt.Sprintf("找不到向导 %q", guideSlug),
			})
			continue
		}

		rel := ResolvedRelations{
			Guide: model.Relation{ID: guideID, Slug: guideSlug},
		}
		rel.Categories = c.resolveMany(typed.Strings("categories_slugs"), categories, "分类", rowNum, result)
		rel.Neighborhoods = c.resolveMany(typed.Strings("neighborhoods_slugs"), neighborhoods, "街区", rowNum, result)

		if opts.DryRun {
			// 不落库，但仍把 slug 记入已知集合，本批后续重复行照样能查出来
			result.Created++
			known[slug] = struct{}{}
			continue
		}

		tour := BuildTour(typed, rel)
		if _, err := c.repo.CreateTour(tour); err != nil {
			result.Errors = append(result.Errors, model.RowError{
				Row:     rowNum,
				Message: fmt.Sprintf("创建失败: %v", err),
			})
			continue
		}

		result.Created++
		known[slug] = struct{}{}
	}

	return result
}

// resolveMany 解析可选的多值关系
// 解析不出的自然键只产生警告并从结果里省略，不阻断整行。
func (c *Coordinator) resolveMany(slugs []string, lookup map[string]int64, kind string, rowNum int, result *model.ImportResult) []model.Relation {
	var rels []model.Relation
	for _, slug := range slugs {
		id, ok := lookup[slug]
		if !ok {
			result.Warnings = append(result.Warnings, model.RowWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("找不到%s %q，已忽略", kind, slug),
			})
			continue
		}
		rels = append(rels, model.Relation{ID: id, Slug: slug})
	}
	return rels
}
