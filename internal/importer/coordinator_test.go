package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/format"
	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/model"
)

// stubAdapter 直接返回预置行，跳过真实解码
type stubAdapter struct {
	rows []format.Row
	err  error
}

func (a *stubAdapter) Parse(data []byte) ([]format.Row, error) { return a.rows, a.err }
func (a *stubAdapter) Serialize(rows []format.Row) ([]byte, error) {
	return nil, errors.New("not implemented")
}

type stubRepo struct {
	slugs     map[string]struct{}
	lookups   map[string]map[string]int64
	created   []*model.Tour
	createErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		slugs: map[string]struct{}{},
		lookups: map[string]map[string]int64{
			"guides":        {"erik-guide": 3},
			"categories":    {"history": 1},
			"neighborhoods": {"gamla-stan": 5},
		},
	}
}

func (r *stubRepo) TourSlugs() (map[string]struct{}, error) { return r.slugs, nil }

func (r *stubRepo) LookupSlugIDs(collection string) (map[string]int64, error) {
	return r.lookups[collection], nil
}

func (r *stubRepo) CreateTour(t *model.Tour) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	r.created = append(r.created, t)
	return int64(len(r.created)), nil
}

func importRow() format.Row {
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

func TestRun_CreatesValidRow(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	result := NewCoordinator(repo).Run(nil, &stubAdapter{rows: []format.Row{importRow()}}, model.ImportOptions{})

	if result.Created != 1 || result.Skipped != 0 {
		t.Fatalf("created=%d skipped=%d", result.Created, result.Skipped)
	}
	if len(result.Errors) != 0 || len(result.Warnings) != 0 {
		t.Fatalf("errors=%+v warnings=%+v", result.Errors, result.Warnings)
	}

	if len(repo.created) != 1 {
		t.Fatalf("repo received %d tours", len(repo.created))
	}
	tour := repo.created[0]
	if tour.Slug != "test-tour" || tour.Guide.ID != 3 {
		t.Fatalf("tour = %+v", tour)
	}
	// 建档时非默认语言已回填
	if tour.Title.Get(model.LocaleEN) != "Test" {
		t.Fatalf("title_en = %q", tour.Title.Get(model.LocaleEN))
	}
}

func TestRun_UnresolvedGuideBlocksRow(t *testing.T) {
	t.Parallel()

	row := importRow()
	row["guide_slug"] = "okand-guide"

	repo := newStubRepo()
	result := NewCoordinator(repo).Run(nil, &stubAdapter{rows: []format.Row{row}}, model.ImportOptions{})

	if result.Created != 0 || len(repo.created) != 0 {
		t.Fatalf("unresolved guide must block the row: %+v", result)
	}
	if len(result.Errors) != 1 || result.Errors[0].Field != "guide_slug" || result.Errors[0].Row != 2 {
		t.Fatalf("errors = %+v", result.Errors)
	}
}

func TestRun_UnresolvedOptionalRelationWarnsOnly(t *testing.T) {
	t.Parallel()

	row := importRow()
	row["categories_slugs"] = "history;okand-kategori"

	repo := newStubRepo()
	result := NewCoordinator(repo).Run(nil, &stubAdapter{rows: []format.Row{row}}, model.ImportOptions{})

	if result.Created != 1 || len(result.Errors) != 0 {
		t.Fatalf("optional relation must not block: %+v", result)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0].Message, "okand-kategori") {
		t.Fatalf("warnings = %+v", result.Warnings)
	}
	if got := repo.created[0].Categories; len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("categories = %+v", got)
	}
}

func TestRun_ValidationErrorsBlockRow(t *testing.T) {
	t.Parallel()

	row := importRow()
	row["pricing_basePrice"] = "-5"

	repo := newStubRepo()
	result := NewCoordinator(repo).Run(nil, &stubAdapter{rows: []format.Row{row}}, model.ImportOptions{})

	if result.Created != 0 || len(repo.created) != 0 {
		t.Fatalf("invalid row must not be created: %+v", result)
	}
	if len(result.Errors) != 1 || result.Errors[0].Field != "pricing_basePrice" {
		t.Fatalf("errors = %+v", result.Errors)
	}
}

func TestRun_DuplicateSlugSkipped(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	repo.slugs["test-tour"] = struct{}{}

	result := NewCoordinator(repo).Run(nil, &stubAdapter{rows: []format.Row{importRow()}}, model.ImportOptions{})

	if result.Created != 0 || result.Skipped != 1 {
		t.Fatalf("created=%d skipped=%d", result.Created, result.Skipped)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Row != 2 {
		t.Fatalf("warnings = %+v", result.Warnings)
	}
}

func TestRun_DuplicateWithinBatch(t *testing.T) {
	t.Parallel()

	// 同一批里第二次出现的 slug 与库里已存在同样处理
	repo := newStubRepo()
	result := NewCoordinator(repo).Run(nil, &stubAdapter{rows: []format.Row{importRow(), importRow()}}, model.ImportOptions{})

	if result.Created != 1 || result.Skipped != 1 {
		t.Fatalf("created=%d skipped=%d", result.Created, result.Skipped)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Row != 3 {
		t.Fatalf("warnings = %+v", result.Warnings)
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	result := NewCoordinator(repo).Run(nil,
		&stubAdapter{rows: []format.Row{importRow(), importRow()}},
		model.ImportOptions{DryRun: true})

	if result.Created != 1 || result.Skipped != 1 {
		t.Fatalf("dry run must report the same counts: %+v", result)
	}
	if len(repo.created) != 0 {
		t.Fatalf("dry run wrote %d tours", len(repo.created))
	}
}

func TestRun_ParseFailureIsRowZeroError(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	result := NewCoordinator(repo).Run(nil,
		&stubAdapter{err: errors.New("boom")}, model.ImportOptions{})

	if len(result.Errors) != 1 || result.Errors[0].Row != 0 {
		t.Fatalf("errors = %+v", result.Errors)
	}
	if result.Created != 0 || result.Skipped != 0 || len(result.Warnings) != 0 {
		t.Fatalf("result = %+v", result)
	}
}

func TestRun_NoDataRowsWarns(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	result := NewCoordinator(repo).Run(nil, &stubAdapter{}, model.ImportOptions{})

	if len(result.Warnings) != 1 || result.Warnings[0].Row != 0 {
		t.Fatalf("warnings = %+v", result.Warnings)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("errors = %+v", result.Errors)
	}
}

func TestRun_EmptyRowsSkippedSilently(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	rows := []format.Row{{}, importRow(), {"slug": "", "title_sv": ""}}
	result := NewCoordinator(repo).Run(nil, &stubAdapter{rows: rows}, model.ImportOptions{})

	if result.Created != 1 || len(result.Errors) != 0 || len(result.Warnings) != 0 {
		t.Fatalf("result = %+v", result)
	}
}

func TestRun_CreateFailureRecordedPerRow(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	repo.createErr = errors.New("disk full")

	result := NewCoordinator(repo).Run(nil, &stubAdapter{rows: []format.Row{importRow()}}, model.ImportOptions{})

	if result.Created != 0 || len(result.Errors) != 1 || result.Errors[0].Row != 2 {
		t.Fatalf("result = %+v", result)
	}
	if !strings.Contains(result.Errors[0].Message, "disk full") {
		t.Fatalf("message = %q", result.Errors[0].Message)
	}
}
