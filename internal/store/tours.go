package store

import (
	"encoding/json"
	"fmt"

	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/model"
)

// CreateTour 建档一条线路
// 文档整体序列化为 JSON 落库，slug 的唯一约束由表结构保证。
func (s *Store) CreateTour(t *model.Tour) (int64, error) {
	doc, err := json.Marshal(t)
	if err != nil {
		return 0, fmt.Errorf("序列化文档失败: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO tours (slug, status, document) VALUES (?, ?, ?)`,
		t.Slug, string(t.Status), string(doc),
	)
	if err != nil {
		return 0, fmt.Errorf("写入线路失败: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	t.ID = id
	return id, nil
}

// ListTours 按状态过滤读取线路，status 为空时取全部
func (s *Store) ListTours(status string, limit int) ([]*model.Tour, error) {
	query := `SELECT id, document FROM tours`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tours []*model.Tour
	for rows.Next() {
		var id int64
		var doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		t := &model.Tour{}
		if err := json.Unmarshal([]byte(doc), t); err != nil {
			return nil, fmt.Errorf("文档损坏 (id=%d): %w", id, err)
		}
		t.ID = id
		tours = append(tours, t)
	}
	return tours, rows.Err()
}

// TourSlugs 取全部已存在的自然键（导入查重用）
func (s *Store) TourSlugs() (map[string]struct{}, error) {
	rows, err := s.db.Query(`SELECT slug FROM tours`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slugs := make(map[string]struct{})
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs[slug] = struct{}{}
	}
	return slugs, rows.Err()
}

// lookupTables 关系集合到表名的白名单
var lookupTables = map[string]string{
	"guides":        "guides",
	"categories":    "categories",
	"neighborhoods": "neighborhoods",
}

// LookupSlugIDs 取某个关系集合的 slug→ID 查找表
func (s *Store) LookupSlugIDs(collection string) (map[string]int64, error) {
	table, ok := lookupTables[collection]
	if !ok {
		return nil, fmt.Errorf("未知的关系集合: %s", collection)
	}

	rows, err := s.db.Query(`SELECT id, slug FROM ` + table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var id int64
		var slug string
		if err := rows.Scan(&id, &slug); err != nil {
			return nil, err
		}
		out[slug] = id
	}
	return out, rows.Err()
}

// CreateLookup 向关系集合写入一条记录（初始化/测试数据用）
func (s *Store) CreateLookup(collection, slug, name string) (int64, error) {
	table, ok := lookupTables[collection]
	if !ok {
		return 0, fmt.Errorf("未知的关系集合: %s", collection)
	}

	res, err := s.db.Exec(`INSERT INTO `+table+` (slug, name) VALUES (?, ?)`, slug, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
