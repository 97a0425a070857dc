package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"webmatic-api/internal/domain/entity"
	apperrors "webmatic-api/pkg/errors"
)

// TemplateRepo 模板仓储PostgreSQL实现
type TemplateRepo struct {
	db *sql.DB
}

// NewTemplateRepo 创建模板仓储
func NewTemplateRepo(client *Client) *TemplateRepo {
	return &TemplateRepo{db: client.DB()}
}

// Create 创建模板
func (r *TemplateRepo) Create(ctx context.Context, tpl *entity.Template) error {
	manifest, err := json.Marshal(templateManifest{
		Prompts:            tpl.Prompts,
		Entities:           tpl.Entities,
		APIEndpoints:       tpl.APIEndpoints,
		UIStructure:        tpl.UIStructure,
		Integrations:       tpl.Integrations,
		AcceptanceCriteria: tpl.AcceptanceCriteria,
		Tests:              tpl.Tests,
	})
	if err != nil {
		return fmt.Errorf("序列化模板清单失败: %w", err)
	}

	query := `
		INSERT INTO templates (id, name, category, description, tags, manifest, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = getQuerier(ctx, r.db).ExecContext(ctx, query,
		tpl.ID, tpl.Name, tpl.Category, tpl.Description,
		pq.Array(tpl.Tags), string(manifest), tpl.Version, tpl.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("创建模板失败: %w", err)
	}
	return nil
}

// GetByID 按ID查询模板
func (r *TemplateRepo) GetByID(ctx context.Context, id string) (*entity.Template, error) {
	query := `
		SELECT id, name, category, description, tags, manifest, version, created_at
		FROM templates WHERE id = $1`

	row := getQuerier(ctx, r.db).QueryRowContext(ctx, query, id)
	tpl, err := scanTemplate(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("查询模板失败: %w", err)
	}
	return tpl, nil
}

// List 查询全部模板,可按分类过滤
func (r *TemplateRepo) List(ctx context.Context, category string) ([]*entity.Template, error) {
	query := `
		SELECT id, name, category, description, tags, manifest, version, created_at
		FROM templates`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY name ASC`

	rows, err := getQuerier(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("查询模板列表失败: %w", err)
	}
	defer rows.Close()

	var items []*entity.Template
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("扫描模板行失败: %w", err)
		}
		items = append(items, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历模板行失败: %w", err)
	}
	return items, nil
}

// Count 统计模板数量
func (r *TemplateRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := getQuerier(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM templates`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("统计模板数量失败: %w", err)
	}
	return total, nil
}

// templateManifest 模板清单JSON结构
type templateManifest struct {
	Prompts            entity.TemplatePrompts `json:"prompts"`
	Entities           []string               `json:"entities"`
	APIEndpoints       []string               `json:"api_endpoints"`
	UIStructure        []string               `json:"ui_structure"`
	Integrations       []string               `json:"integrations"`
	AcceptanceCriteria []string               `json:"acceptance_criteria"`
	Tests              []string               `json:"tests"`
}

// scanTemplate 扫描单行模板
func scanTemplate(s scanner) (*entity.Template, error) {
	var (
		tpl          entity.Template
		tags         pq.StringArray
		manifestJSON string
	)

	err := s.Scan(&tpl.ID, &tpl.Name, &tpl.Category, &tpl.Description,
		&tags, &manifestJSON, &tpl.Version, &tpl.CreatedAt)
	if err != nil {
		return nil, err
	}

	tpl.Tags = []string(tags)

	var manifest templateManifest
	if err := json.Unmarshal([]byte(manifestJSON), &manifest); err != nil {
		return nil, fmt.Errorf("解析模板清单失败: %w", err)
	}
	tpl.Prompts = manifest.Prompts
	tpl.Entities = manifest.Entities
	tpl.APIEndpoints = manifest.APIEndpoints
	tpl.UIStructure = manifest.UIStructure
	tpl.Integrations = manifest.Integrations
	tpl.AcceptanceCriteria = manifest.AcceptanceCriteria
	tpl.Tests = manifest.Tests

	return &tpl, nil
}
