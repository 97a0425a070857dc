package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"webmatic-api/internal/domain/entity"
	"webmatic-api/internal/domain/repository"
	apperrors "webmatic-api/pkg/errors"
)

// ProjectRepo 项目仓储PostgreSQL实现
type ProjectRepo struct {
	db *sql.DB
}

// NewProjectRepo 创建项目仓储
func NewProjectRepo(client *Client) *ProjectRepo {
	return &ProjectRepo{db: client.DB()}
}

// Create 创建项目
func (r *ProjectRepo) Create(ctx context.Context, project *entity.Project) error {
	planJSON, artifactJSON, err := marshalProjectPayload(project)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projects (id, owner_id, name, description, status, plan, artifact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = getQuerier(ctx, r.db).ExecContext(ctx, query,
		project.ID, project.OwnerID, project.Name, project.Description,
		string(project.Status), planJSON, artifactJSON,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("创建项目失败: %w", err)
	}
	return nil
}

// GetByID 按ID查询项目
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	query := `
		SELECT id, owner_id, name, description, status, plan, artifact, created_at, updated_at
		FROM projects WHERE id = $1`

	row := getQuerier(ctx, r.db).QueryRowContext(ctx, query, id)
	project, err := scanProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("查询项目失败: %w", err)
	}
	return project, nil
}

// List 分页查询用户的项目
func (r *ProjectRepo) List(ctx context.Context, ownerID string, page repository.Pagination) (*repository.PagedResult[*entity.Project], error) {
	q := getQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE owner_id = $1`, ownerID,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("统计项目数量失败: %w", err)
	}

	query := `
		SELECT id, owner_id, name, description, status, plan, artifact, created_at, updated_at
		FROM projects WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := q.QueryContext(ctx, query, ownerID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("查询项目列表失败: %w", err)
	}
	defer rows.Close()

	var items []*entity.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("扫描项目行失败: %w", err)
		}
		items = append(items, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历项目行失败: %w", err)
	}

	return &repository.PagedResult[*entity.Project]{
		Items:    items,
		Total:    total,
		Page:     page.Page,
		PageSize: page.Limit(),
	}, nil
}

// Update 更新项目
func (r *ProjectRepo) Update(ctx context.Context, project *entity.Project) error {
	planJSON, artifactJSON, err := marshalProjectPayload(project)
	if err != nil {
		return err
	}

	query := `
		UPDATE projects
		SET name = $2, description = $3, status = $4, plan = $5, artifact = $6, updated_at = $7
		WHERE id = $1`

	result, err := getQuerier(ctx, r.db).ExecContext(ctx, query,
		project.ID, project.Name, project.Description,
		string(project.Status), planJSON, artifactJSON, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("更新项目失败: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("获取影响行数失败: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

// Delete 删除项目
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	result, err := getQuerier(ctx, r.db).ExecContext(ctx,
		`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("删除项目失败: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("获取影响行数失败: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

// scanner 统一*sql.Row与*sql.Rows的扫描能力
type scanner interface {
	Scan(dest ...any) error
}

// scanProject 扫描单行项目
func scanProject(s scanner) (*entity.Project, error) {
	var (
		project      entity.Project
		status       string
		planJSON     sql.NullString
		artifactJSON sql.NullString
	)

	err := s.Scan(
		&project.ID, &project.OwnerID, &project.Name, &project.Description,
		&status, &planJSON, &artifactJSON,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	project.Status = entity.ProjectStatus(status)

	if planJSON.Valid && planJSON.String != "" {
		var plan entity.Plan
		if err := json.Unmarshal([]byte(planJSON.String), &plan); err != nil {
			return nil, fmt.Errorf("解析方案JSON失败: %w", err)
		}
		project.Plan = &plan
	}
	if artifactJSON.Valid && artifactJSON.String != "" {
		var artifact entity.Artifact
		if err := json.Unmarshal([]byte(artifactJSON.String), &artifact); err != nil {
			return nil, fmt.Errorf("解析产物JSON失败: %w", err)
		}
		project.Artifact = &artifact
	}

	return &project, nil
}

// marshalProjectPayload 序列化方案与产物为JSON列
func marshalProjectPayload(project *entity.Project) (planJSON, artifactJSON sql.NullString, err error) {
	if project.Plan != nil {
		data, merr := json.Marshal(project.Plan)
		if merr != nil {
			return planJSON, artifactJSON, fmt.Errorf("序列化方案失败: %w", merr)
		}
		planJSON = sql.NullString{String: string(data), Valid: true}
	}
	if project.Artifact != nil {
		data, merr := json.Marshal(project.Artifact)
		if merr != nil {
			return planJSON, artifactJSON, fmt.Errorf("序列化产物失败: %w", merr)
		}
		artifactJSON = sql.NullString{String: string(data), Valid: true}
	}
	return planJSON, artifactJSON, nil
}
