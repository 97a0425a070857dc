package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"webmatic-api/internal/domain/entity"
	"webmatic-api/internal/domain/repository"
)

// RunRepo 运行记录仓储PostgreSQL实现
type RunRepo struct {
	db *sql.DB
}

// NewRunRepo 创建运行记录仓储
func NewRunRepo(client *Client) *RunRepo {
	return &RunRepo{db: client.DB()}
}

// Create 创建运行记录
func (r *RunRepo) Create(ctx context.Context, run *entity.Run) error {
	var countsJSON, detailJSON sql.NullString

	if run.PlanCounts != nil {
		data, err := json.Marshal(run.PlanCounts)
		if err != nil {
			return fmt.Errorf("序列化方案条目数失败: %w", err)
		}
		countsJSON = sql.NullString{String: string(data), Valid: true}
	}
	if run.QualityDetail != nil {
		data, err := json.Marshal(run.QualityDetail)
		if err != nil {
			return fmt.Errorf("序列化质量明细失败: %w", err)
		}
		detailJSON = sql.NullString{String: string(data), Valid: true}
	}

	var score sql.NullInt64
	if run.QualityScore != nil {
		score = sql.NullInt64{Int64: int64(*run.QualityScore), Valid: true}
	}

	query := `
		INSERT INTO runs (id, project_id, stage, provider, model, mode, status, error, plan_counts, quality_score, quality_detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := getQuerier(ctx, r.db).ExecContext(ctx, query,
		run.ID, run.ProjectID, string(run.Stage), run.Provider, run.Model,
		string(run.Mode), string(run.Status), run.Error,
		countsJSON, score, detailJSON, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("创建运行记录失败: %w", err)
	}
	return nil
}

// ListByProject 分页查询项目的运行记录,按时间倒序
func (r *RunRepo) ListByProject(ctx context.Context, projectID string, page repository.Pagination) (*repository.PagedResult[*entity.Run], error) {
	q := getQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM runs WHERE project_id = $1`, projectID,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("统计运行记录失败: %w", err)
	}

	query := `
		SELECT id, project_id, stage, provider, model, mode, status, error, plan_counts, quality_score, quality_detail, created_at
		FROM runs WHERE project_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := q.QueryContext(ctx, query, projectID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("查询运行记录失败: %w", err)
	}
	defer rows.Close()

	var items []*entity.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历运行记录行失败: %w", err)
	}

	return &repository.PagedResult[*entity.Run]{
		Items:    items,
		Total:    total,
		Page:     page.Page,
		PageSize: page.Limit(),
	}, nil
}

// scanRun 扫描单行运行记录
func scanRun(rows *sql.Rows) (*entity.Run, error) {
	var (
		run                    entity.Run
		stage, mode, status    string
		errMsg                 sql.NullString
		countsJSON, detailJSON sql.NullString
		score                  sql.NullInt64
	)

	err := rows.Scan(
		&run.ID, &run.ProjectID, &stage, &run.Provider, &run.Model,
		&mode, &status, &errMsg, &countsJSON, &score, &detailJSON, &run.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("扫描运行记录行失败: %w", err)
	}

	run.Stage = entity.RunStage(stage)
	run.Mode = entity.RunMode(mode)
	run.Status = entity.RunStatus(status)
	run.Error = errMsg.String

	if countsJSON.Valid && countsJSON.String != "" {
		if err := json.Unmarshal([]byte(countsJSON.String), &run.PlanCounts); err != nil {
			return nil, fmt.Errorf("解析方案条目数失败: %w", err)
		}
	}
	if score.Valid {
		v := int(score.Int64)
		run.QualityScore = &v
	}
	if detailJSON.Valid && detailJSON.String != "" {
		var detail entity.QualityDetail
		if err := json.Unmarshal([]byte(detailJSON.String), &detail); err != nil {
			return nil, fmt.Errorf("解析质量明细失败: %w", err)
		}
		run.QualityDetail = &detail
	}

	return &run, nil
}
