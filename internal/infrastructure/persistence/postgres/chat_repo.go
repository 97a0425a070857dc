package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"webmatic-api/internal/domain/entity"
)

// ChatRepo 会话消息仓储PostgreSQL实现
type ChatRepo struct {
	db *sql.DB
}

// NewChatRepo 创建会话消息仓储
func NewChatRepo(client *Client) *ChatRepo {
	return &ChatRepo{db: client.DB()}
}

// Append 追加消息
func (r *ChatRepo) Append(ctx context.Context, msg *entity.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, project_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := getQuerier(ctx, r.db).ExecContext(ctx, query,
		msg.ID, msg.ProjectID, string(msg.Role), msg.Content, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("追加会话消息失败: %w", err)
	}
	return nil
}

// ListByProject 按项目查询全部消息,按时间升序
func (r *ChatRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.ChatMessage, error) {
	query := `
		SELECT id, project_id, role, content, created_at
		FROM chat_messages WHERE project_id = $1
		ORDER BY created_at ASC`

	rows, err := getQuerier(ctx, r.db).QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("查询会话消息失败: %w", err)
	}
	defer rows.Close()

	return scanChatMessages(rows)
}

// ListRecent 查询最近N条消息,按时间升序返回
func (r *ChatRepo) ListRecent(ctx context.Context, projectID string, limit int) ([]*entity.ChatMessage, error) {
	// 倒序取最近N条,再整体反转为升序
	query := `
		SELECT id, project_id, role, content, created_at
		FROM chat_messages WHERE project_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := getQuerier(ctx, r.db).QueryContext(ctx, query, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("查询最近会话消息失败: %w", err)
	}
	defer rows.Close()

	msgs, err := scanChatMessages(rows)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// scanChatMessages 扫描消息行集
func scanChatMessages(rows *sql.Rows) ([]*entity.ChatMessage, error) {
	var msgs []*entity.ChatMessage
	for rows.Next() {
		var (
			msg  entity.ChatMessage
			role string
		)
		if err := rows.Scan(&msg.ID, &msg.ProjectID, &role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("扫描消息行失败: %w", err)
		}
		msg.Role = entity.ChatRole(role)
		msgs = append(msgs, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历消息行失败: %w", err)
	}
	return msgs, nil
}
