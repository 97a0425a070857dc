package scaffold

import (
	"encoding/json"
	"fmt"
	"strings"

	"webmatic-api/internal/domain/entity"
)

// NormalizePlan 将模型输出的松散结构规整为方案。
// 各部分接受字符串数组或单个字符串,条目去除首尾空白,空条目丢弃。
// 缺失的键规整为空列表,总是返回含三个列表的方案。
func NormalizePlan(raw map[string]any) *entity.Plan {
	return &entity.Plan{
		Frontend: coerceStringList(raw["frontend"]),
		Backend:  coerceStringList(raw["backend"]),
		Database: coerceStringList(raw["database"]),
	}
}

// coerceStringList 将任意值规整为非空字符串列表
func coerceStringList(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []string:
		return trimNonEmpty(val)
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceScalar(item); s != "" {
				items = append(items, s)
			}
		}
		return items
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
		return []string{}
	default:
		return []string{}
	}
}

// coerceScalar 将条目规整为文本,复合结构序列化为JSON文本
func coerceScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64, int, int64, bool:
		return fmt.Sprint(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func trimNonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
