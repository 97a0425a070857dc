// Package node 提供工作流节点的纯函数实现
package node

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNoJSONFound 文本中不存在JSON对象
	ErrNoJSONFound = errors.New("文本中未找到JSON对象")
	// ErrParseFailure 候选JSON全部解析失败
	ErrParseFailure = errors.New("JSON候选解析失败")
)

// ExtractJSONObject 从模型输出中提取首个可解析的JSON对象。
// 依次尝试:围栏代码块内的平衡对象、未闭合围栏后的内容、
// 全文首个{到最后一个}的贪婪截取,以及逐行截断修复。
func ExtractJSONObject(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrNoJSONFound
	}

	var candidates []string

	if fenced, ok := extractFencedBlock(text); ok {
		if obj, ok := balancedObject(fenced); ok {
			candidates = append(candidates, obj)
		} else {
			// 围栏未闭合或对象被截断,保留{之后的全部内容
			if idx := strings.Index(fenced, "{"); idx >= 0 {
				candidates = append(candidates, fenced[idx:])
			}
		}
	}

	// 贪婪截取:全文首个{到最后一个}
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first >= 0 && last > first {
		candidates = append(candidates, text[first:last+1])
	} else if first >= 0 {
		candidates = append(candidates, text[first:])
	}

	if len(candidates) == 0 {
		return "", ErrNoJSONFound
	}

	for _, candidate := range candidates {
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
		if repaired, ok := repairTruncated(candidate); ok {
			return repaired, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrParseFailure, snippet(text, 200))
}

// UnmarshalObject 提取JSON对象并反序列化到dest
func UnmarshalObject(text string, dest any) error {
	raw, err := ExtractJSONObject(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("%w: %s", ErrParseFailure, snippet(raw, 200))
	}
	return nil
}

// extractFencedBlock 提取首个```围栏内的内容,兼容```json标记与未闭合围栏
func extractFencedBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start < 0 {
		return "", false
	}

	rest := text[start+3:]
	// 跳过语言标记行,如"json"
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		firstLine := strings.TrimSpace(rest[:nl])
		if firstLine == "" || isLanguageTag(firstLine) {
			rest = rest[nl+1:]
		}
	}

	if end := strings.Index(rest, "```"); end >= 0 {
		return rest[:end], true
	}
	// 未闭合围栏,返回到文本末尾
	return rest, true
}

// isLanguageTag 判断围栏首行是否为语言标记
func isLanguageTag(s string) bool {
	if len(s) > 16 {
		return false
	}
	for _, r := range s {
		if !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') {
			return false
		}
	}
	return true
}

// balancedObject 在文本中寻找首个花括号配平的对象,正确跳过字符串字面量
func balancedObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// repairTruncated 逐行回退截断的候选,对每个前缀尝试补全后解析
func repairTruncated(candidate string) (string, bool) {
	lines := strings.Split(candidate, "\n")
	for end := len(lines); end > 0; end-- {
		prefix := strings.TrimRight(strings.Join(lines[:end], "\n"), " \t\r\n,")
		if prefix == "" {
			continue
		}
		if json.Valid([]byte(prefix)) {
			return prefix, true
		}
		if completed, ok := completeJSON(prefix); ok {
			return completed, true
		}
	}
	return "", false
}

// completeJSON 闭合截断处未配平的字符串与括号
func completeJSON(s string) (string, bool) {
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != ch {
				return "", false
			}
			stack = stack[:len(stack)-1]
		}
	}

	if !inString && len(stack) == 0 {
		return "", false
	}

	var sb strings.Builder
	sb.WriteString(s)
	if escaped {
		return "", false
	}
	if inString {
		sb.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		sb.WriteByte(stack[i])
	}

	completed := sb.String()
	if json.Valid([]byte(completed)) {
		return completed, true
	}
	return "", false
}

// snippet 按符文安全截取前n个字符
func snippet(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
