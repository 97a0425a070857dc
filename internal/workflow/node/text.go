package node

import (
	"strings"
	"unicode/utf8"
)

// TruncateByRunes 去除首尾空白并按符文数截断,不附加省略号
func TruncateByRunes(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// JoinChatContext 将会话消息拼接为"role: content"逐行文本
func JoinChatContext(turns []ChatTurn) string {
	if len(turns) == 0 {
		return ""
	}
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, t.Role+": "+t.Content)
	}
	return strings.Join(lines, "\n")
}

// ChatTurn 会话上下文中的一轮消息
type ChatTurn struct {
	Role    string
	Content string
}
