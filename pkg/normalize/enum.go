package normalize

import "strings"

// 授课方式与班次状态的规范化：
// 外部数据源的写法千奇百怪（"In Person"、"Face-to-Face"、"ONLINE LIVE"……），
// 先查导入映射表（valueMap），查不到再走关键词启发式。

// ── 授课方式枚举 ──

const (
	ModalityInPerson    = "IN_PERSON"
	ModalityOnlineSync  = "ONLINE_SYNC"
	ModalityOnlineAsync = "ONLINE_ASYNC"
	ModalityHybrid      = "HYBRID"
	ModalityUnknown     = "UNKNOWN"
)

// Modalities 全部合法的授课方式取值
var Modalities = []string{
	ModalityInPerson, ModalityOnlineSync, ModalityOnlineAsync, ModalityHybrid, ModalityUnknown,
}

// IsModality 判断是否为合法授课方式取值
func IsModality(v string) bool {
	for _, m := range Modalities {
		if m == v {
			return true
		}
	}
	return false
}

// NormalizeModality 将自由文本规范化为授课方式枚举
func NormalizeModality(text string, valueMap map[string]string) string {
	if text == "" {
		return ModalityUnknown
	}

	trimmed := strings.ToUpper(strings.TrimSpace(text))

	if valueMap != nil {
		mapped := valueMap[trimmed]
		if mapped == "" {
			mapped = valueMap[text]
		}
		if mapped != "" && IsModality(strings.ToUpper(mapped)) {
			return strings.ToUpper(mapped)
		}
	}

	switch {
	case strings.Contains(trimmed, "PERSON") || strings.Contains(trimmed, "FACE"):
		return ModalityInPerson
	// "ASYNC" 含 "SYNC" 子串，必须先判异步再判同步
	case strings.Contains(trimmed, "ONLINE") && (strings.Contains(trimmed, "ASYNC") || strings.Contains(trimmed, "SELF")):
		return ModalityOnlineAsync
	case strings.Contains(trimmed, "ONLINE") && (strings.Contains(trimmed, "SYNC") || strings.Contains(trimmed, "LIVE")):
		return ModalityOnlineSync
	case strings.Contains(trimmed, "HYBRID") || strings.Contains(trimmed, "BLENDED"):
		return ModalityHybrid
	}

	return ModalityUnknown
}

// ── 班次状态枚举 ──

const (
	StatusOpen     = "OPEN"
	StatusClosed   = "CLOSED"
	StatusWaitlist = "WAITLIST"
	StatusUnknown  = "UNKNOWN"
)

// Statuses 全部合法的班次状态取值
var Statuses = []string{StatusOpen, StatusClosed, StatusWaitlist, StatusUnknown}

// IsStatus 判断是否为合法班次状态取值
func IsStatus(v string) bool {
	for _, s := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// NormalizeStatus 将自由文本规范化为班次状态枚举
func NormalizeStatus(text string, valueMap map[string]string) string {
	if text == "" {
		return StatusUnknown
	}

	trimmed := strings.ToUpper(strings.TrimSpace(text))

	if valueMap != nil {
		mapped := valueMap[trimmed]
		if mapped == "" {
			mapped = valueMap[text]
		}
		if mapped != "" && IsStatus(strings.ToUpper(mapped)) {
			return strings.ToUpper(mapped)
		}
	}

	switch {
	case strings.Contains(trimmed, "OPEN") || strings.Contains(trimmed, "AVAILABLE"):
		return StatusOpen
	case strings.Contains(trimmed, "CLOSED") || strings.Contains(trimmed, "FULL"):
		return StatusClosed
	case strings.Contains(trimmed, "WAIT"):
		return StatusWaitlist
	}

	return StatusUnknown
}
