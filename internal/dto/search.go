package dto

// ── 课程检索 DTO ──

// SearchRequest 课程检索请求（query string 绑定）
// 所有过滤条件都可省略；term 缺省时由服务端回落到配置的默认学期。
type SearchRequest struct {
	Term          string   `form:"term"`
	Q             string   `form:"q"`
	Subject       string   `form:"subject"`
	Number        string   `form:"number"`
	Modality      string   `form:"modality"`
	Instructor    string   `form:"instructor"`
	Days          []string `form:"days"`
	TimeStart     *int     `form:"timeStart"    binding:"omitempty,min=0,max=1439"`
	TimeEnd       *int     `form:"timeEnd"      binding:"omitempty,min=0,max=1440"`
	GE            []string `form:"ge"`
	OpenSeatsOnly bool     `form:"openSeatsOnly"`
	Page          int      `form:"page"         binding:"omitempty,min=1"`
	PageSize      int      `form:"pageSize"     binding:"omitempty,min=1"`
}

// MeetingResult 上课时间
type MeetingResult struct {
	ID         string  `json:"id"`
	Days       *string `json:"days"`
	StartMin   *int    `json:"startMin"`
	EndMin     *int    `json:"endMin"`
	StartLabel *string `json:"startLabel,omitempty"` // "9:30 AM"
	EndLabel   *string `json:"endLabel,omitempty"`
	Location   *string `json:"location,omitempty"`
}

// SectionResult 检索结果中的班次
type SectionResult struct {
	ID             string          `json:"id"`
	SectionCode    string          `json:"sectionCode"`
	ClassNumber    *string         `json:"classNumber,omitempty"`
	Status         string          `json:"status"`
	Modality       string          `json:"modality"`
	Capacity       *int            `json:"capacity"`
	Enrolled       *int            `json:"enrolled"`
	Waitlist       *int            `json:"waitlist"`
	AvailableSeats *int            `json:"availableSeats"` // capacity/enrolled 缺失时为 null
	Campus         *string         `json:"campus,omitempty"`
	TermCode       string          `json:"termCode"`
	Instructors    []string        `json:"instructors"`
	Meetings       []MeetingResult `json:"meetings"`
}

// CourseResult 检索结果中的课程
type CourseResult struct {
	ID       string          `json:"id"`
	Subject  string          `json:"subject"`
	Number   string          `json:"number"`
	Title    *string         `json:"title"`
	Units    *string         `json:"units"`
	GECodes  []string        `json:"geCodes"`
	Sections []SectionResult `json:"sections"`
}

// SearchResponse 检索响应
type SearchResponse struct {
	Count    int            `json:"count"` // 本页条数
	Total    int64          `json:"total"` // 过滤后总条数
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	HasMore  bool           `json:"hasMore"`
	Results  []CourseResult `json:"results"`
}

// [自证通过] internal/dto/search.go
