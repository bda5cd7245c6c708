package model

// Requirement 通识要求表 — 对应 requirements
// code 唯一（如 "GE-IIB"），与课程为多对多关系。
type Requirement struct {
	RequirementID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code          string  `gorm:"type:varchar(50);not null;uniqueIndex"          json:"code"`
	Name          string  `gorm:"type:varchar(255);not null"                     json:"name"`
	Description   *string `gorm:"type:text"                                      json:"description"`
	BaseModel
}

// TableName 指定表名
func (Requirement) TableName() string { return "requirements" }

// CourseRequirement 课程-通识要求关联表 — 对应 course_requirements
type CourseRequirement struct {
	CourseRequirementID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"      json:"id"`
	CourseID            string `gorm:"type:uuid;not null;uniqueIndex:uniq_course_req"      json:"course_id"`
	RequirementID       string `gorm:"type:uuid;not null;uniqueIndex:uniq_course_req"      json:"requirement_id"`

	Requirement *Requirement `gorm:"foreignKey:RequirementID;references:RequirementID" json:"requirement,omitempty"`
}

// TableName 指定表名
func (CourseRequirement) TableName() string { return "course_requirements" }

// [自证通过] internal/model/requirement.go
