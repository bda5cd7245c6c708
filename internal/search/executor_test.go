package search

import (
	"context"
	"sort"
	"testing"

	"github.com/RyanDaCoder/sdsu-search/internal/model"
)

// ── 内存仓库：实现 CatalogRepository 契约，用内存求值器复现存储语义 ──

type memCatalog struct {
	courses []model.Course
	failErr error // 注入仓库故障
}

func (m *memCatalog) FindCourses(_ context.Context, pred Node, skip, limit int) ([]model.Course, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}

	var out []model.Course
	for i := range m.courses {
		if EvalCourse(pred, &m.courses[i]) {
			out = append(out, m.courses[i])
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Subject != out[j].Subject {
			return out[i].Subject < out[j].Subject
		}
		return out[i].Number < out[j].Number
	})

	if skip > len(out) {
		skip = len(out)
	}
	out = out[skip:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memCatalog) CountCourses(_ context.Context, pred Node) (int64, error) {
	if m.failErr != nil {
		return 0, m.failErr
	}
	var n int64
	for i := range m.courses {
		if EvalCourse(pred, &m.courses[i]) {
			n++
		}
	}
	return n, nil
}

// seatSection 带容量/已选人数的班次
func seatSection(code string, capacity, enrolled *int) model.Section {
	return model.Section{
		SectionID:   "sec-" + code,
		SectionCode: code,
		Modality:    "IN_PERSON",
		Status:      "OPEN",
		Capacity:    capacity,
		Enrolled:    enrolled,
		Term:        termSpring,
		Meetings:    []model.Meeting{mkTimedMeeting("MWF", 540, 590)},
	}
}

func withSections(c model.Course, sections ...model.Section) model.Course {
	c.Sections = sections
	return c
}

func newTestExecutor(repo CatalogRepository) *Executor {
	return NewExecutor(repo, NewBuilder(PolicyContains), 20, 100)
}

// ── 分页 ──

func TestExecutor_PaginationInvariant(t *testing.T) {
	// 5 门课、每页 2 条：各页条数之和 == total，且 hasMore 恰在末页为 false
	var courses []model.Course
	for _, num := range []string{"101", "102", "103", "104", "105"} {
		courses = append(courses, withSections(
			mkCourse("CS", num, "Course "+num),
			mkSection(num+"-01", "IN_PERSON", []model.Meeting{mkTimedMeeting("MWF", 540, 590)}),
		))
	}
	exec := newTestExecutor(&memCatalog{courses: courses})

	seen := 0
	for page := 1; page <= 3; page++ {
		res, err := exec.Search(context.Background(), Filters{Term: "2026SP"}, page, 2)
		if err != nil {
			t.Fatalf("第 %d 页查询失败: %v", page, err)
		}
		if res.Total != 5 {
			t.Errorf("第 %d 页 total 期望 5，实际 %d", page, res.Total)
		}
		seen += len(res.Items)

		wantMore := page < 3
		if res.HasMore != wantMore {
			t.Errorf("第 %d 页 hasMore 期望 %v，实际 %v", page, wantMore, res.HasMore)
		}
	}
	if seen != 5 {
		t.Errorf("各页条数之和期望 5，实际 %d", seen)
	}
}

func TestExecutor_PageClamping(t *testing.T) {
	courses := []model.Course{withSections(
		mkCourse("CS", "101", "Intro"),
		mkSection("01", "IN_PERSON", []model.Meeting{mkTimedMeeting("MWF", 540, 590)}),
	)}
	exec := newTestExecutor(&memCatalog{courses: courses})

	// page 0 钳到 1
	res, err := exec.Search(context.Background(), Filters{Term: "2026SP"}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Page != 1 {
		t.Errorf("page 应钳到 1，实际 %d", res.Page)
	}
	if res.PageSize != 20 {
		t.Errorf("pageSize 空值应取默认 20，实际 %d", res.PageSize)
	}

	// pageSize 超限钳到最大值
	res, err = exec.Search(context.Background(), Filters{Term: "2026SP"}, 1, 10000)
	if err != nil {
		t.Fatal(err)
	}
	if res.PageSize != 100 {
		t.Errorf("pageSize 应钳到 100，实际 %d", res.PageSize)
	}
}

func TestExecutor_DeterministicOrder(t *testing.T) {
	courses := []model.Course{
		withSections(mkCourse("MATH", "150", "Calc"), mkSection("m1", "IN_PERSON", nil)),
		withSections(mkCourse("CS", "310", "Algo"), mkSection("c2", "IN_PERSON", nil)),
		withSections(mkCourse("CS", "250", "DS"), mkSection("c1", "IN_PERSON", nil)),
	}
	exec := newTestExecutor(&memCatalog{courses: courses})

	res, err := exec.Search(context.Background(), Filters{Term: "2026SP"}, 1, 10)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, c := range res.Items {
		got = append(got, c.Subject+" "+c.Number)
	}
	want := []string{"CS 250", "CS 310", "MATH 150"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("排序期望 %v，实际 %v", want, got)
		}
	}
}

// ── 结果内班次子集 ──

func TestExecutor_SectionsLimitedToMatchingSubset(t *testing.T) {
	// 同一门课两个班次，只有一个满足授课方式过滤
	course := withSections(mkCourse("CS", "250", "DS"),
		mkSection("01", "IN_PERSON", []model.Meeting{mkTimedMeeting("MWF", 540, 590)}),
		mkSection("02", "ONLINE_ASYNC", []model.Meeting{mkTimedMeeting("TR", 600, 650)}),
	)
	exec := newTestExecutor(&memCatalog{courses: []model.Course{course}})

	res, err := exec.Search(context.Background(), Filters{Term: "2026SP", Modality: "IN_PERSON"}, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("应命中 1 门课程，实际 %d", len(res.Items))
	}
	sections := res.Items[0].Sections
	if len(sections) != 1 || sections[0].SectionCode != "01" {
		t.Errorf("课程携带的班次应限定为命中子集，实际 %v", sections)
	}
}

// ── 派生过滤：仅显示有余位 ──

func TestExecutor_OpenSeatsOnly(t *testing.T) {
	full := seatSection("01", intptr(30), intptr(30))      // 满员
	open := seatSection("02", intptr(30), intptr(25))      // 有余位
	unknown := seatSection("03", nil, nil)                 // 容量未知 → 保守排除

	courseA := withSections(mkCourse("CS", "250", "DS"), full, open, unknown)
	courseB := withSections(mkCourse("MATH", "150", "Calc"), seatSection("04", intptr(40), intptr(40)))

	exec := newTestExecutor(&memCatalog{courses: []model.Course{courseA, courseB}})

	res, err := exec.Search(context.Background(), Filters{Term: "2026SP", OpenSeats: true}, 1, 10)
	if err != nil {
		t.Fatal(err)
	}

	// courseB 只有满员班次，整体剔除
	if res.Total != 1 || len(res.Items) != 1 {
		t.Fatalf("期望 total=1 且 1 门课程，实际 total=%d items=%d", res.Total, len(res.Items))
	}
	if res.Items[0].Subject != "CS" {
		t.Errorf("入选课程应为 CS 250，实际 %s %s", res.Items[0].Subject, res.Items[0].Number)
	}

	sections := res.Items[0].Sections
	if len(sections) != 1 || sections[0].SectionCode != "02" {
		t.Errorf("只有确定有余位的班次应保留，实际 %v", sections)
	}
}

func TestExecutor_OpenSeatsPagination(t *testing.T) {
	// 3 门有余位的课，每页 2 条：第二页 1 条且 hasMore=false
	var courses []model.Course
	for _, num := range []string{"101", "102", "103"} {
		courses = append(courses, withSections(
			mkCourse("CS", num, "Course "+num),
			seatSection(num+"-01", intptr(30), intptr(10)),
		))
	}
	exec := newTestExecutor(&memCatalog{courses: courses})

	page1, err := exec.Search(context.Background(), Filters{Term: "2026SP", OpenSeats: true}, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if page1.Total != 3 || len(page1.Items) != 2 || !page1.HasMore {
		t.Errorf("第 1 页期望 total=3 items=2 hasMore=true，实际 %d/%d/%v",
			page1.Total, len(page1.Items), page1.HasMore)
	}

	page2, err := exec.Search(context.Background(), Filters{Term: "2026SP", OpenSeats: true}, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if page2.Total != 3 || len(page2.Items) != 1 || page2.HasMore {
		t.Errorf("第 2 页期望 total=3 items=1 hasMore=false，实际 %d/%d/%v",
			page2.Total, len(page2.Items), page2.HasMore)
	}
}

// ── 未知学期与仓库故障 ──

func TestExecutor_UnknownTermYieldsEmpty(t *testing.T) {
	courses := []model.Course{withSections(
		mkCourse("CS", "101", "Intro"),
		mkSection("01", "IN_PERSON", nil),
	)}
	exec := newTestExecutor(&memCatalog{courses: courses})

	res, err := exec.Search(context.Background(), Filters{Term: "1999XX"}, 1, 10)
	if err != nil {
		t.Fatalf("未知学期不应报错: %v", err)
	}
	if res.Total != 0 || len(res.Items) != 0 || res.HasMore {
		t.Errorf("未知学期应返回空结果，实际 %+v", res)
	}
}

func TestExecutor_RepositoryFailurePropagates(t *testing.T) {
	exec := newTestExecutor(&memCatalog{failErr: context.DeadlineExceeded})

	if _, err := exec.Search(context.Background(), Filters{Term: "2026SP"}, 1, 10); err == nil {
		t.Error("仓库故障应向上传播")
	}
}

// [自证通过] internal/search/executor_test.go
