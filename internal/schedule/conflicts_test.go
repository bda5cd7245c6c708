package schedule

import "testing"

// ── 测试辅助 ──

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }

func mkMeeting(days string, start, end int) Meeting {
	return Meeting{Days: strptr(days), StartMin: intptr(start), EndMin: intptr(end)}
}

func mkItem(sectionID, courseCode string, meetings ...Meeting) Item {
	return Item{
		SectionID:  sectionID,
		CourseCode: courseCode,
		Meetings:   meetings,
		Section:    SectionSnapshot{ID: sectionID, Meetings: meetings},
	}
}

// ── MeetingsConflict ──

func TestMeetingsConflict_Overlap(t *testing.T) {
	a := mkMeeting("MWF", 540, 590) // 9:00–9:50
	b := mkMeeting("MW", 570, 620)  // 9:30–10:20

	if !MeetingsConflict(a, b) {
		t.Error("共享 M/W 且区间相交，应判定冲突")
	}
}

func TestMeetingsConflict_DisjointDays(t *testing.T) {
	a := mkMeeting("MWF", 540, 590)
	c := mkMeeting("TR", 540, 590) // 时间完全相同但星期不相交

	if MeetingsConflict(a, c) {
		t.Error("星期集合不相交时不应冲突，即使时间重叠")
	}
}

func TestMeetingsConflict_HalfOpenBoundary(t *testing.T) {
	// [540,590) 与 [590,640) 首尾相接，不算冲突
	a := mkMeeting("MWF", 540, 590)
	b := mkMeeting("MWF", 590, 640)

	if MeetingsConflict(a, b) {
		t.Error("半开区间首尾相接不应判定冲突")
	}
}

func TestMeetingsConflict_TBANeverConflicts(t *testing.T) {
	tba := Meeting{Days: strptr("TBA")}
	timed := mkMeeting("MWF", 540, 590)

	if MeetingsConflict(tba, timed) || MeetingsConflict(timed, tba) {
		t.Error("TBA 上课时间不应与任何东西冲突")
	}

	noTime := Meeting{Days: strptr("M")} // 有星期但无时间
	if MeetingsConflict(noTime, timed) {
		t.Error("缺起止时间的上课不应冲突")
	}
}

func TestMeetingsConflict_Symmetry(t *testing.T) {
	pairs := [][2]Meeting{
		{mkMeeting("MWF", 540, 590), mkMeeting("MW", 570, 620)},
		{mkMeeting("TR", 600, 660), mkMeeting("R", 630, 700)},
		{mkMeeting("MWF", 540, 590), mkMeeting("TR", 540, 590)},
		{Meeting{Days: strptr("TBA")}, mkMeeting("M", 540, 590)},
	}
	for i, p := range pairs {
		if MeetingsConflict(p[0], p[1]) != MeetingsConflict(p[1], p[0]) {
			t.Errorf("用例 %d：MeetingsConflict 应满足对称性", i)
		}
	}
}

// ── FindConflicts ──

func TestFindConflicts_Scenario(t *testing.T) {
	// A：MWF 9:00–9:50；候选 B：MW 9:30–10:20 → 1 条冲突
	a := mkItem("sec-a", "CS 101", mkMeeting("MWF", 540, 590))
	b := mkItem("sec-b", "MATH 150", mkMeeting("MW", 570, 620))

	conflicts := FindConflicts([]Item{a}, b)
	if len(conflicts) != 1 {
		t.Fatalf("期望 1 条冲突，实际 %d", len(conflicts))
	}
	if conflicts[0].WithSectionID != "sec-a" {
		t.Errorf("冲突应指向 sec-a，实际 %s", conflicts[0].WithSectionID)
	}
	if conflicts[0].Reason != "Time conflict" {
		t.Errorf("冲突原因应为 Time conflict，实际 %q", conflicts[0].Reason)
	}

	// 候选 C：TR 9:00–9:50 → 无冲突（星期不相交）
	c := mkItem("sec-c", "ENGL 100", mkMeeting("TR", 540, 590))
	if got := FindConflicts([]Item{a}, c); len(got) != 0 {
		t.Errorf("期望无冲突，实际 %d 条", len(got))
	}
}

func TestFindConflicts_SkipsSelf(t *testing.T) {
	a := mkItem("sec-a", "CS 101", mkMeeting("MWF", 540, 590))

	if got := FindConflicts([]Item{a}, a); len(got) != 0 {
		t.Errorf("不应与自身比较，实际 %d 条冲突", len(got))
	}
}

func TestFindConflicts_OneRecordPerItem(t *testing.T) {
	// 已有项有两个上课时间都与候选相撞，仍只记一条
	a := mkItem("sec-a", "CHEM 200",
		mkMeeting("MW", 540, 590),
		mkMeeting("F", 540, 590),
	)
	cand := mkItem("sec-b", "BIO 100",
		mkMeeting("MWF", 550, 600),
	)

	if got := FindConflicts([]Item{a}, cand); len(got) != 1 {
		t.Errorf("每个相撞班次只应记 1 条冲突，实际 %d", len(got))
	}
}

// ── ComputeConflictMap ──

func TestComputeConflictMap_Symmetric(t *testing.T) {
	a := mkItem("sec-a", "CS 101", mkMeeting("MWF", 540, 590))
	b := mkItem("sec-b", "MATH 150", mkMeeting("MW", 570, 620))
	c := mkItem("sec-c", "ENGL 100", mkMeeting("TR", 540, 590))

	m := ComputeConflictMap([]Item{a, b, c})

	if len(m["sec-a"]) != 1 || m["sec-a"][0].WithSectionID != "sec-b" {
		t.Errorf("sec-a 应与 sec-b 冲突，实际 %v", m["sec-a"])
	}
	if len(m["sec-b"]) != 1 || m["sec-b"][0].WithSectionID != "sec-a" {
		t.Errorf("sec-b 应与 sec-a 冲突，实际 %v", m["sec-b"])
	}
	if _, ok := m["sec-c"]; ok {
		t.Error("无冲突的项不应出现在索引中")
	}
}

func TestComputeConflictMap_Idempotent(t *testing.T) {
	items := []Item{
		mkItem("sec-a", "CS 101", mkMeeting("MWF", 540, 590)),
		mkItem("sec-b", "MATH 150", mkMeeting("MW", 570, 620)),
	}

	first := ComputeConflictMap(items)
	second := ComputeConflictMap(items)

	if len(first) != len(second) {
		t.Fatalf("两次计算的索引大小应一致：%d vs %d", len(first), len(second))
	}
	for k, v := range first {
		w, ok := second[k]
		if !ok || len(v) != len(w) {
			t.Fatalf("键 %s 的冲突集应一致", k)
		}
		for i := range v {
			if v[i] != w[i] {
				t.Fatalf("键 %s 第 %d 条冲突应一致", k, i)
			}
		}
	}
}

// [自证通过] internal/schedule/conflicts_test.go
