package service

import "testing"

func TestEvaluateStaffing(t *testing.T) {
	tests := []struct {
		name     string
		assigned int
		required int
		status   StaffingStatus
		deficit  int
		surplus  int
	}{
		{"无人分配", 0, 2, StaffingCritical, 0, 0},
		{"无人分配且所需为0", 0, 0, StaffingCritical, 0, 0},
		{"缺一人", 1, 2, StaffingUnderstaffed, 1, 0},
		{"缺两人", 1, 3, StaffingUnderstaffed, 2, 0},
		{"刚好", 2, 2, StaffingOptimal, 0, 0},
		{"多一人", 3, 2, StaffingOverstaffed, 0, 1},
		{"所需为0但有人", 1, 0, StaffingOverstaffed, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateStaffing(tt.assigned, tt.required)
			if got.Status != tt.status {
				t.Errorf("期望 status=%s，实际=%s", tt.status, got.Status)
			}
			if got.Deficit != tt.deficit || got.Surplus != tt.surplus {
				t.Errorf("期望 deficit=%d surplus=%d，实际 deficit=%d surplus=%d",
					tt.deficit, tt.surplus, got.Deficit, got.Surplus)
			}
		})
	}
}

// 每个输入恰好落入一种状态，且 deficit / surplus 只在对应状态下非零
func TestEvaluateStaffing_ExactlyOneStatus(t *testing.T) {
	for assigned := 0; assigned <= 6; assigned++ {
		for required := 0; required <= 6; required++ {
			s := EvaluateStaffing(assigned, required)
			if s.Deficit > 0 && s.Status != StaffingUnderstaffed {
				t.Errorf("(%d,%d) deficit 仅应出现在 understaffed", assigned, required)
			}
			if s.Surplus > 0 && s.Status != StaffingOverstaffed {
				t.Errorf("(%d,%d) surplus 仅应出现在 overstaffed", assigned, required)
			}
			if assigned == 0 && s.Status != StaffingCritical {
				t.Errorf("(%d,%d) 无人分配必须为 critical", assigned, required)
			}
		}
	}
}

func TestSummarizeStaffing(t *testing.T) {
	sum := SummarizeStaffing([]Staffing{
		EvaluateStaffing(0, 2),
		EvaluateStaffing(1, 2),
		EvaluateStaffing(2, 2),
		EvaluateStaffing(3, 1),
	})

	if sum.Courses != 4 {
		t.Errorf("期望 4 门课，实际=%d", sum.Courses)
	}
	if sum.TotalRequired != 7 || sum.TotalAssigned != 6 {
		t.Errorf("期望 required=7 assigned=6，实际 required=%d assigned=%d", sum.TotalRequired, sum.TotalAssigned)
	}
	for _, st := range []StaffingStatus{StaffingCritical, StaffingUnderstaffed, StaffingOptimal, StaffingOverstaffed} {
		if sum.ByStatus[st] != 1 {
			t.Errorf("期望 %s=1，实际=%d", st, sum.ByStatus[st])
		}
	}

	d := sum.toDTO()
	if d.Critical+d.Understaffed+d.Optimal+d.Overstaffed != d.Courses {
		t.Error("各状态计数之和应等于课程数")
	}
}

func TestSummarizeStaffing_Empty(t *testing.T) {
	sum := SummarizeStaffing(nil)
	if sum.Courses != 0 || sum.TotalRequired != 0 || sum.TotalAssigned != 0 {
		t.Errorf("空输入应全部为 0，实际=%+v", sum)
	}
}
