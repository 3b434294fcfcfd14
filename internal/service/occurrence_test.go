package service

import (
	"context"
	"testing"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/weekcalc"
)

func TestResolveOccurrence_TruthTable(t *testing.T) {
	tests := []struct {
		sig       OccurrenceSignals
		cancelled bool
		reason    OccurrenceReason
	}{
		{OccurrenceSignals{}, false, ReasonScheduled},
		{OccurrenceSignals{Exception: true}, false, ReasonScheduled},
		{OccurrenceSignals{Holiday: true}, true, ReasonHoliday},
		{OccurrenceSignals{Holiday: true, Exception: true}, false, ReasonException},
		{OccurrenceSignals{Cancelled: true}, true, ReasonCancelled},
		{OccurrenceSignals{Cancelled: true, Exception: true}, true, ReasonCancelled},
		{OccurrenceSignals{Cancelled: true, Holiday: true}, true, ReasonCancelled},
		// 例外只撤销假期，不撤销显式取消
		{OccurrenceSignals{Cancelled: true, Holiday: true, Exception: true}, true, ReasonCancelled},
	}

	for _, tt := range tests {
		cancelled, reason := ResolveOccurrence(tt.sig)
		if cancelled != tt.cancelled || reason != tt.reason {
			t.Errorf("%+v: 期望 (%v, %s)，实际 (%v, %s)", tt.sig, tt.cancelled, tt.reason, cancelled, reason)
		}
		if IsCancelled(tt.sig) != tt.cancelled {
			t.Errorf("%+v: IsCancelled 与 ResolveOccurrence 不一致", tt.sig)
		}
	}
}

func TestEffectiveTrainers(t *testing.T) {
	course := &model.Course{CourseID: 1, DefaultTrainerIDs: model.NewIDSet(2, 1)}

	ids, isOverride := EffectiveTrainers(course, nil)
	if isOverride || len(ids) != 2 || ids[0] != 1 {
		t.Errorf("无覆盖时应返回默认教练 [1 2]，实际=%v override=%v", ids, isOverride)
	}

	empty := &model.WeeklyAssignment{CourseID: 1}
	ids, isOverride = EffectiveTrainers(course, empty)
	if !isOverride || len(ids) != 0 {
		t.Errorf("空覆盖应返回空集合且 override=true，实际=%v override=%v", ids, isOverride)
	}

	override := &model.WeeklyAssignment{CourseID: 1, Trainers: []model.WeeklyAssignmentTrainer{{TrainerID: 3}}}
	ids, _ = EffectiveTrainers(course, override)
	if len(ids) != 1 || ids[0] != 3 {
		t.Errorf("覆盖应完全替换默认教练，实际=%v", ids)
	}
}

func TestSignalIndex_Resolve(t *testing.T) {
	repo, st := newMockRepository()
	course := st.courses.add("Kinderturnen", weekcalc.Monday, "16:00", "17:00", 2, 1, 2)

	st.cancelled.rows[courseWeekKey{course.CourseID, 10, 2025}] = &model.CancelledCourse{
		CourseID: course.CourseID, WeekNumber: 10, Year: 2025, Reason: "Hallensperrung",
	}
	st.holidays.rows[isoWeek{11, 2025}] = &model.HolidayWeek{WeekNumber: 11, Year: 2025}
	st.holidays.rows[isoWeek{12, 2025}] = &model.HolidayWeek{WeekNumber: 12, Year: 2025}
	st.exceptions.rows[courseWeekKey{course.CourseID, 12, 2025}] = &model.CourseException{
		CourseID: course.CourseID, WeekNumber: 12, Year: 2025,
	}

	ix, err := loadSignalIndex(context.Background(), repo, []int{2025})
	if err != nil {
		t.Fatalf("加载信号索引失败: %v", err)
	}

	occ := ix.resolve(course, 10, 2025)
	if !occ.Cancelled || occ.Reason != ReasonCancelled || occ.CancelNote != "Hallensperrung" {
		t.Errorf("第 10 周应显式取消并带原因，实际=%+v", occ)
	}
	if occ := ix.resolve(course, 11, 2025); !occ.Cancelled || occ.Reason != ReasonHoliday {
		t.Errorf("第 11 周应因假期取消，实际=%+v", occ)
	}
	if occ := ix.resolve(course, 12, 2025); occ.Cancelled || occ.Reason != ReasonException {
		t.Errorf("第 12 周例外应照常上课，实际=%+v", occ)
	}
	if occ := ix.resolve(course, 13, 2025); occ.Cancelled || len(occ.TrainerIDs) != 2 {
		t.Errorf("第 13 周应正常上课且使用默认教练，实际=%+v", occ)
	}
}
