package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/weekcalc"
)

// 2025 年 3 月：周一课程共 5 次（3、10、17、24、31 日）
func TestHours_CourseOccurrences(t *testing.T) {
	repo, st := newMockRepository()
	st.trainers.add("Anna", "Berger")
	st.trainers.add("Ben", "Kraus")
	course := st.courses.add("Kinderturnen", weekcalc.Monday, "16:00", "17:30", 2, 1, 2)

	// 第 10 周（3 月 3 日）显式取消；第 12 周（3 月 17 日）教练 2 单独带课
	st.cancelled.rows[courseWeekKey{course.CourseID, 10, 2025}] = &model.CancelledCourse{CourseID: course.CourseID, WeekNumber: 10, Year: 2025}
	st.assignments.rows[courseWeekKey{course.CourseID, 12, 2025}] = &model.WeeklyAssignment{
		CourseID: course.CourseID, WeekNumber: 12, Year: 2025,
		Trainers: []model.WeeklyAssignmentTrainer{{TrainerID: 2}},
	}

	svc := NewHoursService(repo, zap.NewNop())
	res, err := svc.TrainerHours(context.Background(), 2025, 3)
	if err != nil {
		t.Fatalf("TrainerHours 应成功: %v", err)
	}
	if res.From != "2025-03-01" || res.To != "2025-04-01" {
		t.Errorf("统计区间错误: %s ~ %s", res.From, res.To)
	}

	byID := make(map[int64]float64)
	counts := make(map[int64]int)
	for _, r := range res.List {
		byID[r.TrainerID] = r.CourseHours
		counts[r.TrainerID] = r.CourseCount
	}
	// 教练 1：5 次 - 取消 1 次 - 覆盖 1 次 = 3 次 × 1.5h
	if byID[1] != 4.5 || counts[1] != 3 {
		t.Errorf("教练 1 期望 3 次 4.5h，实际 %d 次 %vh", counts[1], byID[1])
	}
	// 教练 2：5 次 - 取消 1 次 = 4 次 × 1.5h
	if byID[2] != 6 || counts[2] != 4 {
		t.Errorf("教练 2 期望 4 次 6h，实际 %d 次 %vh", counts[2], byID[2])
	}
	if res.TotalHours != 10.5 {
		t.Errorf("期望合计 10.5h，实际=%v", res.TotalHours)
	}
}

// 自然年末的日期可能属于次年第 1 周，取消记录按 ISO 周匹配
func TestHours_YearBoundary(t *testing.T) {
	repo, st := newMockRepository()
	st.trainers.add("Anna", "Berger")
	course := st.courses.add("Silvesterlauf-Training", weekcalc.Monday, "10:00", "11:00", 1, 1)
	// 2025-12-29 属于 2026 年第 1 周
	st.cancelled.rows[courseWeekKey{course.CourseID, 1, 2026}] = &model.CancelledCourse{CourseID: course.CourseID, WeekNumber: 1, Year: 2026}

	svc := NewHoursService(repo, zap.NewNop())
	res, err := svc.TrainerHours(context.Background(), 2025, 12)
	if err != nil {
		t.Fatalf("TrainerHours 应成功: %v", err)
	}
	// 12 月周一：1、8、15、22、29 日，29 日取消
	if len(res.List) != 1 || res.List[0].CourseCount != 4 {
		t.Errorf("期望 4 次课，实际=%+v", res.List)
	}
}

func TestHours_InactiveTrainers(t *testing.T) {
	repo, st := newMockRepository()
	st.trainers.add("Anna", "Berger")
	idle := st.trainers.add("Ben", "Kraus")
	idle.Status = model.TrainerStatusInactive

	svc := NewHoursService(repo, zap.NewNop())
	res, err := svc.TrainerHours(context.Background(), 2025, 0)
	if err != nil {
		t.Fatalf("TrainerHours 应成功: %v", err)
	}
	if len(res.List) != 1 || res.List[0].TrainerID != 1 {
		t.Errorf("无工时的停用教练不应出现，实际=%+v", res.List)
	}
}

// 停用课程保留今天之前已发生的工时，之后的课次不再计入
func TestHours_InactiveCourseKeepsPastHours(t *testing.T) {
	repo, st := newMockRepository()
	st.trainers.add("Anna", "Berger")
	course := st.courses.add("Kinderturnen", weekcalc.Monday, "16:00", "17:30", 1, 1)
	course.IsActive = false

	svc := &hoursService{
		repo:   repo,
		logger: zap.NewNop(),
		now:    func() time.Time { return time.Date(2025, 3, 18, 9, 0, 0, 0, time.UTC) },
	}

	// 3 月周一：3、10、17 日已发生，24、31 日在停用之后
	res, err := svc.TrainerHours(context.Background(), 2025, 3)
	if err != nil {
		t.Fatalf("TrainerHours 应成功: %v", err)
	}
	if len(res.List) != 1 || res.List[0].CourseCount != 3 || res.List[0].CourseHours != 4.5 {
		t.Errorf("期望停用课程保留 3 次 4.5h，实际=%+v", res.List)
	}

	// 整月都在过去时全部计入
	res, err = svc.TrainerHours(context.Background(), 2025, 2)
	if err != nil {
		t.Fatalf("TrainerHours 应成功: %v", err)
	}
	if len(res.List) != 1 || res.List[0].CourseCount != 4 {
		t.Errorf("2 月应计入 4 次课，实际=%+v", res.List)
	}

	// 整月都在未来时不计入
	res, err = svc.TrainerHours(context.Background(), 2025, 4)
	if err != nil {
		t.Fatalf("TrainerHours 应成功: %v", err)
	}
	if len(res.List) != 1 || res.List[0].CourseCount != 0 {
		t.Errorf("停用后的月份不应有课程工时，实际=%+v", res.List)
	}
}

func TestHours_InvalidPeriod(t *testing.T) {
	repo, _ := newMockRepository()
	svc := NewHoursService(repo, zap.NewNop())

	if _, err := svc.TrainerHours(context.Background(), 2025, 13); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("期望 ErrInvalidPeriod，实际=%v", err)
	}
	if _, err := svc.TrainerHours(context.Background(), 1999, 1); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("期望 ErrInvalidPeriod，实际=%v", err)
	}
}
