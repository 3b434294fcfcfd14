package service

import (
	"context"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// 单次课程 (course, week, year) 的有效状态
// ═══════════════════════════════════════════════════════════

// OccurrenceSignals 决定单次课程是否举行的四个独立信号
type OccurrenceSignals struct {
	Cancelled bool // 存在显式取消记录
	Holiday   bool // 该周为假期周
	Exception bool // 该课程该周存在假期例外
}

// OccurrenceReason 判定结果的原因
type OccurrenceReason string

const (
	ReasonCancelled OccurrenceReason = "cancelled"
	ReasonException OccurrenceReason = "exception"
	ReasonHoliday   OccurrenceReason = "holiday"
	ReasonScheduled OccurrenceReason = "scheduled"
)

// occurrenceRule 规则列表中的一项：谓词命中即给出结论
type occurrenceRule struct {
	applies   func(OccurrenceSignals) bool
	cancelled bool
	reason    OccurrenceReason
}

// occurrenceRules 自上而下求值，第一条命中的规则生效。
// 显式取消排在例外之前：例外只撤销假期，不撤销显式取消。
var occurrenceRules = []occurrenceRule{
	{
		applies:   func(s OccurrenceSignals) bool { return s.Cancelled },
		cancelled: true,
		reason:    ReasonCancelled,
	},
	{
		applies:   func(s OccurrenceSignals) bool { return s.Holiday && s.Exception },
		cancelled: false,
		reason:    ReasonException,
	},
	{
		applies:   func(s OccurrenceSignals) bool { return s.Holiday },
		cancelled: true,
		reason:    ReasonHoliday,
	},
	{
		applies:   func(OccurrenceSignals) bool { return true },
		cancelled: false,
		reason:    ReasonScheduled,
	},
}

// ResolveOccurrence 按规则列表判定是否取消及原因
func ResolveOccurrence(sig OccurrenceSignals) (cancelled bool, reason OccurrenceReason) {
	for _, rule := range occurrenceRules {
		if rule.applies(sig) {
			return rule.cancelled, rule.reason
		}
	}
	return false, ReasonScheduled
}

// IsCancelled 单次课程是否取消
func IsCancelled(sig OccurrenceSignals) bool {
	cancelled, _ := ResolveOccurrence(sig)
	return cancelled
}

// EffectiveTrainers 有效教练集合：存在周覆盖时取覆盖集合（可为空），否则取课程默认
func EffectiveTrainers(course *model.Course, override *model.WeeklyAssignment) (ids model.IDSet, isOverride bool) {
	if override != nil {
		return override.TrainerIDs(), true
	}
	return model.NewIDSet(course.DefaultTrainerIDs...), false
}

// ── 信号索引：一次加载，按键查询 ──

type courseWeekKey struct {
	courseID int64
	week     int
	year     int
}

type isoWeek struct {
	week int
	year int
}

// signalIndex 若干年份内全部周覆盖与取消/假期/例外记录的内存索引
type signalIndex struct {
	overrides  map[courseWeekKey]*model.WeeklyAssignment
	cancelled  map[courseWeekKey]model.CancelledCourse
	holidays   map[isoWeek]model.HolidayWeek
	exceptions map[courseWeekKey]struct{}
}

// loadSignalIndex 加载 years 内的所有信号
func loadSignalIndex(ctx context.Context, repo *repository.Repository, years []int) (*signalIndex, error) {
	ix := &signalIndex{
		overrides:  make(map[courseWeekKey]*model.WeeklyAssignment),
		cancelled:  make(map[courseWeekKey]model.CancelledCourse),
		holidays:   make(map[isoWeek]model.HolidayWeek),
		exceptions: make(map[courseWeekKey]struct{}),
	}

	overrides, err := repo.WeeklyAssignment.ListByYears(ctx, years)
	if err != nil {
		return nil, err
	}
	for i := range overrides {
		wa := &overrides[i]
		ix.overrides[courseWeekKey{wa.CourseID, wa.WeekNumber, wa.Year}] = wa
	}

	cancelled, err := repo.CancelledCourse.ListByYears(ctx, years)
	if err != nil {
		return nil, err
	}
	for _, cc := range cancelled {
		ix.cancelled[courseWeekKey{cc.CourseID, cc.WeekNumber, cc.Year}] = cc
	}

	holidays, err := repo.HolidayWeek.ListByYears(ctx, years)
	if err != nil {
		return nil, err
	}
	for _, hw := range holidays {
		ix.holidays[isoWeek{hw.WeekNumber, hw.Year}] = hw
	}

	exceptions, err := repo.CourseException.ListByYears(ctx, years)
	if err != nil {
		return nil, err
	}
	for _, ce := range exceptions {
		ix.exceptions[courseWeekKey{ce.CourseID, ce.WeekNumber, ce.Year}] = struct{}{}
	}

	return ix, nil
}

func (ix *signalIndex) signals(courseID int64, week, year int) OccurrenceSignals {
	key := courseWeekKey{courseID, week, year}
	_, cancelled := ix.cancelled[key]
	_, holiday := ix.holidays[isoWeek{week, year}]
	_, exception := ix.exceptions[key]
	return OccurrenceSignals{Cancelled: cancelled, Holiday: holiday, Exception: exception}
}

func (ix *signalIndex) override(courseID int64, week, year int) *model.WeeklyAssignment {
	return ix.overrides[courseWeekKey{courseID, week, year}]
}

// occurrence 单次课程的完整判定结果
type occurrence struct {
	Course     *model.Course
	WeekNumber int
	Year       int
	TrainerIDs model.IDSet
	IsOverride bool
	Cancelled  bool
	Reason     OccurrenceReason
	CancelNote string
}

// resolve 计算某课程某周的有效教练与取消状态
func (ix *signalIndex) resolve(course *model.Course, week, year int) occurrence {
	ids, isOverride := EffectiveTrainers(course, ix.override(course.CourseID, week, year))
	cancelled, reason := ResolveOccurrence(ix.signals(course.CourseID, week, year))
	occ := occurrence{
		Course:     course,
		WeekNumber: week,
		Year:       year,
		TrainerIDs: ids,
		IsOverride: isOverride,
		Cancelled:  cancelled,
		Reason:     reason,
	}
	if reason == ReasonCancelled {
		occ.CancelNote = ix.cancelled[courseWeekKey{course.CourseID, week, year}].Reason
	}
	return occ
}
