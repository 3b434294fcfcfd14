package service

import "github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/dto"

// StaffingStatus 课程人员配置状态
type StaffingStatus string

const (
	StaffingCritical     StaffingStatus = "critical"
	StaffingUnderstaffed StaffingStatus = "understaffed"
	StaffingOptimal      StaffingStatus = "optimal"
	StaffingOverstaffed  StaffingStatus = "overstaffed"
)

// Staffing 单次课程的人员配置评估
type Staffing struct {
	Status   StaffingStatus
	Assigned int
	Required int
	Deficit  int // 仅 understaffed 时大于 0
	Surplus  int // 仅 overstaffed 时大于 0
}

// EvaluateStaffing 根据已分配与所需人数评估状态
// 无人分配时总是 critical，与所需人数无关（包括 0）
func EvaluateStaffing(assigned, required int) Staffing {
	s := Staffing{Assigned: assigned, Required: required}
	switch {
	case assigned <= 0:
		s.Status = StaffingCritical
	case assigned < required:
		s.Status = StaffingUnderstaffed
		s.Deficit = required - assigned
	case assigned == required:
		s.Status = StaffingOptimal
	default:
		s.Status = StaffingOverstaffed
		s.Surplus = assigned - required
	}
	return s
}

// StaffingSummary 多门课程的人员配置汇总
type StaffingSummary struct {
	Courses       int
	TotalRequired int
	TotalAssigned int
	ByStatus      map[StaffingStatus]int
}

// SummarizeStaffing 汇总：累加所需与已分配人数，并按状态计数
func SummarizeStaffing(items []Staffing) StaffingSummary {
	sum := StaffingSummary{ByStatus: make(map[StaffingStatus]int, 4)}
	for _, s := range items {
		sum.Courses++
		sum.TotalRequired += s.Required
		sum.TotalAssigned += s.Assigned
		sum.ByStatus[s.Status]++
	}
	return sum
}

func (s Staffing) toDTO() dto.Staffing {
	return dto.Staffing{
		Status:   string(s.Status),
		Assigned: s.Assigned,
		Required: s.Required,
		Deficit:  s.Deficit,
		Surplus:  s.Surplus,
	}
}

func (s StaffingSummary) toDTO() dto.StaffingSummary {
	return dto.StaffingSummary{
		Courses:       s.Courses,
		TotalRequired: s.TotalRequired,
		TotalAssigned: s.TotalAssigned,
		Critical:      s.ByStatus[StaffingCritical],
		Understaffed:  s.ByStatus[StaffingUnderstaffed],
		Optimal:       s.ByStatus[StaffingOptimal],
		Overstaffed:   s.ByStatus[StaffingOverstaffed],
	}
}
