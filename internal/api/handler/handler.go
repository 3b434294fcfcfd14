package handler

import "github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth             *AuthHandler
	Trainer          *TrainerHandler
	Course           *CourseHandler
	WeeklyAssignment *WeeklyAssignmentHandler
	Calendar         *CalendarHandler
	SpecialActivity  *SpecialActivityHandler
	Note             *NoteHandler
	Hours            *HoursHandler
	Export           *ExportHandler
	Health           *HealthHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, health HealthDeps) *Handler {
	return &Handler{
		Auth:             NewAuthHandler(svc.Auth),
		Trainer:          NewTrainerHandler(svc.Trainer),
		Course:           NewCourseHandler(svc.Course),
		WeeklyAssignment: NewWeeklyAssignmentHandler(svc.WeeklyAssignment, svc.Calendar),
		Calendar:         NewCalendarHandler(svc.Calendar),
		SpecialActivity:  NewSpecialActivityHandler(svc.SpecialActivity),
		Note:             NewNoteHandler(svc.Note),
		Hours:            NewHoursHandler(svc.Hours),
		Export:           NewExportHandler(svc.Export),
		Health:           NewHealthHandler(health),
	}
}
