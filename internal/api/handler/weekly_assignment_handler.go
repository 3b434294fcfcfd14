package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/dto"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/service"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/response"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/weekcalc"
)

// WeeklyAssignmentHandler 周覆盖分配 HTTP 处理器
type WeeklyAssignmentHandler struct {
	assignSvc   service.WeeklyAssignmentService
	calendarSvc service.CalendarService
}

// NewWeeklyAssignmentHandler 创建 WeeklyAssignmentHandler
func NewWeeklyAssignmentHandler(assignSvc service.WeeklyAssignmentService, calendarSvc service.CalendarService) *WeeklyAssignmentHandler {
	return &WeeklyAssignmentHandler{assignSvc: assignSvc, calendarSvc: calendarSvc}
}

// GetAssignment 某课程某周的有效教练
// GET /api/weekly-assignments?courseId=&weekNumber=&year=
func (h *WeeklyAssignmentHandler) GetAssignment(c *gin.Context) {
	courseID, err := queryInt64(c, "courseId", "course_id")
	if err != nil || courseID == nil {
		response.BadRequest(c, 10001, "缺少或无效的 courseId")
		return
	}
	week, year, err := weekFromQuery(c)
	if err != nil {
		response.BadRequest(c, 10001, "缺少或无效的 weekNumber/year")
		return
	}

	result, err := h.assignSvc.Get(c.Request.Context(), *courseID, week, year)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	response.OK(c, result)
}

// GetWeek 某周全部课程的有效教练、取消状态与人员配置
// GET /api/weekly-assignments/batch?weekNumber=&year=  或  ?date=YYYY-MM-DD
func (h *WeeklyAssignmentHandler) GetWeek(c *gin.Context) {
	var week, year int
	if raw := queryValue(c, "date"); raw != "" {
		date, err := weekcalc.ParseDate(raw)
		if err != nil {
			response.BadRequest(c, 14002, "无效的日期")
			return
		}
		week, year = weekcalc.WeekOf(date)
	} else {
		var err error
		if week, year, err = weekFromQuery(c); err != nil {
			response.BadRequest(c, 10001, "缺少 weekNumber/year 或 date")
			return
		}
	}

	view, err := h.calendarSvc.WeekView(c.Request.Context(), week, year)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	response.OK(c, view)
}

// SetAssignment 整体替换某周的教练集合
// POST /api/weekly-assignments
func (h *WeeklyAssignmentHandler) SetAssignment(c *gin.Context) {
	var req dto.SetWeeklyAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.assignSvc.Set(c.Request.Context(), &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	response.OK(c, result)
}

// ClearAssignment 删除周覆盖，恢复课程默认
// DELETE /api/weekly-assignments?courseId=&weekNumber=&year=
func (h *WeeklyAssignmentHandler) ClearAssignment(c *gin.Context) {
	key, ok := bindWeekKey(c)
	if !ok {
		return
	}

	if err := h.assignSvc.Clear(c.Request.Context(), key.CourseID, key.WeekNumber, key.Year); err != nil {
		h.handleAssignmentError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleAssignmentError 统一处理周计划业务错误
func (h *WeeklyAssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidWeek):
		response.BadRequest(c, 14001, "无效的周次")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13001, "课程不存在")
	case errors.Is(err, service.ErrTrainerNotFound):
		response.BadRequest(c, 12001, "包含不存在的教练")
	default:
		response.InternalError(c)
	}
}
