package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/dto"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/service"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/response"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/weekcalc"
)

// CalendarHandler 课程取消 / 假期周 / 假期例外 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
	// fetchICS 远程假期日历下载，测试中可替换
	fetchICS func(rawURL string) (io.ReadCloser, error)
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{
		calendarSvc: calendarSvc,
		fetchICS:    service.FetchICSContent,
	}
}

// ────────────────────── 课程取消 ──────────────────────

// ListCancelled 取消记录
// GET /api/cancelled-courses?courseId=&weekNumber=&year=
func (h *CalendarHandler) ListCancelled(c *gin.Context) {
	q, err := weekQuery(c)
	if err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.calendarSvc.ListCancelled(c.Request.Context(), q)
	if err != nil {
		response.InternalErrorList(c)
		return
	}
	response.OKList(c, list)
}

// CancelCourse 取消单次课程；重复取消只更新原因
// POST /api/cancelled-courses
func (h *CalendarHandler) CancelCourse(c *gin.Context) {
	var req dto.CancelCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.calendarSvc.CancelCourse(c.Request.Context(), &req)
	if err != nil {
		handleCalendarError(c, err)
		return
	}
	response.OK(c, result)
}

// RestoreCourse 撤销取消
// DELETE /api/cancelled-courses?courseId=&weekNumber=&year=
func (h *CalendarHandler) RestoreCourse(c *gin.Context) {
	key, ok := bindWeekKey(c)
	if !ok {
		return
	}

	if err := h.calendarSvc.RestoreCourse(c.Request.Context(), key.CourseID, key.WeekNumber, key.Year); err != nil {
		handleCalendarError(c, err)
		return
	}
	response.OK(c, nil)
}

// ────────────────────── 假期周 ──────────────────────

// ListHolidayWeeks 假期周列表
// GET /api/holiday-weeks?year=
func (h *CalendarHandler) ListHolidayWeeks(c *gin.Context) {
	year, err := queryInt(c, "year")
	if err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.calendarSvc.ListHolidayWeeks(c.Request.Context(), year)
	if err != nil {
		response.InternalErrorList(c)
		return
	}
	response.OKList(c, list)
}

// SetHolidayWeek 标记假期周
// POST /api/holiday-weeks
func (h *CalendarHandler) SetHolidayWeek(c *gin.Context) {
	var req dto.HolidayWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.calendarSvc.SetHolidayWeek(c.Request.Context(), &req)
	if err != nil {
		handleCalendarError(c, err)
		return
	}
	response.OK(c, result)
}

// ClearHolidayWeek 取消假期周标记；该周的例外记录保留
// DELETE /api/holiday-weeks?weekNumber=&year=
func (h *CalendarHandler) ClearHolidayWeek(c *gin.Context) {
	week, year, err := weekFromQuery(c)
	if err != nil {
		var req dto.HolidayWeekRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		week, year = req.WeekNumber, req.Year
	}

	if err := h.calendarSvc.ClearHolidayWeek(c.Request.Context(), week, year); err != nil {
		handleCalendarError(c, err)
		return
	}
	response.OK(c, nil)
}

// ImportHolidayWeeks 从假期日历导入假期周
// POST /api/holiday-weeks/import
//
// 支持两种方式：
//   - 文件上传: multipart/form-data, field="file"
//   - URL 导入: application/json, body={"url": "..."}
func (h *CalendarHandler) ImportHolidayWeeks(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err == nil {
		defer file.Close()
		h.importFrom(c, file)
		return
	}

	var req dto.HolidayImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.URL = c.PostForm("url")
		if req.URL == "" {
			response.BadRequest(c, 10001, "请上传 ICS 文件或提供 ICS URL")
			return
		}
	}

	body, err := h.fetchICS(req.URL)
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 14004, "ICS URL 获取失败", err.Error())
		return
	}
	defer body.Close()

	h.importFrom(c, body)
}

func (h *CalendarHandler) importFrom(c *gin.Context, r io.Reader) {
	result, err := h.calendarSvc.ImportHolidayWeeks(c.Request.Context(), r)
	if err != nil {
		handleCalendarError(c, err)
		return
	}
	response.OK(c, result)
}

// ────────────────────── 假期例外 ──────────────────────

// ListExceptions 假期例外列表
// GET /api/course-exceptions?courseId=&weekNumber=&year=
func (h *CalendarHandler) ListExceptions(c *gin.Context) {
	q, err := weekQuery(c)
	if err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.calendarSvc.ListExceptions(c.Request.Context(), q)
	if err != nil {
		response.InternalErrorList(c)
		return
	}
	response.OKList(c, list)
}

// AddException 假期周内照常上课
// POST /api/course-exceptions
func (h *CalendarHandler) AddException(c *gin.Context) {
	var req dto.WeekKey
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.calendarSvc.AddException(c.Request.Context(), &req)
	if err != nil {
		handleCalendarError(c, err)
		return
	}
	response.OK(c, result)
}

// RemoveException 删除假期例外
// DELETE /api/course-exceptions?courseId=&weekNumber=&year=
func (h *CalendarHandler) RemoveException(c *gin.Context) {
	key, ok := bindWeekKey(c)
	if !ok {
		return
	}

	if err := h.calendarSvc.RemoveException(c.Request.Context(), key.CourseID, key.WeekNumber, key.Year); err != nil {
		handleCalendarError(c, err)
		return
	}
	response.OK(c, nil)
}

// ────────────────────── 周计算 ──────────────────────

// ResolveWeek 日期所属 ISO 周；不传 date 时取今天
// GET /api/weeks/resolve?date=YYYY-MM-DD
func (h *CalendarHandler) ResolveWeek(c *gin.Context) {
	date := weekcalc.DateOnly(time.Now())
	if raw := queryValue(c, "date"); raw != "" {
		d, err := weekcalc.ParseDate(raw)
		if err != nil {
			response.BadRequest(c, 14002, "无效的日期")
			return
		}
		date = d
	}
	response.OK(c, h.calendarSvc.ResolveDate(date))
}

// handleCalendarError 统一处理日历模块业务错误
func handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidWeek):
		response.BadRequest(c, 14001, "无效的周次")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 14002, "无效的日期")
	case errors.Is(err, service.ErrInvalidICS):
		response.ErrorWithDetails(c, http.StatusBadRequest, 14003, "无效的 ICS 日历", err.Error())
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13001, "课程不存在")
	default:
		response.InternalError(c)
	}
}
