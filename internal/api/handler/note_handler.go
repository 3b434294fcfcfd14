package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/dto"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/service"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/response"
)

// NoteHandler 活动备注与课程周备注 HTTP 处理器
type NoteHandler struct {
	noteSvc service.NoteService
}

// NewNoteHandler 创建 NoteHandler
func NewNoteHandler(noteSvc service.NoteService) *NoteHandler {
	return &NoteHandler{noteSvc: noteSvc}
}

// ────────────────────── 活动备注 ──────────────────────

// ListActivityNotes GET /api/activity-notes?year=&month=&date=&title=
func (h *NoteHandler) ListActivityNotes(c *gin.Context) {
	var req dto.ActivityNoteListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.noteSvc.ListActivityNotes(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			response.BadRequest(c, 14002, "无效的日期")
			return
		}
		response.InternalErrorList(c)
		return
	}
	response.OKList(c, list)
}

// CreateActivityNote POST /api/activity-notes
func (h *NoteHandler) CreateActivityNote(c *gin.Context) {
	var req dto.CreateActivityNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	note, err := h.noteSvc.CreateActivityNote(c.Request.Context(), &req)
	if err != nil {
		handleNoteError(c, err)
		return
	}
	response.Created(c, note)
}

// UpdateActivityNote PUT /api/activity-notes/:id
func (h *NoteHandler) UpdateActivityNote(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	note, err := h.noteSvc.UpdateActivityNote(c.Request.Context(), id, &req)
	if err != nil {
		handleNoteError(c, err)
		return
	}
	response.OK(c, note)
}

// DeleteActivityNote DELETE /api/activity-notes/:id
func (h *NoteHandler) DeleteActivityNote(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.noteSvc.DeleteActivityNote(c.Request.Context(), id); err != nil {
		handleNoteError(c, err)
		return
	}
	response.OK(c, nil)
}

// ────────────────────── 课程周备注 ──────────────────────

// ListCourseNotes GET /api/notes?courseId=&weekNumber=&year=
func (h *NoteHandler) ListCourseNotes(c *gin.Context) {
	q, err := weekQuery(c)
	if err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.noteSvc.ListCourseNotes(c.Request.Context(), q)
	if err != nil {
		response.InternalErrorList(c)
		return
	}
	response.OKList(c, list)
}

// CreateCourseNote POST /api/notes
func (h *NoteHandler) CreateCourseNote(c *gin.Context) {
	var req dto.CreateCourseNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	note, err := h.noteSvc.CreateCourseNote(c.Request.Context(), &req)
	if err != nil {
		handleNoteError(c, err)
		return
	}
	response.Created(c, note)
}

// UpdateCourseNote PUT /api/notes/:id
func (h *NoteHandler) UpdateCourseNote(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	note, err := h.noteSvc.UpdateCourseNote(c.Request.Context(), id, &req)
	if err != nil {
		handleNoteError(c, err)
		return
	}
	response.OK(c, note)
}

// DeleteCourseNote DELETE /api/notes/:id
func (h *NoteHandler) DeleteCourseNote(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.noteSvc.DeleteCourseNote(c.Request.Context(), id); err != nil {
		handleNoteError(c, err)
		return
	}
	response.OK(c, nil)
}

func handleNoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoteNotFound):
		response.NotFound(c, 16001, "备注不存在")
	case errors.Is(err, service.ErrActivityNotFound):
		response.NotFound(c, 15001, "特殊活动不存在")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13001, "课程不存在")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 14002, "无效的日期")
	case errors.Is(err, service.ErrInvalidWeek):
		response.BadRequest(c, 14001, "无效的周次")
	default:
		response.InternalError(c)
	}
}
