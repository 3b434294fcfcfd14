package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/dto"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/service"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/response"
)

// SpecialActivityHandler 特殊活动 HTTP 处理器
type SpecialActivityHandler struct {
	activitySvc service.SpecialActivityService
}

// NewSpecialActivityHandler 创建 SpecialActivityHandler
func NewSpecialActivityHandler(activitySvc service.SpecialActivityService) *SpecialActivityHandler {
	return &SpecialActivityHandler{activitySvc: activitySvc}
}

// ListActivities 按 (日期, 标题) 聚合的活动
// GET /api/special-activities?year=&month=  或  ?year=&week=
func (h *SpecialActivityHandler) ListActivities(c *gin.Context) {
	var req dto.ActivityListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.activitySvc.List(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			response.BadRequest(c, 15004, "无效的查询区间")
			return
		}
		response.InternalErrorList(c)
		return
	}
	response.OKList(c, list)
}

// ListActivityRows 未聚合的活动行
// GET /api/special-activities/rows
func (h *SpecialActivityHandler) ListActivityRows(c *gin.Context) {
	var req dto.ActivityListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.activitySvc.ListRows(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			response.BadRequest(c, 15004, "无效的查询区间")
			return
		}
		response.InternalErrorList(c)
		return
	}
	response.OKList(c, list)
}

// GetActivity 活动详情（id 为组内任意一行）
// GET /api/special-activities/:id
func (h *SpecialActivityHandler) GetActivity(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	result, err := h.activitySvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleActivityError(c, err)
		return
	}
	response.OK(c, result)
}

// CreateActivity 新建活动，每位教练一行
// POST /api/special-activities
func (h *SpecialActivityHandler) CreateActivity(c *gin.Context) {
	var req dto.SaveSpecialActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.activitySvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleActivityError(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateActivity 整组替换
// PUT /api/special-activities/:id
func (h *SpecialActivityHandler) UpdateActivity(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.SaveSpecialActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.activitySvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleActivityError(c, err)
		return
	}
	response.OK(c, result)
}

// DeleteActivity 删除整组；不存在时返回 deleted=0
// DELETE /api/special-activities/:id
func (h *SpecialActivityHandler) DeleteActivity(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	result, err := h.activitySvc.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleActivityError(c, err)
		return
	}
	response.OK(c, result)
}

// handleActivityError 统一处理特殊活动业务错误
func (h *SpecialActivityHandler) handleActivityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrActivityNotFound):
		response.NotFound(c, 15001, "特殊活动不存在")
	case errors.Is(err, service.ErrActivityExists):
		response.Error(c, http.StatusConflict, 15002, "同一天已存在同名活动")
	case errors.Is(err, service.ErrNoTrainersSelected):
		response.BadRequest(c, 15003, "至少需要选择一名教练")
	case errors.Is(err, service.ErrInvalidPeriod):
		response.BadRequest(c, 15004, "无效的查询区间")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 14002, "无效的日期")
	case errors.Is(err, service.ErrInvalidWeek):
		response.BadRequest(c, 14001, "无效的周次")
	case errors.Is(err, service.ErrTrainerNotFound):
		response.BadRequest(c, 12001, "包含不存在的教练")
	default:
		response.InternalError(c)
	}
}
