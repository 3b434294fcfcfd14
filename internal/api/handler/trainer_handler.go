package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/dto"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/service"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/response"
)

// TrainerHandler 教练模块 HTTP 处理器
type TrainerHandler struct {
	trainerSvc service.TrainerService
}

// NewTrainerHandler 创建 TrainerHandler
func NewTrainerHandler(trainerSvc service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerSvc: trainerSvc}
}

// ListTrainers 教练列表
// GET /api/trainers?include_inactive=true
func (h *TrainerHandler) ListTrainers(c *gin.Context) {
	var req dto.TrainerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	if c.Query("includeInactive") == "true" {
		req.IncludeInactive = true
	}

	list, err := h.trainerSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalErrorList(c)
		return
	}
	response.OKList(c, list)
}

// GetTrainer 教练详情
// GET /api/trainers/:id
func (h *TrainerHandler) GetTrainer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	trainer, err := h.trainerSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTrainerError(c, err)
		return
	}
	response.OK(c, trainer)
}

// CreateTrainer 新建教练
// POST /api/trainers
func (h *TrainerHandler) CreateTrainer(c *gin.Context) {
	var req dto.CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	trainer, err := h.trainerSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleTrainerError(c, err)
		return
	}
	response.Created(c, trainer)
}

// UpdateTrainer 更新教练
// PUT /api/trainers/:id
func (h *TrainerHandler) UpdateTrainer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.UpdateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	trainer, err := h.trainerSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleTrainerError(c, err)
		return
	}
	response.OK(c, trainer)
}

// DeactivateTrainer 停用（软删除）
// POST /api/trainers/:id/deactivate
func (h *TrainerHandler) DeactivateTrainer(c *gin.Context) {
	h.setActive(c, false)
}

// ActivateTrainer 恢复在岗
// POST /api/trainers/:id/activate
func (h *TrainerHandler) ActivateTrainer(c *gin.Context) {
	h.setActive(c, true)
}

func (h *TrainerHandler) setActive(c *gin.Context, active bool) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	trainer, err := h.trainerSvc.SetActive(c.Request.Context(), id, active)
	if err != nil {
		h.handleTrainerError(c, err)
		return
	}
	response.OK(c, trainer)
}

// DeleteTrainer 物理删除，需 ?confirm=<id>
// DELETE /api/trainers/:id
func (h *TrainerHandler) DeleteTrainer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.trainerSvc.Delete(c.Request.Context(), id, c.Query("confirm")); err != nil {
		h.handleTrainerError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleTrainerError 统一处理教练模块业务错误
func (h *TrainerHandler) handleTrainerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTrainerNotFound):
		response.NotFound(c, 12001, "教练不存在")
	case errors.Is(err, service.ErrDeleteNotConfirmed):
		response.BadRequest(c, 12002, "物理删除需要 confirm 参数等于教练 ID")
	case errors.Is(err, service.ErrInvalidWeekday):
		response.BadRequest(c, 12003, "无效的星期")
	default:
		response.InternalError(c)
	}
}
