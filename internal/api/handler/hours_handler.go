package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/service"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/response"
)

// HoursHandler 教练工时统计 HTTP 处理器
type HoursHandler struct {
	hoursSvc service.HoursService
}

// NewHoursHandler 创建 HoursHandler
func NewHoursHandler(hoursSvc service.HoursService) *HoursHandler {
	return &HoursHandler{hoursSvc: hoursSvc}
}

// TrainerHours 统计期内每位教练的课程与活动工时
// GET /api/trainer-hours/:year[/:month]
func (h *HoursHandler) TrainerHours(c *gin.Context) {
	year, month, ok := periodParams(c)
	if !ok {
		return
	}

	result, err := h.hoursSvc.TrainerHours(c.Request.Context(), year, month)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			response.BadRequest(c, 15004, "无效的统计区间")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// periodParams 解析 :year 与可选 :month；month 缺省为 0（全年）
func periodParams(c *gin.Context) (year, month int, ok bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequest(c, 10001, "无效的年份")
		return 0, 0, false
	}
	if raw := c.Param("month"); raw != "" {
		if month, err = strconv.Atoi(raw); err != nil {
			response.BadRequest(c, 10001, "无效的月份")
			return 0, 0, false
		}
	}
	return year, month, true
}
