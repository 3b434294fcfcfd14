package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/service"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportTrainerHours 导出工时统计
// GET /api/export/trainer-hours/:year[/:month]
func (h *ExportHandler) ExportTrainerHours(c *gin.Context) {
	year, month, ok := periodParams(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.TrainerHoursXLSX(c.Request.Context(), year, month)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// ExportWeekICS 导出周课表
// GET /api/export/week.ics?weekNumber=&year=&trainerId=
func (h *ExportHandler) ExportWeekICS(c *gin.Context) {
	week, year, err := weekFromQuery(c)
	if err != nil {
		response.BadRequest(c, 10001, "缺少或无效的 weekNumber/year")
		return
	}
	trainerID, err := queryInt64(c, "trainerId", "trainer_id")
	if err != nil {
		response.BadRequest(c, 10001, "无效的 trainerId")
		return
	}

	data, filename, err := h.exportSvc.WeekICS(c.Request.Context(), week, year, trainerID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	attachment(c, filename)
	c.Data(http.StatusOK, contentTypeICS, data)
}

// attachment 设置下载响应头
func attachment(c *gin.Context, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidPeriod):
		response.BadRequest(c, 15004, "无效的统计区间")
	case errors.Is(err, service.ErrInvalidWeek):
		response.BadRequest(c, 14001, "无效的周次")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 17001, "生成导出文件失败")
	default:
		response.InternalError(c)
	}
}
