package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/api/middleware"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/dto"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/jwt"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/response"
)

// ContextKeyClaims 认证中间件注入会话声明使用的键
const ContextKeyClaims = middleware.ContextKeyClaims

// MustGetClaims 从 Gin 上下文中安全提取会话声明。
// 如果 JWT 中间件未注入声明，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ContextKeyClaims)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return claims, true
}

// ── 请求参数解析 ──

var errMissingParam = errors.New("缺少必填参数")

// queryValue 依次尝试多个参数名，前端使用 camelCase，脚本多用 snake_case
func queryValue(c *gin.Context, names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(c.Query(n)); v != "" {
			return v
		}
	}
	return ""
}

// queryInt 可选整数参数；缺省返回 nil
func queryInt(c *gin.Context, names ...string) (*int, error) {
	raw := queryValue(c, names...)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// queryInt64 可选 ID 参数；缺省返回 nil
func queryInt64(c *gin.Context, names ...string) (*int64, error) {
	raw := queryValue(c, names...)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return nil, errors.New("无效的 ID")
	}
	return &n, nil
}

// requireQueryInt 必填整数参数
func requireQueryInt(c *gin.Context, names ...string) (int, error) {
	n, err := queryInt(c, names...)
	if err != nil {
		return 0, err
	}
	if n == nil {
		return 0, errMissingParam
	}
	return *n, nil
}

// paramID 解析路径中的 :id，失败时写入 400
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "无效的 ID")
		return 0, false
	}
	return id, true
}

// weekQuery 列表查询的可选 (课程, 周, 年) 过滤条件
func weekQuery(c *gin.Context) (dto.WeekQuery, error) {
	var q dto.WeekQuery
	var err error
	if q.CourseID, err = queryInt64(c, "courseId", "course_id"); err != nil {
		return q, err
	}
	if q.WeekNumber, err = queryInt(c, "weekNumber", "week_number", "week"); err != nil {
		return q, err
	}
	if q.Year, err = queryInt(c, "year"); err != nil {
		return q, err
	}
	return q, nil
}

// weekFromQuery 必填的 (周, 年)
func weekFromQuery(c *gin.Context) (week, year int, err error) {
	if week, err = requireQueryInt(c, "weekNumber", "week_number", "week"); err != nil {
		return 0, 0, err
	}
	if year, err = requireQueryInt(c, "year"); err != nil {
		return 0, 0, err
	}
	return week, year, nil
}

// bindWeekKey DELETE 请求的键：优先取查询参数，缺省时读取 JSON 请求体
func bindWeekKey(c *gin.Context) (*dto.WeekKey, bool) {
	var key dto.WeekKey
	courseID, err := queryInt64(c, "courseId", "course_id")
	if err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return nil, false
	}

	if courseID != nil {
		key.CourseID = *courseID
		week, year, err := weekFromQuery(c)
		if err != nil {
			response.BadRequest(c, 10001, "参数校验失败")
			return nil, false
		}
		key.WeekNumber, key.Year = week, year
		if err := binding.Validator.ValidateStruct(&key); err != nil {
			bindError(c, err)
			return nil, false
		}
		return &key, true
	}

	if err := c.ShouldBindJSON(&key); err != nil {
		bindError(c, err)
		return nil, false
	}
	return &key, true
}

// bindError 参数绑定失败统一返回 400，并附带校验详情
func bindError(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", err.Error())
}
