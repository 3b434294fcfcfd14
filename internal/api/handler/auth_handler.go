package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/dto"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/service"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/response"
)

// AuthHandler 会话模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 按角色口令登录
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, 11001, "角色或口令错误")
		case errors.Is(err, service.ErrRoleDisabled):
			response.Forbidden(c, 11002, "该角色未启用口令登录")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Logout 注销当前会话
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Me 当前会话信息
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}
	response.OK(c, h.authSvc.Me(claims))
}
