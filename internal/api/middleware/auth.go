package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/jwt"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/response"
)

// 认证中间件注入上下文使用的键
const (
	ContextKeyClaims = "claims"
	ContextKeyRole   = "role"
)

// TokenBlacklist 已注销会话查询（由 pkg/redis.Client 实现）
type TokenBlacklist interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth 会话认证中间件
// 从 Authorization: Bearer <token> 中提取并验证会话令牌
// blacklist 为 nil 时（未配置 Redis）跳过注销检查
func JWTAuth(jwtMgr *jwt.Manager, blacklist TokenBlacklist, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			msg := "会话令牌无效"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "会话已过期，请重新登录"
			}
			response.Unauthorized(c, 10002, msg)
			c.Abort()
			return
		}

		if blacklist != nil && claims.ID != "" {
			revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Redis 故障时降级放行，令牌仍受过期时间约束
				logger.Warn("查询会话黑名单失败", zap.Error(err))
			} else if revoked {
				response.Unauthorized(c, 10002, "会话已注销")
				c.Abort()
				return
			}
		}

		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyRole, claims.Role)

		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前会话是否具有指定角色之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextKeyRole)
		if !exists {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		sessionRole, _ := role.(string)
		for _, r := range allowedRoles {
			if sessionRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "无权限访问")
		c.Abort()
	}
}
