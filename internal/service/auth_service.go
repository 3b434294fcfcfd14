package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/config"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/dto"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("角色或口令错误")
	ErrRoleDisabled       = errors.New("该角色未启用口令登录")
)

// SessionStore 会话黑名单存储（由 pkg/redis.Client 实现）
type SessionStore interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 会话业务接口
//
// 俱乐部不维护用户表：管理员与教练各有一个共享口令，
// 登录即按角色签发有过期时间的会话令牌，每次特权调用都校验角色。
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(claims *jwt.Claims) *dto.SessionInfo
}

type authService struct {
	cfg      *config.Config
	jwtMgr   *jwt.Manager
	sessions SessionStore
	logger   *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	jwtMgr *jwt.Manager,
	sessions SessionStore,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:      cfg,
		jwtMgr:   jwtMgr,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	// 1. 取角色对应的口令哈希
	var hash string
	switch req.Role {
	case jwt.RoleAdmin:
		hash = s.cfg.Auth.AdminPasswordHash
	case jwt.RoleTrainer:
		hash = s.cfg.Auth.TrainerPasswordHash
	default:
		return nil, ErrInvalidCredentials
	}
	if hash == "" {
		return nil, ErrRoleDisabled
	}

	// 2. 验证口令 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		s.logger.Warn("登录失败", zap.String("role", req.Role))
		return nil, ErrInvalidCredentials
	}

	// 3. 签发会话令牌
	token, claims, err := s.jwtMgr.GenerateSessionToken(req.Role)
	if err != nil {
		s.logger.Error("生成会话令牌失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("登录成功", zap.String("role", req.Role), zap.String("jti", claims.ID))

	return &dto.SessionResponse{
		AccessToken: token,
		Role:        claims.Role,
		IssuedAt:    claims.IssuedAt.Time.UTC().Format(timestampLayout),
		ExpiresAt:   claims.ExpiresAt.Time.UTC().Format(timestampLayout),
		ExpiresIn:   int(s.jwtMgr.TTL().Seconds()),
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.sessions == nil || claims == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.sessions.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("会话加入黑名单失败", zap.String("jti", claims.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Me(claims *jwt.Claims) *dto.SessionInfo {
	return &dto.SessionInfo{
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt.Time.UTC().Format(timestampLayout),
		ExpiresAt: claims.ExpiresAt.Time.UTC().Format(timestampLayout),
	}
}
