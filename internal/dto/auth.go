package dto

// ── 会话模块 DTO ──

// LoginRequest 登录请求：俱乐部只有管理员与教练两个共享口令
type LoginRequest struct {
	Role     string `json:"role"     binding:"required,oneof=admin trainer"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse 登录成功响应
type SessionResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	IssuedAt    string `json:"issued_at"`
	ExpiresAt   string `json:"expires_at"`
	ExpiresIn   int    `json:"expires_in"` // 秒
}

// SessionInfo 当前会话信息（GET /auth/me）
type SessionInfo struct {
	Role      string `json:"role"`
	IssuedAt  string `json:"issued_at"`
	ExpiresAt string `json:"expires_at"`
}
