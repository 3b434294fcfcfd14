package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/response"
)

const healthTimeout = 3 * time.Second

// Pinger 可探活的依赖
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthDeps 健康检查依赖；Cache 为 nil 表示未配置 Redis
type HealthDeps struct {
	DB            Pinger
	Cache         Pinger
	SchemaVersion func(ctx context.Context) (version uint, dirty bool, err error)
}

// HealthHandler 健康检查
type HealthHandler struct {
	deps HealthDeps
}

// NewHealthHandler 创建 HealthHandler
func NewHealthHandler(deps HealthDeps) *HealthHandler {
	return &HealthHandler{deps: deps}
}

type healthStatus struct {
	Status        string `json:"status"`
	Database      string `json:"database"`
	Redis         string `json:"redis"`
	SchemaVersion uint   `json:"schema_version,omitempty"`
	SchemaDirty   bool   `json:"schema_dirty,omitempty"`
}

// Health GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	st := healthStatus{Status: "ok", Database: "ok", Redis: "disabled"}

	if h.deps.DB == nil || h.deps.DB.Ping(ctx) != nil {
		st.Status, st.Database = "degraded", "unavailable"
	}
	if h.deps.Cache != nil {
		st.Redis = "ok"
		if err := h.deps.Cache.Ping(ctx); err != nil {
			// Redis 只承担黑名单与限流，失败不影响核心功能
			st.Redis = "unavailable"
		}
	}
	if h.deps.SchemaVersion != nil && st.Database == "ok" {
		if v, dirty, err := h.deps.SchemaVersion(ctx); err == nil {
			st.SchemaVersion, st.SchemaDirty = v, dirty
		}
	}

	if st.Database != "ok" {
		c.JSON(http.StatusServiceUnavailable, response.Response{Code: 50300, Message: "数据库不可用", Data: st})
		return
	}
	response.OK(c, st)
}
