package dto

// ── 通用响应片段 ──

// TrainerBrief 教练简要信息（嵌入课程、活动等响应）
type TrainerBrief struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// DeleteResult 删除类操作结果
type DeleteResult struct {
	Deleted int64 `json:"deleted"`
}
