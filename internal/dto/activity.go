package dto

// ── 特殊活动模块 DTO ──

// ActivityTrainerInput 参与教练及其工时；hours 为空时使用活动默认工时
type ActivityTrainerInput struct {
	TrainerID int64    `json:"trainer_id" binding:"required,min=1"`
	Hours     *float64 `json:"hours"      binding:"omitempty,gt=0,lte=999"`
}

// SaveSpecialActivityRequest 创建/更新特殊活动
// trainer_ids 与 trainers 二选一；trainers 允许为每位教练单独指定工时
type SaveSpecialActivityRequest struct {
	Date         string                 `json:"date"          binding:"required,datetime=2006-01-02"`
	Title        string                 `json:"title"         binding:"required,max=200"`
	ActivityType string                 `json:"activity_type" binding:"required,oneof=competition workshop training_camp event meeting other"`
	CustomType   string                 `json:"custom_type"   binding:"omitempty,max=100"`
	Hours        float64                `json:"hours"         binding:"required,gt=0,lte=999"`
	Note         string                 `json:"note"`
	Visibility   string                 `json:"visibility"    binding:"omitempty,oneof=internal public"`
	TrainerIDs   []int64                `json:"trainer_ids"   binding:"omitempty,dive,min=1"`
	Trainers     []ActivityTrainerInput `json:"trainers"      binding:"omitempty,dive"`
}

// ActivityListRequest 活动查询参数：year + month 或 year + week，均为空时返回全部
type ActivityListRequest struct {
	Year      int   `form:"year"       binding:"omitempty,min=2000,max=2100"`
	Month     int   `form:"month"      binding:"omitempty,min=1,max=12"`
	Week      int   `form:"week"       binding:"omitempty,min=1,max=53"`
	TrainerID int64 `form:"trainer_id" binding:"omitempty,min=1"`
}

// ActivityTrainer 活动中的一位教练
type ActivityTrainer struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

// SpecialActivityResponse 按 (日期, 标题) 聚合后的逻辑活动
type SpecialActivityResponse struct {
	ID           int64                  `json:"id"` // 组内最小行 ID，用于 PUT/DELETE
	Date         string                 `json:"date"`
	WeekNumber   int                    `json:"week_number"`
	Year         int                    `json:"year"`
	Title        string                 `json:"title"`
	Type         string                 `json:"type"`
	CustomType   string                 `json:"custom_type,omitempty"`
	Hours        float64                `json:"hours"`
	Visibility   string                 `json:"visibility"`
	Note         string                 `json:"note,omitempty"`
	Notes        []ActivityNoteResponse `json:"notes"`
	Trainers     []ActivityTrainer      `json:"trainers"`
	TotalHours   float64                `json:"total_hours"`
	TrainerCount int                    `json:"trainer_count"`
}

// SpecialActivityRowResponse 未聚合的单行
type SpecialActivityRowResponse struct {
	ID           int64   `json:"id"`
	Date         string  `json:"date"`
	WeekNumber   int     `json:"week_number"`
	Year         int     `json:"year"`
	Title        string  `json:"title"`
	ActivityType string  `json:"activity_type"`
	CustomType   string  `json:"custom_type,omitempty"`
	Hours        float64 `json:"hours"`
	Visibility   string  `json:"visibility"`
	Note         string  `json:"note,omitempty"`
	TrainerID    int64   `json:"trainer_id"`
	TrainerName  string  `json:"trainer_name,omitempty"`
}
