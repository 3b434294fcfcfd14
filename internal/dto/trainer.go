package dto

// ── 教练模块 DTO ──

// CreateTrainerRequest 创建教练请求
type CreateTrainerRequest struct {
	FirstName      string   `json:"first_name"      binding:"required,max=100"`
	LastName       string   `json:"last_name"       binding:"required,max=100"`
	Email          string   `json:"email"           binding:"omitempty,email,max=200"`
	Phone          string   `json:"phone"           binding:"omitempty,max=50"`
	AvailableDays  []string `json:"available_days"  binding:"omitempty,dive,weekday"`
	Qualifications []string `json:"qualifications"  binding:"omitempty,dive,min=1,max=100"`
	Notes          string   `json:"notes"`
}

// UpdateTrainerRequest 更新教练请求（is_active=false 即停用）
type UpdateTrainerRequest struct {
	FirstName      *string   `json:"first_name"     binding:"omitempty,min=1,max=100"`
	LastName       *string   `json:"last_name"      binding:"omitempty,min=1,max=100"`
	Email          *string   `json:"email"          binding:"omitempty,max=200"`
	Phone          *string   `json:"phone"          binding:"omitempty,max=50"`
	AvailableDays  *[]string `json:"available_days" binding:"omitempty,dive,weekday"`
	Qualifications *[]string `json:"qualifications"`
	Notes          *string   `json:"notes"`
	IsActive       *bool     `json:"is_active"`
}

// TrainerListRequest 教练列表查询参数
type TrainerListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// TrainerResponse 教练信息响应
type TrainerResponse struct {
	ID             int64    `json:"id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Name           string   `json:"name"`
	Email          string   `json:"email,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	AvailableDays  []string `json:"available_days"`
	Qualifications []string `json:"qualifications"`
	Status         string   `json:"status"`
	IsActive       bool     `json:"is_active"`
	Notes          string   `json:"notes,omitempty"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}
