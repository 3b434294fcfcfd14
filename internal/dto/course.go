package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
// day_of_week 接受 monday / Montag / Mo / 1 等写法
type CreateCourseRequest struct {
	Name              string  `json:"name"                binding:"required,max=150"`
	DayOfWeek         string  `json:"day_of_week"         binding:"required,weekday"`
	StartTime         string  `json:"start_time"          binding:"required,clock"`
	EndTime           string  `json:"end_time"            binding:"required,clock"`
	Location          string  `json:"location"            binding:"omitempty,max=150"`
	Category          string  `json:"category"            binding:"omitempty,max=100"`
	RequiredTrainers  *int    `json:"required_trainers"   binding:"omitempty,min=1,max=50"`
	DefaultTrainerIDs []int64 `json:"default_trainer_ids" binding:"omitempty,dive,min=1"`
	IsActive          *bool   `json:"is_active"`
}

// UpdateCourseRequest 更新课程请求
type UpdateCourseRequest struct {
	Name              *string  `json:"name"                binding:"omitempty,min=1,max=150"`
	DayOfWeek         *string  `json:"day_of_week"         binding:"omitempty,weekday"`
	StartTime         *string  `json:"start_time"          binding:"omitempty,clock"`
	EndTime           *string  `json:"end_time"            binding:"omitempty,clock"`
	Location          *string  `json:"location"            binding:"omitempty,max=150"`
	Category          *string  `json:"category"            binding:"omitempty,max=100"`
	RequiredTrainers  *int     `json:"required_trainers"   binding:"omitempty,min=1,max=50"`
	DefaultTrainerIDs *[]int64 `json:"default_trainer_ids" binding:"omitempty,dive,min=1"`
	IsActive          *bool    `json:"is_active"`
}

// CourseListRequest 课程列表查询参数
type CourseListRequest struct {
	IncludeInactive bool `form:"include_inactive"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	DayOfWeek         int     `json:"day_of_week"`
	Weekday           string  `json:"weekday"`       // monday..sunday
	WeekdayLabel      string  `json:"weekday_label"` // Montag..Sonntag
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	DurationHours     float64 `json:"duration_hours"`
	Location          string  `json:"location,omitempty"`
	Category          string  `json:"category,omitempty"`
	RequiredTrainers  int     `json:"required_trainers"`
	DefaultTrainerIDs []int64 `json:"default_trainer_ids"`
	IsActive          bool    `json:"is_active"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}
