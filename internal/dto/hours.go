package dto

// ── 工时统计 DTO ──

// TrainerHoursRow 单个教练在统计期内的工时
type TrainerHoursRow struct {
	TrainerID     int64   `json:"trainer_id"`
	Name          string  `json:"name"`
	IsActive      bool    `json:"is_active"`
	CourseHours   float64 `json:"course_hours"`
	CourseCount   int     `json:"course_count"`
	ActivityHours float64 `json:"activity_hours"`
	ActivityCount int     `json:"activity_count"`
	TotalHours    float64 `json:"total_hours"`
}

// TrainerHoursResponse 工时统计（GET /trainer-hours/:year[/:month]）
type TrainerHoursResponse struct {
	Year       int               `json:"year"`
	Month      int               `json:"month,omitempty"` // 0 表示全年
	From       string            `json:"from"`
	To         string            `json:"to"` // 不含
	List       []TrainerHoursRow `json:"list"`
	TotalHours float64           `json:"total_hours"`
}
