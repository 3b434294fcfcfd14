package dto

// ── 周计划模块 DTO ──

// WeekKey 课程周键 (course, week, year)
type WeekKey struct {
	CourseID   int64 `json:"course_id"   binding:"required,min=1"`
	WeekNumber int   `json:"week_number" binding:"required,min=1,max=53"`
	Year       int   `json:"year"        binding:"required,min=2000,max=2100"`
}

// SetWeeklyAssignmentRequest 替换某课程某周的教练集合；空数组表示本周无人带课
type SetWeeklyAssignmentRequest struct {
	WeekKey
	TrainerIDs []int64 `json:"trainer_ids" binding:"omitempty,dive,min=1"`
}

// CancelCourseRequest 取消单次课程
type CancelCourseRequest struct {
	WeekKey
	Reason string `json:"reason" binding:"omitempty,max=300"`
}

// HolidayWeekRequest 标记假期周
type HolidayWeekRequest struct {
	WeekNumber int    `json:"week_number" binding:"required,min=1,max=53"`
	Year       int    `json:"year"        binding:"required,min=2000,max=2100"`
	Label      string `json:"label"       binding:"omitempty,max=100"`
}

// Staffing 人员配置评估结果
type Staffing struct {
	Status   string `json:"status"` // critical | understaffed | optimal | overstaffed
	Assigned int    `json:"assigned"`
	Required int    `json:"required"`
	Deficit  int    `json:"deficit,omitempty"`
	Surplus  int    `json:"surplus,omitempty"`
}

// StaffingSummary 全部课程的人员配置汇总
type StaffingSummary struct {
	Courses       int `json:"courses"`
	TotalRequired int `json:"total_required"`
	TotalAssigned int `json:"total_assigned"`
	Critical      int `json:"critical"`
	Understaffed  int `json:"understaffed"`
	Optimal       int `json:"optimal"`
	Overstaffed   int `json:"overstaffed"`
}

// WeeklyAssignmentResponse 某课程某周的有效教练
type WeeklyAssignmentResponse struct {
	CourseID   int64          `json:"course_id"`
	WeekNumber int            `json:"week_number"`
	Year       int            `json:"year"`
	TrainerIDs []int64        `json:"trainer_ids"`
	Trainers   []TrainerBrief `json:"trainers"`
	IsOverride bool           `json:"is_override"`
	Staffing   Staffing       `json:"staffing"`
}

// OccurrenceResponse 周视图中的单次课程
type OccurrenceResponse struct {
	Course     CourseResponse       `json:"course"`
	Date       string               `json:"date"`
	TrainerIDs []int64              `json:"trainer_ids"`
	Trainers   []TrainerBrief       `json:"trainers"`
	IsOverride bool                 `json:"is_override"`
	Cancelled  bool                 `json:"cancelled"`
	Reason     string               `json:"reason"`                // cancelled | holiday | exception | scheduled
	CancelNote string               `json:"cancel_note,omitempty"` // 取消记录中填写的原因
	Staffing   *Staffing            `json:"staffing,omitempty"`    // 取消的课程不评估
	Notes      []CourseNoteResponse `json:"notes"`
}

// WeekViewResponse 某周全部课程（GET /weekly-assignments/batch）
type WeekViewResponse struct {
	WeekNumber   int                  `json:"week_number"`
	Year         int                  `json:"year"`
	HolidayWeek  bool                 `json:"holiday_week"`
	HolidayLabel string               `json:"holiday_label,omitempty"`
	Days         []DayResponse        `json:"days"`
	Courses      []OccurrenceResponse `json:"courses"`
	Summary      StaffingSummary      `json:"summary"`
}

// DayResponse 周内某天
type DayResponse struct {
	Weekday string `json:"weekday"`
	Label   string `json:"label"`
	Date    string `json:"date"`
}

// WeekResolveResponse 日期所属 ISO 周（GET /weeks/resolve）
type WeekResolveResponse struct {
	Date       string        `json:"date"`
	WeekNumber int           `json:"week_number"`
	Year       int           `json:"year"`
	Weekday    string        `json:"weekday"`
	Days       []DayResponse `json:"days"`
}

// CancelledCourseResponse 取消记录
type CancelledCourseResponse struct {
	ID         int64  `json:"id"`
	CourseID   int64  `json:"course_id"`
	WeekNumber int    `json:"week_number"`
	Year       int    `json:"year"`
	Reason     string `json:"reason,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// HolidayWeekResponse 假期周
type HolidayWeekResponse struct {
	ID         int64  `json:"id"`
	WeekNumber int    `json:"week_number"`
	Year       int    `json:"year"`
	Label      string `json:"label,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// CourseExceptionResponse 假期例外
type CourseExceptionResponse struct {
	ID         int64  `json:"id"`
	CourseID   int64  `json:"course_id"`
	WeekNumber int    `json:"week_number"`
	Year       int    `json:"year"`
	CreatedAt  string `json:"created_at"`
}

// WeekQuery 按周过滤的可选条件（由处理器从查询参数解析）
type WeekQuery struct {
	CourseID   *int64
	WeekNumber *int
	Year       *int
}

// HolidayImportRequest 从远程假期日历导入
type HolidayImportRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// HolidayImportResponse 导入结果：逐周统计成功与失败，不支持只重试失败项
type HolidayImportResponse struct {
	Imported int                   `json:"imported"`
	Failed   int                   `json:"failed"`
	Skipped  int                   `json:"skipped"` // 无法解析的事件
	Weeks    []HolidayWeekResponse `json:"weeks"`
}
