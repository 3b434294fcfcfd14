package dto

// ── 备注模块 DTO ──

// CreateActivityNoteRequest 新增活动备注
type CreateActivityNoteRequest struct {
	ActivityDate  string `json:"activity_date"  binding:"required,datetime=2006-01-02"`
	ActivityTitle string `json:"activity_title" binding:"required,max=200"`
	Content       string `json:"content"        binding:"required"`
	NoteType      string `json:"note_type"      binding:"omitempty,oneof=internal public"`
}

// UpdateNoteRequest 更新备注（活动备注与课程备注共用）
type UpdateNoteRequest struct {
	Content  *string `json:"content"   binding:"omitempty,min=1"`
	NoteType *string `json:"note_type" binding:"omitempty,oneof=internal public"`
}

// ActivityNoteListRequest 活动备注查询
type ActivityNoteListRequest struct {
	Year  int    `form:"year"  binding:"omitempty,min=2000,max=2100"`
	Month int    `form:"month" binding:"omitempty,min=1,max=12"`
	Date  string `form:"date"  binding:"omitempty,datetime=2006-01-02"`
	Title string `form:"title"`
}

// ActivityNoteResponse 活动备注
type ActivityNoteResponse struct {
	ID            int64  `json:"id"`
	ActivityDate  string `json:"activity_date"`
	ActivityTitle string `json:"activity_title"`
	Content       string `json:"content"`
	NoteType      string `json:"note_type"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// CreateCourseNoteRequest 新增课程周备注
type CreateCourseNoteRequest struct {
	WeekKey
	Content  string `json:"content"   binding:"required"`
	NoteType string `json:"note_type" binding:"omitempty,oneof=internal public"`
}

// CourseNoteResponse 课程周备注
type CourseNoteResponse struct {
	ID         int64  `json:"id"`
	CourseID   int64  `json:"course_id"`
	WeekNumber int    `json:"week_number"`
	Year       int    `json:"year"`
	Content    string `json:"content"`
	NoteType   string `json:"note_type"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}
