package model

// CancelledCourse 课程单次取消：对应 cancelled_courses，(course_id, week_number, year) 唯一
type CancelledCourse struct {
	CancelledCourseID int64  `gorm:"primaryKey;autoIncrement" json:"cancelled_course_id"`
	CourseID          int64  `gorm:"not null"                 json:"course_id"`
	WeekNumber        int    `gorm:"type:smallint;not null"   json:"week_number"`
	Year              int    `gorm:"not null"                 json:"year"`
	Reason            string `gorm:"type:varchar(300)"        json:"reason,omitempty"`
	BaseModel
}

// TableName 指定表名
func (CancelledCourse) TableName() string { return "cancelled_courses" }

// HolidayWeek 假期周：对应 holiday_weeks，该周所有课程默认取消
type HolidayWeek struct {
	HolidayWeekID int64  `gorm:"primaryKey;autoIncrement" json:"holiday_week_id"`
	WeekNumber    int    `gorm:"type:smallint;not null"   json:"week_number"`
	Year          int    `gorm:"not null"                 json:"year"`
	Label         string `gorm:"type:varchar(100)"        json:"label,omitempty"`
	BaseModel
}

// TableName 指定表名
func (HolidayWeek) TableName() string { return "holiday_weeks" }

// CourseException 假期例外：对应 course_exceptions
// 仅用于在假期周内恢复某门课；不能撤销显式取消
type CourseException struct {
	CourseExceptionID int64 `gorm:"primaryKey;autoIncrement" json:"course_exception_id"`
	CourseID          int64 `gorm:"not null"                 json:"course_id"`
	WeekNumber        int   `gorm:"type:smallint;not null"   json:"week_number"`
	Year              int   `gorm:"not null"                 json:"year"`
	BaseModel
}

// TableName 指定表名
func (CourseException) TableName() string { return "course_exceptions" }
