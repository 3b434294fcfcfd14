package model

import "time"

// ActivityNote 活动备注：对应 activity_notes，挂在逻辑活动 (日期, 标题) 上
type ActivityNote struct {
	ActivityNoteID int64     `gorm:"primaryKey;autoIncrement"                     json:"activity_note_id"`
	ActivityDate   time.Time `gorm:"type:date;not null"                           json:"activity_date"`
	ActivityTitle  string    `gorm:"type:varchar(200);not null"                   json:"activity_title"`
	Content        string    `gorm:"type:text;not null"                           json:"content"`
	NoteType       string    `gorm:"type:varchar(10);not null;default:'internal'" json:"note_type"` // internal | public
	BaseModel
}

// TableName 指定表名
func (ActivityNote) TableName() string { return "activity_notes" }

// CourseNote 课程周备注：对应 course_notes
type CourseNote struct {
	CourseNoteID int64  `gorm:"primaryKey;autoIncrement"                     json:"course_note_id"`
	CourseID     int64  `gorm:"not null"                                     json:"course_id"`
	WeekNumber   int    `gorm:"type:smallint;not null"                       json:"week_number"`
	Year         int    `gorm:"not null"                                     json:"year"`
	Content      string `gorm:"type:text;not null"                           json:"content"`
	NoteType     string `gorm:"type:varchar(10);not null;default:'internal'" json:"note_type"` // internal | public
	BaseModel
}

// TableName 指定表名
func (CourseNote) TableName() string { return "course_notes" }
