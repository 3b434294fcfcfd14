package model

import (
	"fmt"
	"strings"
	"time"
)

// Course 课程表：对应 courses（每周固定一次）
type Course struct {
	CourseID          int64  `gorm:"primaryKey;autoIncrement"        json:"course_id"`
	Name              string `gorm:"type:varchar(150);not null"      json:"name"`
	DayOfWeek         int    `gorm:"type:smallint;not null"          json:"day_of_week"` // 1-7，周一为 1
	StartTime         string `gorm:"type:time;not null"              json:"start_time"`
	EndTime           string `gorm:"type:time;not null"              json:"end_time"`
	Location          string `gorm:"type:varchar(150)"               json:"location,omitempty"`
	Category          string `gorm:"type:varchar(100)"               json:"category,omitempty"`
	RequiredTrainers  int    `gorm:"not null;default:2"              json:"required_trainers"`
	DefaultTrainerIDs IDSet  `gorm:"type:bigint[];not null;default:'{}'" json:"default_trainer_ids"`
	IsActive          bool   `gorm:"not null"                        json:"is_active"` // 不设 gorm 默认值，显式 false 才能写入
	BaseModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// DurationHours 单次课时长（小时）；时间无法解析时返回 0
func (c *Course) DurationHours() float64 {
	start, err1 := ParseClock(c.StartTime)
	end, err2 := ParseClock(c.EndTime)
	if err1 != nil || err2 != nil || !end.After(start) {
		return 0
	}
	return end.Sub(start).Hours()
}

// ParseClock 解析 HH:MM 或 HH:MM:SS（PostgreSQL time 列返回带秒格式）
func ParseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("无效的时间格式 %q", s)
}

// FormatClock 统一输出 HH:MM
func FormatClock(s string) string {
	t, err := ParseClock(s)
	if err != nil {
		return s
	}
	return t.Format("15:04")
}
