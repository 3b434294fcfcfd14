package model

import "time"

// 特殊活动类型
const (
	ActivityTypeCompetition  = "competition"
	ActivityTypeWorkshop     = "workshop"
	ActivityTypeTrainingCamp = "training_camp"
	ActivityTypeEvent        = "event"
	ActivityTypeMeeting      = "meeting"
	ActivityTypeOther        = "other"
)

// SpecialActivity 特殊活动：对应 special_activities
// 每个 (activity_date, title, trainer_id) 一行；同一 (日期, 标题) 的多行构成一个逻辑活动
type SpecialActivity struct {
	ActivityID   int64     `gorm:"primaryKey;autoIncrement"                     json:"activity_id"`
	ActivityDate time.Time `gorm:"type:date;not null"                           json:"activity_date"`
	WeekNumber   int       `gorm:"type:smallint;not null"                       json:"week_number"`
	Year         int       `gorm:"not null"                                     json:"year"`
	ActivityType string    `gorm:"type:varchar(30);not null"                    json:"activity_type"`
	CustomType   string    `gorm:"type:varchar(100)"                            json:"custom_type,omitempty"`
	Title        string    `gorm:"type:varchar(200);not null"                   json:"title"`
	Hours        float64   `gorm:"type:numeric(5,2);not null"                   json:"hours"`
	Note         string    `gorm:"type:text"                                    json:"note,omitempty"`
	Visibility   string    `gorm:"type:varchar(10);not null;default:'internal'" json:"visibility"`
	TrainerID    int64     `gorm:"not null"                                     json:"trainer_id"`
	BaseModel

	// 关联
	Trainer *Trainer `gorm:"foreignKey:TrainerID;references:TrainerID" json:"trainer,omitempty"`
}

// TableName 指定表名
func (SpecialActivity) TableName() string { return "special_activities" }
