package model

import "github.com/lib/pq"

// 教练状态
const (
	TrainerStatusActive   = "active"
	TrainerStatusInactive = "inactive"
)

// Trainer 教练表：对应 trainers
type Trainer struct {
	TrainerID      int64          `gorm:"primaryKey;autoIncrement"                json:"trainer_id"`
	FirstName      string         `gorm:"type:varchar(100);not null"              json:"first_name"`
	LastName       string         `gorm:"type:varchar(100);not null"              json:"last_name"`
	Email          string         `gorm:"type:varchar(200)"                       json:"email,omitempty"`
	Phone          string         `gorm:"type:varchar(50)"                        json:"phone,omitempty"`
	AvailableDays  pq.StringArray `gorm:"type:text[];not null;default:'{}'"       json:"available_days"` // monday..sunday，按周一起排序
	Qualifications pq.StringArray `gorm:"type:text[];not null;default:'{}'"       json:"qualifications"`
	Status         string         `gorm:"type:varchar(20);not null;default:'active'" json:"status"` // active | inactive
	Notes          string         `gorm:"type:text"                               json:"notes,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Trainer) TableName() string { return "trainers" }

// IsActive 是否在岗（停用的教练保留历史工时）
func (t *Trainer) IsActive() bool { return t.Status == TrainerStatusActive }

// FullName 显示名
func (t *Trainer) FullName() string {
	if t.LastName == "" {
		return t.FirstName
	}
	return t.FirstName + " " + t.LastName
}
