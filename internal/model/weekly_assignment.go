package model

// WeeklyAssignment 周覆盖分配表头：对应 weekly_assignments
// 行存在即表示该 (课程, 周, 年) 不再使用课程默认教练；Trainers 可为空（本周无人带课）
type WeeklyAssignment struct {
	WeeklyAssignmentID int64                     `gorm:"primaryKey;autoIncrement" json:"weekly_assignment_id"`
	CourseID           int64                     `gorm:"not null"                 json:"course_id"`
	WeekNumber         int                       `gorm:"type:smallint;not null"   json:"week_number"`
	Year               int                       `gorm:"not null"                 json:"year"`
	Trainers           []WeeklyAssignmentTrainer `gorm:"foreignKey:WeeklyAssignmentID;references:WeeklyAssignmentID" json:"trainers,omitempty"`
	BaseModel
}

// TableName 指定表名
func (WeeklyAssignment) TableName() string { return "weekly_assignments" }

// TrainerIDs 本周分配的教练集合
func (w *WeeklyAssignment) TrainerIDs() IDSet {
	ids := make([]int64, 0, len(w.Trainers))
	for _, t := range w.Trainers {
		ids = append(ids, t.TrainerID)
	}
	return NewIDSet(ids...)
}

// WeeklyAssignmentTrainer 周覆盖分配明细：对应 weekly_assignment_trainers
type WeeklyAssignmentTrainer struct {
	WeeklyAssignmentID int64 `gorm:"primaryKey" json:"weekly_assignment_id"`
	TrainerID          int64 `gorm:"primaryKey" json:"trainer_id"`
}

// TableName 指定表名
func (WeeklyAssignmentTrainer) TableName() string { return "weekly_assignment_trainers" }
