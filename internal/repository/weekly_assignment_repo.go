package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
)

// WeeklyAssignmentRepository 周覆盖分配数据访问接口
type WeeklyAssignmentRepository interface {
	GetByKey(ctx context.Context, courseID int64, week, year int) (*model.WeeklyAssignment, error)
	ListByWeek(ctx context.Context, week, year int) ([]model.WeeklyAssignment, error)
	ListByYears(ctx context.Context, years []int) ([]model.WeeklyAssignment, error)
	// Replace 按 (course_id, week_number, year) 写入表头并整体替换明细；须在事务中使用
	Replace(ctx context.Context, wa *model.WeeklyAssignment) error
	DeleteByKey(ctx context.Context, courseID int64, week, year int) error
}

type weeklyAssignmentRepo struct {
	db *gorm.DB
}

// NewWeeklyAssignmentRepo 创建 WeeklyAssignmentRepository 实例
func NewWeeklyAssignmentRepo(db *gorm.DB) WeeklyAssignmentRepository {
	return &weeklyAssignmentRepo{db: db}
}

func (r *weeklyAssignmentRepo) GetByKey(ctx context.Context, courseID int64, week, year int) (*model.WeeklyAssignment, error) {
	var wa model.WeeklyAssignment
	err := r.db.WithContext(ctx).
		Preload("Trainers").
		Where("course_id = ? AND week_number = ? AND year = ?", courseID, week, year).
		First(&wa).Error
	if err != nil {
		return nil, err
	}
	return &wa, nil
}

func (r *weeklyAssignmentRepo) ListByWeek(ctx context.Context, week, year int) ([]model.WeeklyAssignment, error) {
	var list []model.WeeklyAssignment
	err := r.db.WithContext(ctx).
		Preload("Trainers").
		Where("week_number = ? AND year = ?", week, year).
		Order("course_id ASC").
		Find(&list).Error
	return list, err
}

func (r *weeklyAssignmentRepo) ListByYears(ctx context.Context, years []int) ([]model.WeeklyAssignment, error) {
	var list []model.WeeklyAssignment
	err := r.db.WithContext(ctx).
		Preload("Trainers").
		Where("year IN ?", years).
		Order("year ASC, week_number ASC, course_id ASC").
		Find(&list).Error
	return list, err
}

// Replace 表头走 upsert，并发写入者在表头行锁上串行，后提交者的明细生效
func (r *weeklyAssignmentRepo) Replace(ctx context.Context, wa *model.WeeklyAssignment) error {
	trainers := wa.Trainers
	wa.Trainers = nil
	db := r.db.WithContext(ctx)

	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "course_id"}, {Name: "week_number"}, {Name: "year"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"updated_at": time.Now().UTC(),
		}),
	}).Create(wa).Error
	if err != nil {
		return translateError(err)
	}
	if wa.WeeklyAssignmentID == 0 {
		err = db.Model(&model.WeeklyAssignment{}).
			Select("weekly_assignment_id").
			Where("course_id = ? AND week_number = ? AND year = ?", wa.CourseID, wa.WeekNumber, wa.Year).
			Scan(&wa.WeeklyAssignmentID).Error
		if err != nil {
			return err
		}
	}

	err = db.Where("weekly_assignment_id = ?", wa.WeeklyAssignmentID).
		Delete(&model.WeeklyAssignmentTrainer{}).Error
	if err != nil {
		return err
	}
	if len(trainers) == 0 {
		wa.Trainers = []model.WeeklyAssignmentTrainer{}
		return nil
	}
	for i := range trainers {
		trainers[i].WeeklyAssignmentID = wa.WeeklyAssignmentID
	}
	if err := db.Create(&trainers).Error; err != nil {
		return translateError(err)
	}
	wa.Trainers = trainers
	return nil
}

// DeleteByKey 删除表头，明细由外键级联删除；不存在时为空操作
func (r *weeklyAssignmentRepo) DeleteByKey(ctx context.Context, courseID int64, week, year int) error {
	return r.db.WithContext(ctx).
		Where("course_id = ? AND week_number = ? AND year = ?", courseID, week, year).
		Delete(&model.WeeklyAssignment{}).Error
}
