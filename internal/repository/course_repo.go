package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	List(ctx context.Context, includeInactive bool) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id int64) error
	RemoveDefaultTrainer(ctx context.Context, trainerID int64) error
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context, includeInactive bool) ([]model.Course, error) {
	var courses []model.Course
	db := r.db.WithContext(ctx)
	if !includeInactive {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("day_of_week ASC, start_time ASC, name ASC").Find(&courses).Error
	return courses, err
}

func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

// Delete 物理删除；周分配、取消、例外与课程备注由外键级联删除
func (r *courseRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("course_id = ?", id).
		Delete(&model.Course{}).Error
}

// RemoveDefaultTrainer 从所有课程的默认教练集合中移除该教练（数组列无外键约束）
func (r *courseRepo) RemoveDefaultTrainer(ctx context.Context, trainerID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("? = ANY(default_trainer_ids)", trainerID).
		Updates(map[string]interface{}{
			"default_trainer_ids": gorm.Expr("array_remove(default_trainer_ids, ?::bigint)", trainerID),
			"updated_at":          gorm.Expr("NOW()"),
		}).Error
}
