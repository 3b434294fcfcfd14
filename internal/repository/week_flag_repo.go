package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
)

// ── 课程取消 ──

// CancelledCourseRepository 课程取消数据访问接口
type CancelledCourseRepository interface {
	// Upsert 按 (course_id, week_number, year) 写入；已存在时更新原因
	Upsert(ctx context.Context, cc *model.CancelledCourse) error
	DeleteByKey(ctx context.Context, courseID int64, week, year int) error
	List(ctx context.Context, filter WeekFilter) ([]model.CancelledCourse, error)
	ListByYears(ctx context.Context, years []int) ([]model.CancelledCourse, error)
}

type cancelledCourseRepo struct {
	db *gorm.DB
}

// NewCancelledCourseRepo 创建 CancelledCourseRepository 实例
func NewCancelledCourseRepo(db *gorm.DB) CancelledCourseRepository {
	return &cancelledCourseRepo{db: db}
}

func (r *cancelledCourseRepo) Upsert(ctx context.Context, cc *model.CancelledCourse) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "course_id"}, {Name: "week_number"}, {Name: "year"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"reason":     cc.Reason,
			"updated_at": time.Now().UTC(),
		}),
	}).Create(cc).Error
	return translateError(err)
}

func (r *cancelledCourseRepo) DeleteByKey(ctx context.Context, courseID int64, week, year int) error {
	return r.db.WithContext(ctx).
		Where("course_id = ? AND week_number = ? AND year = ?", courseID, week, year).
		Delete(&model.CancelledCourse{}).Error
}

func (r *cancelledCourseRepo) List(ctx context.Context, filter WeekFilter) ([]model.CancelledCourse, error) {
	var list []model.CancelledCourse
	err := filter.apply(r.db.WithContext(ctx)).
		Order("year ASC, week_number ASC, course_id ASC").
		Find(&list).Error
	return list, err
}

func (r *cancelledCourseRepo) ListByYears(ctx context.Context, years []int) ([]model.CancelledCourse, error) {
	var list []model.CancelledCourse
	err := r.db.WithContext(ctx).Where("year IN ?", years).Find(&list).Error
	return list, err
}

// ── 假期周 ──

// HolidayWeekRepository 假期周数据访问接口
type HolidayWeekRepository interface {
	// Upsert 按 (week_number, year) 写入；重复标记仅更新名称
	Upsert(ctx context.Context, hw *model.HolidayWeek) error
	DeleteByKey(ctx context.Context, week, year int) error
	List(ctx context.Context, year *int) ([]model.HolidayWeek, error)
	ListByYears(ctx context.Context, years []int) ([]model.HolidayWeek, error)
}

type holidayWeekRepo struct {
	db *gorm.DB
}

// NewHolidayWeekRepo 创建 HolidayWeekRepository 实例
func NewHolidayWeekRepo(db *gorm.DB) HolidayWeekRepository {
	return &holidayWeekRepo{db: db}
}

func (r *holidayWeekRepo) Upsert(ctx context.Context, hw *model.HolidayWeek) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "week_number"}, {Name: "year"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"label":      hw.Label,
			"updated_at": time.Now().UTC(),
		}),
	}).Create(hw).Error
}

func (r *holidayWeekRepo) DeleteByKey(ctx context.Context, week, year int) error {
	return r.db.WithContext(ctx).
		Where("week_number = ? AND year = ?", week, year).
		Delete(&model.HolidayWeek{}).Error
}

func (r *holidayWeekRepo) List(ctx context.Context, year *int) ([]model.HolidayWeek, error) {
	var list []model.HolidayWeek
	db := r.db.WithContext(ctx)
	if year != nil {
		db = db.Where("year = ?", *year)
	}
	err := db.Order("year ASC, week_number ASC").Find(&list).Error
	return list, err
}

func (r *holidayWeekRepo) ListByYears(ctx context.Context, years []int) ([]model.HolidayWeek, error) {
	var list []model.HolidayWeek
	err := r.db.WithContext(ctx).Where("year IN ?", years).Find(&list).Error
	return list, err
}

// ── 假期例外 ──

// CourseExceptionRepository 假期例外数据访问接口
type CourseExceptionRepository interface {
	// Create 幂等写入；已存在时不做任何事
	Create(ctx context.Context, ce *model.CourseException) error
	DeleteByKey(ctx context.Context, courseID int64, week, year int) error
	List(ctx context.Context, filter WeekFilter) ([]model.CourseException, error)
	ListByYears(ctx context.Context, years []int) ([]model.CourseException, error)
}

type courseExceptionRepo struct {
	db *gorm.DB
}

// NewCourseExceptionRepo 创建 CourseExceptionRepository 实例
func NewCourseExceptionRepo(db *gorm.DB) CourseExceptionRepository {
	return &courseExceptionRepo{db: db}
}

func (r *courseExceptionRepo) Create(ctx context.Context, ce *model.CourseException) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(ce).Error
	return translateError(err)
}

func (r *courseExceptionRepo) DeleteByKey(ctx context.Context, courseID int64, week, year int) error {
	return r.db.WithContext(ctx).
		Where("course_id = ? AND week_number = ? AND year = ?", courseID, week, year).
		Delete(&model.CourseException{}).Error
}

func (r *courseExceptionRepo) List(ctx context.Context, filter WeekFilter) ([]model.CourseException, error) {
	var list []model.CourseException
	err := filter.apply(r.db.WithContext(ctx)).
		Order("year ASC, week_number ASC, course_id ASC").
		Find(&list).Error
	return list, err
}

func (r *courseExceptionRepo) ListByYears(ctx context.Context, years []int) ([]model.CourseException, error) {
	var list []model.CourseException
	err := r.db.WithContext(ctx).Where("year IN ?", years).Find(&list).Error
	return list, err
}
