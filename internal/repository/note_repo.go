package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
)

// ── 活动备注 ──

// ActivityNoteRepository 活动备注数据访问接口
type ActivityNoteRepository interface {
	Create(ctx context.Context, note *model.ActivityNote) error
	GetByID(ctx context.Context, id int64) (*model.ActivityNote, error)
	Update(ctx context.Context, note *model.ActivityNote) error
	Delete(ctx context.Context, id int64) error
	// List 按日期区间 [from, to) 查询；from/to 为空时不限
	List(ctx context.Context, from, to *time.Time) ([]model.ActivityNote, error)
	ListByKey(ctx context.Context, date time.Time, title string) ([]model.ActivityNote, error)
	// MoveKey 活动改期或改名时，备注随活动迁移
	MoveKey(ctx context.Context, oldDate time.Time, oldTitle string, newDate time.Time, newTitle string) error
	DeleteByKey(ctx context.Context, date time.Time, title string) error
}

type activityNoteRepo struct {
	db *gorm.DB
}

// NewActivityNoteRepo 创建 ActivityNoteRepository 实例
func NewActivityNoteRepo(db *gorm.DB) ActivityNoteRepository {
	return &activityNoteRepo{db: db}
}

func (r *activityNoteRepo) Create(ctx context.Context, note *model.ActivityNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *activityNoteRepo) GetByID(ctx context.Context, id int64) (*model.ActivityNote, error) {
	var note model.ActivityNote
	err := r.db.WithContext(ctx).Where("activity_note_id = ?", id).First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *activityNoteRepo) Update(ctx context.Context, note *model.ActivityNote) error {
	return r.db.WithContext(ctx).Save(note).Error
}

func (r *activityNoteRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("activity_note_id = ?", id).
		Delete(&model.ActivityNote{}).Error
}

func (r *activityNoteRepo) List(ctx context.Context, from, to *time.Time) ([]model.ActivityNote, error) {
	var notes []model.ActivityNote
	db := r.db.WithContext(ctx)
	if from != nil {
		db = db.Where("activity_date >= ?", from.Format("2006-01-02"))
	}
	if to != nil {
		db = db.Where("activity_date < ?", to.Format("2006-01-02"))
	}
	err := db.Order("activity_date ASC, activity_title ASC, created_at ASC").Find(&notes).Error
	return notes, err
}

func (r *activityNoteRepo) ListByKey(ctx context.Context, date time.Time, title string) ([]model.ActivityNote, error) {
	var notes []model.ActivityNote
	err := r.db.WithContext(ctx).
		Where("activity_date = ? AND activity_title = ?", date.Format("2006-01-02"), title).
		Order("created_at ASC").
		Find(&notes).Error
	return notes, err
}

func (r *activityNoteRepo) MoveKey(ctx context.Context, oldDate time.Time, oldTitle string, newDate time.Time, newTitle string) error {
	return r.db.WithContext(ctx).
		Model(&model.ActivityNote{}).
		Where("activity_date = ? AND activity_title = ?", oldDate.Format("2006-01-02"), oldTitle).
		Updates(map[string]interface{}{
			"activity_date":  newDate.Format("2006-01-02"),
			"activity_title": newTitle,
			"updated_at":     gorm.Expr("NOW()"),
		}).Error
}

func (r *activityNoteRepo) DeleteByKey(ctx context.Context, date time.Time, title string) error {
	return r.db.WithContext(ctx).
		Where("activity_date = ? AND activity_title = ?", date.Format("2006-01-02"), title).
		Delete(&model.ActivityNote{}).Error
}

// ── 课程周备注 ──

// CourseNoteRepository 课程周备注数据访问接口
type CourseNoteRepository interface {
	Create(ctx context.Context, note *model.CourseNote) error
	GetByID(ctx context.Context, id int64) (*model.CourseNote, error)
	Update(ctx context.Context, note *model.CourseNote) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter WeekFilter) ([]model.CourseNote, error)
}

type courseNoteRepo struct {
	db *gorm.DB
}

// NewCourseNoteRepo 创建 CourseNoteRepository 实例
func NewCourseNoteRepo(db *gorm.DB) CourseNoteRepository {
	return &courseNoteRepo{db: db}
}

func (r *courseNoteRepo) Create(ctx context.Context, note *model.CourseNote) error {
	return translateError(r.db.WithContext(ctx).Create(note).Error)
}

func (r *courseNoteRepo) GetByID(ctx context.Context, id int64) (*model.CourseNote, error) {
	var note model.CourseNote
	err := r.db.WithContext(ctx).Where("course_note_id = ?", id).First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *courseNoteRepo) Update(ctx context.Context, note *model.CourseNote) error {
	return r.db.WithContext(ctx).Save(note).Error
}

func (r *courseNoteRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("course_note_id = ?", id).
		Delete(&model.CourseNote{}).Error
}

func (r *courseNoteRepo) List(ctx context.Context, filter WeekFilter) ([]model.CourseNote, error) {
	var notes []model.CourseNote
	err := filter.apply(r.db.WithContext(ctx)).
		Order("year ASC, week_number ASC, course_id ASC, created_at ASC").
		Find(&notes).Error
	return notes, err
}
