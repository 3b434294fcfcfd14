package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
)

// ActivityFilter 特殊活动查询条件（均可选）
type ActivityFilter struct {
	From       *time.Time // 含
	To         *time.Time // 不含
	WeekNumber *int
	Year       *int
	TrainerID  *int64
}

// TrainerHoursRow 按教练汇总的活动工时
type TrainerHoursRow struct {
	TrainerID  int64
	Hours      float64
	Activities int
}

// SpecialActivityRepository 特殊活动数据访问接口
type SpecialActivityRepository interface {
	BatchCreate(ctx context.Context, rows []model.SpecialActivity) error
	GetByID(ctx context.Context, id int64) (*model.SpecialActivity, error)
	ListByKey(ctx context.Context, date time.Time, title string) ([]model.SpecialActivity, error)
	List(ctx context.Context, filter ActivityFilter) ([]model.SpecialActivity, error)
	// DeleteByKey 删除同一 (日期, 标题) 下的全部行，返回删除行数
	DeleteByKey(ctx context.Context, date time.Time, title string) (int64, error)
	SumHoursByTrainer(ctx context.Context, from, to time.Time) ([]TrainerHoursRow, error)
	// LockKey 对 (日期, 标题) 取事务级咨询锁，提交或回滚时释放；须在事务中使用
	LockKey(ctx context.Context, date time.Time, title string) error
}

type specialActivityRepo struct {
	db *gorm.DB
}

// NewSpecialActivityRepo 创建 SpecialActivityRepository 实例
func NewSpecialActivityRepo(db *gorm.DB) SpecialActivityRepository {
	return &specialActivityRepo{db: db}
}

func (r *specialActivityRepo) BatchCreate(ctx context.Context, rows []model.SpecialActivity) error {
	if len(rows) == 0 {
		return nil
	}
	return translateError(r.db.WithContext(ctx).Omit("Trainer").Create(&rows).Error)
}

func (r *specialActivityRepo) GetByID(ctx context.Context, id int64) (*model.SpecialActivity, error) {
	var row model.SpecialActivity
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *specialActivityRepo) ListByKey(ctx context.Context, date time.Time, title string) ([]model.SpecialActivity, error) {
	var rows []model.SpecialActivity
	err := r.db.WithContext(ctx).
		Preload("Trainer").
		Where("activity_date = ? AND title = ?", date.Format("2006-01-02"), title).
		Order("activity_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *specialActivityRepo) List(ctx context.Context, filter ActivityFilter) ([]model.SpecialActivity, error) {
	var rows []model.SpecialActivity
	db := r.db.WithContext(ctx).Preload("Trainer")
	if filter.From != nil {
		db = db.Where("activity_date >= ?", filter.From.Format("2006-01-02"))
	}
	if filter.To != nil {
		db = db.Where("activity_date < ?", filter.To.Format("2006-01-02"))
	}
	if filter.WeekNumber != nil {
		db = db.Where("week_number = ?", *filter.WeekNumber)
	}
	if filter.Year != nil {
		db = db.Where("year = ?", *filter.Year)
	}
	if filter.TrainerID != nil {
		db = db.Where("trainer_id = ?", *filter.TrainerID)
	}
	err := db.Order("activity_date ASC, title ASC, activity_id ASC").Find(&rows).Error
	return rows, err
}

func (r *specialActivityRepo) DeleteByKey(ctx context.Context, date time.Time, title string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("activity_date = ? AND title = ?", date.Format("2006-01-02"), title).
		Delete(&model.SpecialActivity{})
	return result.RowsAffected, result.Error
}

func (r *specialActivityRepo) SumHoursByTrainer(ctx context.Context, from, to time.Time) ([]TrainerHoursRow, error) {
	var rows []TrainerHoursRow
	err := r.db.WithContext(ctx).
		Model(&model.SpecialActivity{}).
		Select("trainer_id, COALESCE(SUM(hours), 0) AS hours, COUNT(*) AS activities").
		Where("activity_date >= ? AND activity_date < ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Group("trainer_id").
		Scan(&rows).Error
	return rows, err
}

func (r *specialActivityRepo) LockKey(ctx context.Context, date time.Time, title string) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", ActivityLockKey(date, title)).Error
}

// ActivityLockKey 咨询锁键：同一 (日期, 标题) 映射到同一把锁
func ActivityLockKey(date time.Time, title string) string {
	return date.Format("2006-01-02") + "|" + title
}
