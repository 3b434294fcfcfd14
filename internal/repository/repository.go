package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	pkgerrors "github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/errors"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Trainer          TrainerRepository
	Course           CourseRepository
	WeeklyAssignment WeeklyAssignmentRepository
	CancelledCourse  CancelledCourseRepository
	HolidayWeek      HolidayWeekRepository
	CourseException  CourseExceptionRepository
	SpecialActivity  SpecialActivityRepository
	ActivityNote     ActivityNoteRepository
	CourseNote       CourseNoteRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:               db,
		Trainer:          NewTrainerRepo(db),
		Course:           NewCourseRepo(db),
		WeeklyAssignment: NewWeeklyAssignmentRepo(db),
		CancelledCourse:  NewCancelledCourseRepo(db),
		HolidayWeek:      NewHolidayWeekRepo(db),
		CourseException:  NewCourseExceptionRepo(db),
		SpecialActivity:  NewSpecialActivityRepo(db),
		ActivityNote:     NewActivityNoteRepo(db),
		CourseNote:       NewCourseNoteRepo(db),
	}
}

// BeginTx 开启事务
// 聚合未绑定数据库（单元测试中以 mock 组装）时返回 nil 事务，调用方需判空
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务连接的 Repository 聚合
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// Ping 检查数据库连通性
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// WeekFilter 按周查询的可选条件
type WeekFilter struct {
	CourseID   *int64
	WeekNumber *int
	Year       *int
}

func (f WeekFilter) apply(db *gorm.DB) *gorm.DB {
	if f.CourseID != nil {
		db = db.Where("course_id = ?", *f.CourseID)
	}
	if f.WeekNumber != nil {
		db = db.Where("week_number = ?", *f.WeekNumber)
	}
	if f.Year != nil {
		db = db.Where("year = ?", *f.Year)
	}
	return db
}

// translateError 将驱动层外键错误转为领域错误
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return pkgerrors.ErrForeignKey
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(err.Error(), "violates foreign key constraint") {
		return pkgerrors.ErrForeignKey
	}
	return err
}
