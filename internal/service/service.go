package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/config"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/repository"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/jwt"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/weekcalc"
)

// ── 跨模块业务错误 ──

var (
	ErrInvalidWeek = errors.New("无效的周次")
	ErrInvalidDate = errors.New("无效的日期")
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth             AuthService
	Trainer          TrainerService
	Course           CourseService
	WeeklyAssignment WeeklyAssignmentService
	Calendar         CalendarService
	SpecialActivity  SpecialActivityService
	Note             NoteService
	Hours            HoursService
	Export           ExportService
}

// NewService 创建 Service 聚合
// sessions 为 nil 时（未配置 Redis）注销只让客户端丢弃令牌
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	sessions SessionStore,
	logger *zap.Logger,
) *Service {
	hours := NewHoursService(repo, logger)
	return &Service{
		Auth:             NewAuthService(cfg, jwtMgr, sessions, logger),
		Trainer:          NewTrainerService(repo, logger),
		Course:           NewCourseService(repo, cfg.Club.DefaultRequiredTrainers, logger),
		WeeklyAssignment: NewWeeklyAssignmentService(repo, logger),
		Calendar:         NewCalendarService(repo, logger),
		SpecialActivity:  NewSpecialActivityService(repo, logger),
		Note:             NewNoteService(repo, logger),
		Hours:            hours,
		Export:           NewExportService(repo, hours, cfg.Club, logger),
	}
}

// ── 内部辅助方法 ──

// runInTx 在事务中执行 fn；任一步骤出错即回滚
// 聚合未绑定数据库（单元测试）时 tx 为 nil，直接在原聚合上执行
func runInTx(ctx context.Context, repo *repository.Repository, logger *zap.Logger, fn func(txRepo *repository.Repository) error) (err error) {
	tx, err := repo.BeginTx(ctx)
	if err != nil {
		logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	if err := fn(repo.WithTx(tx)); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}
	return nil
}

// checkWeek 校验 (week, year) 是否为合法 ISO 周
func checkWeek(week, year int) error {
	if err := weekcalc.ValidWeek(week, year); err != nil {
		return ErrInvalidWeek
	}
	return nil
}

const timestampLayout = "2006-01-02T15:04:05Z07:00"
