package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/dto"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/repository"
	pkgerrors "github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/errors"
)

// WeeklyAssignmentService 周覆盖分配业务接口
type WeeklyAssignmentService interface {
	// Get 有效教练：存在周覆盖时取覆盖集合，否则取课程默认
	Get(ctx context.Context, courseID int64, week, year int) (*dto.WeeklyAssignmentResponse, error)
	// Set 整体替换该周的教练集合；空集合表示本周无人带课
	Set(ctx context.Context, req *dto.SetWeeklyAssignmentRequest) (*dto.WeeklyAssignmentResponse, error)
	// Clear 删除周覆盖，恢复课程默认教练
	Clear(ctx context.Context, courseID int64, week, year int) error
}

type weeklyAssignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewWeeklyAssignmentService 创建 WeeklyAssignmentService 实例
func NewWeeklyAssignmentService(repo *repository.Repository, logger *zap.Logger) WeeklyAssignmentService {
	return &weeklyAssignmentService{repo: repo, logger: logger}
}

// ────────────────────── Get ──────────────────────

func (s *weeklyAssignmentService) Get(ctx context.Context, courseID int64, week, year int) (*dto.WeeklyAssignmentResponse, error) {
	if err := checkWeek(week, year); err != nil {
		return nil, err
	}
	course, err := getCourse(ctx, s.repo, s.logger, courseID)
	if err != nil {
		return nil, err
	}

	override, err := s.repo.WeeklyAssignment.GetByKey(ctx, courseID, week, year)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询周覆盖分配失败", zap.Int64("course_id", courseID), zap.Error(err))
			return nil, err
		}
		override = nil
	}

	ids, isOverride := EffectiveTrainers(course, override)
	return s.toResponse(ctx, course, week, year, ids, isOverride)
}

// ────────────────────── Set ──────────────────────

func (s *weeklyAssignmentService) Set(ctx context.Context, req *dto.SetWeeklyAssignmentRequest) (*dto.WeeklyAssignmentResponse, error) {
	if err := checkWeek(req.WeekNumber, req.Year); err != nil {
		return nil, err
	}
	course, err := getCourse(ctx, s.repo, s.logger, req.CourseID)
	if err != nil {
		return nil, err
	}

	ids := model.NewIDSet(req.TrainerIDs...)
	if err := ensureTrainersExist(ctx, s.repo, ids); err != nil {
		if !errors.Is(err, ErrTrainerNotFound) {
			s.logger.Error("校验教练失败", zap.Error(err))
		}
		return nil, err
	}

	wa := &model.WeeklyAssignment{
		CourseID:   req.CourseID,
		WeekNumber: req.WeekNumber,
		Year:       req.Year,
		Trainers:   make([]model.WeeklyAssignmentTrainer, 0, len(ids)),
	}
	for _, id := range ids {
		wa.Trainers = append(wa.Trainers, model.WeeklyAssignmentTrainer{TrainerID: id})
	}

	// 整体替换；任何一步失败都回滚，不留下部分集合。并发写入时后提交者生效
	err = runInTx(ctx, s.repo, s.logger, func(txRepo *repository.Repository) error {
		return txRepo.WeeklyAssignment.Replace(ctx, wa)
	})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrForeignKey) {
			return nil, ErrTrainerNotFound
		}
		s.logger.Error("保存周覆盖分配失败",
			zap.Int64("course_id", req.CourseID),
			zap.Int("week", req.WeekNumber),
			zap.Int("year", req.Year),
			zap.Error(err),
		)
		return nil, err
	}

	return s.toResponse(ctx, course, req.WeekNumber, req.Year, ids, true)
}

// ────────────────────── Clear ──────────────────────

func (s *weeklyAssignmentService) Clear(ctx context.Context, courseID int64, week, year int) error {
	if err := checkWeek(week, year); err != nil {
		return err
	}
	if err := s.repo.WeeklyAssignment.DeleteByKey(ctx, courseID, week, year); err != nil {
		s.logger.Error("清除周覆盖分配失败", zap.Int64("course_id", courseID), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *weeklyAssignmentService) toResponse(ctx context.Context, course *model.Course, week, year int, ids model.IDSet, isOverride bool) (*dto.WeeklyAssignmentResponse, error) {
	trainers, err := s.repo.Trainer.ListByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("查询教练失败", zap.Error(err))
		return nil, err
	}

	return &dto.WeeklyAssignmentResponse{
		CourseID:   course.CourseID,
		WeekNumber: week,
		Year:       year,
		TrainerIDs: []int64(ids),
		Trainers:   trainerBriefs(ids, trainers),
		IsOverride: isOverride,
		Staffing:   EvaluateStaffing(len(ids), course.RequiredTrainers).toDTO(),
	}, nil
}

// trainerBriefs 按 ids 顺序输出；已物理删除的教练不再出现
func trainerBriefs(ids model.IDSet, trainers []model.Trainer) []dto.TrainerBrief {
	byID := make(map[int64]*model.Trainer, len(trainers))
	for i := range trainers {
		byID[trainers[i].TrainerID] = &trainers[i]
	}
	out := make([]dto.TrainerBrief, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, toTrainerBrief(t))
		}
	}
	return out
}
