package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/dto"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/repository"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/weekcalc"
)

// ── 教练模块业务错误 ──

var (
	ErrTrainerNotFound    = errors.New("教练不存在")
	ErrDeleteNotConfirmed = errors.New("物理删除需要确认：confirm 参数必须等于教练 ID")
	ErrInvalidWeekday     = errors.New("无效的星期")
)

// TrainerService 教练业务接口
type TrainerService interface {
	Create(ctx context.Context, req *dto.CreateTrainerRequest) (*dto.TrainerResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.TrainerResponse, error)
	List(ctx context.Context, req *dto.TrainerListRequest) ([]dto.TrainerResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateTrainerRequest) (*dto.TrainerResponse, error)
	// SetActive 软删除 / 恢复：只改状态，历史工时保留
	SetActive(ctx context.Context, id int64, active bool) (*dto.TrainerResponse, error)
	// Delete 物理删除，confirm 必须等于 id
	Delete(ctx context.Context, id int64, confirm string) error
}

type trainerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTrainerService 创建 TrainerService 实例
func NewTrainerService(repo *repository.Repository, logger *zap.Logger) TrainerService {
	return &trainerService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *trainerService) Create(ctx context.Context, req *dto.CreateTrainerRequest) (*dto.TrainerResponse, error) {
	days, err := normalizeWeekdays(req.AvailableDays)
	if err != nil {
		return nil, err
	}

	trainer := &model.Trainer{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		AvailableDays:  days,
		Qualifications: normalizeQualifications(req.Qualifications),
		Status:         model.TrainerStatusActive,
		Notes:          req.Notes,
	}

	if err := s.repo.Trainer.Create(ctx, trainer); err != nil {
		s.logger.Error("创建教练失败", zap.Error(err))
		return nil, err
	}

	return toTrainerResponse(trainer), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *trainerService) GetByID(ctx context.Context, id int64) (*dto.TrainerResponse, error) {
	trainer, err := s.getTrainer(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTrainerResponse(trainer), nil
}

// ────────────────────── List ──────────────────────

func (s *trainerService) List(ctx context.Context, req *dto.TrainerListRequest) ([]dto.TrainerResponse, error) {
	trainers, err := s.repo.Trainer.List(ctx, req.IncludeInactive)
	if err != nil {
		s.logger.Error("列出教练失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TrainerResponse, 0, len(trainers))
	for i := range trainers {
		result = append(result, *toTrainerResponse(&trainers[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *trainerService) Update(ctx context.Context, id int64, req *dto.UpdateTrainerRequest) (*dto.TrainerResponse, error) {
	trainer, err := s.getTrainer(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		trainer.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		trainer.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		trainer.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		trainer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.AvailableDays != nil {
		days, err := normalizeWeekdays(*req.AvailableDays)
		if err != nil {
			return nil, err
		}
		trainer.AvailableDays = days
	}
	if req.Qualifications != nil {
		trainer.Qualifications = normalizeQualifications(*req.Qualifications)
	}
	if req.Notes != nil {
		trainer.Notes = *req.Notes
	}
	if req.IsActive != nil {
		trainer.Status = trainerStatus(*req.IsActive)
	}

	if err := s.repo.Trainer.Update(ctx, trainer); err != nil {
		s.logger.Error("更新教练失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return toTrainerResponse(trainer), nil
}

// ────────────────────── SetActive ──────────────────────

func (s *trainerService) SetActive(ctx context.Context, id int64, active bool) (*dto.TrainerResponse, error) {
	trainer, err := s.getTrainer(ctx, id)
	if err != nil {
		return nil, err
	}

	status := trainerStatus(active)
	if trainer.Status == status {
		return toTrainerResponse(trainer), nil
	}
	if err := s.repo.Trainer.SetStatus(ctx, id, status); err != nil {
		s.logger.Error("修改教练状态失败", zap.Int64("id", id), zap.String("status", status), zap.Error(err))
		return nil, err
	}

	trainer.Status = status
	s.logger.Info("教练状态已变更", zap.Int64("id", id), zap.String("status", status))
	return toTrainerResponse(trainer), nil
}

// ────────────────────── Delete ──────────────────────

func (s *trainerService) Delete(ctx context.Context, id int64, confirm string) error {
	if confirm != strconv.FormatInt(id, 10) {
		return ErrDeleteNotConfirmed
	}
	if _, err := s.getTrainer(ctx, id); err != nil {
		return err
	}

	// 课程默认教练为数组列，没有外键级联，需与删除同事务清理
	err := runInTx(ctx, s.repo, s.logger, func(txRepo *repository.Repository) error {
		if err := txRepo.Course.RemoveDefaultTrainer(ctx, id); err != nil {
			return err
		}
		return txRepo.Trainer.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("删除教练失败", zap.Int64("id", id), zap.Error(err))
		return err
	}

	s.logger.Warn("教练已物理删除", zap.Int64("id", id))
	return nil
}

// ── 内部辅助方法 ──

func (s *trainerService) getTrainer(ctx context.Context, id int64) (*model.Trainer, error) {
	trainer, err := s.repo.Trainer.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainerNotFound
		}
		s.logger.Error("查询教练失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return trainer, nil
}

func trainerStatus(active bool) string {
	if active {
		return model.TrainerStatusActive
	}
	return model.TrainerStatusInactive
}

// normalizeWeekdays 统一为 monday..sunday 并按周一起排序去重
func normalizeWeekdays(raw []string) ([]string, error) {
	seen := make(map[weekcalc.Weekday]struct{}, len(raw))
	days := make([]weekcalc.Weekday, 0, len(raw))
	for _, r := range raw {
		d, err := weekcalc.ParseWeekday(r)
		if err != nil {
			return nil, ErrInvalidWeekday
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	keys := make([]string, len(days))
	for i, d := range days {
		keys[i] = d.Key()
	}
	return keys, nil
}

func normalizeQualifications(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, q := range raw {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out
}

// ensureTrainersExist 校验 ids 中的教练全部存在
func ensureTrainersExist(ctx context.Context, repo *repository.Repository, ids model.IDSet) error {
	if len(ids) == 0 {
		return nil
	}
	trainers, err := repo.Trainer.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(trainers) != len(ids) {
		return ErrTrainerNotFound
	}
	return nil
}

func toTrainerResponse(t *model.Trainer) *dto.TrainerResponse {
	days := []string(t.AvailableDays)
	if days == nil {
		days = []string{}
	}
	quals := []string(t.Qualifications)
	if quals == nil {
		quals = []string{}
	}
	return &dto.TrainerResponse{
		ID:             t.TrainerID,
		FirstName:      t.FirstName,
		LastName:       t.LastName,
		Name:           t.FullName(),
		Email:          t.Email,
		Phone:          t.Phone,
		AvailableDays:  days,
		Qualifications: quals,
		Status:         t.Status,
		IsActive:       t.IsActive(),
		Notes:          t.Notes,
		CreatedAt:      t.CreatedAt.Format(timestampLayout),
		UpdatedAt:      t.UpdatedAt.Format(timestampLayout),
	}
}

func toTrainerBrief(t *model.Trainer) dto.TrainerBrief {
	return dto.TrainerBrief{ID: t.TrainerID, Name: t.FullName(), IsActive: t.IsActive()}
}
