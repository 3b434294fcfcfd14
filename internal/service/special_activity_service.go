package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/dto"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/repository"
	pkgerrors "github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/errors"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/weekcalc"
)

// ── 特殊活动模块业务错误 ──

var (
	ErrActivityNotFound   = errors.New("特殊活动不存在")
	ErrActivityExists     = errors.New("同一天已存在同名活动")
	ErrNoTrainersSelected = errors.New("至少需要选择一名教练")
	ErrInvalidPeriod      = errors.New("无效的查询区间")
)

// SpecialActivityService 特殊活动业务接口
//
// 一个逻辑活动由 (日期, 标题) 确定，存储为每位教练一行。
// 修改与删除都以整组为单位，在同一事务中完成。
type SpecialActivityService interface {
	Create(ctx context.Context, req *dto.SaveSpecialActivityRequest) (*dto.SpecialActivityResponse, error)
	Get(ctx context.Context, id int64) (*dto.SpecialActivityResponse, error)
	// Update id 为组内任意一行；日期或标题可以改变，活动备注随之迁移
	Update(ctx context.Context, id int64, req *dto.SaveSpecialActivityRequest) (*dto.SpecialActivityResponse, error)
	// Delete 删除整组及其活动备注；id 不存在时视为成功
	Delete(ctx context.Context, id int64) (*dto.DeleteResult, error)
	List(ctx context.Context, req *dto.ActivityListRequest) ([]dto.SpecialActivityResponse, error)
	ListRows(ctx context.Context, req *dto.ActivityListRequest) ([]dto.SpecialActivityRowResponse, error)
}

type specialActivityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSpecialActivityService 创建 SpecialActivityService 实例
func NewSpecialActivityService(repo *repository.Repository, logger *zap.Logger) SpecialActivityService {
	return &specialActivityService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *specialActivityService) Create(ctx context.Context, req *dto.SaveSpecialActivityRequest) (*dto.SpecialActivityResponse, error) {
	rows, err := s.buildRows(ctx, req)
	if err != nil {
		return nil, err
	}
	date, title := rows[0].ActivityDate, rows[0].Title

	// 咨询锁把同键的并发创建串行化，存在性检查在锁内进行
	err = runInTx(ctx, s.repo, s.logger, func(txRepo *repository.Repository) error {
		if err := txRepo.SpecialActivity.LockKey(ctx, date, title); err != nil {
			return err
		}
		existing, err := txRepo.SpecialActivity.ListByKey(ctx, date, title)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return ErrActivityExists
		}
		return txRepo.SpecialActivity.BatchCreate(ctx, rows)
	})
	if err != nil {
		return nil, s.wrapWriteError("创建特殊活动失败", err)
	}

	return s.loadGroup(ctx, date, title)
}

// ────────────────────── Get ──────────────────────

func (s *specialActivityService) Get(ctx context.Context, id int64) (*dto.SpecialActivityResponse, error) {
	row, err := s.getRow(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.loadGroup(ctx, row.ActivityDate, row.Title)
}

// ────────────────────── Update ──────────────────────

func (s *specialActivityService) Update(ctx context.Context, id int64, req *dto.SaveSpecialActivityRequest) (*dto.SpecialActivityResponse, error) {
	row, err := s.getRow(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.buildRows(ctx, req)
	if err != nil {
		return nil, err
	}

	oldDate, oldTitle := row.ActivityDate, row.Title
	newDate, newTitle := rows[0].ActivityDate, rows[0].Title
	keyChanged := !sameDay(oldDate, newDate) || oldTitle != newTitle

	// 整组替换：删除旧键全部行，再按新教练集合写入
	err = runInTx(ctx, s.repo, s.logger, func(txRepo *repository.Repository) error {
		if err := lockActivityKeys(ctx, txRepo, oldDate, oldTitle, newDate, newTitle); err != nil {
			return err
		}
		if keyChanged {
			clash, err := txRepo.SpecialActivity.ListByKey(ctx, newDate, newTitle)
			if err != nil {
				return err
			}
			if len(clash) > 0 {
				return ErrActivityExists
			}
		}
		if _, err := txRepo.SpecialActivity.DeleteByKey(ctx, oldDate, oldTitle); err != nil {
			return err
		}
		if err := txRepo.SpecialActivity.BatchCreate(ctx, rows); err != nil {
			return err
		}
		if keyChanged {
			return txRepo.ActivityNote.MoveKey(ctx, oldDate, oldTitle, newDate, newTitle)
		}
		return nil
	})
	if err != nil {
		return nil, s.wrapWriteError("更新特殊活动失败", err)
	}

	return s.loadGroup(ctx, newDate, newTitle)
}

// ────────────────────── Delete ──────────────────────

func (s *specialActivityService) Delete(ctx context.Context, id int64) (*dto.DeleteResult, error) {
	row, err := s.getRow(ctx, id)
	if err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			return &dto.DeleteResult{Deleted: 0}, nil
		}
		return nil, err
	}

	var deleted int64
	err = runInTx(ctx, s.repo, s.logger, func(txRepo *repository.Repository) error {
		n, err := txRepo.SpecialActivity.DeleteByKey(ctx, row.ActivityDate, row.Title)
		if err != nil {
			return err
		}
		deleted = n
		return txRepo.ActivityNote.DeleteByKey(ctx, row.ActivityDate, row.Title)
	})
	if err != nil {
		s.logger.Error("删除特殊活动失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("特殊活动已删除",
		zap.String("date", row.ActivityDate.Format(weekcalc.DateLayout)),
		zap.String("title", row.Title),
		zap.Int64("rows", deleted),
	)
	return &dto.DeleteResult{Deleted: deleted}, nil
}

// ────────────────────── List ──────────────────────

func (s *specialActivityService) List(ctx context.Context, req *dto.ActivityListRequest) ([]dto.SpecialActivityResponse, error) {
	filter, err := activityFilter(req)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.SpecialActivity.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出特殊活动失败", zap.Error(err))
		return nil, err
	}
	notes, err := s.repo.ActivityNote.List(ctx, filter.From, filter.To)
	if err != nil {
		s.logger.Error("列出活动备注失败", zap.Error(err))
		return nil, err
	}

	return groupActivities(rows, notes), nil
}

func (s *specialActivityService) ListRows(ctx context.Context, req *dto.ActivityListRequest) ([]dto.SpecialActivityRowResponse, error) {
	filter, err := activityFilter(req)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.SpecialActivity.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出特殊活动失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SpecialActivityRowResponse, 0, len(rows))
	for i := range rows {
		result = append(result, toActivityRowResponse(&rows[i]))
	}
	return result, nil
}

// ── 内部辅助方法 ──

func (s *specialActivityService) getRow(ctx context.Context, id int64) (*model.SpecialActivity, error) {
	row, err := s.repo.SpecialActivity.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		s.logger.Error("查询特殊活动失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return row, nil
}

func (s *specialActivityService) loadGroup(ctx context.Context, date time.Time, title string) (*dto.SpecialActivityResponse, error) {
	rows, err := s.repo.SpecialActivity.ListByKey(ctx, date, title)
	if err != nil {
		s.logger.Error("查询特殊活动失败", zap.Error(err))
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrActivityNotFound
	}
	notes, err := s.repo.ActivityNote.ListByKey(ctx, date, title)
	if err != nil {
		s.logger.Error("查询活动备注失败", zap.Error(err))
		return nil, err
	}

	groups := groupActivities(rows, notes)
	return &groups[0], nil
}

// buildRows 把请求展开为每位教练一行
func (s *specialActivityService) buildRows(ctx context.Context, req *dto.SaveSpecialActivityRequest) ([]model.SpecialActivity, error) {
	date, err := weekcalc.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	week, year := weekcalc.WeekOf(date)

	hours := make(map[int64]float64)
	for _, id := range req.TrainerIDs {
		hours[id] = req.Hours
	}
	for _, t := range req.Trainers {
		h := req.Hours
		if t.Hours != nil {
			h = *t.Hours
		}
		hours[t.TrainerID] = h
	}
	if len(hours) == 0 {
		return nil, ErrNoTrainersSelected
	}

	ids := make([]int64, 0, len(hours))
	for id := range hours {
		ids = append(ids, id)
	}
	set := model.NewIDSet(ids...)
	if err := ensureTrainersExist(ctx, s.repo, set); err != nil {
		if !errors.Is(err, ErrTrainerNotFound) {
			s.logger.Error("校验教练失败", zap.Error(err))
		}
		return nil, err
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = model.VisibilityInternal
	}
	customType := ""
	if req.ActivityType == model.ActivityTypeOther {
		customType = strings.TrimSpace(req.CustomType)
	}

	rows := make([]model.SpecialActivity, 0, len(set))
	for _, id := range set {
		rows = append(rows, model.SpecialActivity{
			ActivityDate: date,
			WeekNumber:   week,
			Year:         year,
			ActivityType: req.ActivityType,
			CustomType:   customType,
			Title:        strings.TrimSpace(req.Title),
			Hours:        hours[id],
			Note:         req.Note,
			Visibility:   visibility,
			TrainerID:    id,
		})
	}
	return rows, nil
}

// lockActivityKeys 按键的字典序加锁，两个更新互换键时不会死锁
func lockActivityKeys(ctx context.Context, txRepo *repository.Repository, oldDate time.Time, oldTitle string, newDate time.Time, newTitle string) error {
	first, second := oldDate, newDate
	firstTitle, secondTitle := oldTitle, newTitle
	if repository.ActivityLockKey(newDate, newTitle) < repository.ActivityLockKey(oldDate, oldTitle) {
		first, second = newDate, oldDate
		firstTitle, secondTitle = newTitle, oldTitle
	}
	if err := txRepo.SpecialActivity.LockKey(ctx, first, firstTitle); err != nil {
		return err
	}
	if repository.ActivityLockKey(first, firstTitle) == repository.ActivityLockKey(second, secondTitle) {
		return nil
	}
	return txRepo.SpecialActivity.LockKey(ctx, second, secondTitle)
}

func (s *specialActivityService) wrapWriteError(msg string, err error) error {
	if errors.Is(err, ErrActivityExists) {
		return err
	}
	if errors.Is(err, pkgerrors.ErrForeignKey) {
		return ErrTrainerNotFound
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}

// activityFilter year+month 按自然月，year+week 按 ISO 周，仅 year 按自然年
func activityFilter(req *dto.ActivityListRequest) (repository.ActivityFilter, error) {
	var f repository.ActivityFilter
	if req.TrainerID > 0 {
		id := req.TrainerID
		f.TrainerID = &id
	}

	switch {
	case req.Year == 0 && (req.Month != 0 || req.Week != 0):
		return f, ErrInvalidPeriod
	case req.Month != 0 && req.Week != 0:
		return f, ErrInvalidPeriod
	case req.Week != 0:
		monday, err := weekcalc.MondayOf(req.Week, req.Year)
		if err != nil {
			return f, ErrInvalidWeek
		}
		to := monday.AddDate(0, 0, 7)
		f.From, f.To = &monday, &to
	case req.Year != 0:
		from, to := periodRange(req.Year, req.Month)
		f.From, f.To = &from, &to
	}
	return f, nil
}

// periodRange 自然年或自然月的 [from, to)
func periodRange(year, month int) (from, to time.Time) {
	if month == 0 {
		from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(1, 0, 0)
	}
	from = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func sameDay(a, b time.Time) bool {
	return weekcalc.DateOnly(a).Equal(weekcalc.DateOnly(b))
}
