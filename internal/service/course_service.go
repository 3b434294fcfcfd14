package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/dto"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/repository"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/weekcalc"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound    = errors.New("课程不存在")
	ErrInvalidCourseTime = errors.New("结束时间必须晚于开始时间")
)

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.CourseResponse, error)
	List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id int64) error
}

type courseService struct {
	repo            *repository.Repository
	defaultRequired int
	logger          *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, defaultRequired int, logger *zap.Logger) CourseService {
	if defaultRequired < 1 {
		defaultRequired = 2
	}
	return &courseService{repo: repo, defaultRequired: defaultRequired, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	day, err := weekcalc.ParseWeekday(req.DayOfWeek)
	if err != nil {
		return nil, ErrInvalidWeekday
	}
	if err := checkCourseTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	defaults := model.NewIDSet(req.DefaultTrainerIDs...)
	if err := s.checkTrainers(ctx, defaults); err != nil {
		return nil, err
	}

	course := &model.Course{
		Name:              strings.TrimSpace(req.Name),
		DayOfWeek:         int(day),
		StartTime:         model.FormatClock(req.StartTime),
		EndTime:           model.FormatClock(req.EndTime),
		Location:          strings.TrimSpace(req.Location),
		Category:          strings.TrimSpace(req.Category),
		RequiredTrainers:  s.defaultRequired,
		DefaultTrainerIDs: defaults,
		IsActive:          true,
	}
	if req.RequiredTrainers != nil {
		course.RequiredTrainers = *req.RequiredTrainers
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	resp := toCourseResponse(course)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	course, err := getCourse(ctx, s.repo, s.logger, id)
	if err != nil {
		return nil, err
	}
	resp := toCourseResponse(course)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx, req.IncludeInactive)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, toCourseResponse(&courses[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := getCourse(ctx, s.repo, s.logger, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = strings.TrimSpace(*req.Name)
	}
	if req.DayOfWeek != nil {
		day, err := weekcalc.ParseWeekday(*req.DayOfWeek)
		if err != nil {
			return nil, ErrInvalidWeekday
		}
		course.DayOfWeek = int(day)
	}
	if req.StartTime != nil {
		course.StartTime = model.FormatClock(*req.StartTime)
	}
	if req.EndTime != nil {
		course.EndTime = model.FormatClock(*req.EndTime)
	}
	if err := checkCourseTimes(course.StartTime, course.EndTime); err != nil {
		return nil, err
	}
	if req.Location != nil {
		course.Location = strings.TrimSpace(*req.Location)
	}
	if req.Category != nil {
		course.Category = strings.TrimSpace(*req.Category)
	}
	if req.RequiredTrainers != nil {
		course.RequiredTrainers = *req.RequiredTrainers
	}
	if req.DefaultTrainerIDs != nil {
		defaults := model.NewIDSet(*req.DefaultTrainerIDs...)
		if err := s.checkTrainers(ctx, defaults); err != nil {
			return nil, err
		}
		course.DefaultTrainerIDs = defaults
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("更新课程失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	resp := toCourseResponse(course)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除不存在的课程视为成功
func (s *courseService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Course.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *courseService) checkTrainers(ctx context.Context, ids model.IDSet) error {
	if err := ensureTrainersExist(ctx, s.repo, ids); err != nil {
		if !errors.Is(err, ErrTrainerNotFound) {
			s.logger.Error("校验默认教练失败", zap.Error(err))
		}
		return err
	}
	return nil
}

func getCourse(ctx context.Context, repo *repository.Repository, logger *zap.Logger, id int64) (*model.Course, error) {
	course, err := repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		logger.Error("查询课程失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return course, nil
}

func checkCourseTimes(start, end string) error {
	st, err1 := model.ParseClock(start)
	et, err2 := model.ParseClock(end)
	if err1 != nil || err2 != nil || !et.After(st) {
		return ErrInvalidCourseTime
	}
	return nil
}

func toCourseResponse(c *model.Course) dto.CourseResponse {
	day := weekcalc.Weekday(c.DayOfWeek)
	ids := []int64(model.NewIDSet(c.DefaultTrainerIDs...))
	return dto.CourseResponse{
		ID:                c.CourseID,
		Name:              c.Name,
		DayOfWeek:         c.DayOfWeek,
		Weekday:           day.Key(),
		WeekdayLabel:      day.GermanName(),
		StartTime:         model.FormatClock(c.StartTime),
		EndTime:           model.FormatClock(c.EndTime),
		DurationHours:     c.DurationHours(),
		Location:          c.Location,
		Category:          c.Category,
		RequiredTrainers:  c.RequiredTrainers,
		DefaultTrainerIDs: ids,
		IsActive:          c.IsActive,
		CreatedAt:         c.CreatedAt.Format(timestampLayout),
		UpdatedAt:         c.UpdatedAt.Format(timestampLayout),
	}
}
