package service

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/dto"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/repository"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/weekcalc"
)

// HoursService 教练工时统计
//
// 课程工时：统计期内每一天，按课程星期展开为单次课程，
// 取有效教练且未取消的课程，时长为结束减开始。
// 停用课程只计今天之前的课次，停用不抹掉已发生的工时。
// 活动工时：统计期内特殊活动行的工时之和。
type HoursService interface {
	// TrainerHours month 为 0 时统计全年
	TrainerHours(ctx context.Context, year, month int) (*dto.TrainerHoursResponse, error)
}

type hoursService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewHoursService 创建 HoursService 实例
func NewHoursService(repo *repository.Repository, logger *zap.Logger) HoursService {
	return &hoursService{repo: repo, logger: logger, now: time.Now}
}

func (s *hoursService) TrainerHours(ctx context.Context, year, month int) (*dto.TrainerHoursResponse, error) {
	if year < 2000 || year > 2100 || month < 0 || month > 12 {
		return nil, ErrInvalidPeriod
	}
	from, to := periodRange(year, month)

	trainers, err := s.repo.Trainer.List(ctx, true)
	if err != nil {
		s.logger.Error("列出教练失败", zap.Error(err))
		return nil, err
	}
	courses, err := s.repo.Course.List(ctx, true)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}
	// 自然年边界附近的日期可能属于相邻 ISO 年
	ix, err := loadSignalIndex(ctx, s.repo, []int{year - 1, year, year + 1})
	if err != nil {
		s.logger.Error("加载周信号失败", zap.Int("year", year), zap.Error(err))
		return nil, err
	}
	activity, err := s.repo.SpecialActivity.SumHoursByTrainer(ctx, from, to)
	if err != nil {
		s.logger.Error("汇总活动工时失败", zap.Error(err))
		return nil, err
	}

	rows := make(map[int64]*dto.TrainerHoursRow, len(trainers))
	rowFor := func(id int64) *dto.TrainerHoursRow {
		r, ok := rows[id]
		if !ok {
			r = &dto.TrainerHoursRow{TrainerID: id}
			rows[id] = r
		}
		return r
	}

	for _, occ := range s.occurrences(ix, courses, from, to) {
		if occ.Cancelled {
			continue
		}
		hours := occ.Course.DurationHours()
		for _, id := range occ.TrainerIDs {
			r := rowFor(id)
			r.CourseHours += hours
			r.CourseCount++
		}
	}
	for _, a := range activity {
		r := rowFor(a.TrainerID)
		r.ActivityHours += a.Hours
		r.ActivityCount += a.Activities
	}

	resp := &dto.TrainerHoursResponse{
		Year:  year,
		Month: month,
		From:  from.Format(weekcalc.DateLayout),
		To:    to.Format(weekcalc.DateLayout),
		List:  make([]dto.TrainerHoursRow, 0, len(trainers)),
	}
	for i := range trainers {
		t := &trainers[i]
		r, ok := rows[t.TrainerID]
		// 停用教练只在统计期内有工时时出现
		if !ok && !t.IsActive() {
			continue
		}
		if !ok {
			r = &dto.TrainerHoursRow{TrainerID: t.TrainerID}
		}
		r.Name = t.FullName()
		r.IsActive = t.IsActive()
		r.CourseHours = round2(r.CourseHours)
		r.ActivityHours = round2(r.ActivityHours)
		r.TotalHours = round2(r.CourseHours + r.ActivityHours)
		resp.TotalHours += r.TotalHours
		resp.List = append(resp.List, *r)
	}
	resp.TotalHours = round2(resp.TotalHours)

	sort.SliceStable(resp.List, func(i, j int) bool { return resp.List[i].Name < resp.List[j].Name })
	return resp, nil
}

// occurrences 启用课程按整个区间展开，停用课程截止到今天（不含）
func (s *hoursService) occurrences(ix *signalIndex, courses []model.Course, from, to time.Time) []occurrence {
	var active, inactive []model.Course
	for _, c := range courses {
		if c.IsActive {
			active = append(active, c)
		} else {
			inactive = append(inactive, c)
		}
	}

	out := occurrencesBetween(ix, active, from, to)
	if len(inactive) == 0 {
		return out
	}
	until := to
	if today := weekcalc.DateOnly(s.now()); today.Before(until) {
		until = today
	}
	return append(out, occurrencesBetween(ix, inactive, from, until)...)
}

// occurrencesBetween 展开 [from, to) 内每门课程的每一次课
func occurrencesBetween(ix *signalIndex, courses []model.Course, from, to time.Time) []occurrence {
	byDay := make(map[weekcalc.Weekday][]*model.Course)
	for i := range courses {
		c := &courses[i]
		byDay[weekcalc.Weekday(c.DayOfWeek)] = append(byDay[weekcalc.Weekday(c.DayOfWeek)], c)
	}

	var out []occurrence
	for d := weekcalc.DateOnly(from); d.Before(to); d = d.AddDate(0, 0, 1) {
		week, year := weekcalc.WeekOf(d)
		for _, c := range byDay[weekcalc.WeekdayOf(d)] {
			out = append(out, ix.resolve(c, week, year))
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
