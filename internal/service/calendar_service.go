package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/dto"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/repository"
	pkgerrors "github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/errors"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/weekcalc"
)

// CalendarService 取消 / 假期周 / 假期例外，以及周视图
//
// 三类记录互相独立：删除假期周不会清理例外，例外只在假期周重新出现时生效。
// 所有写入都是幂等的：重复设置不报错，删除不存在的键视为成功。
type CalendarService interface {
	CancelCourse(ctx context.Context, req *dto.CancelCourseRequest) (*dto.CancelledCourseResponse, error)
	RestoreCourse(ctx context.Context, courseID int64, week, year int) error
	ListCancelled(ctx context.Context, q dto.WeekQuery) ([]dto.CancelledCourseResponse, error)

	SetHolidayWeek(ctx context.Context, req *dto.HolidayWeekRequest) (*dto.HolidayWeekResponse, error)
	ClearHolidayWeek(ctx context.Context, week, year int) error
	ListHolidayWeeks(ctx context.Context, year *int) ([]dto.HolidayWeekResponse, error)
	ImportHolidayWeeks(ctx context.Context, r io.Reader) (*dto.HolidayImportResponse, error)

	AddException(ctx context.Context, req *dto.WeekKey) (*dto.CourseExceptionResponse, error)
	RemoveException(ctx context.Context, courseID int64, week, year int) error
	ListExceptions(ctx context.Context, q dto.WeekQuery) ([]dto.CourseExceptionResponse, error)

	// WeekView 某周全部在开课程：有效教练、是否举行、人员配置与课程备注
	WeekView(ctx context.Context, week, year int) (*dto.WeekViewResponse, error)
	// ResolveDate 日期所属 ISO 周及该周七天
	ResolveDate(date time.Time) *dto.WeekResolveResponse
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

// ────────────────────── 课程取消 ──────────────────────

func (s *calendarService) CancelCourse(ctx context.Context, req *dto.CancelCourseRequest) (*dto.CancelledCourseResponse, error) {
	if err := checkWeek(req.WeekNumber, req.Year); err != nil {
		return nil, err
	}

	cc := &model.CancelledCourse{
		CourseID:   req.CourseID,
		WeekNumber: req.WeekNumber,
		Year:       req.Year,
		Reason:     strings.TrimSpace(req.Reason),
	}
	if err := s.repo.CancelledCourse.Upsert(ctx, cc); err != nil {
		if errors.Is(err, pkgerrors.ErrForeignKey) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("取消课程失败", zap.Int64("course_id", req.CourseID), zap.Error(err))
		return nil, err
	}

	resp := toCancelledResponse(cc)
	return &resp, nil
}

func (s *calendarService) RestoreCourse(ctx context.Context, courseID int64, week, year int) error {
	if err := checkWeek(week, year); err != nil {
		return err
	}
	if err := s.repo.CancelledCourse.DeleteByKey(ctx, courseID, week, year); err != nil {
		s.logger.Error("恢复课程失败", zap.Int64("course_id", courseID), zap.Error(err))
		return err
	}
	return nil
}

func (s *calendarService) ListCancelled(ctx context.Context, q dto.WeekQuery) ([]dto.CancelledCourseResponse, error) {
	list, err := s.repo.CancelledCourse.List(ctx, toWeekFilter(q))
	if err != nil {
		s.logger.Error("列出取消记录失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.CancelledCourseResponse, 0, len(list))
	for i := range list {
		result = append(result, toCancelledResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── 假期周 ──────────────────────

func (s *calendarService) SetHolidayWeek(ctx context.Context, req *dto.HolidayWeekRequest) (*dto.HolidayWeekResponse, error) {
	if err := checkWeek(req.WeekNumber, req.Year); err != nil {
		return nil, err
	}

	hw := &model.HolidayWeek{
		WeekNumber: req.WeekNumber,
		Year:       req.Year,
		Label:      strings.TrimSpace(req.Label),
	}
	if err := s.repo.HolidayWeek.Upsert(ctx, hw); err != nil {
		s.logger.Error("标记假期周失败", zap.Int("week", req.WeekNumber), zap.Int("year", req.Year), zap.Error(err))
		return nil, err
	}

	resp := toHolidayResponse(hw)
	return &resp, nil
}

func (s *calendarService) ClearHolidayWeek(ctx context.Context, week, year int) error {
	if err := checkWeek(week, year); err != nil {
		return err
	}
	if err := s.repo.HolidayWeek.DeleteByKey(ctx, week, year); err != nil {
		s.logger.Error("取消假期周失败", zap.Int("week", week), zap.Int("year", year), zap.Error(err))
		return err
	}
	return nil
}

func (s *calendarService) ListHolidayWeeks(ctx context.Context, year *int) ([]dto.HolidayWeekResponse, error) {
	list, err := s.repo.HolidayWeek.List(ctx, year)
	if err != nil {
		s.logger.Error("列出假期周失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.HolidayWeekResponse, 0, len(list))
	for i := range list {
		result = append(result, toHolidayResponse(&list[i]))
	}
	return result, nil
}

// ImportHolidayWeeks 从假期日历批量标记假期周；单周写入失败不影响其余周
func (s *calendarService) ImportHolidayWeeks(ctx context.Context, r io.Reader) (*dto.HolidayImportResponse, error) {
	ranges, skipped, err := parseHolidayICS(r)
	if err != nil {
		return nil, err
	}

	result := &dto.HolidayImportResponse{Skipped: skipped, Weeks: []dto.HolidayWeekResponse{}}
	for _, c := range holidayWeeks(ranges) {
		hw := &model.HolidayWeek{WeekNumber: c.WeekNumber, Year: c.Year, Label: c.Label}
		if err := s.repo.HolidayWeek.Upsert(ctx, hw); err != nil {
			s.logger.Warn("导入假期周失败", zap.Int("week", c.WeekNumber), zap.Int("year", c.Year), zap.Error(err))
			result.Failed++
			continue
		}
		result.Imported++
		result.Weeks = append(result.Weeks, toHolidayResponse(hw))
	}

	s.logger.Info("假期日历导入完成",
		zap.Int("imported", result.Imported),
		zap.Int("failed", result.Failed),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// ────────────────────── 假期例外 ──────────────────────

func (s *calendarService) AddException(ctx context.Context, req *dto.WeekKey) (*dto.CourseExceptionResponse, error) {
	if err := checkWeek(req.WeekNumber, req.Year); err != nil {
		return nil, err
	}

	ce := &model.CourseException{CourseID: req.CourseID, WeekNumber: req.WeekNumber, Year: req.Year}
	if err := s.repo.CourseException.Create(ctx, ce); err != nil {
		if errors.Is(err, pkgerrors.ErrForeignKey) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("添加假期例外失败", zap.Int64("course_id", req.CourseID), zap.Error(err))
		return nil, err
	}

	// 已存在时 Create 不回填主键，重新读取一次
	if ce.CourseExceptionID == 0 {
		list, err := s.repo.CourseException.List(ctx, repository.WeekFilter{
			CourseID: &req.CourseID, WeekNumber: &req.WeekNumber, Year: &req.Year,
		})
		if err != nil {
			s.logger.Error("查询假期例外失败", zap.Error(err))
			return nil, err
		}
		if len(list) > 0 {
			ce = &list[0]
		}
	}

	resp := toExceptionResponse(ce)
	return &resp, nil
}

func (s *calendarService) RemoveException(ctx context.Context, courseID int64, week, year int) error {
	if err := checkWeek(week, year); err != nil {
		return err
	}
	if err := s.repo.CourseException.DeleteByKey(ctx, courseID, week, year); err != nil {
		s.logger.Error("删除假期例外失败", zap.Int64("course_id", courseID), zap.Error(err))
		return err
	}
	return nil
}

func (s *calendarService) ListExceptions(ctx context.Context, q dto.WeekQuery) ([]dto.CourseExceptionResponse, error) {
	list, err := s.repo.CourseException.List(ctx, toWeekFilter(q))
	if err != nil {
		s.logger.Error("列出假期例外失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.CourseExceptionResponse, 0, len(list))
	for i := range list {
		result = append(result, toExceptionResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── 周视图 ──────────────────────

func (s *calendarService) WeekView(ctx context.Context, week, year int) (*dto.WeekViewResponse, error) {
	monday, err := weekcalc.MondayOf(week, year)
	if err != nil {
		return nil, ErrInvalidWeek
	}

	courses, err := s.repo.Course.List(ctx, false)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}
	ix, err := loadSignalIndex(ctx, s.repo, []int{year})
	if err != nil {
		s.logger.Error("加载周信号失败", zap.Int("year", year), zap.Error(err))
		return nil, err
	}
	trainers, err := s.repo.Trainer.List(ctx, true)
	if err != nil {
		s.logger.Error("列出教练失败", zap.Error(err))
		return nil, err
	}
	notes, err := s.repo.CourseNote.List(ctx, repository.WeekFilter{WeekNumber: &week, Year: &year})
	if err != nil {
		s.logger.Error("列出课程备注失败", zap.Error(err))
		return nil, err
	}

	notesByCourse := make(map[int64][]dto.CourseNoteResponse)
	for i := range notes {
		n := &notes[i]
		notesByCourse[n.CourseID] = append(notesByCourse[n.CourseID], toCourseNoteResponse(n))
	}

	resp := &dto.WeekViewResponse{
		WeekNumber: week,
		Year:       year,
		Days:       toDayResponses(weekcalc.DaysOf(monday)),
		Courses:    make([]dto.OccurrenceResponse, 0, len(courses)),
	}
	if hw, ok := ix.holidays[isoWeek{week, year}]; ok {
		resp.HolidayWeek = true
		resp.HolidayLabel = hw.Label
	}

	var staffed []Staffing
	for i := range courses {
		occ := ix.resolve(&courses[i], week, year)
		item := dto.OccurrenceResponse{
			Course:     toCourseResponse(occ.Course),
			Date:       weekcalc.DateForWeekday(monday, weekcalc.Weekday(occ.Course.DayOfWeek)).Format(weekcalc.DateLayout),
			TrainerIDs: []int64(occ.TrainerIDs),
			Trainers:   trainerBriefs(occ.TrainerIDs, trainers),
			IsOverride: occ.IsOverride,
			Cancelled:  occ.Cancelled,
			Reason:     string(occ.Reason),
			CancelNote: occ.CancelNote,
			Notes:      notesByCourse[occ.Course.CourseID],
		}
		if item.Notes == nil {
			item.Notes = []dto.CourseNoteResponse{}
		}
		// 取消的课程不参与人员配置评估
		if !occ.Cancelled {
			st := EvaluateStaffing(len(occ.TrainerIDs), occ.Course.RequiredTrainers)
			d := st.toDTO()
			item.Staffing = &d
			staffed = append(staffed, st)
		}
		resp.Courses = append(resp.Courses, item)
	}
	resp.Summary = SummarizeStaffing(staffed).toDTO()

	return resp, nil
}

func (s *calendarService) ResolveDate(date time.Time) *dto.WeekResolveResponse {
	d := weekcalc.DateOnly(date)
	week, year := weekcalc.WeekOf(d)
	return &dto.WeekResolveResponse{
		Date:       d.Format(weekcalc.DateLayout),
		WeekNumber: week,
		Year:       year,
		Weekday:    weekcalc.WeekdayOf(d).Key(),
		Days:       toDayResponses(weekcalc.DaysOf(d)),
	}
}

// ── 内部辅助方法 ──

func toWeekFilter(q dto.WeekQuery) repository.WeekFilter {
	return repository.WeekFilter{CourseID: q.CourseID, WeekNumber: q.WeekNumber, Year: q.Year}
}

func toDayResponses(days []weekcalc.Day) []dto.DayResponse {
	out := make([]dto.DayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, dto.DayResponse{
			Weekday: d.Weekday.Key(),
			Label:   d.Weekday.GermanName(),
			Date:    d.Date.Format(weekcalc.DateLayout),
		})
	}
	return out
}

func toCancelledResponse(cc *model.CancelledCourse) dto.CancelledCourseResponse {
	return dto.CancelledCourseResponse{
		ID:         cc.CancelledCourseID,
		CourseID:   cc.CourseID,
		WeekNumber: cc.WeekNumber,
		Year:       cc.Year,
		Reason:     cc.Reason,
		CreatedAt:  cc.CreatedAt.Format(timestampLayout),
	}
}

func toHolidayResponse(hw *model.HolidayWeek) dto.HolidayWeekResponse {
	return dto.HolidayWeekResponse{
		ID:         hw.HolidayWeekID,
		WeekNumber: hw.WeekNumber,
		Year:       hw.Year,
		Label:      hw.Label,
		CreatedAt:  hw.CreatedAt.Format(timestampLayout),
	}
}

func toExceptionResponse(ce *model.CourseException) dto.CourseExceptionResponse {
	return dto.CourseExceptionResponse{
		ID:         ce.CourseExceptionID,
		CourseID:   ce.CourseID,
		WeekNumber: ce.WeekNumber,
		Year:       ce.Year,
		CreatedAt:  ce.CreatedAt.Format(timestampLayout),
	}
}
