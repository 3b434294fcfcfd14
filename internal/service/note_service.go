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
	pkgerrors "github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/errors"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/weekcalc"
)

// ── 备注模块业务错误 ──

var (
	ErrNoteNotFound = errors.New("备注不存在")
)

// NoteService 活动备注与课程周备注
type NoteService interface {
	CreateActivityNote(ctx context.Context, req *dto.CreateActivityNoteRequest) (*dto.ActivityNoteResponse, error)
	UpdateActivityNote(ctx context.Context, id int64, req *dto.UpdateNoteRequest) (*dto.ActivityNoteResponse, error)
	DeleteActivityNote(ctx context.Context, id int64) error
	ListActivityNotes(ctx context.Context, req *dto.ActivityNoteListRequest) ([]dto.ActivityNoteResponse, error)

	CreateCourseNote(ctx context.Context, req *dto.CreateCourseNoteRequest) (*dto.CourseNoteResponse, error)
	UpdateCourseNote(ctx context.Context, id int64, req *dto.UpdateNoteRequest) (*dto.CourseNoteResponse, error)
	DeleteCourseNote(ctx context.Context, id int64) error
	ListCourseNotes(ctx context.Context, q dto.WeekQuery) ([]dto.CourseNoteResponse, error)
}

type noteService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(repo *repository.Repository, logger *zap.Logger) NoteService {
	return &noteService{repo: repo, logger: logger}
}

// ────────────────────── 活动备注 ──────────────────────

func (s *noteService) CreateActivityNote(ctx context.Context, req *dto.CreateActivityNoteRequest) (*dto.ActivityNoteResponse, error) {
	date, err := weekcalc.ParseDate(req.ActivityDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	// 备注只能挂在已存在的活动上
	rows, err := s.repo.SpecialActivity.ListByKey(ctx, date, strings.TrimSpace(req.ActivityTitle))
	if err != nil {
		s.logger.Error("查询特殊活动失败", zap.Error(err))
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrActivityNotFound
	}

	note := &model.ActivityNote{
		ActivityDate:  date,
		ActivityTitle: strings.TrimSpace(req.ActivityTitle),
		Content:       req.Content,
		NoteType:      noteType(req.NoteType),
	}
	if err := s.repo.ActivityNote.Create(ctx, note); err != nil {
		s.logger.Error("创建活动备注失败", zap.Error(err))
		return nil, err
	}

	resp := toActivityNoteResponse(note)
	return &resp, nil
}

func (s *noteService) UpdateActivityNote(ctx context.Context, id int64, req *dto.UpdateNoteRequest) (*dto.ActivityNoteResponse, error) {
	note, err := s.repo.ActivityNote.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		s.logger.Error("查询活动备注失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.NoteType != nil {
		note.NoteType = noteType(*req.NoteType)
	}

	if err := s.repo.ActivityNote.Update(ctx, note); err != nil {
		s.logger.Error("更新活动备注失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	resp := toActivityNoteResponse(note)
	return &resp, nil
}

func (s *noteService) DeleteActivityNote(ctx context.Context, id int64) error {
	if err := s.repo.ActivityNote.Delete(ctx, id); err != nil {
		s.logger.Error("删除活动备注失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *noteService) ListActivityNotes(ctx context.Context, req *dto.ActivityNoteListRequest) ([]dto.ActivityNoteResponse, error) {
	var (
		notes []model.ActivityNote
		err   error
	)

	switch {
	case req.Date != "":
		date, perr := weekcalc.ParseDate(req.Date)
		if perr != nil {
			return nil, ErrInvalidDate
		}
		if req.Title != "" {
			notes, err = s.repo.ActivityNote.ListByKey(ctx, date, req.Title)
		} else {
			next := date.AddDate(0, 0, 1)
			notes, err = s.repo.ActivityNote.List(ctx, &date, &next)
		}
	case req.Year != 0:
		from, to := periodRange(req.Year, req.Month)
		notes, err = s.repo.ActivityNote.List(ctx, &from, &to)
	default:
		notes, err = s.repo.ActivityNote.List(ctx, nil, nil)
	}
	if err != nil {
		s.logger.Error("列出活动备注失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ActivityNoteResponse, 0, len(notes))
	for i := range notes {
		result = append(result, toActivityNoteResponse(&notes[i]))
	}
	return result, nil
}

// ────────────────────── 课程周备注 ──────────────────────

func (s *noteService) CreateCourseNote(ctx context.Context, req *dto.CreateCourseNoteRequest) (*dto.CourseNoteResponse, error) {
	if err := checkWeek(req.WeekNumber, req.Year); err != nil {
		return nil, err
	}

	note := &model.CourseNote{
		CourseID:   req.CourseID,
		WeekNumber: req.WeekNumber,
		Year:       req.Year,
		Content:    req.Content,
		NoteType:   noteType(req.NoteType),
	}
	if err := s.repo.CourseNote.Create(ctx, note); err != nil {
		if errors.Is(err, pkgerrors.ErrForeignKey) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("创建课程备注失败", zap.Error(err))
		return nil, err
	}

	resp := toCourseNoteResponse(note)
	return &resp, nil
}

func (s *noteService) UpdateCourseNote(ctx context.Context, id int64, req *dto.UpdateNoteRequest) (*dto.CourseNoteResponse, error) {
	note, err := s.repo.CourseNote.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		s.logger.Error("查询课程备注失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.NoteType != nil {
		note.NoteType = noteType(*req.NoteType)
	}

	if err := s.repo.CourseNote.Update(ctx, note); err != nil {
		s.logger.Error("更新课程备注失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	resp := toCourseNoteResponse(note)
	return &resp, nil
}

func (s *noteService) DeleteCourseNote(ctx context.Context, id int64) error {
	if err := s.repo.CourseNote.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程备注失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *noteService) ListCourseNotes(ctx context.Context, q dto.WeekQuery) ([]dto.CourseNoteResponse, error) {
	notes, err := s.repo.CourseNote.List(ctx, toWeekFilter(q))
	if err != nil {
		s.logger.Error("列出课程备注失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseNoteResponse, 0, len(notes))
	for i := range notes {
		result = append(result, toCourseNoteResponse(&notes[i]))
	}
	return result, nil
}

// ── 内部辅助方法 ──

func noteType(t string) string {
	if t == model.VisibilityPublic {
		return model.VisibilityPublic
	}
	return model.VisibilityInternal
}

func toActivityNoteResponse(n *model.ActivityNote) dto.ActivityNoteResponse {
	return dto.ActivityNoteResponse{
		ID:            n.ActivityNoteID,
		ActivityDate:  n.ActivityDate.Format(weekcalc.DateLayout),
		ActivityTitle: n.ActivityTitle,
		Content:       n.Content,
		NoteType:      n.NoteType,
		CreatedAt:     n.CreatedAt.Format(timestampLayout),
		UpdatedAt:     n.UpdatedAt.Format(timestampLayout),
	}
}

func toCourseNoteResponse(n *model.CourseNote) dto.CourseNoteResponse {
	return dto.CourseNoteResponse{
		ID:         n.CourseNoteID,
		CourseID:   n.CourseID,
		WeekNumber: n.WeekNumber,
		Year:       n.Year,
		Content:    n.Content,
		NoteType:   n.NoteType,
		CreatedAt:  n.CreatedAt.Format(timestampLayout),
		UpdatedAt:  n.UpdatedAt.Format(timestampLayout),
	}
}
