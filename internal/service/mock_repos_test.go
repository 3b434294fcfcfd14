package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/repository"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/weekcalc"
)

// newMockRepository 组装全部 mock；BeginTx 返回 nil 事务，写入直接落在 mock 上
func newMockRepository() (*repository.Repository, *mockStore) {
	st := &mockStore{
		trainers:    newMockTrainerRepo(),
		courses:     newMockCourseRepo(),
		assignments: newMockWeeklyAssignmentRepo(),
		cancelled:   &mockCancelledCourseRepo{rows: map[courseWeekKey]*model.CancelledCourse{}},
		holidays:    &mockHolidayWeekRepo{rows: map[isoWeek]*model.HolidayWeek{}},
		exceptions:  &mockCourseExceptionRepo{rows: map[courseWeekKey]*model.CourseException{}},
		activities:  &mockSpecialActivityRepo{rows: map[int64]*model.SpecialActivity{}},
		actNotes:    &mockActivityNoteRepo{rows: map[int64]*model.ActivityNote{}},
		courseNotes: &mockCourseNoteRepo{rows: map[int64]*model.CourseNote{}},
	}
	st.activities.trainers = st.trainers
	st.courses.trainers = st.trainers
	repo := &repository.Repository{
		Trainer:          st.trainers,
		Course:           st.courses,
		WeeklyAssignment: st.assignments,
		CancelledCourse:  st.cancelled,
		HolidayWeek:      st.holidays,
		CourseException:  st.exceptions,
		SpecialActivity:  st.activities,
		ActivityNote:     st.actNotes,
		CourseNote:       st.courseNotes,
	}
	return repo, st
}

type mockStore struct {
	trainers    *mockTrainerRepo
	courses     *mockCourseRepo
	assignments *mockWeeklyAssignmentRepo
	cancelled   *mockCancelledCourseRepo
	holidays    *mockHolidayWeekRepo
	exceptions  *mockCourseExceptionRepo
	activities  *mockSpecialActivityRepo
	actNotes    *mockActivityNoteRepo
	courseNotes *mockCourseNoteRepo
}

func dateKey(t time.Time) string { return t.Format(weekcalc.DateLayout) }

// ── Mock TrainerRepository ──

type mockTrainerRepo struct {
	trainers map[int64]*model.Trainer
	nextID   int64
	err      error // 非 nil 时所有读操作返回该错误
}

func newMockTrainerRepo() *mockTrainerRepo {
	return &mockTrainerRepo{trainers: make(map[int64]*model.Trainer)}
}

func (m *mockTrainerRepo) add(first, last string) *model.Trainer {
	t := &model.Trainer{FirstName: first, LastName: last, Status: model.TrainerStatusActive}
	_ = m.Create(context.Background(), t)
	return t
}

func (m *mockTrainerRepo) Create(_ context.Context, t *model.Trainer) error {
	m.nextID++
	t.TrainerID = m.nextID
	m.trainers[t.TrainerID] = t
	return nil
}

func (m *mockTrainerRepo) GetByID(_ context.Context, id int64) (*model.Trainer, error) {
	if m.err != nil {
		return nil, m.err
	}
	if t, ok := m.trainers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTrainerRepo) List(_ context.Context, includeInactive bool) ([]model.Trainer, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Trainer
	for _, t := range m.trainers {
		if !includeInactive && !t.IsActive() {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TrainerID < result[j].TrainerID })
	return result, nil
}

func (m *mockTrainerRepo) ListByIDs(_ context.Context, ids []int64) ([]model.Trainer, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Trainer
	for _, id := range ids {
		if t, ok := m.trainers[id]; ok {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTrainerRepo) Update(_ context.Context, t *model.Trainer) error {
	m.trainers[t.TrainerID] = t
	return nil
}

func (m *mockTrainerRepo) SetStatus(_ context.Context, id int64, status string) error {
	if t, ok := m.trainers[id]; ok {
		t.Status = status
	}
	return nil
}

func (m *mockTrainerRepo) Delete(_ context.Context, id int64) error {
	delete(m.trainers, id)
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses  map[int64]*model.Course
	nextID   int64
	trainers *mockTrainerRepo
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[int64]*model.Course)}
}

func (m *mockCourseRepo) add(name string, day weekcalc.Weekday, start, end string, required int, defaults ...int64) *model.Course {
	c := &model.Course{
		Name: name, DayOfWeek: int(day), StartTime: start, EndTime: end,
		RequiredTrainers: required, DefaultTrainerIDs: model.NewIDSet(defaults...), IsActive: true,
	}
	_ = m.Create(context.Background(), c)
	return c
}

func (m *mockCourseRepo) Create(_ context.Context, c *model.Course) error {
	m.nextID++
	c.CourseID = m.nextID
	m.courses[c.CourseID] = c
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id int64) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context, includeInactive bool) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if !includeInactive && !c.IsActive {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseID < result[j].CourseID })
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, c *model.Course) error {
	m.courses[c.CourseID] = c
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id int64) error {
	delete(m.courses, id)
	return nil
}

func (m *mockCourseRepo) RemoveDefaultTrainer(_ context.Context, trainerID int64) error {
	for _, c := range m.courses {
		c.DefaultTrainerIDs = c.DefaultTrainerIDs.Without(trainerID)
	}
	return nil
}

// ── Mock WeeklyAssignmentRepository ──

type mockWeeklyAssignmentRepo struct {
	rows       map[courseWeekKey]*model.WeeklyAssignment
	nextID     int64
	replaceErr error
}

func newMockWeeklyAssignmentRepo() *mockWeeklyAssignmentRepo {
	return &mockWeeklyAssignmentRepo{rows: make(map[courseWeekKey]*model.WeeklyAssignment)}
}

func (m *mockWeeklyAssignmentRepo) GetByKey(_ context.Context, courseID int64, week, year int) (*model.WeeklyAssignment, error) {
	if wa, ok := m.rows[courseWeekKey{courseID, week, year}]; ok {
		return wa, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWeeklyAssignmentRepo) ListByWeek(_ context.Context, week, year int) ([]model.WeeklyAssignment, error) {
	var result []model.WeeklyAssignment
	for k, wa := range m.rows {
		if k.week == week && k.year == year {
			result = append(result, *wa)
		}
	}
	return result, nil
}

func (m *mockWeeklyAssignmentRepo) ListByYears(_ context.Context, years []int) ([]model.WeeklyAssignment, error) {
	var result []model.WeeklyAssignment
	for k, wa := range m.rows {
		for _, y := range years {
			if k.year == y {
				result = append(result, *wa)
			}
		}
	}
	return result, nil
}

func (m *mockWeeklyAssignmentRepo) Replace(_ context.Context, wa *model.WeeklyAssignment) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	k := courseWeekKey{wa.CourseID, wa.WeekNumber, wa.Year}
	if old, ok := m.rows[k]; ok {
		wa.WeeklyAssignmentID = old.WeeklyAssignmentID
	} else {
		m.nextID++
		wa.WeeklyAssignmentID = m.nextID
	}
	m.rows[k] = wa
	return nil
}

func (m *mockWeeklyAssignmentRepo) DeleteByKey(_ context.Context, courseID int64, week, year int) error {
	delete(m.rows, courseWeekKey{courseID, week, year})
	return nil
}

// ── Mock CancelledCourseRepository ──

type mockCancelledCourseRepo struct {
	rows map[courseWeekKey]*model.CancelledCourse
}

func (m *mockCancelledCourseRepo) Upsert(_ context.Context, cc *model.CancelledCourse) error {
	k := courseWeekKey{cc.CourseID, cc.WeekNumber, cc.Year}
	if existing, ok := m.rows[k]; ok {
		existing.Reason = cc.Reason
		*cc = *existing
		return nil
	}
	cc.CancelledCourseID = int64(len(m.rows) + 1)
	m.rows[k] = cc
	return nil
}

func (m *mockCancelledCourseRepo) DeleteByKey(_ context.Context, courseID int64, week, year int) error {
	delete(m.rows, courseWeekKey{courseID, week, year})
	return nil
}

func (m *mockCancelledCourseRepo) List(_ context.Context, f repository.WeekFilter) ([]model.CancelledCourse, error) {
	var result []model.CancelledCourse
	for k, cc := range m.rows {
		if matchWeekFilter(f, k) {
			result = append(result, *cc)
		}
	}
	return result, nil
}

func (m *mockCancelledCourseRepo) ListByYears(_ context.Context, years []int) ([]model.CancelledCourse, error) {
	var result []model.CancelledCourse
	for k, cc := range m.rows {
		if containsInt(years, k.year) {
			result = append(result, *cc)
		}
	}
	return result, nil
}

// ── Mock HolidayWeekRepository ──

type mockHolidayWeekRepo struct {
	rows      map[isoWeek]*model.HolidayWeek
	upsertErr error
}

func (m *mockHolidayWeekRepo) Upsert(_ context.Context, hw *model.HolidayWeek) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	k := isoWeek{hw.WeekNumber, hw.Year}
	if existing, ok := m.rows[k]; ok {
		existing.Label = hw.Label
		*hw = *existing
		return nil
	}
	hw.HolidayWeekID = int64(len(m.rows) + 1)
	m.rows[k] = hw
	return nil
}

func (m *mockHolidayWeekRepo) DeleteByKey(_ context.Context, week, year int) error {
	delete(m.rows, isoWeek{week, year})
	return nil
}

func (m *mockHolidayWeekRepo) List(_ context.Context, year *int) ([]model.HolidayWeek, error) {
	var result []model.HolidayWeek
	for k, hw := range m.rows {
		if year == nil || k.year == *year {
			result = append(result, *hw)
		}
	}
	return result, nil
}

func (m *mockHolidayWeekRepo) ListByYears(_ context.Context, years []int) ([]model.HolidayWeek, error) {
	var result []model.HolidayWeek
	for k, hw := range m.rows {
		if containsInt(years, k.year) {
			result = append(result, *hw)
		}
	}
	return result, nil
}

// ── Mock CourseExceptionRepository ──

type mockCourseExceptionRepo struct {
	rows map[courseWeekKey]*model.CourseException
}

func (m *mockCourseExceptionRepo) Create(_ context.Context, ce *model.CourseException) error {
	k := courseWeekKey{ce.CourseID, ce.WeekNumber, ce.Year}
	if _, ok := m.rows[k]; ok {
		return nil // DO NOTHING：不回填主键
	}
	ce.CourseExceptionID = int64(len(m.rows) + 1)
	m.rows[k] = ce
	return nil
}

func (m *mockCourseExceptionRepo) DeleteByKey(_ context.Context, courseID int64, week, year int) error {
	delete(m.rows, courseWeekKey{courseID, week, year})
	return nil
}

func (m *mockCourseExceptionRepo) List(_ context.Context, f repository.WeekFilter) ([]model.CourseException, error) {
	var result []model.CourseException
	for k, ce := range m.rows {
		if matchWeekFilter(f, k) {
			result = append(result, *ce)
		}
	}
	return result, nil
}

func (m *mockCourseExceptionRepo) ListByYears(_ context.Context, years []int) ([]model.CourseException, error) {
	var result []model.CourseException
	for k, ce := range m.rows {
		if containsInt(years, k.year) {
			result = append(result, *ce)
		}
	}
	return result, nil
}

// ── Mock SpecialActivityRepository ──

type mockSpecialActivityRepo struct {
	rows     map[int64]*model.SpecialActivity
	nextID   int64
	trainers *mockTrainerRepo
	locks    []string
}

func (m *mockSpecialActivityRepo) BatchCreate(_ context.Context, rows []model.SpecialActivity) error {
	for i := range rows {
		m.nextID++
		r := rows[i]
		r.ActivityID = m.nextID
		m.rows[r.ActivityID] = &r
	}
	return nil
}

func (m *mockSpecialActivityRepo) GetByID(_ context.Context, id int64) (*model.SpecialActivity, error) {
	if r, ok := m.rows[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSpecialActivityRepo) withTrainer(r model.SpecialActivity) model.SpecialActivity {
	if t, ok := m.trainers.trainers[r.TrainerID]; ok {
		r.Trainer = t
	}
	return r
}

func (m *mockSpecialActivityRepo) sorted(pred func(*model.SpecialActivity) bool) []model.SpecialActivity {
	var result []model.SpecialActivity
	for _, r := range m.rows {
		if pred(r) {
			result = append(result, m.withTrainer(*r))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ActivityID < result[j].ActivityID })
	return result
}

func (m *mockSpecialActivityRepo) ListByKey(_ context.Context, date time.Time, title string) ([]model.SpecialActivity, error) {
	return m.sorted(func(r *model.SpecialActivity) bool {
		return dateKey(r.ActivityDate) == dateKey(date) && r.Title == title
	}), nil
}

func (m *mockSpecialActivityRepo) List(_ context.Context, f repository.ActivityFilter) ([]model.SpecialActivity, error) {
	return m.sorted(func(r *model.SpecialActivity) bool {
		if f.From != nil && r.ActivityDate.Before(*f.From) {
			return false
		}
		if f.To != nil && !r.ActivityDate.Before(*f.To) {
			return false
		}
		if f.TrainerID != nil && r.TrainerID != *f.TrainerID {
			return false
		}
		return true
	}), nil
}

func (m *mockSpecialActivityRepo) DeleteByKey(_ context.Context, date time.Time, title string) (int64, error) {
	var n int64
	for id, r := range m.rows {
		if dateKey(r.ActivityDate) == dateKey(date) && r.Title == title {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

func (m *mockSpecialActivityRepo) SumHoursByTrainer(_ context.Context, from, to time.Time) ([]repository.TrainerHoursRow, error) {
	sums := make(map[int64]*repository.TrainerHoursRow)
	for _, r := range m.rows {
		if r.ActivityDate.Before(from) || !r.ActivityDate.Before(to) {
			continue
		}
		s, ok := sums[r.TrainerID]
		if !ok {
			s = &repository.TrainerHoursRow{TrainerID: r.TrainerID}
			sums[r.TrainerID] = s
		}
		s.Hours += r.Hours
		s.Activities++
	}
	var result []repository.TrainerHoursRow
	for _, s := range sums {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSpecialActivityRepo) LockKey(_ context.Context, date time.Time, title string) error {
	m.locks = append(m.locks, repository.ActivityLockKey(date, title))
	return nil
}

// ── Mock ActivityNoteRepository ──

type mockActivityNoteRepo struct {
	rows   map[int64]*model.ActivityNote
	nextID int64
}

func (m *mockActivityNoteRepo) Create(_ context.Context, n *model.ActivityNote) error {
	m.nextID++
	n.ActivityNoteID = m.nextID
	m.rows[n.ActivityNoteID] = n
	return nil
}

func (m *mockActivityNoteRepo) GetByID(_ context.Context, id int64) (*model.ActivityNote, error) {
	if n, ok := m.rows[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockActivityNoteRepo) Update(_ context.Context, n *model.ActivityNote) error {
	m.rows[n.ActivityNoteID] = n
	return nil
}

func (m *mockActivityNoteRepo) Delete(_ context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

func (m *mockActivityNoteRepo) List(_ context.Context, from, to *time.Time) ([]model.ActivityNote, error) {
	var result []model.ActivityNote
	for _, n := range m.rows {
		if from != nil && n.ActivityDate.Before(*from) {
			continue
		}
		if to != nil && !n.ActivityDate.Before(*to) {
			continue
		}
		result = append(result, *n)
	}
	return result, nil
}

func (m *mockActivityNoteRepo) ListByKey(_ context.Context, date time.Time, title string) ([]model.ActivityNote, error) {
	var result []model.ActivityNote
	for _, n := range m.rows {
		if dateKey(n.ActivityDate) == dateKey(date) && n.ActivityTitle == title {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (m *mockActivityNoteRepo) MoveKey(_ context.Context, oldDate time.Time, oldTitle string, newDate time.Time, newTitle string) error {
	for _, n := range m.rows {
		if dateKey(n.ActivityDate) == dateKey(oldDate) && n.ActivityTitle == oldTitle {
			n.ActivityDate = newDate
			n.ActivityTitle = newTitle
		}
	}
	return nil
}

func (m *mockActivityNoteRepo) DeleteByKey(_ context.Context, date time.Time, title string) error {
	for id, n := range m.rows {
		if dateKey(n.ActivityDate) == dateKey(date) && n.ActivityTitle == title {
			delete(m.rows, id)
		}
	}
	return nil
}

// ── Mock CourseNoteRepository ──

type mockCourseNoteRepo struct {
	rows   map[int64]*model.CourseNote
	nextID int64
}

func (m *mockCourseNoteRepo) Create(_ context.Context, n *model.CourseNote) error {
	m.nextID++
	n.CourseNoteID = m.nextID
	m.rows[n.CourseNoteID] = n
	return nil
}

func (m *mockCourseNoteRepo) GetByID(_ context.Context, id int64) (*model.CourseNote, error) {
	if n, ok := m.rows[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseNoteRepo) Update(_ context.Context, n *model.CourseNote) error {
	m.rows[n.CourseNoteID] = n
	return nil
}

func (m *mockCourseNoteRepo) Delete(_ context.Context, id int64) error {
	delete(m.rows, id)
	return nil
}

func (m *mockCourseNoteRepo) List(_ context.Context, f repository.WeekFilter) ([]model.CourseNote, error) {
	var result []model.CourseNote
	for _, n := range m.rows {
		if matchWeekFilter(f, courseWeekKey{n.CourseID, n.WeekNumber, n.Year}) {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseNoteID < result[j].CourseNoteID })
	return result, nil
}

// ── 辅助函数 ──

func matchWeekFilter(f repository.WeekFilter, k courseWeekKey) bool {
	if f.CourseID != nil && *f.CourseID != k.courseID {
		return false
	}
	if f.WeekNumber != nil && *f.WeekNumber != k.week {
		return false
	}
	if f.Year != nil && *f.Year != k.year {
		return false
	}
	return true
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
