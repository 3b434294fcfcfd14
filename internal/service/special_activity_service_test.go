package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/dto"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
)

func setupSpecialActivity(t *testing.T) (SpecialActivityService, NoteService, HoursService, *mockStore) {
	t.Helper()
	repo, st := newMockRepository()
	st.trainers.add("Anna", "Berger")
	st.trainers.add("Ben", "Kraus")
	st.trainers.add("Clara", "Vogt")
	logger := zap.NewNop()
	return NewSpecialActivityService(repo, logger), NewNoteService(repo, logger), NewHoursService(repo, logger), st
}

func floatPtr(v float64) *float64 { return &v }

func gauMeisterschaft() *dto.SaveSpecialActivityRequest {
	return &dto.SaveSpecialActivityRequest{
		Date:         "2025-05-10",
		Title:        "Gaumeisterschaft",
		ActivityType: model.ActivityTypeCompetition,
		Hours:        4,
		TrainerIDs:   []int64{1},
		Trainers:     []dto.ActivityTrainerInput{{TrainerID: 2, Hours: floatPtr(6)}},
	}
}

func TestSpecialActivity_CreateGroupsRows(t *testing.T) {
	svc, _, _, st := setupSpecialActivity(t)

	got, err := svc.Create(context.Background(), gauMeisterschaft())
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if len(st.activities.rows) != 2 {
		t.Errorf("期望每位教练一行共 2 行，实际=%d", len(st.activities.rows))
	}
	if got.TrainerCount != 2 || got.TotalHours != 10 {
		t.Errorf("期望 2 位教练共 10 小时，实际 count=%d total=%v", got.TrainerCount, got.TotalHours)
	}
	if got.WeekNumber != 19 || got.Year != 2025 {
		t.Errorf("期望 2025 年第 19 周，实际 %d/%d", got.WeekNumber, got.Year)
	}
	if got.Visibility != model.VisibilityInternal {
		t.Errorf("默认可见性应为 internal，实际=%s", got.Visibility)
	}
}

func TestSpecialActivity_CreateValidation(t *testing.T) {
	svc, _, _, _ := setupSpecialActivity(t)
	ctx := context.Background()

	req := gauMeisterschaft()
	req.TrainerIDs, req.Trainers = nil, nil
	if _, err := svc.Create(ctx, req); !errors.Is(err, ErrNoTrainersSelected) {
		t.Errorf("期望 ErrNoTrainersSelected，实际=%v", err)
	}

	req = gauMeisterschaft()
	req.TrainerIDs = []int64{99}
	if _, err := svc.Create(ctx, req); !errors.Is(err, ErrTrainerNotFound) {
		t.Errorf("期望 ErrTrainerNotFound，实际=%v", err)
	}

	req = gauMeisterschaft()
	req.Date = "10.05.2025"
	if _, err := svc.Create(ctx, req); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate，实际=%v", err)
	}

	if _, err := svc.Create(ctx, gauMeisterschaft()); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if _, err := svc.Create(ctx, gauMeisterschaft()); !errors.Is(err, ErrActivityExists) {
		t.Errorf("同日同名应返回 ErrActivityExists，实际=%v", err)
	}
}

// 修改教练集合与标题：旧行全部替换，备注随键迁移
func TestSpecialActivity_UpdateReplacesGroup(t *testing.T) {
	svc, notes, _, st := setupSpecialActivity(t)
	ctx := context.Background()

	created, _ := svc.Create(ctx, gauMeisterschaft())
	if _, err := notes.CreateActivityNote(ctx, &dto.CreateActivityNoteRequest{
		ActivityDate: "2025-05-10", ActivityTitle: "Gaumeisterschaft", Content: "Anreise 7 Uhr",
	}); err != nil {
		t.Fatalf("CreateActivityNote 应成功: %v", err)
	}

	req := gauMeisterschaft()
	req.Title = "Gaumeisterschaft Turnen"
	req.Trainers = nil
	req.TrainerIDs = []int64{3}
	updated, err := svc.Update(ctx, created.ID, req)
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}

	if len(st.activities.rows) != 1 {
		t.Errorf("期望替换后只剩 1 行，实际=%d", len(st.activities.rows))
	}
	if updated.Trainers[0].ID != 3 || updated.TotalHours != 4 {
		t.Errorf("期望教练 3 共 4 小时，实际=%+v", updated.Trainers)
	}
	if len(updated.Notes) != 1 || updated.Notes[0].ActivityTitle != "Gaumeisterschaft Turnen" {
		t.Errorf("备注应随新标题迁移，实际=%+v", updated.Notes)
	}
}

func TestSpecialActivity_UpdateKeyClash(t *testing.T) {
	svc, _, _, _ := setupSpecialActivity(t)
	ctx := context.Background()

	first, _ := svc.Create(ctx, gauMeisterschaft())
	other := gauMeisterschaft()
	other.Title = "Kampfrichterlehrgang"
	if _, err := svc.Create(ctx, other); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if _, err := svc.Update(ctx, first.ID, other); !errors.Is(err, ErrActivityExists) {
		t.Errorf("改成已存在的键应返回 ErrActivityExists，实际=%v", err)
	}
	if _, err := svc.Update(ctx, 999, other); !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("期望 ErrActivityNotFound，实际=%v", err)
	}
}

// 写入前先对活动键加锁；改键时新旧两个键都加锁，且顺序固定
func TestSpecialActivity_WritesLockActivityKey(t *testing.T) {
	svc, _, _, st := setupSpecialActivity(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, gauMeisterschaft())
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if len(st.activities.locks) != 1 || st.activities.locks[0] != "2025-05-10|Gaumeisterschaft" {
		t.Fatalf("Create 应锁定活动键，实际=%v", st.activities.locks)
	}

	st.activities.locks = nil
	renamed := gauMeisterschaft()
	renamed.Title = "Bezirksmeisterschaft"
	updated, err := svc.Update(ctx, created.ID, renamed)
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	want := []string{"2025-05-10|Bezirksmeisterschaft", "2025-05-10|Gaumeisterschaft"}
	if len(st.activities.locks) != 2 || st.activities.locks[0] != want[0] || st.activities.locks[1] != want[1] {
		t.Errorf("期望按字典序锁定 %v，实际=%v", want, st.activities.locks)
	}

	st.activities.locks = nil
	if _, err := svc.Update(ctx, updated.ID, renamed); err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if len(st.activities.locks) != 1 {
		t.Errorf("键未变时只应加一把锁，实际=%v", st.activities.locks)
	}
}

// 删除整组后：行与备注都消失，教练工时随之减少
func TestSpecialActivity_DeleteRemovesRowsNotesAndHours(t *testing.T) {
	svc, notes, hours, st := setupSpecialActivity(t)
	ctx := context.Background()

	created, _ := svc.Create(ctx, gauMeisterschaft())
	_, _ = notes.CreateActivityNote(ctx, &dto.CreateActivityNoteRequest{
		ActivityDate: "2025-05-10", ActivityTitle: "Gaumeisterschaft", Content: "Startgeld bezahlt",
	})

	before, err := hours.TrainerHours(ctx, 2025, 5)
	if err != nil {
		t.Fatalf("TrainerHours 应成功: %v", err)
	}
	if before.TotalHours != 10 {
		t.Errorf("删除前期望 10 小时，实际=%v", before.TotalHours)
	}

	// 组内任意一行 ID 都可以删除整组
	var anyRow int64
	for id := range st.activities.rows {
		if id != created.ID {
			anyRow = id
		}
	}
	res, err := svc.Delete(ctx, anyRow)
	if err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if res.Deleted != 2 {
		t.Errorf("期望删除 2 行，实际=%d", res.Deleted)
	}
	if len(st.activities.rows) != 0 || len(st.actNotes.rows) != 0 {
		t.Errorf("行与备注应全部删除，实际 rows=%d notes=%d", len(st.activities.rows), len(st.actNotes.rows))
	}

	after, _ := hours.TrainerHours(ctx, 2025, 5)
	if after.TotalHours != 0 {
		t.Errorf("删除后工时应为 0，实际=%v", after.TotalHours)
	}

	// 再次删除视为成功
	res, err = svc.Delete(ctx, anyRow)
	if err != nil || res.Deleted != 0 {
		t.Errorf("删除不存在的活动应返回 deleted=0，实际=%+v err=%v", res, err)
	}
}

func TestSpecialActivity_ListPeriods(t *testing.T) {
	svc, _, _, _ := setupSpecialActivity(t)
	ctx := context.Background()

	_, _ = svc.Create(ctx, gauMeisterschaft())
	june := gauMeisterschaft()
	june.Date = "2025-06-14"
	june.Title = "Sommerfest"
	june.ActivityType = model.ActivityTypeEvent
	_, _ = svc.Create(ctx, june)

	all, err := svc.List(ctx, &dto.ActivityListRequest{Year: 2025})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(all) != 2 || all[0].Title != "Gaumeisterschaft" {
		t.Errorf("期望按日期排序的 2 个活动，实际=%+v", all)
	}

	may, _ := svc.List(ctx, &dto.ActivityListRequest{Year: 2025, Month: 5})
	if len(may) != 1 {
		t.Errorf("期望 5 月 1 个活动，实际=%d", len(may))
	}

	week, _ := svc.List(ctx, &dto.ActivityListRequest{Year: 2025, Week: 24})
	if len(week) != 1 || week[0].Title != "Sommerfest" {
		t.Errorf("期望第 24 周为 Sommerfest，实际=%+v", week)
	}

	rows, _ := svc.ListRows(ctx, &dto.ActivityListRequest{TrainerID: 2})
	if len(rows) != 2 {
		t.Errorf("教练 2 应有 2 行，实际=%d", len(rows))
	}

	if _, err := svc.List(ctx, &dto.ActivityListRequest{Month: 5}); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("只给月份应返回 ErrInvalidPeriod，实际=%v", err)
	}
}
