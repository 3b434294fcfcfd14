package service

import (
	"sort"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/dto"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/weekcalc"
)

// activityKey 逻辑活动的键：同一天同一标题
type activityKey struct {
	date  string
	title string
}

func keyOf(date, title string) activityKey {
	return activityKey{date: date, title: title}
}

// groupActivities 将按 (日期, 标题, 教练) 存储的行聚合为逻辑活动，
// 并挂上同键的活动备注。结果按日期、标题排序；聚合只在读取时计算，不落库。
func groupActivities(rows []model.SpecialActivity, notes []model.ActivityNote) []dto.SpecialActivityResponse {
	notesByKey := make(map[activityKey][]dto.ActivityNoteResponse)
	for i := range notes {
		n := &notes[i]
		k := keyOf(n.ActivityDate.Format(weekcalc.DateLayout), n.ActivityTitle)
		notesByKey[k] = append(notesByKey[k], toActivityNoteResponse(n))
	}

	groups := make(map[activityKey]*dto.SpecialActivityResponse)
	order := make([]activityKey, 0)
	for i := range rows {
		r := &rows[i]
		k := keyOf(r.ActivityDate.Format(weekcalc.DateLayout), r.Title)
		g, ok := groups[k]
		if !ok {
			g = &dto.SpecialActivityResponse{
				ID:         r.ActivityID,
				Date:       k.date,
				WeekNumber: r.WeekNumber,
				Year:       r.Year,
				Title:      r.Title,
				Type:       r.ActivityType,
				CustomType: r.CustomType,
				Hours:      r.Hours,
				Visibility: r.Visibility,
				Note:       r.Note,
				Trainers:   []dto.ActivityTrainer{},
			}
			groups[k] = g
			order = append(order, k)
		} else if r.ActivityID < g.ID {
			// 代表行取最小 ID，保证 PUT/DELETE 使用稳定的 ID
			g.ID = r.ActivityID
			g.Hours = r.Hours
		}

		name := ""
		if r.Trainer != nil {
			name = r.Trainer.FullName()
		}
		g.Trainers = append(g.Trainers, dto.ActivityTrainer{ID: r.TrainerID, Name: name, Hours: r.Hours})
		g.TotalHours += r.Hours
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].date != order[j].date {
			return order[i].date < order[j].date
		}
		return order[i].title < order[j].title
	})

	out := make([]dto.SpecialActivityResponse, 0, len(order))
	for _, k := range order {
		g := groups[k]
		sort.Slice(g.Trainers, func(i, j int) bool { return g.Trainers[i].ID < g.Trainers[j].ID })
		g.TrainerCount = len(g.Trainers)
		g.Notes = notesByKey[k]
		if g.Notes == nil {
			g.Notes = []dto.ActivityNoteResponse{}
		}
		out = append(out, *g)
	}
	return out
}

func toActivityRowResponse(r *model.SpecialActivity) dto.SpecialActivityRowResponse {
	resp := dto.SpecialActivityRowResponse{
		ID:           r.ActivityID,
		Date:         r.ActivityDate.Format(weekcalc.DateLayout),
		WeekNumber:   r.WeekNumber,
		Year:         r.Year,
		Title:        r.Title,
		ActivityType: r.ActivityType,
		CustomType:   r.CustomType,
		Hours:        r.Hours,
		Visibility:   r.Visibility,
		Note:         r.Note,
		TrainerID:    r.TrainerID,
	}
	if r.Trainer != nil {
		resp.TrainerName = r.Trainer.FullName()
	}
	return resp
}
