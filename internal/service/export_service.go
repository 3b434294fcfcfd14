package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/config"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/repository"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/weekcalc"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 工时统计导出为 Excel (.xlsx)，数据与 GET /trainer-hours 一致
//   - 周课表导出为 iCalendar (.ics)，可只导出某位教练的课程
//   - 导出以字节缓冲返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	TrainerHoursXLSX(ctx context.Context, year, month int) (*bytes.Buffer, string, error)
	WeekICS(ctx context.Context, week, year int, trainerID *int64) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	hours  HoursService
	club   config.ClubConfig
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, hours HoursService, club config.ClubConfig, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, hours: hours, club: club, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// TrainerHoursXLSX 工时统计导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 标题行：俱乐部名称 + 统计期
//   - 列：教练 / 状态 / 课程数 / 课程工时 / 活动数 / 活动工时 / 合计
//   - 末行为合计

func (s *exportService) TrainerHoursXLSX(ctx context.Context, year, month int) (*bytes.Buffer, string, error) {
	report, err := s.hours.TrainerHours(ctx, year, month)
	if err != nil {
		return nil, "", err
	}

	period := fmt.Sprintf("%d", year)
	if month > 0 {
		period = fmt.Sprintf("%d-%02d", year, month)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Stunden"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 26)
	f.SetColWidth(sheetName, "B", "G", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#C00000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	numberStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 2})
	totalStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 2})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s - Trainerstunden %s", s.club.Name, period))
	f.MergeCell(sheetName, "A1", "G1")
	f.SetCellStyle(sheetName, "A1", "G1", headerStyle)

	// 表头
	headers := []string{"Trainer", "Status", "Kurse", "Kursstunden", "Aktivitäten", "Aktivitätsstunden", "Gesamt"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", "G2", headerStyle)

	// 数据行
	row := 3
	for _, r := range report.List {
		status := "aktiv"
		if !r.IsActive {
			status = "inaktiv"
		}
		f.SetCellValue(sheetName, cell("A", row), r.Name)
		f.SetCellValue(sheetName, cell("B", row), status)
		f.SetCellValue(sheetName, cell("C", row), r.CourseCount)
		f.SetCellValue(sheetName, cell("D", row), r.CourseHours)
		f.SetCellValue(sheetName, cell("E", row), r.ActivityCount)
		f.SetCellValue(sheetName, cell("F", row), r.ActivityHours)
		f.SetCellValue(sheetName, cell("G", row), r.TotalHours)
		row++
	}
	if row > 3 {
		f.SetCellStyle(sheetName, cell("D", 3), cell("G", row-1), numberStyle)
	}

	// 合计行
	f.SetCellValue(sheetName, cell("A", row), "Summe")
	f.SetCellValue(sheetName, cell("G", row), report.TotalHours)
	f.SetCellStyle(sheetName, cell("A", row), cell("G", row), totalStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("trainerstunden_%s.xlsx", period)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// WeekICS 周课表导出为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 每次举行的课程一个 VEVENT；取消的课程以 STATUS:CANCELLED 输出，
// 便于订阅方删除已同步的事件。

func (s *exportService) WeekICS(ctx context.Context, week, year int, trainerID *int64) ([]byte, string, error) {
	monday, err := weekcalc.MondayOf(week, year)
	if err != nil {
		return nil, "", ErrInvalidWeek
	}

	courses, err := s.repo.Course.List(ctx, false)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, "", err
	}
	ix, err := loadSignalIndex(ctx, s.repo, []int{year})
	if err != nil {
		s.logger.Error("加载周信号失败", zap.Error(err))
		return nil, "", err
	}
	trainers, err := s.repo.Trainer.List(ctx, true)
	if err != nil {
		s.logger.Error("列出教练失败", zap.Error(err))
		return nil, "", err
	}
	names := make(map[int64]string, len(trainers))
	for i := range trainers {
		names[trainers[i].TrainerID] = trainers[i].FullName()
	}

	loc, err := time.LoadLocation(s.club.Timezone)
	if err != nil {
		loc = time.UTC
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//TSV Rot//Trainerplanung//DE")
	cal.SetName(fmt.Sprintf("%s KW %d/%d", s.club.Name, week, year))
	cal.SetXWRTimezone(loc.String())

	now := time.Now().UTC()
	for _, occ := range occurrencesBetween(ix, courses, monday, monday.AddDate(0, 0, 7)) {
		if trainerID != nil && !occ.TrainerIDs.Contains(*trainerID) {
			continue
		}
		s.addCourseEvent(cal, occ, names, loc, now)
	}

	filename := fmt.Sprintf("kurse_kw%02d_%d.ics", week, year)
	return []byte(cal.Serialize()), filename, nil
}

func (s *exportService) addCourseEvent(cal *ics.Calendar, occ occurrence, names map[int64]string, loc *time.Location, stamp time.Time) {
	c := occ.Course
	day := weekcalc.DateForWeekday(mustMonday(occ.WeekNumber, occ.Year), weekcalc.Weekday(c.DayOfWeek))
	start, err1 := model.ParseClock(c.StartTime)
	end, err2 := model.ParseClock(c.EndTime)
	if err1 != nil || err2 != nil {
		return
	}

	uid := fmt.Sprintf("course-%d-%d-w%02d@tsv-rot", c.CourseID, occ.Year, occ.WeekNumber)
	evt := cal.AddEvent(uid)
	evt.SetDtStampTime(stamp)
	evt.SetStartAt(atClock(day, start, loc))
	evt.SetEndAt(atClock(day, end, loc))
	evt.SetSummary(c.Name)
	if c.Location != "" {
		evt.SetLocation(c.Location)
	}

	desc := ""
	for i, id := range occ.TrainerIDs {
		if i > 0 {
			desc += ", "
		}
		desc += names[id]
	}
	if desc == "" {
		desc = "Keine Trainer eingeteilt"
	}
	if occ.Cancelled {
		evt.SetStatus(ics.ObjectStatusCancelled)
		desc = fmt.Sprintf("Fällt aus (%s). %s", occ.Reason, desc)
	} else {
		evt.SetStatus(ics.ObjectStatusConfirmed)
	}
	evt.SetDescription(desc)
}

// ── 辅助函数 ──

func mustMonday(week, year int) time.Time {
	m, _ := weekcalc.MondayOf(week, year)
	return m
}

func atClock(day, clock time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
