// Package weekcalc 周次计算：日期 ↔ ISO-8601 周次/年份。
//
// 所有按周分桶的数据（周覆盖分配、取消、假期周、特殊活动）都必须经由本包计算周次，
// 以保证跨年边界（如 12 月 31 日属于次年第 1 周）在各处一致。
//
// 规则：周一为一周第一天；包含当年第一个周四的那一周为第 1 周。
// 计算前一律截断为日历日期（忽略时刻与时区偏移）。
package weekcalc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout API 中统一使用的日期格式
const DateLayout = "2006-01-02"

var (
	ErrInvalidWeekday = errors.New("无效的星期")
	ErrInvalidWeek    = errors.New("无效的周次")
)

// Weekday 星期，1=周一 … 7=周日
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayKeys = [...]string{"", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var weekdayGerman = [...]string{"", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag", "Sonntag"}

// 接受英文、德文全称与常用缩写
var weekdayAliases = map[string]Weekday{
	"monday": Monday, "mon": Monday, "mo": Monday, "montag": Monday,
	"tuesday": Tuesday, "tue": Tuesday, "tues": Tuesday, "tu": Tuesday, "di": Tuesday, "dienstag": Tuesday,
	"wednesday": Wednesday, "wed": Wednesday, "we": Wednesday, "mi": Wednesday, "mittwoch": Wednesday,
	"thursday": Thursday, "thu": Thursday, "thur": Thursday, "th": Thursday, "do": Thursday, "donnerstag": Thursday,
	"friday": Friday, "fri": Friday, "fr": Friday, "freitag": Friday,
	"saturday": Saturday, "sat": Saturday, "sa": Saturday, "samstag": Saturday, "sonnabend": Saturday,
	"sunday": Sunday, "sun": Sunday, "su": Sunday, "so": Sunday, "sonntag": Sunday,
}

// Valid 是否为 1..7
func (d Weekday) Valid() bool { return d >= Monday && d <= Sunday }

// Key 规范化英文小写名称（存储与 JSON 使用）
func (d Weekday) Key() string {
	if !d.Valid() {
		return ""
	}
	return weekdayKeys[d]
}

// GermanName 德文名称（导出表头使用）
func (d Weekday) GermanName() string {
	if !d.Valid() {
		return ""
	}
	return weekdayGerman[d]
}

func (d Weekday) String() string { return d.Key() }

// ParseWeekday 解析星期名称或数字（1=周一）
func ParseWeekday(s string) (Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.TrimSuffix(key, ".")
	if d, ok := weekdayAliases[key]; ok {
		return d, nil
	}
	if n, err := strconv.Atoi(key); err == nil && Weekday(n).Valid() {
		return Weekday(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// DateOnly 截断为日历日期（UTC 零点），保留原值所在时区的年月日
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate 解析 YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// WeekOf 返回日期所在的 ISO 周次与周所属年份
func WeekOf(t time.Time) (week, year int) {
	year, week = DateOnly(t).ISOWeek()
	return week, year
}

// WeekdayOf 返回日期的星期（周一为 1）
func WeekdayOf(t time.Time) Weekday {
	wd := DateOnly(t).Weekday()
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

// DateForWeekday 返回与 anchor 同一周内指定星期的日期
func DateForWeekday(anchor time.Time, day Weekday) time.Time {
	d := DateOnly(anchor)
	return d.AddDate(0, 0, int(day)-int(WeekdayOf(d)))
}

// WeeksInYear 返回该 ISO 年的周数（52 或 53）
func WeeksInYear(year int) int {
	// 12 月 28 日总在当年最后一个 ISO 周内
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// ValidWeek 校验周次是否存在于该年
func ValidWeek(week, year int) error {
	if year < 1 || year > 9999 {
		return fmt.Errorf("%w: 年份 %d 超出范围", ErrInvalidWeek, year)
	}
	if week < 1 || week > WeeksInYear(year) {
		return fmt.Errorf("%w: %d 年没有第 %d 周", ErrInvalidWeek, year, week)
	}
	return nil
}

// MondayOf 返回指定 ISO 周的周一
func MondayOf(week, year int) (time.Time, error) {
	if err := ValidWeek(week, year); err != nil {
		return time.Time{}, err
	}
	// 1 月 4 日总在第 1 周内
	first := DateForWeekday(time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC), Monday)
	return first.AddDate(0, 0, (week-1)*7), nil
}

// Day 一周中的某一天
type Day struct {
	Weekday Weekday
	Date    time.Time
}

// DaysOf 返回 anchor 所在周的七天（周一至周日）
func DaysOf(anchor time.Time) []Day {
	monday := DateForWeekday(anchor, Monday)
	days := make([]Day, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, Day{Weekday: Monday + Weekday(i), Date: monday.AddDate(0, 0, i)})
	}
	return days
}
