package service

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	ics "github.com/arran4/golang-ical"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/pkg/weekcalc"
)

// ── 假期日历 (ICS) 解析 ─────────────────────────────────────
//
// 职责：把学校假期日历 (RFC 5545) 转为需要标记的 ISO 假期周。
//
//   - 全天事件 DTSTART;VALUE=DATE，DTEND 为不含的结束日；缺 DTEND 时视为单日
//   - 一周内至少 holidayMinWeekdays 个工作日（周一至周五）落在假期内，才标记整周
//   - 同一周被多个事件覆盖时，取首个事件的 SUMMARY 作为名称
// ─────────────────────────────────────────────────────────────

const (
	icsMaxFileSize     = 2 * 1024 * 1024 // 2MB
	icsFetchTimeout    = 30 * time.Second
	holidayMinWeekdays = 3
	holidayLabelMaxLen = 100 // 字符数，对应 holiday_weeks.label varchar(100)
)

var ErrInvalidICS = errors.New("无效的 ICS 日历")

// holidayRange 一段假期，End 不含
type holidayRange struct {
	Label string
	Start time.Time
	End   time.Time
}

// holidayWeekCandidate 待写入的假期周
type holidayWeekCandidate struct {
	WeekNumber int
	Year       int
	Label      string
}

// FetchICSContent 从 URL 获取 ICS 内容
func FetchICSContent(rawURL string) (io.ReadCloser, error) {
	// webcal:// → https://
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	client := &http.Client{Timeout: icsFetchTimeout}
	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("获取 ICS 失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("获取 ICS 失败: HTTP %d", resp.StatusCode)
	}
	// 限制响应体大小，防止恶意 URL 返回超大内容导致 OOM
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		Closer: resp.Body,
	}, nil
}

// parseHolidayICS 解析日历中的全部假期区间；无法解析的事件计入 skipped
func parseHolidayICS(reader io.Reader) (ranges []holidayRange, skipped int, err error) {
	cal, err := ics.ParseCalendar(io.LimitReader(reader, icsMaxFileSize))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidICS, err)
	}

	for _, evt := range cal.Events() {
		r, ok := parseHolidayEvent(evt)
		if !ok {
			skipped++
			continue
		}
		ranges = append(ranges, r)
	}
	return ranges, skipped, nil
}

func parseHolidayEvent(evt *ics.VEvent) (holidayRange, bool) {
	label := ""
	if summary := evt.GetProperty(ics.ComponentPropertySummary); summary != nil {
		label = strings.TrimSpace(summary.Value)
	}

	start, err := parseICSDate(evt, ics.ComponentPropertyDtStart)
	if err != nil {
		return holidayRange{}, false
	}
	end, err := parseICSDate(evt, ics.ComponentPropertyDtEnd)
	if err != nil {
		end = start.AddDate(0, 0, 1)
	}
	if !end.After(start) {
		return holidayRange{}, false
	}

	return holidayRange{Label: truncateRunes(label, holidayLabelMaxLen), Start: start, End: end}, true
}

// truncateRunes 按字符截断，不会切开多字节 UTF-8 字符
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// holidayWeeks 将假期区间折算为 ISO 周，按 (年, 周) 排序
func holidayWeeks(ranges []holidayRange) []holidayWeekCandidate {
	type key struct{ week, year int }
	covered := make(map[key]int)
	labels := make(map[key]string)
	seen := make(map[time.Time]struct{}) // 重叠区间不重复计数

	for _, r := range ranges {
		for d := r.Start; d.Before(r.End); d = d.AddDate(0, 0, 1) {
			if weekcalc.WeekdayOf(d) > weekcalc.Friday {
				continue
			}
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			w, y := weekcalc.WeekOf(d)
			k := key{w, y}
			covered[k]++
			if _, ok := labels[k]; !ok {
				labels[k] = r.Label
			}
		}
	}

	out := make([]holidayWeekCandidate, 0, len(covered))
	for k, n := range covered {
		if n < holidayMinWeekdays {
			continue
		}
		out = append(out, holidayWeekCandidate{WeekNumber: k.week, Year: k.year, Label: labels[k]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].WeekNumber < out[j].WeekNumber
	})
	return out
}

// parseICSDate 读取日期属性并截断为日历日期
func parseICSDate(evt *ics.VEvent, propName ics.ComponentProperty) (time.Time, error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, fmt.Errorf("missing property %s", propName)
	}
	val := strings.TrimSpace(prop.Value)

	formats := []string{
		"20060102",
		"20060102T150405Z",
		"20060102T150405",
	}
	for _, layout := range formats {
		if t, err := time.Parse(layout, val); err == nil {
			return weekcalc.DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析日期: %s", val)
}
