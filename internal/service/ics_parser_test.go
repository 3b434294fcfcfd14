package service

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestHolidayWeeks(t *testing.T) {
	tests := []struct {
		name   string
		ranges []holidayRange
		want   []holidayWeekCandidate
	}{
		{
			name:   "整周假期",
			ranges: []holidayRange{{Label: "Pfingstferien", Start: day(2025, 6, 10), End: day(2025, 6, 21)}},
			// 10.06.(周二) 起：第 24 周 4 个工作日，第 25 周 5 个
			want: []holidayWeekCandidate{{24, 2025, "Pfingstferien"}, {25, 2025, "Pfingstferien"}},
		},
		{
			name:   "周末不计入",
			ranges: []holidayRange{{Label: "Wochenende", Start: day(2025, 6, 12), End: day(2025, 6, 17)}},
			// 周四、周五 + 下周一 → 两周各不足三天
			want: nil,
		},
		{
			name: "重叠区间不重复计数",
			ranges: []holidayRange{
				{Label: "A", Start: day(2025, 3, 3), End: day(2025, 3, 5)},
				{Label: "B", Start: day(2025, 3, 3), End: day(2025, 3, 5)},
			},
			want: nil,
		},
		{
			name:   "跨年",
			ranges: []holidayRange{{Label: "Weihnachtsferien", Start: day(2025, 12, 22), End: day(2026, 1, 7)}},
			want: []holidayWeekCandidate{
				{52, 2025, "Weihnachtsferien"},
				{1, 2026, "Weihnachtsferien"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := holidayWeeks(tt.ranges)
			if len(got) != len(tt.want) {
				t.Fatalf("期望 %d 周，实际=%+v", len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("第 %d 项期望 %+v，实际 %+v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestParseHolidayICS_Invalid(t *testing.T) {
	_, _, err := parseHolidayICS(strings.NewReader("kein kalender"))
	if !errors.Is(err, ErrInvalidICS) {
		t.Errorf("非 ICS 内容期望 ErrInvalidICS，实际=%v", err)
	}
}

// 超长名称按字符截断，截断点落在变音字母上时仍是合法 UTF-8
func TestParseHolidayICS_LongLabel(t *testing.T) {
	label := "O" + strings.Repeat("ä", 120)
	cal := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Schulferien//DE",
		"BEGIN:VEVENT",
		"UID:osterferien-2025",
		"DTSTART;VALUE=DATE:20250414",
		"DTEND;VALUE=DATE:20250426",
		"SUMMARY:" + label,
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	ranges, skipped, err := parseHolidayICS(strings.NewReader(cal))
	if err != nil {
		t.Fatalf("解析应成功: %v", err)
	}
	if skipped != 0 || len(ranges) != 1 {
		t.Fatalf("期望 1 个区间，实际 %d 个，跳过 %d", len(ranges), skipped)
	}
	got := ranges[0].Label
	if !utf8.ValidString(got) {
		t.Errorf("截断后的名称不是合法 UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != holidayLabelMaxLen {
		t.Errorf("期望 %d 个字符，实际 %d", holidayLabelMaxLen, n)
	}
	if !strings.HasPrefix(label, got) {
		t.Errorf("截断结果应是原名称的前缀: %q", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Herbstferien", 100, "Herbstferien"},
		{"Größe", 3, "Grö"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := truncateRunes(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q，期望 %q", tt.in, tt.n, got, tt.want)
		}
	}
}
