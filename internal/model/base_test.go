package model

import "testing"

func TestIDSet_ScanValue(t *testing.T) {
	var s IDSet
	if err := s.Scan([]byte("{3,1,3,2}")); err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	if len(s) != 3 || s[0] != 1 || s[2] != 3 {
		t.Errorf("期望去重排序后为 [1 2 3]，实际=%v", s)
	}

	v, err := s.Value()
	if err != nil {
		t.Fatalf("Value 应成功: %v", err)
	}
	if v != "{1,2,3}" {
		t.Errorf("期望 {1,2,3}，实际=%v", v)
	}

	var empty IDSet
	if err := empty.Scan("{}"); err != nil || len(empty) != 0 {
		t.Errorf("空数组解析失败: %v %v", empty, err)
	}
	if v, _ := IDSet(nil).Value(); v != "{}" {
		t.Errorf("nil 集合应序列化为 {}，实际=%v", v)
	}
}

func TestIDSet_ScanInvalid(t *testing.T) {
	var s IDSet
	if err := s.Scan("{1,x}"); err == nil {
		t.Error("非法元素应返回错误")
	}
	if err := s.Scan(42); err == nil {
		t.Error("不支持的类型应返回错误")
	}
}

func TestIDSet_Helpers(t *testing.T) {
	s := NewIDSet(2, 1)
	if !s.Contains(2) || s.Contains(5) {
		t.Error("Contains 结果错误")
	}
	if w := s.Without(1); len(w) != 1 || w[0] != 2 {
		t.Errorf("Without 结果错误: %v", w)
	}
}

func TestCourse_DurationHours(t *testing.T) {
	c := &Course{StartTime: "18:00:00", EndTime: "19:30"}
	if h := c.DurationHours(); h != 1.5 {
		t.Errorf("期望 1.5 小时，实际=%v", h)
	}
	bad := &Course{StartTime: "19:00", EndTime: "18:00"}
	if h := bad.DurationHours(); h != 0 {
		t.Errorf("结束早于开始应返回 0，实际=%v", h)
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock("07:05:00"); got != "07:05" {
		t.Errorf("期望 07:05，实际=%s", got)
	}
}

func TestTrainer_FullName(t *testing.T) {
	tr := &Trainer{FirstName: "Anna", LastName: "Berger", Status: TrainerStatusActive}
	if tr.FullName() != "Anna Berger" || !tr.IsActive() {
		t.Error("FullName/IsActive 结果错误")
	}
}
