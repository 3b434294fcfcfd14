package model

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ── PostgreSQL BIGINT[] 自定义类型 ──

// IDSet 对应 PostgreSQL BIGINT[]，语义为无序去重的 ID 集合。
// 写入前统一排序去重，读出后保持有序，便于比较。
type IDSet []int64

// NewIDSet 去重并排序
func NewIDSet(ids ...int64) IDSet {
	seen := make(map[int64]struct{}, len(ids))
	out := make(IDSet, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Contains 是否包含 id
func (s IDSet) Contains(id int64) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Without 返回去掉 id 后的新集合
func (s IDSet) Without(id int64) IDSet {
	out := make(IDSet, 0, len(s))
	for _, v := range s {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Scan 将 PostgreSQL 返回的 {1,2,3} 文本解析为集合。
func (s *IDSet) Scan(src interface{}) error {
	if src == nil {
		*s = IDSet{}
		return nil
	}
	var raw string
	switch v := src.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("IDSet.Scan: unsupported type %T", src)
	}
	raw = strings.Trim(raw, "{}")
	if raw == "" {
		*s = IDSet{}
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return fmt.Errorf("IDSet.Scan: invalid element %q: %w", p, err)
		}
		ids = append(ids, n)
	}
	*s = NewIDSet(ids...)
	return nil
}

// Value 将集合序列化为 PostgreSQL {1,2,3} 文本（空集合为 {}）。
func (s IDSet) Value() (driver.Value, error) {
	norm := NewIDSet(s...)
	parts := make([]string, len(norm))
	for i, n := range norm {
		parts[i] = strconv.FormatInt(n, 10)
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// BaseModel 通用时间戳字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// 可见性 / 备注类型
const (
	VisibilityInternal = "internal"
	VisibilityPublic   = "public"
)
