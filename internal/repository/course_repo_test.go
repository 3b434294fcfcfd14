package repository_test

import (
	"context"
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/repository"
)

// dryRunDB 只生成 SQL、不连接数据库
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=postgres dbname=tsv_trainer_dryrun sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("初始化 DryRun 连接失败: %v", err)
	}
	return db
}

func inactiveCourse() *model.Course {
	return &model.Course{
		Name:             "Seniorengymnastik",
		DayOfWeek:        3,
		StartTime:        "10:00",
		EndTime:          "11:00",
		RequiredTrainers: 1,
		IsActive:         false,
	}
}

func TestCourseRepo_CreateKeepsInactiveFlag(t *testing.T) {
	db := dryRunDB(t)
	repo := repository.NewRepository(db)

	course := inactiveCourse()
	if err := repo.Course.Create(context.Background(), course); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if course.IsActive {
		t.Error("写入时不应把 is_active=false 替换为默认值")
	}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Create(inactiveCourse())
	})
	if !strings.Contains(sql, `"is_active"`) {
		t.Fatalf("INSERT 应显式包含 is_active 列: %s", sql)
	}
	if !strings.Contains(sql, "false") {
		t.Errorf("INSERT 应写入 false: %s", sql)
	}
}
