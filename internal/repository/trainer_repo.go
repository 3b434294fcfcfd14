package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sissyhaegele/TSVRotTrainerApp-sub000/internal/model"
)

// TrainerRepository 教练数据访问接口
type TrainerRepository interface {
	Create(ctx context.Context, trainer *model.Trainer) error
	GetByID(ctx context.Context, id int64) (*model.Trainer, error)
	List(ctx context.Context, includeInactive bool) ([]model.Trainer, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Trainer, error)
	Update(ctx context.Context, trainer *model.Trainer) error
	SetStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

type trainerRepo struct {
	db *gorm.DB
}

// NewTrainerRepo 创建 TrainerRepository 实例
func NewTrainerRepo(db *gorm.DB) TrainerRepository {
	return &trainerRepo{db: db}
}

func (r *trainerRepo) Create(ctx context.Context, trainer *model.Trainer) error {
	return r.db.WithContext(ctx).Create(trainer).Error
}

func (r *trainerRepo) GetByID(ctx context.Context, id int64) (*model.Trainer, error) {
	var trainer model.Trainer
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", id).
		First(&trainer).Error
	if err != nil {
		return nil, err
	}
	return &trainer, nil
}

func (r *trainerRepo) List(ctx context.Context, includeInactive bool) ([]model.Trainer, error) {
	var trainers []model.Trainer
	db := r.db.WithContext(ctx)
	if !includeInactive {
		db = db.Where("status = ?", model.TrainerStatusActive)
	}
	err := db.Order("last_name ASC, first_name ASC").Find(&trainers).Error
	return trainers, err
}

func (r *trainerRepo) ListByIDs(ctx context.Context, ids []int64) ([]model.Trainer, error) {
	var trainers []model.Trainer
	if len(ids) == 0 {
		return trainers, nil
	}
	err := r.db.WithContext(ctx).
		Where("trainer_id IN ?", ids).
		Find(&trainers).Error
	return trainers, err
}

func (r *trainerRepo) Update(ctx context.Context, trainer *model.Trainer) error {
	return r.db.WithContext(ctx).Save(trainer).Error
}

func (r *trainerRepo) SetStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Trainer{}).
		Where("trainer_id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

// Delete 物理删除；周分配明细与特殊活动行由外键级联删除
func (r *trainerRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("trainer_id = ?", id).
		Delete(&model.Trainer{}).Error
}
