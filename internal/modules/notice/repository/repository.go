package notice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ice.edu/helpinghand/internal/entity"
)

type NoticeRepository interface {
	Create(ctx context.Context, notice *entity.Notice) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notice, error)
	FindAll(ctx context.Context, limit int) ([]*entity.Notice, error)
	Update(ctx context.Context, notice *entity.Notice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) NoticeRepository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, notice *entity.Notice) error {
	return r.db.WithContext(ctx).Create(notice).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notice, error) {
	var notice entity.Notice
	if err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("id = ?", id).
		First(&notice).Error; err != nil {
		return nil, err
	}
	return &notice, nil
}

// FindAll returns active, unexpired notices. High priority first, then newest.
func (r *repository) FindAll(ctx context.Context, limit int) ([]*entity.Notice, error) {
	var notices []*entity.Notice
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("is_active = ?", true).
		Where("expire_at IS NULL OR expire_at > ?", time.Now()).
		Order("CASE priority WHEN 'HIGH' THEN 3 WHEN 'NORMAL' THEN 2 ELSE 1 END DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&notices).Error
	if err != nil {
		return nil, err
	}
	return notices, nil
}

func (r *repository) Update(ctx context.Context, notice *entity.Notice) error {
	return r.db.WithContext(ctx).Save(notice).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Notice{}, "id = ?", id).Error
}
