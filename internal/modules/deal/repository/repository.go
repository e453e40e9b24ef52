package deal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ice.edu/helpinghand/internal/entity"
)

type DealRepository interface {
	Create(ctx context.Context, deal *entity.StudentDeal) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.StudentDeal, error)
	FindAllActive(ctx context.Context) ([]*entity.StudentDeal, error)
	Update(ctx context.Context, deal *entity.StudentDeal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) DealRepository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, deal *entity.StudentDeal) error {
	return r.db.WithContext(ctx).Create(deal).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*entity.StudentDeal, error) {
	var deal entity.StudentDeal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&deal).Error; err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *repository) FindAllActive(ctx context.Context) ([]*entity.StudentDeal, error) {
	var deals []*entity.StudentDeal
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Order("created_at DESC").
		Find(&deals).Error
	if err != nil {
		return nil, err
	}
	return deals, nil
}

func (r *repository) Update(ctx context.Context, deal *entity.StudentDeal) error {
	return r.db.WithContext(ctx).Save(deal).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.StudentDeal{}, "id = ?", id).Error
}
