package sociallink

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ice.edu/helpinghand/internal/entity"
)

type SocialLinkRepository interface {
	Create(ctx context.Context, link *entity.SocialLink) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SocialLink, error)
	FindAllActive(ctx context.Context) ([]*entity.SocialLink, error)
	Update(ctx context.Context, link *entity.SocialLink) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewSocialLinkRepository(db *gorm.DB) SocialLinkRepository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, link *entity.SocialLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SocialLink, error) {
	var link entity.SocialLink
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *repository) FindAllActive(ctx context.Context) ([]*entity.SocialLink, error) {
	var links []*entity.SocialLink
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repository) Update(ctx context.Context, link *entity.SocialLink) error {
	return r.db.WithContext(ctx).Save(link).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.SocialLink{}, "id = ?", id).Error
}
