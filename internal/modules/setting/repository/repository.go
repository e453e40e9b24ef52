package setting

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"ice.edu/helpinghand/internal/entity"
)

type SettingRepository interface {
	FindAll(ctx context.Context) ([]*entity.SiteSetting, error)
	Upsert(ctx context.Context, settings []*entity.SiteSetting) error
}

type repository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]*entity.SiteSetting, error) {
	var settings []*entity.SiteSetting
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// Upsert writes each row keyed by Key, updating value on conflict.
func (r *repository) Upsert(ctx context.Context, settings []*entity.SiteSetting) error {
	if len(settings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&settings).Error
}
