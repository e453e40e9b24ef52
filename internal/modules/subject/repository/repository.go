package subject

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ice.edu/helpinghand/internal/entity"
)

type SubjectRepository interface {
	Create(ctx context.Context, subject *entity.Subject) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Subject, error)
	FindByName(ctx context.Context, name string) (*entity.Subject, error)
	FindAll(ctx context.Context) ([]*entity.Subject, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, subject *entity.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Subject, error) {
	var subject entity.Subject
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*entity.Subject, error) {
	var subject entity.Subject
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *repository) FindAll(ctx context.Context) ([]*entity.Subject, error) {
	var subjects []*entity.Subject
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Subject{}, "id = ?", id).Error
}
