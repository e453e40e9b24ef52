package note

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ice.edu/helpinghand/internal/entity"
	commonDto "ice.edu/helpinghand/pkg/dto"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error)
	FindAll(ctx context.Context, filter commonDto.ListFilter) ([]*entity.Note, int64, error)
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementView(ctx context.Context, id uuid.UUID) error
	IncrementDownload(ctx context.Context, id uuid.UUID) error
	IncrementLike(ctx context.Context, id uuid.UUID) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, note *entity.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	var note entity.Note
	if err := r.db.WithContext(ctx).
		Preload("Uploader").
		Preload("Teacher").
		Preload("Subject").
		Where("id = ?", id).
		First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *repository) FindAll(ctx context.Context, filter commonDto.ListFilter) ([]*entity.Note, int64, error) {
	var notes []*entity.Note
	var total int64

	query := r.db.WithContext(ctx).
		Preload("Uploader").
		Preload("Teacher").
		Preload("Subject").
		Where("is_active = ?", true)

	if filter.Session != "" {
		query = query.Where("session = ?", filter.Session)
	}
	if filter.Semester != "" {
		query = query.Where("semester = ?", filter.Semester)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR topic LIKE ? OR description LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Model(&entity.Note{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&notes).Error; err != nil {
		return nil, 0, err
	}

	return notes, total, nil
}

// Update writes the edited row but never the counter columns: those only move
// via the increment statements below, so a stale snapshot cannot roll back
// likes, views or downloads that landed since the read.
func (r *repository) Update(ctx context.Context, note *entity.Note) error {
	return r.db.WithContext(ctx).
		Omit("view_count", "download_count", "like_count", "created_at", "uploader_id").
		Save(note).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Note{}, "id = ?", id).Error
}

func (r *repository) IncrementView(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Note{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *repository) IncrementDownload(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Note{}).
		Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + ?", 1)).Error
}

func (r *repository) IncrementLike(ctx context.Context, id uuid.UUID) (int, error) {
	if err := r.db.WithContext(ctx).Model(&entity.Note{}).
		Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error; err != nil {
		return 0, err
	}

	var count int
	if err := r.db.WithContext(ctx).Model(&entity.Note{}).
		Select("like_count").
		Where("id = ?", id).
		Scan(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
