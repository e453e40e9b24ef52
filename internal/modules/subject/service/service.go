package subject

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ice.edu/helpinghand/internal/entity"
	repository "ice.edu/helpinghand/internal/modules/subject/repository"
	"ice.edu/helpinghand/pkg/apperror"
)

type CreateSubjectRequest struct {
	Name string  `json:"name"`
	Code *string `json:"code"`
}

type SubjectService interface {
	List(ctx context.Context) ([]*entity.Subject, error)
	Create(ctx context.Context, req CreateSubjectRequest) (*entity.Subject, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository.SubjectRepository
}

func NewSubjectService(repo repository.SubjectRepository) SubjectService {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*entity.Subject, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) Create(ctx context.Context, req CreateSubjectRequest) (*entity.Subject, error) {
	if req.Name == "" {
		return nil, apperror.New(http.StatusBadRequest, "missing required fields: name", apperror.ErrInvalidInput)
	}

	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return nil, apperror.New(http.StatusBadRequest, "subject already exists", apperror.ErrInvalidInput)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subject := &entity.Subject{
		Name: req.Name,
		Code: req.Code,
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("subject not found: %w", apperror.ErrNotFound)
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
