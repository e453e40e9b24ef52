package sociallink

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ice.edu/helpinghand/internal/entity"
	"ice.edu/helpinghand/internal/modules/sociallink/dto"
	repository "ice.edu/helpinghand/internal/modules/sociallink/repository"
	"ice.edu/helpinghand/pkg/apperror"
)

// SocialLinkService manages footer social links. Writes are admin-only via
// route middleware.
type SocialLinkService interface {
	List(ctx context.Context) ([]*entity.SocialLink, error)
	Create(ctx context.Context, req dto.CreateSocialLinkRequest) (*entity.SocialLink, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSocialLinkRequest) (*entity.SocialLink, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository.SocialLinkRepository
}

func NewSocialLinkService(repo repository.SocialLinkRepository) SocialLinkService {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*entity.SocialLink, error) {
	return s.repo.FindAllActive(ctx)
}

func (s *service) Create(ctx context.Context, req dto.CreateSocialLinkRequest) (*entity.SocialLink, error) {
	var missing []string
	if req.Platform == "" {
		missing = append(missing, "platform")
	}
	if req.URL == "" {
		missing = append(missing, "url")
	}
	if len(missing) > 0 {
		return nil, apperror.New(http.StatusBadRequest,
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
			apperror.ErrInvalidInput)
	}

	link := &entity.SocialLink{
		Platform: req.Platform,
		URL:      req.URL,
		Icon:     req.Icon,
		IsActive: true,
	}
	if req.Order != nil {
		link.Order = *req.Order
	}

	if err := s.repo.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSocialLinkRequest) (*entity.SocialLink, error) {
	link, err := s.findLink(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Platform != nil {
		link.Platform = *req.Platform
	}
	if req.URL != nil {
		link.URL = *req.URL
	}
	if req.Icon != nil {
		link.Icon = req.Icon
	}
	if req.Order != nil {
		link.Order = *req.Order
	}
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findLink(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) findLink(ctx context.Context, id uuid.UUID) (*entity.SocialLink, error) {
	link, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("social link not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return link, nil
}
