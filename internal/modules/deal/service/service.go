package deal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ice.edu/helpinghand/internal/entity"
	"ice.edu/helpinghand/internal/modules/deal/dto"
	repository "ice.edu/helpinghand/internal/modules/deal/repository"
	"ice.edu/helpinghand/pkg/apperror"
)

// DealService manages the student deal catalog. Route-level middleware
// restricts all writes to admins, so there are no per-record ownership checks.
type DealService interface {
	List(ctx context.Context) ([]*entity.StudentDeal, error)
	Create(ctx context.Context, req dto.CreateDealRequest) (*entity.StudentDeal, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateDealRequest) (*entity.StudentDeal, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository.DealRepository
}

func NewDealService(repo repository.DealRepository) DealService {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*entity.StudentDeal, error) {
	return s.repo.FindAllActive(ctx)
}

func (s *service) Create(ctx context.Context, req dto.CreateDealRequest) (*entity.StudentDeal, error) {
	var missing []string
	if req.Title == "" {
		missing = append(missing, "title")
	}
	if req.AffiliateURL == "" {
		missing = append(missing, "affiliateUrl")
	}
	if len(missing) > 0 {
		return nil, apperror.New(http.StatusBadRequest,
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
			apperror.ErrInvalidInput)
	}

	deal := &entity.StudentDeal{
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		AffiliateURL:  req.AffiliateURL,
		OriginalPrice: req.OriginalPrice,
		DealPrice:     req.DealPrice,
		Discount:      req.Discount,
		Category:      req.Category,
		ExpiresAt:     req.ExpiresAt,
		IsActive:      true,
	}

	if err := s.repo.Create(ctx, deal); err != nil {
		return nil, err
	}
	return deal, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req dto.UpdateDealRequest) (*entity.StudentDeal, error) {
	deal, err := s.findDeal(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		deal.Title = *req.Title
	}
	if req.Description != nil {
		deal.Description = req.Description
	}
	if req.ImageURL != nil {
		deal.ImageURL = req.ImageURL
	}
	if req.AffiliateURL != nil {
		deal.AffiliateURL = *req.AffiliateURL
	}
	if req.OriginalPrice != nil {
		deal.OriginalPrice = req.OriginalPrice
	}
	if req.DealPrice != nil {
		deal.DealPrice = req.DealPrice
	}
	if req.Discount != nil {
		deal.Discount = req.Discount
	}
	if req.Category != nil {
		deal.Category = req.Category
	}
	if req.ExpiresAt != nil {
		deal.ExpiresAt = req.ExpiresAt
	}
	if req.IsActive != nil {
		deal.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, deal); err != nil {
		return nil, err
	}
	return deal, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findDeal(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) findDeal(ctx context.Context, id uuid.UUID) (*entity.StudentDeal, error) {
	deal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("deal not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return deal, nil
}
