package notice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
	"ice.edu/helpinghand/internal/authz"
	"ice.edu/helpinghand/internal/entity"
	"ice.edu/helpinghand/internal/modules/notice/dto"
	repository "ice.edu/helpinghand/internal/modules/notice/repository"
	userRepository "ice.edu/helpinghand/internal/modules/user/repository"
	"ice.edu/helpinghand/pkg/apperror"
)

type NoticeService interface {
	List(ctx context.Context, limit int) ([]dto.NoticeResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.NoticeResponse, error)
	Create(ctx context.Context, actorID uuid.UUID, req dto.CreateNoticeRequest) (*dto.NoticeResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateNoticeRequest) (*dto.NoticeResponse, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type service struct {
	repo      repository.NoticeRepository
	userRepo  userRepository.UserRepository
	sanitizer *bluemonday.Policy
}

func NewNoticeService(repo repository.NoticeRepository, userRepo userRepository.UserRepository) NoticeService {
	return &service{
		repo:     repo,
		userRepo: userRepo,
		// Notice bodies come from a rich-text editor, so keep UGC-safe markup
		// and strip everything else.
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (s *service) List(ctx context.Context, limit int) ([]dto.NoticeResponse, error) {
	if limit <= 0 {
		limit = 10
	}

	notices, err := s.repo.FindAll(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NoticeResponse, 0, len(notices))
	for _, n := range notices {
		responses = append(responses, dto.NewNoticeResponse(n))
	}
	return responses, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*dto.NoticeResponse, error) {
	notice, err := s.findNotice(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewNoticeResponse(notice)
	return &resp, nil
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, req dto.CreateNoticeRequest) (*dto.NoticeResponse, error) {
	var missing []string
	if req.Title == "" {
		missing = append(missing, "title")
	}
	if req.Content == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return nil, apperror.New(http.StatusBadRequest,
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
			apperror.ErrInvalidInput)
	}

	priority := normalizePriority(req.Priority)

	notice := &entity.Notice{
		Title:     req.Title,
		Content:   s.sanitizer.Sanitize(req.Content),
		ImageURL:  req.ImageURL,
		Priority:  priority,
		ExpireAt:  req.ExpireAt,
		IsActive:  true,
		CreatorID: actorID,
	}

	if err := s.repo.Create(ctx, notice); err != nil {
		return nil, err
	}

	resp := dto.NewNoticeResponse(notice)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateNoticeRequest) (*dto.NoticeResponse, error) {
	// Existence is checked before ownership so a non-owner cannot probe ids.
	notice, err := s.findNotice(ctx, id)
	if err != nil {
		return nil, err
	}

	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, apperror.ErrUnauthenticated
	}

	if !authz.CanModify(actor, notice.CreatorID) {
		return nil, fmt.Errorf("you can only modify your own notices: %w", apperror.ErrForbidden)
	}

	if req.Title != nil {
		notice.Title = *req.Title
	}
	if req.Content != nil {
		notice.Content = s.sanitizer.Sanitize(*req.Content)
	}
	if req.ImageURL != nil {
		notice.ImageURL = req.ImageURL
	}
	if req.Priority != nil {
		notice.Priority = normalizePriority(*req.Priority)
	}
	if req.ExpireAt != nil {
		notice.ExpireAt = req.ExpireAt
	}
	if req.IsActive != nil {
		notice.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, notice); err != nil {
		return nil, err
	}

	resp := dto.NewNoticeResponse(notice)
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	notice, err := s.findNotice(ctx, id)
	if err != nil {
		return err
	}

	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return apperror.ErrUnauthenticated
	}

	if !authz.CanModify(actor, notice.CreatorID) {
		return fmt.Errorf("you can only delete your own notices: %w", apperror.ErrForbidden)
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) findNotice(ctx context.Context, id uuid.UUID) (*entity.Notice, error) {
	notice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("notice not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return notice, nil
}

func normalizePriority(p string) string {
	switch strings.ToUpper(p) {
	case entity.PriorityHigh:
		return entity.PriorityHigh
	case entity.PriorityLow:
		return entity.PriorityLow
	default:
		return entity.PriorityNormal
	}
}
