package note

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ice.edu/helpinghand/internal/authz"
	"ice.edu/helpinghand/internal/entity"
	"ice.edu/helpinghand/internal/modules/note/dto"
	repository "ice.edu/helpinghand/internal/modules/note/repository"
	search "ice.edu/helpinghand/internal/modules/search/service"
	userRepository "ice.edu/helpinghand/internal/modules/user/repository"
	"ice.edu/helpinghand/pkg/apperror"
	commonDto "ice.edu/helpinghand/pkg/dto"
)

type NoteService interface {
	List(ctx context.Context, filter commonDto.ListFilter) (*dto.NoteListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error)
	Create(ctx context.Context, actorID uuid.UUID, req dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	Download(ctx context.Context, id uuid.UUID) (*dto.DownloadResponse, error)
	Like(ctx context.Context, id uuid.UUID) (int, error)
}

type service struct {
	repo     repository.NoteRepository
	userRepo userRepository.UserRepository
	search   search.SearchService
}

func NewNoteService(repo repository.NoteRepository, userRepo userRepository.UserRepository, searchSvc search.SearchService) NoteService {
	return &service{
		repo:     repo,
		userRepo: userRepo,
		search:   searchSvc,
	}
}

func (s *service) List(ctx context.Context, filter commonDto.ListFilter) (*dto.NoteListResponse, error) {
	filter.Normalize()

	notes, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		responses = append(responses, dto.NewNoteResponse(n))
	}

	return &dto.NoteListResponse{
		Notes:      responses,
		Pagination: commonDto.NewPagination(total, filter.Page, filter.Limit),
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error) {
	note, err := s.findNote(ctx, id)
	if err != nil {
		return nil, err
	}

	// Reads of the detail page count as views.
	if err := s.repo.IncrementView(ctx, id); err != nil {
		return nil, err
	}

	resp := dto.NewNoteResponse(note)
	return &resp, nil
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, req dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	var missing []string
	if req.Title == "" {
		missing = append(missing, "title")
	}
	if req.FileURL == "" {
		missing = append(missing, "fileUrl")
	}
	if len(missing) > 0 {
		return nil, apperror.New(http.StatusBadRequest,
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
			apperror.ErrInvalidInput)
	}

	fileType := req.FileType
	if fileType == "" {
		fileType = "PDF"
	}

	note := &entity.Note{
		Title:        req.Title,
		Description:  req.Description,
		Topic:        req.Topic,
		Session:      req.Session,
		Semester:     req.Semester,
		FileURL:      req.FileURL,
		ThumbnailURL: req.ThumbnailURL,
		FileType:     fileType,
		FileSize:     req.FileSize,
		SubjectID:    req.SubjectID,
		TeacherID:    req.TeacherID,
		IsActive:     true,
		UploaderID:   actorID,
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.search.IndexNote(note)

	resp := dto.NewNoteResponse(note)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	// Existence is checked before ownership so a non-owner cannot probe ids.
	note, err := s.findNote(ctx, id)
	if err != nil {
		return nil, err
	}

	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, apperror.ErrUnauthenticated
	}

	if !authz.CanModify(actor, note.UploaderID) {
		return nil, fmt.Errorf("you can only modify your own uploads: %w", apperror.ErrForbidden)
	}

	applyNotePatch(note, req)

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}

	s.search.IndexNote(note)

	resp := dto.NewNoteResponse(note)
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	note, err := s.findNote(ctx, id)
	if err != nil {
		return err
	}

	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return apperror.ErrUnauthenticated
	}

	if !authz.CanModify(actor, note.UploaderID) {
		return fmt.Errorf("you can only delete your own uploads: %w", apperror.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.search.DeleteNote(id.String())
	return nil
}

func (s *service) Download(ctx context.Context, id uuid.UUID) (*dto.DownloadResponse, error) {
	note, err := s.findNote(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementDownload(ctx, id); err != nil {
		return nil, err
	}

	return &dto.DownloadResponse{
		DownloadURL: note.FileURL,
		Title:       note.Title,
	}, nil
}

func (s *service) Like(ctx context.Context, id uuid.UUID) (int, error) {
	if _, err := s.findNote(ctx, id); err != nil {
		return 0, err
	}

	return s.repo.IncrementLike(ctx, id)
}

func (s *service) findNote(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("note not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return note, nil
}

func applyNotePatch(note *entity.Note, req dto.UpdateNoteRequest) {
	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Description != nil {
		note.Description = req.Description
	}
	if req.Topic != nil {
		note.Topic = req.Topic
	}
	if req.Session != nil {
		note.Session = req.Session
	}
	if req.Semester != nil {
		note.Semester = req.Semester
	}
	if req.FileURL != nil {
		note.FileURL = *req.FileURL
	}
	if req.ThumbnailURL != nil {
		note.ThumbnailURL = req.ThumbnailURL
	}
	if req.FileType != nil {
		note.FileType = *req.FileType
	}
	if req.FileSize != nil {
		note.FileSize = req.FileSize
	}
	if req.SubjectID != nil {
		note.SubjectID = req.SubjectID
	}
	if req.TeacherID != nil {
		note.TeacherID = req.TeacherID
	}
	if req.IsActive != nil {
		note.IsActive = *req.IsActive
	}
}
