package book

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
	"ice.edu/helpinghand/internal/modules/book/dto"
	repository "ice.edu/helpinghand/internal/modules/book/repository"
	search "ice.edu/helpinghand/internal/modules/search/service"
	userRepository "ice.edu/helpinghand/internal/modules/user/repository"
	"ice.edu/helpinghand/pkg/apperror"
	commonDto "ice.edu/helpinghand/pkg/dto"
)

type BookService interface {
	List(ctx context.Context, filter commonDto.ListFilter) (*dto.BookListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.BookResponse, error)
	Create(ctx context.Context, actorID uuid.UUID, req dto.CreateBookRequest) (*dto.BookResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateBookRequest) (*dto.BookResponse, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	Download(ctx context.Context, id uuid.UUID) (*dto.DownloadResponse, error)
	Like(ctx context.Context, id uuid.UUID) (int, error)
}

type service struct {
	repo     repository.BookRepository
	userRepo userRepository.UserRepository
	search   search.SearchService
}

func NewBookService(repo repository.BookRepository, userRepo userRepository.UserRepository, searchSvc search.SearchService) BookService {
	return &service{
		repo:     repo,
		userRepo: userRepo,
		search:   searchSvc,
	}
}

func (s *service) List(ctx context.Context, filter commonDto.ListFilter) (*dto.BookListResponse, error) {
	filter.Normalize()

	books, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.BookResponse, 0, len(books))
	for _, b := range books {
		responses = append(responses, dto.NewBookResponse(b))
	}

	return &dto.BookListResponse{
		Books:      responses,
		Pagination: commonDto.NewPagination(total, filter.Page, filter.Limit),
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*dto.BookResponse, error) {
	book, err := s.findBook(ctx, id)
	if err != nil {
		return nil, err
	}

	// Reads of the detail page count as views.
	if err := s.repo.IncrementView(ctx, id); err != nil {
		return nil, err
	}

	resp := dto.NewBookResponse(book)
	return &resp, nil
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, req dto.CreateBookRequest) (*dto.BookResponse, error) {
	var missing []string
	if req.Title == "" {
		missing = append(missing, "title")
	}
	if req.WriterName == "" {
		missing = append(missing, "writerName")
	}
	if req.FileURL == "" {
		missing = append(missing, "fileUrl")
	}
	if len(missing) > 0 {
		return nil, apperror.New(http.StatusBadRequest,
			fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
			apperror.ErrInvalidInput)
	}

	book := &entity.Book{
		Title:        req.Title,
		WriterName:   req.WriterName,
		Description:  req.Description,
		Publisher:    req.Publisher,
		Year:         req.Year,
		Session:      req.Session,
		Semester:     req.Semester,
		FileURL:      req.FileURL,
		ThumbnailURL: req.ThumbnailURL,
		FileSize:     req.FileSize,
		SubjectID:    req.SubjectID,
		IsActive:     true,
		UploaderID:   actorID,
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	s.search.IndexBook(book)

	resp := dto.NewBookResponse(book)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateBookRequest) (*dto.BookResponse, error) {
	// Existence is checked before ownership so a non-owner cannot probe ids.
	book, err := s.findBook(ctx, id)
	if err != nil {
		return nil, err
	}

	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, apperror.ErrUnauthenticated
	}

	if !authz.CanModify(actor, book.UploaderID) {
		return nil, fmt.Errorf("you can only modify your own uploads: %w", apperror.ErrForbidden)
	}

	applyBookPatch(book, req)

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	s.search.IndexBook(book)

	resp := dto.NewBookResponse(book)
	return &resp, nil
}

func (s *service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	book, err := s.findBook(ctx, id)
	if err != nil {
		return err
	}

	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return apperror.ErrUnauthenticated
	}

	if !authz.CanModify(actor, book.UploaderID) {
		return fmt.Errorf("you can only delete your own uploads: %w", apperror.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.search.DeleteBook(id.String())
	return nil
}

func (s *service) Download(ctx context.Context, id uuid.UUID) (*dto.DownloadResponse, error) {
	book, err := s.findBook(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementDownload(ctx, id); err != nil {
		return nil, err
	}

	return &dto.DownloadResponse{
		DownloadURL: book.FileURL,
		Title:       book.Title,
	}, nil
}

func (s *service) Like(ctx context.Context, id uuid.UUID) (int, error) {
	if _, err := s.findBook(ctx, id); err != nil {
		return 0, err
	}

	return s.repo.IncrementLike(ctx, id)
}

func (s *service) findBook(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return book, nil
}

func applyBookPatch(book *entity.Book, req dto.UpdateBookRequest) {
	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.WriterName != nil {
		book.WriterName = *req.WriterName
	}
	if req.Description != nil {
		book.Description = req.Description
	}
	if req.Publisher != nil {
		book.Publisher = req.Publisher
	}
	if req.Year != nil {
		book.Year = req.Year
	}
	if req.Session != nil {
		book.Session = req.Session
	}
	if req.Semester != nil {
		book.Semester = req.Semester
	}
	if req.FileURL != nil {
		book.FileURL = *req.FileURL
	}
	if req.ThumbnailURL != nil {
		book.ThumbnailURL = req.ThumbnailURL
	}
	if req.FileSize != nil {
		book.FileSize = req.FileSize
	}
	if req.SubjectID != nil {
		book.SubjectID = req.SubjectID
	}
	if req.IsActive != nil {
		book.IsActive = *req.IsActive
	}
}
