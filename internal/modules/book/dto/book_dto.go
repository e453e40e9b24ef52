package dto

import (
	"github.com/google/uuid"
	"ice.edu/helpinghand/internal/entity"
	commonDto "ice.edu/helpinghand/pkg/dto"
)

type CreateBookRequest struct {
	Title        string     `json:"title"`
	WriterName   string     `json:"writerName"`
	Description  *string    `json:"description"`
	Publisher    *string    `json:"publisher"`
	Year         *string    `json:"year"`
	Session      *string    `json:"session"`
	Semester     *string    `json:"semester"`
	FileURL      string     `json:"fileUrl"`
	ThumbnailURL *string    `json:"thumbnailUrl"`
	FileSize     *int64     `json:"fileSize"`
	SubjectID    *uuid.UUID `json:"subjectId"`
}

// UpdateBookRequest is a whitelisted patch: only fields present in the body
// are applied, and owner id and counters are deliberately not updatable.
type UpdateBookRequest struct {
	Title        *string    `json:"title"`
	WriterName   *string    `json:"writerName"`
	Description  *string    `json:"description"`
	Publisher    *string    `json:"publisher"`
	Year         *string    `json:"year"`
	Session      *string    `json:"session"`
	Semester     *string    `json:"semester"`
	FileURL      *string    `json:"fileUrl"`
	ThumbnailURL *string    `json:"thumbnailUrl"`
	FileSize     *int64     `json:"fileSize"`
	SubjectID    *uuid.UUID `json:"subjectId"`
	IsActive     *bool      `json:"isActive"`
}

// BookResponse embeds the entity and shadows the uploader relation with a
// reduced id/name view so account details never leak into public payloads.
type BookResponse struct {
	entity.Book
	Uploader *commonDto.OwnerResponse `json:"uploader,omitempty"`
}

func NewBookResponse(b *entity.Book) BookResponse {
	resp := BookResponse{Book: *b}
	if b.Uploader.Name != "" {
		resp.Uploader = &commonDto.OwnerResponse{
			ID:   b.UploaderID.String(),
			Name: b.Uploader.Name,
		}
	}
	return resp
}

type BookListResponse struct {
	Books      []BookResponse       `json:"books"`
	Pagination commonDto.Pagination `json:"pagination"`
}

type DownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
	Title       string `json:"title"`
}
