package dto

import (
	"github.com/google/uuid"
	"ice.edu/helpinghand/internal/entity"
	commonDto "ice.edu/helpinghand/pkg/dto"
)

type CreateNoteRequest struct {
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	Topic        *string    `json:"topic"`
	Session      *string    `json:"session"`
	Semester     *string    `json:"semester"`
	FileURL      string     `json:"fileUrl"`
	ThumbnailURL *string    `json:"thumbnailUrl"`
	FileType     string     `json:"fileType"`
	FileSize     *int64     `json:"fileSize"`
	SubjectID    *uuid.UUID `json:"subjectId"`
	// TeacherID lets an admin attribute the note to a specific teacher.
	TeacherID *uuid.UUID `json:"teacherId"`
}

// UpdateNoteRequest is a whitelisted patch: only fields present in the body
// are applied, and uploader id and counters are deliberately not updatable.
type UpdateNoteRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Topic        *string    `json:"topic"`
	Session      *string    `json:"session"`
	Semester     *string    `json:"semester"`
	FileURL      *string    `json:"fileUrl"`
	ThumbnailURL *string    `json:"thumbnailUrl"`
	FileType     *string    `json:"fileType"`
	FileSize     *int64     `json:"fileSize"`
	SubjectID    *uuid.UUID `json:"subjectId"`
	TeacherID    *uuid.UUID `json:"teacherId"`
	IsActive     *bool      `json:"isActive"`
}

// NoteResponse shadows the uploader and teacher relations with reduced
// id/name views.
type NoteResponse struct {
	entity.Note
	Uploader *commonDto.OwnerResponse `json:"uploader,omitempty"`
	Teacher  *commonDto.OwnerResponse `json:"teacher,omitempty"`
}

func NewNoteResponse(n *entity.Note) NoteResponse {
	resp := NoteResponse{Note: *n}
	if n.Uploader.Name != "" {
		resp.Uploader = &commonDto.OwnerResponse{
			ID:   n.UploaderID.String(),
			Name: n.Uploader.Name,
		}
	}
	if n.Teacher != nil && n.TeacherID != nil {
		resp.Teacher = &commonDto.OwnerResponse{
			ID:   n.TeacherID.String(),
			Name: n.Teacher.Name,
		}
	}
	return resp
}

type NoteListResponse struct {
	Notes      []NoteResponse       `json:"notes"`
	Pagination commonDto.Pagination `json:"pagination"`
}

type DownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
	Title       string `json:"title"`
}
