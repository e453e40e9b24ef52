package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note is a lecture note upload. TeacherID is optional attribution set by an
// admin; it is distinct from UploaderID, which always points at the account
// that created the row.
type Note struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   *string    `gorm:"type:text" json:"description,omitempty"`
	Topic         *string    `gorm:"size:255" json:"topic,omitempty"`
	Session       *string    `gorm:"size:50" json:"session,omitempty"`
	Semester      *string    `gorm:"size:50" json:"semester,omitempty"`
	FileURL       string     `gorm:"type:text;not null" json:"fileUrl"`
	ThumbnailURL  *string    `gorm:"type:text" json:"thumbnailUrl,omitempty"`
	FileType      string     `gorm:"size:20;default:PDF" json:"fileType"`
	FileSize      *int64     `json:"fileSize,omitempty"`
	DownloadCount int        `gorm:"default:0" json:"downloadCount"`
	LikeCount     int        `gorm:"default:0" json:"likeCount"`
	ViewCount     int        `gorm:"default:0" json:"viewCount"`
	IsActive      bool       `gorm:"default:true" json:"isActive"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	UploaderID    uuid.UUID  `gorm:"type:uuid;not null" json:"uploaderId"`
	Uploader      User       `gorm:"foreignKey:UploaderID;constraint:OnDelete:CASCADE" json:"uploader,omitempty"`
	TeacherID     *uuid.UUID `gorm:"type:uuid" json:"teacherId,omitempty"`
	Teacher       *User      `gorm:"foreignKey:TeacherID;constraint:OnDelete:SET NULL" json:"teacher,omitempty"`
	SubjectID     *uuid.UUID `gorm:"type:uuid" json:"subjectId,omitempty"`
	Subject       *Subject   `gorm:"foreignKey:SubjectID;constraint:OnDelete:SET NULL" json:"subject,omitempty"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
