package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Book struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	WriterName    string     `gorm:"size:255;not null" json:"writerName"`
	Description   *string    `gorm:"type:text" json:"description,omitempty"`
	Publisher     *string    `gorm:"size:255" json:"publisher,omitempty"`
	Year          *string    `gorm:"size:20" json:"year,omitempty"`
	Session       *string    `gorm:"size:50" json:"session,omitempty"`
	Semester      *string    `gorm:"size:50" json:"semester,omitempty"`
	FileURL       string     `gorm:"type:text;not null" json:"fileUrl"`
	ThumbnailURL  *string    `gorm:"type:text" json:"thumbnailUrl,omitempty"`
	FileSize      *int64     `json:"fileSize,omitempty"`
	DownloadCount int        `gorm:"default:0" json:"downloadCount"`
	LikeCount     int        `gorm:"default:0" json:"likeCount"`
	ViewCount     int        `gorm:"default:0" json:"viewCount"`
	IsActive      bool       `gorm:"default:true" json:"isActive"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	UploaderID    uuid.UUID  `gorm:"type:uuid;not null" json:"uploaderId"`
	Uploader      User       `gorm:"foreignKey:UploaderID;constraint:OnDelete:CASCADE" json:"uploader,omitempty"`
	SubjectID     *uuid.UUID `gorm:"type:uuid" json:"subjectId,omitempty"`
	Subject       *Subject   `gorm:"foreignKey:SubjectID;constraint:OnDelete:SET NULL" json:"subject,omitempty"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID, err = uuid.NewV7()
	}
	return
}
