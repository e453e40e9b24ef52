package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SocialLink struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Platform string    `gorm:"size:50;not null" json:"platform"`
	URL      string    `gorm:"type:text;not null" json:"url"`
	Icon     *string   `gorm:"size:50" json:"icon,omitempty"`
	Order    int       `gorm:"column:sort_order;default:0" json:"order"`
	IsActive bool      `gorm:"default:true" json:"isActive"`
}

func (l *SocialLink) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID, err = uuid.NewV7()
	}
	return
}
