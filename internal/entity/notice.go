package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PriorityHigh   = "HIGH"
	PriorityNormal = "NORMAL"
	PriorityLow    = "LOW"
)

// Notice is a department announcement. A nil ExpireAt means it never expires.
type Notice struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	ImageURL  *string    `gorm:"type:text" json:"imageUrl,omitempty"`
	Priority  string     `gorm:"size:20;not null;default:NORMAL" json:"priority"`
	ExpireAt  *time.Time `json:"expireAt,omitempty"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	CreatorID uuid.UUID  `gorm:"type:uuid;not null" json:"creatorId"`
	Creator   User       `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"creator,omitempty"`
}

func (n *Notice) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
