package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentDeal is a promotional affiliate offer curated by admins. Deals have
// no owner column; they are managed by the ADMIN role only.
type StudentDeal struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   *string    `gorm:"type:text" json:"description,omitempty"`
	ImageURL      *string    `gorm:"type:text" json:"imageUrl,omitempty"`
	AffiliateURL  string     `gorm:"type:text;not null" json:"affiliateUrl"`
	OriginalPrice *float64   `json:"originalPrice,omitempty"`
	DealPrice     *float64   `json:"dealPrice,omitempty"`
	Discount      *string    `gorm:"size:50" json:"discount,omitempty"`
	Category      *string    `gorm:"size:100" json:"category,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	IsActive      bool       `gorm:"default:true" json:"isActive"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (d *StudentDeal) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID, err = uuid.NewV7()
	}
	return
}
