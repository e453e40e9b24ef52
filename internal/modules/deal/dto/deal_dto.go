package dto

import "time"

type CreateDealRequest struct {
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	ImageURL      *string    `json:"imageUrl"`
	AffiliateURL  string     `json:"affiliateUrl"`
	OriginalPrice *float64   `json:"originalPrice"`
	DealPrice     *float64   `json:"dealPrice"`
	Discount      *string    `json:"discount"`
	Category      *string    `json:"category"`
	ExpiresAt     *time.Time `json:"expiresAt"`
}

type UpdateDealRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	ImageURL      *string    `json:"imageUrl"`
	AffiliateURL  *string    `json:"affiliateUrl"`
	OriginalPrice *float64   `json:"originalPrice"`
	DealPrice     *float64   `json:"dealPrice"`
	Discount      *string    `json:"discount"`
	Category      *string    `json:"category"`
	ExpiresAt     *time.Time `json:"expiresAt"`
	IsActive      *bool      `json:"isActive"`
}
