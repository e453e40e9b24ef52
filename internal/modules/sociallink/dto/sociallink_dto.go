package dto

type CreateSocialLinkRequest struct {
	Platform string  `json:"platform"`
	URL      string  `json:"url"`
	Icon     *string `json:"icon"`
	Order    *int    `json:"order"`
}

type UpdateSocialLinkRequest struct {
	Platform *string `json:"platform"`
	URL      *string `json:"url"`
	Icon     *string `json:"icon"`
	Order    *int    `json:"order"`
	IsActive *bool   `json:"isActive"`
}
