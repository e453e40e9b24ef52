package dto

import (
	"time"

	"ice.edu/helpinghand/internal/entity"
	commonDto "ice.edu/helpinghand/pkg/dto"
)

type CreateNoticeRequest struct {
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	ImageURL *string    `json:"imageUrl"`
	Priority string     `json:"priority"`
	ExpireAt *time.Time `json:"expireAt"`
}

type UpdateNoticeRequest struct {
	Title    *string    `json:"title"`
	Content  *string    `json:"content"`
	ImageURL *string    `json:"imageUrl"`
	Priority *string    `json:"priority"`
	ExpireAt *time.Time `json:"expireAt"`
	IsActive *bool      `json:"isActive"`
}

type NoticeResponse struct {
	entity.Notice
	Creator *commonDto.OwnerResponse `json:"creator,omitempty"`
}

func NewNoticeResponse(n *entity.Notice) NoticeResponse {
	resp := NoticeResponse{Notice: *n}
	if n.Creator.Name != "" {
		resp.Creator = &commonDto.OwnerResponse{
			ID:   n.CreatorID.String(),
			Name: n.Creator.Name,
		}
	}
	return resp
}
