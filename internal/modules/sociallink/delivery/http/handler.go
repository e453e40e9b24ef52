package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ice.edu/helpinghand/internal/modules/sociallink/dto"
	socialLinkService "ice.edu/helpinghand/internal/modules/sociallink/service"
	"ice.edu/helpinghand/pkg/response"
)

type SocialLinkHandler struct {
	service socialLinkService.SocialLinkService
}

func NewSocialLinkHandler(service socialLinkService.SocialLinkService) *SocialLinkHandler {
	return &SocialLinkHandler{service: service}
}

func (h *SocialLinkHandler) ListSocialLinks(c *gin.Context) {
	links, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"links": links})
}

func (h *SocialLinkHandler) CreateSocialLink(c *gin.Context) {
	var req dto.CreateSocialLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, err)
		return
	}

	link, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"link": link})
}

func (h *SocialLinkHandler) UpdateSocialLink(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid link id"})
		return
	}

	var req dto.UpdateSocialLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, err)
		return
	}

	link, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"link": link})
}

func (h *SocialLinkHandler) DeleteSocialLink(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid link id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Social link deleted successfully"})
}
