package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	settingService "ice.edu/helpinghand/internal/modules/setting/service"
	"ice.edu/helpinghand/pkg/response"
)

type SettingHandler struct {
	service settingService.SettingService
}

func NewSettingHandler(service settingService.SettingService) *SettingHandler {
	return &SettingHandler{service: service}
}

func (h *SettingHandler) GetSettings(c *gin.Context) {
	settings, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

type updateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}

func (h *SettingHandler) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "settings object is required"})
		return
	}

	settings, err := h.service.UpdateAll(c.Request.Context(), req.Settings)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings, "message": "Settings updated successfully"})
}
