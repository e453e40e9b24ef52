package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"ice.edu/helpinghand/pkg/response"
	"ice.edu/helpinghand/pkg/storage"
)

// AttachmentHandler accepts multipart uploads from staff and returns a public
// URL for the stored file.
type AttachmentHandler struct {
	storage storage.FileStorage
	maxSize int64
}

func NewAttachmentHandler(fileStorage storage.FileStorage, maxSize int64) *AttachmentHandler {
	return &AttachmentHandler{storage: fileStorage, maxSize: maxSize}
}

func (h *AttachmentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	if fileHeader.Size > h.maxSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("File size exceeds %dMB limit", h.maxSize/(1024*1024)),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer file.Close()

	url, err := h.storage.Save(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.JSON(http.StatusOK, gin.H{
		"url":      url,
		"fileName": filepath.Base(fileHeader.Filename),
		"size":     fileHeader.Size,
		"type":     contentType,
	})
}
