package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nutrilens/backend/internal/logger"
	"github.com/nutrilens/backend/internal/middleware"
	"github.com/nutrilens/backend/internal/nutrition"
	"github.com/nutrilens/backend/internal/service"
)

const (
	maxImageBytes = 10 << 20
	draftNotFound = "Draft not found"
)

// UploadHandler classifies food photos. Photos are kept in S3 and results in
// Redis drafts when those are configured.
type UploadHandler struct {
	vision      service.IVisionService
	drafts      service.IDraftService
	photos      service.PhotoStore
	authService middleware.TokenValidator
}

func NewUploadHandler(vision service.IVisionService, drafts service.IDraftService, photos service.PhotoStore, authService middleware.TokenValidator) *UploadHandler {
	return &UploadHandler{
		vision:      vision,
		drafts:      drafts,
		photos:      photos,
		authService: authService,
	}
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	ml := router.Group("/ml")
	ml.Use(middleware.AuthMiddleware(h.authService))
	{
		ml.POST("/upload", h.Upload)
		ml.GET("/drafts/:id", h.GetDraft)
		ml.DELETE("/drafts/:id", h.DeleteDraft)
	}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		_ = c.Error(&service.ValidationError{Field: "image", Message: "No image file uploaded"})
		return
	}
	mimeType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		_ = c.Error(service.ErrUnsupportedImage)
		return
	}
	if file.Size > maxImageBytes {
		_ = c.Error(&service.ValidationError{Field: "image", Message: "Image must be 10MB or smaller"})
		return
	}

	f, err := file.Open()
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		_ = c.Error(err)
		return
	}

	items, err := h.vision.Classify(c.Request.Context(), mimeType, data)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var imageURL string
	if h.photos != nil {
		imageURL, err = h.photos.SavePhoto(c.Request.Context(), userID, file.Filename, mimeType, data)
		if err != nil {
			logger.Warn("photo upload failed, continuing without image URL", zap.Error(err))
			imageURL = ""
		}
	}

	resp := gin.H{
		"success":  true,
		"imageUrl": imageURL,
		"items":    items,
	}
	if h.drafts != nil {
		draft := &service.UploadDraft{
			UserID:   userID.String(),
			ImageURL: imageURL,
			Items:    items,
		}
		if err := h.drafts.SaveDraft(c.Request.Context(), draft); err != nil {
			_ = c.Error(err)
			return
		}
		resp["draftId"] = draft.ID
	}
	if items == nil {
		resp["items"] = []nutrition.ClassifiedItem{}
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *UploadHandler) GetDraft(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.drafts == nil {
		_ = c.Error(service.ErrNotFound).SetMeta(draftNotFound)
		return
	}

	draft, err := h.drafts.GetDraft(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		fail(c, err, draftNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": draft})
}

func (h *UploadHandler) DeleteDraft(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if h.drafts == nil {
		_ = c.Error(service.ErrNotFound).SetMeta(draftNotFound)
		return
	}

	if err := h.drafts.DeleteDraft(c.Request.Context(), userID, c.Param("id")); err != nil {
		fail(c, err, draftNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Draft deleted"})
}
