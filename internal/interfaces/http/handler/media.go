package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mediaapp "github.com/storefront/backend/internal/application/media"
)

// MediaHandler proxies external product images through the edge cache
type MediaHandler struct {
	BaseHandler
	mediaService *mediaapp.MediaService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaService *mediaapp.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Proxy handles GET /image_proxy
func (h *MediaHandler) Proxy(c *gin.Context) {
	fileToken := c.Query("file_token")
	cacheKey := c.Request.URL.RequestURI()

	img, err := h.mediaService.Resolve(c.Request.Context(), cacheKey, fileToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Cache-Control", h.mediaService.CacheControl())
	c.Data(http.StatusOK, img.ContentType, img.Body)
}

// RegisterRoutes registers media routes on the API group
func (h *MediaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/image_proxy", h.Proxy)
}
