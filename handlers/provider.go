package handlers

import (
	"net/http"

	"sevahub/models"
	"sevahub/services/directory"
	"sevahub/utils"

	"github.com/gin-gonic/gin"
)

// ProviderHandler exposes the provider directory over HTTP.
type ProviderHandler struct {
	Directory directory.DirectoryService
}

// NewProviderHandler creates a ProviderHandler.
func NewProviderHandler(dir directory.DirectoryService) *ProviderHandler {
	return &ProviderHandler{Directory: dir}
}

// ListProvidersHandler handles GET /api/providers. An absent or "all"
// category returns the full directory.
func (h *ProviderHandler) ListProvidersHandler(c *gin.Context) {
	category := c.Query("category")
	providers := h.Directory.GetProvidersByCategory(category)
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// AddProviderHandler handles POST /api/providers.
func (h *ProviderHandler) AddProviderHandler(c *gin.Context) {
	var p models.Provider
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid provider request", err.Error())
		return
	}
	if p.BusinessName == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid provider request", "businessName is required")
		return
	}

	id := h.Directory.AddProvider(c.Request.Context(), p)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
