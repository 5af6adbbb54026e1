package handlers

import (
	"net/http"
	"strconv"

	"sevahub/database/docstore"
	"sevahub/services/catalog"
	"sevahub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler exposes the read-only catalog queries over HTTP.
type CatalogHandler struct {
	Catalog catalog.CatalogService
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: svc}
}

func queryFrom(c *gin.Context) catalog.Query {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return catalog.Query{
		Category: c.Query("category"),
		City:     c.Query("city"),
		Featured: c.Query("featured") == "true",
		Page:     page,
		Limit:    limit,
	}
}

// GetServicesHandler handles GET /api/services.
func (h *CatalogHandler) GetServicesHandler(c *gin.Context) {
	logger := utils.GetLogger()

	page, err := h.Catalog.GetServices(c.Request.Context(), queryFrom(c))
	if err != nil {
		logger.Error("Failed to fetch services", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetServiceHandler handles GET /api/services/:id.
func (h *CatalogHandler) GetServiceHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	svc, err := h.Catalog.GetService(c.Request.Context(), id)
	if err == docstore.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	if err != nil {
		logger.Error("Failed to fetch service", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch service"})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// GetCatalogProvidersHandler handles GET /api/catalog/providers.
func (h *CatalogHandler) GetCatalogProvidersHandler(c *gin.Context) {
	logger := utils.GetLogger()

	page, err := h.Catalog.GetProviders(c.Request.Context(), queryFrom(c))
	if err != nil {
		logger.Error("Failed to fetch providers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch providers"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetCatalogProviderHandler handles GET /api/catalog/providers/:id.
func (h *CatalogHandler) GetCatalogProviderHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	listing, err := h.Catalog.GetProvider(c.Request.Context(), id)
	if err == docstore.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		return
	}
	if err != nil {
		logger.Error("Failed to fetch provider", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch provider"})
		return
	}
	c.JSON(http.StatusOK, listing)
}

// GetUserBookingsHandler handles GET /api/users/:id/bookings. The JWT
// middleware has already resolved the caller's user ID; callers may only
// read their own bookings.
func (h *CatalogHandler) GetUserBookingsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	if callerID := c.GetString("userID"); callerID != "" && callerID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot read another user's bookings"})
		return
	}

	bookings, err := h.Catalog.GetUserBookings(c.Request.Context(), id)
	if err != nil {
		logger.Error("Failed to fetch bookings", zap.String("userId", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
