package handler

import (
	"errors"
	"net/http"

	"mediarate/internal/dto"
	"mediarate/internal/models"
	"mediarate/internal/repository"
	"mediarate/internal/service"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	media *service.MediaService
}

func NewMediaHandler(media *service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// RegisterPublicRoutes registers the read-only media routes.
func (h *MediaHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("", h.List)
	router.GET("/search", h.Search)
	router.GET("/:id", h.Get)
}

// RegisterProtectedRoutes registers the mutating media routes.
func (h *MediaHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("", h.Create)
	router.PUT("/:id", h.Update)
	router.DELETE("/:id", h.Delete)
}

// Create adds a new media entry owned by the caller.
// POST /api/media
func (h *MediaHandler) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mediaID, err := h.media.Create(c.Request.Context(), req.ToModel(userID))
	if err != nil {
		if errors.Is(err, service.ErrMediaExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "media entry already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"media_id": mediaID})
}

// Get returns a single media entry.
// GET /api/media/:id
func (h *MediaHandler) Get(c *gin.Context) {
	entry, err := h.media.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "media entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToMediaResponse(entry))
}

// List returns media entries, optionally filtered by genre, type, age
// restriction or release year.
// GET /api/media?genre=&media_type=&age_restriction=&release_year=
func (h *MediaHandler) List(c *gin.Context) {
	var filter repository.MediaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if filter.MediaType != "" && !models.ValidMediaType(filter.MediaType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown media_type"})
		return
	}
	if filter.AgeRestriction != "" && !models.ValidAgeRestriction(filter.AgeRestriction) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown age_restriction"})
		return
	}

	entries, err := h.media.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]*dto.MediaResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, dto.FromModelToMediaResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// Search finds media entries whose title contains the query string.
// GET /api/media/search?q=
func (h *MediaHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	entries, err := h.media.SearchByTitle(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]*dto.MediaResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, dto.FromModelToMediaResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// Update changes the mutable fields of an existing entry.
// PUT /api/media/:id
func (h *MediaHandler) Update(c *gin.Context) {
	var req dto.UpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := models.MediaEntry{
		ID:             c.Param("id"),
		Title:          req.Title,
		Description:    req.Description,
		MediaType:      models.MediaType(req.MediaType),
		ReleaseYear:    req.ReleaseYear,
		AgeRestriction: models.AgeRestriction(req.AgeRestriction),
		Genre:          req.Genre,
	}
	if err := h.media.Update(c.Request.Context(), &entry); err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "media entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "media entry updated"})
}

// Delete removes an entry together with its ratings, rolling the affected
// user counters back.
// DELETE /api/media/:id
func (h *MediaHandler) Delete(c *gin.Context) {
	if err := h.media.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "media entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "media entry deleted"})
}
