package handler

import (
	"errors"
	"net/http"

	"mediarate/internal/dto"
	"mediarate/internal/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratings *service.RatingService
}

func NewRatingHandler(ratings *service.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

// RegisterPublicRoutes registers the read-only rating routes.
func (h *RatingHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/media/:id/ratings", h.ApprovedForMedia)
}

// RegisterProtectedRoutes registers the mutating rating routes.
func (h *RatingHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.PUT("/media/:id/rating", h.Rate)
	router.DELETE("/media/:id/rating", h.Remove)
	router.POST("/ratings/:id/like", h.Like)
	router.DELETE("/ratings/:id/like", h.Unlike)
	router.POST("/ratings/:id/approve", h.Approve)
}

// Rate creates or replaces the caller's rating for a media entry.
// PUT /api/media/:id/rating
func (h *RatingHandler) Rate(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.ratings.Rate(c.Request.Context(), c.Param("id"), userID, req.Stars, req.Comment)
	if err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "media entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToRatingResponse(rating))
}

// Remove deletes the caller's rating for a media entry.
// DELETE /api/media/:id/rating
func (h *RatingHandler) Remove(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.ratings.Remove(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, service.ErrRatingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "rating not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "rating removed"})
}

// ApprovedForMedia lists the publicly visible ratings of a media entry.
// GET /api/media/:id/ratings
func (h *RatingHandler) ApprovedForMedia(c *gin.Context) {
	ratings, err := h.ratings.ApprovedRatings(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "media entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]*dto.RatingResponse, 0, len(ratings))
	for i := range ratings {
		responses = append(responses, dto.FromModelToRatingResponse(&ratings[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// Like records that the caller liked a rating.
// POST /api/ratings/:id/like
func (h *RatingHandler) Like(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.ratings.Like(c.Request.Context(), c.Param("id"), userID); err != nil {
		switch {
		case errors.Is(err, service.ErrRatingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "rating not found"})
		case errors.Is(err, service.ErrAlreadyLiked):
			c.JSON(http.StatusConflict, gin.H{"error": "rating already liked"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "rating liked"})
}

// Unlike removes the caller's like from a rating.
// DELETE /api/ratings/:id/like
func (h *RatingHandler) Unlike(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.ratings.Unlike(c.Request.Context(), c.Param("id"), userID); err != nil {
		switch {
		case errors.Is(err, service.ErrRatingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "rating not found"})
		case errors.Is(err, service.ErrNotLiked):
			c.JSON(http.StatusConflict, gin.H{"error": "rating was not liked"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "like removed"})
}

// Approve makes a rating's comment publicly visible. Only the creator of the
// rated media entry may approve.
// POST /api/ratings/:id/approve
func (h *RatingHandler) Approve(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.ratings.Approve(c.Request.Context(), c.Param("id"), userID); err != nil {
		switch {
		case errors.Is(err, service.ErrRatingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "rating not found"})
		case errors.Is(err, service.ErrMediaNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "media entry not found"})
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "only the media creator may approve ratings"})
		case errors.Is(err, service.ErrAlreadyApproved):
			c.JSON(http.StatusConflict, gin.H{"error": "rating is already approved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "rating approved"})
}
