package handler

import (
	"errors"
	"net/http"

	"mediarate/internal/dto"
	"mediarate/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	users *service.UserService
	stats *service.StatsService
}

func NewProfileHandler(users *service.UserService, stats *service.StatsService) *ProfileHandler {
	return &ProfileHandler{users: users, stats: stats}
}

// RegisterRoutes registers profile routes (auth required by parent group).
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/me", h.Get)
	router.PUT("/me", h.Update)
	router.POST("/me/recalculate", h.Recalculate)
}

// Get returns the calling user's profile.
// GET /api/profiles/me
func (h *ProfileHandler) Get(c *gin.Context) {
	userID := c.GetString("userID")

	profile, err := h.users.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToProfileResponse(profile))
}

// Update changes sobriquet and about-me.
// PUT /api/profiles/me
func (h *ProfileHandler) Update(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.UpdateProfile(c.Request.Context(), userID, req.Sobriquet, req.AboutMe); err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

// Recalculate rebuilds the caller's statistics from the live data.
// POST /api/profiles/me/recalculate
func (h *ProfileHandler) Recalculate(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.stats.Recalculate(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "statistics recalculated"})
}
