package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yatube/yatube/internal/app/models/dto"
	"github.com/yatube/yatube/internal/app/services"
	"github.com/yatube/yatube/internal/middleware"
	"github.com/yatube/yatube/internal/pkg/apperrors"
)

// FollowController handles subscribing to and unsubscribing from authors
type FollowController struct {
	followService services.FollowService
	logger        zerolog.Logger
}

// NewFollowController creates a new FollowController
func NewFollowController(followService services.FollowService, logger zerolog.Logger) *FollowController {
	return &FollowController{
		followService: followService,
		logger:        logger,
	}
}

// Follow subscribes the current user to an author
// @Summary Follow an author
// @Description Subscribes the current user to the author's posts, then redirects to the author's profile. Following twice or following yourself changes nothing.
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param username path string true "Author username"
// @Success 302 {string} string "Redirect to the author's profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile/{username}/follow/ [post]
func (c *FollowController) Follow(ctx *gin.Context) {
	userIDInterface, exists := ctx.Get("userID")
	if !exists {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, ok := userIDInterface.(int64)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Invalid user ID format")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return
	}

	username := ctx.Param("username")

	if err := c.followService.Follow(ctx.Request.Context(), userID, username); err != nil {
		// A self-follow is silently skipped
		if !errors.Is(err, apperrors.ErrSelfFollow) {
			c.logger.Warn().Err(err).Str("username", username).Msg("Failed to follow author")
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	ctx.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", username))
}

// Unfollow unsubscribes the current user from an author
// @Summary Unfollow an author
// @Description Removes the current user's subscription to the author, then redirects to the author's profile. Unfollowing an author you do not follow changes nothing.
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param username path string true "Author username"
// @Success 302 {string} string "Redirect to the author's profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile/{username}/unfollow/ [post]
func (c *FollowController) Unfollow(ctx *gin.Context) {
	userIDInterface, exists := ctx.Get("userID")
	if !exists {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, ok := userIDInterface.(int64)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Invalid user ID format")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return
	}

	username := ctx.Param("username")

	if err := c.followService.Unfollow(ctx.Request.Context(), userID, username); err != nil {
		c.logger.Warn().Err(err).Str("username", username).Msg("Failed to unfollow author")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", username))
}
