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

// CommentController handles commenting on posts
type CommentController struct {
	commentService services.CommentService
	logger         zerolog.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService services.CommentService, logger zerolog.Logger) *CommentController {
	return &CommentController{
		commentService: commentService,
		logger:         logger,
	}
}

// AddComment handles comment submission on a post
// @Summary Comment on a post
// @Description Creates a comment bound to the current user when the body carries non-empty text. A GET or an empty body creates nothing. Either way the response redirects to the post detail page.
// @Tags comments
// @Accept mpfd
// @Accept x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param text formData string false "Comment text"
// @Success 302 {string} string "Redirect to the post detail page"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id}/comment/ [post]
func (c *CommentController) AddComment(ctx *gin.Context) {
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

	postID, err := parsePostID(ctx)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Post not found")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
		return
	}

	// Only a POST body can carry a comment; an unbindable body simply
	// means there is nothing to save
	var req dto.CreateCommentRequest
	if ctx.Request.Method == http.MethodPost {
		_ = ctx.ShouldBind(&req)
	}

	if _, err := c.commentService.AddComment(ctx.Request.Context(), postID, userID, &req); err != nil {
		if errors.Is(err, apperrors.ErrEmptyComment) {
			ctx.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", postID))
			return
		}
		c.logger.Warn().Err(err).Int64("postID", postID).Msg("Failed to add comment")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", postID))
}
