package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yatube/yatube/internal/app/models/dto"
	"github.com/yatube/yatube/internal/app/services"
	"github.com/yatube/yatube/internal/middleware"
	"github.com/yatube/yatube/internal/pkg/apperrors"
	"github.com/yatube/yatube/internal/pkg/helpers"
)

// PostController handles the post pages: index, feed, profile, detail and
// the creation/edit forms.
type PostController struct {
	postService services.PostService
	logger      zerolog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService, logger zerolog.Logger) *PostController {
	return &PostController{
		postService: postService,
		logger:      logger,
	}
}

// Index serves the main page
// @Summary Index page
// @Description Returns the newest posts first, paginated.
// @Tags posts
// @Produce json
// @Param page query int false "Page number (defaults to 1, out-of-range values clamp)"
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse} "Paginated posts"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router / [get]
func (c *PostController) Index(ctx *gin.Context) {
	page := helpers.ParsePageParam(ctx)

	pageResponse, err := c.postService.GetIndexPage(ctx.Request.Context(), page)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to build index page")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pageResponse))
}

// Feed serves the posts of followed authors
// @Summary Follow feed
// @Description Returns the newest posts of the authors the current user follows, paginated.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse} "Paginated posts"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /follow/ [get]
func (c *PostController) Feed(ctx *gin.Context) {
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

	page := helpers.ParsePageParam(ctx)

	pageResponse, err := c.postService.GetFeedPage(ctx.Request.Context(), userID, page)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to build feed page")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pageResponse))
}

// Profile serves an author's profile page
// @Summary Profile page
// @Description Returns the author's info, post count, follower count and posts, paginated. For an authenticated viewer the following flag reports whether they follow this author.
// @Tags posts
// @Produce json
// @Param username path string true "Author username"
// @Param page query int false "Page number"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile page"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profile/{username}/ [get]
func (c *PostController) Profile(ctx *gin.Context) {
	username := ctx.Param("username")
	page := helpers.ParsePageParam(ctx)

	var viewerID *int64
	if userIDInterface, exists := ctx.Get("userID"); exists {
		if userID, ok := userIDInterface.(int64); ok {
			viewerID = &userID
		}
	}

	profileResponse, err := c.postService.GetProfilePage(ctx.Request.Context(), username, viewerID, page)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", username).Msg("Failed to build profile page")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profileResponse))
}

// Detail serves a single post page
// @Summary Post detail page
// @Description Returns the post, its author's total post count and the post's comments oldest first.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostDetailResponse} "Post detail"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id}/ [get]
func (c *PostController) Detail(ctx *gin.Context) {
	postID, err := parsePostID(ctx)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Post not found")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
		return
	}

	detailResponse, err := c.postService.GetPostDetail(ctx.Request.Context(), postID)
	if err != nil {
		c.logger.Warn().Err(err).Int64("postID", postID).Msg("Failed to build post detail page")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detailResponse))
}

// CreateForm serves the post creation form context
// @Summary Post creation form
// @Description Returns the creation form context: the selectable groups and is_edit set to false.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PostFormResponse} "Creation form context"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /create/ [get]
func (c *PostController) CreateForm(ctx *gin.Context) {
	formResponse, err := c.postService.GetCreateForm(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to build creation form")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(formResponse))
}

// Create handles new post submission
// @Summary Create a post
// @Description Creates a post with required text, optional group and optional image, then redirects to the author's profile.
// @Tags posts
// @Accept mpfd
// @Accept x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param text formData string true "Post text"
// @Param groupId formData int false "Group ID"
// @Param image formData file false "Post image"
// @Success 302 {string} string "Redirect to the author's profile"
// @Failure 400 {object} dto.ErrorResponse "Missing text, unknown group or unsupported image"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /create/ [post]
func (c *PostController) Create(ctx *gin.Context) {
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

	var req dto.PostFormRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid post creation payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	// The image is optional; a missing file is not an error
	image, err := ctx.FormFile("image")
	if err != nil {
		image = nil
	}

	postResponse, err := c.postService.CreatePost(ctx.Request.Context(), userID, &req, image)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to create post")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", postResponse.Author.Username))
}

// EditForm serves the post edit form context
// @Summary Post edit form
// @Description Returns the edit form context pre-filled with the post's current values and is_edit set to true. Only the author sees the form; other users are redirected to the post detail page.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostFormResponse} "Edit form context"
// @Success 302 {string} string "Redirect to the post detail page for non-authors"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id}/edit/ [get]
func (c *PostController) EditForm(ctx *gin.Context) {
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

	formResponse, err := c.postService.GetEditForm(ctx.Request.Context(), postID, userID)
	if err != nil {
		// Editing someone else's post lands on its detail page
		if errors.Is(err, apperrors.ErrNotPostAuthor) {
			ctx.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", postID))
			return
		}
		c.logger.Warn().Err(err).Int64("postID", postID).Msg("Failed to build edit form")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(formResponse))
}

// Edit handles post edit submission
// @Summary Edit a post
// @Description Updates the post's text, group and image, then redirects to the post detail page. Only the author may edit; other users are redirected without modification. The author never changes.
// @Tags posts
// @Accept mpfd
// @Accept x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param text formData string true "Post text"
// @Param groupId formData int false "Group ID"
// @Param image formData file false "Replacement post image"
// @Success 302 {string} string "Redirect to the post detail page"
// @Failure 400 {object} dto.ErrorResponse "Missing text, unknown group or unsupported image"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id}/edit/ [post]
func (c *PostController) Edit(ctx *gin.Context) {
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

	var req dto.PostFormRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid post edit payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	image, err := ctx.FormFile("image")
	if err != nil {
		image = nil
	}

	if _, err := c.postService.UpdatePost(ctx.Request.Context(), postID, userID, &req, image); err != nil {
		// Editing someone else's post lands on its detail page
		if errors.Is(err, apperrors.ErrNotPostAuthor) {
			ctx.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", postID))
			return
		}
		c.logger.Warn().Err(err).Int64("postID", postID).Msg("Failed to edit post")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", postID))
}

// parsePostID reads the post id path parameter. Non-numeric values are
// treated as unknown posts.
func parsePostID(ctx *gin.Context) (int64, error) {
	return strconv.ParseInt(ctx.Param("id"), 10, 64)
}
