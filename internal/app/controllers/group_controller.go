package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yatube/yatube/internal/app/models/dto"
	"github.com/yatube/yatube/internal/app/services"
	"github.com/yatube/yatube/internal/middleware"
	"github.com/yatube/yatube/internal/pkg/apperrors"
	"github.com/yatube/yatube/internal/pkg/helpers"
	"github.com/yatube/yatube/internal/pkg/validation"
)

// GroupController handles the group pages
type GroupController struct {
	groupService services.GroupService
	logger       zerolog.Logger
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService services.GroupService, logger zerolog.Logger) *GroupController {
	return &GroupController{
		groupService: groupService,
		logger:       logger,
	}
}

// List serves all groups
// @Summary Group list
// @Description Returns every group ordered by title.
// @Tags groups
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.GroupListResponse} "All groups"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /group/ [get]
func (c *GroupController) List(ctx *gin.Context) {
	listResponse, err := c.groupService.GetAllGroups(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list groups")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(listResponse))
}

// Page serves a single group's page
// @Summary Group page
// @Description Returns the group's metadata and its posts newest first, paginated.
// @Tags groups
// @Produce json
// @Param slug path string true "Group slug"
// @Param page query int false "Page number"
// @Success 200 {object} dto.APIResponse{data=dto.GroupPageResponse} "Group page"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /group/{slug}/ [get]
func (c *GroupController) Page(ctx *gin.Context) {
	slug := ctx.Param("slug")
	if !validation.CompiledPatterns.Slug.MatchString(slug) {
		middleware.HandleAPIError(ctx, apperrors.ErrGroupNotFound)
		return
	}
	page := helpers.ParsePageParam(ctx)

	pageResponse, err := c.groupService.GetGroupPage(ctx.Request.Context(), slug, page)
	if err != nil {
		c.logger.Warn().Err(err).Str("slug", slug).Msg("Failed to build group page")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pageResponse))
}
