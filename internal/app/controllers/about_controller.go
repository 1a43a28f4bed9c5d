package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yatube/yatube/internal/app/models/dto"
)

// AboutController serves the static informational pages
type AboutController struct{}

// NewAboutController creates a new AboutController
func NewAboutController() *AboutController {
	return &AboutController{}
}

// Author serves the page about the author
// @Summary About the author
// @Description Returns the static page about the project author.
// @Tags about
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AboutPageResponse} "Author page"
// @Router /about/author/ [get]
func (c *AboutController) Author(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AboutPageResponse{
		Title: "About the author",
		Paragraphs: []string{
			"Yatube is a small social network for publishing personal diaries.",
			"It started as a study project and grew into a place where authors share posts, gather in groups and follow each other.",
			"The author maintains the platform and still publishes here now and then.",
		},
	}))
}

// Tech serves the page about the technologies used
// @Summary About the technologies
// @Description Returns the static page about the technologies the platform is built on.
// @Tags about
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AboutPageResponse} "Tech page"
// @Router /about/tech/ [get]
func (c *AboutController) Tech(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AboutPageResponse{
		Title: "Technologies",
		Paragraphs: []string{
			"The backend is written in Go on top of the Gin web framework.",
			"Posts, comments and subscriptions live in PostgreSQL, accessed through pgx.",
			"Hot pages are cached in Redis, uploaded images are kept on local disk and the API is documented with Swagger.",
		},
	}))
}
