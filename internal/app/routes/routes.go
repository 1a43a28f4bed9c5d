package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yatube/yatube/internal/app/controllers"
	"github.com/yatube/yatube/internal/app/models/dto"
	"github.com/yatube/yatube/internal/middleware"
)

// SetupRouter registers every application route on the engine. URLs keep
// their trailing slash, matching the links templates and clients use.
func SetupRouter(
	router *gin.Engine,
	postController *controllers.PostController,
	groupController *controllers.GroupController,
	commentController *controllers.CommentController,
	followController *controllers.FollowController,
	authController *controllers.AuthController,
	aboutController *controllers.AboutController,
	authMiddleware *middleware.AuthMiddleware,
	pageCache *middleware.PageCache,
) {
	// Every route sees the visitor's identity when a valid token is present
	router.Use(authMiddleware.CurrentUser())

	// --- Public pages ---
	// The index response is cached for a short TTL
	router.GET("/", pageCache.Cache(), postController.Index)

	about := router.Group("/about")
	{
		about.GET("/author/", aboutController.Author)
		about.GET("/tech/", aboutController.Tech)
	}

	groups := router.Group("/group")
	{
		groups.GET("/", groupController.List)
		groups.GET("/:slug/", groupController.Page)
	}

	router.GET("/profile/:username/", postController.Profile)
	router.GET("/posts/:id/", postController.Detail)

	// --- Auth-required pages ---
	// Guests are redirected to the login page with a next parameter
	protected := router.Group("")
	protected.Use(authMiddleware.LoginRequired())
	{
		protected.GET("/create/", postController.CreateForm)
		protected.POST("/create/", postController.Create)

		protected.GET("/posts/:id/edit/", postController.EditForm)
		protected.POST("/posts/:id/edit/", postController.Edit)

		// Comments and follows accept GET for template-driven clients;
		// only a POST body can create a comment
		protected.GET("/posts/:id/comment/", commentController.AddComment)
		protected.POST("/posts/:id/comment/", commentController.AddComment)

		protected.GET("/follow/", postController.Feed)
		protected.GET("/profile/:username/follow/", followController.Follow)
		protected.POST("/profile/:username/follow/", followController.Follow)
		protected.GET("/profile/:username/unfollow/", followController.Unfollow)
		protected.POST("/profile/:username/unfollow/", followController.Unfollow)
	}

	// --- Account routes ---
	auth := router.Group("/auth")
	{
		auth.POST("/signup/", authController.Signup)
		auth.GET("/login/", authController.LoginPage)
		auth.POST("/login/", authController.Login)
		auth.POST("/logout/", authController.Logout)
		auth.POST("/refresh/", authController.RefreshToken)
		auth.POST("/password_reset/", authController.PasswordReset)
		auth.POST("/password_reset/confirm/", authController.PasswordResetConfirm)
	}

	// Liveness endpoint (public)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Unknown paths answer with the standard error envelope
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Page not found"),
		})
	})

	// Swagger and media routes are set up in bootstrap.go already
}
