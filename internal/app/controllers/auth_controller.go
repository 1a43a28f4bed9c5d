// Package controllers translates HTTP requests into service calls and
// service results into responses or redirects.
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yatube/yatube/internal/app/models/dto"
	"github.com/yatube/yatube/internal/app/services"
	"github.com/yatube/yatube/internal/middleware"
)

// AuthController serves signup, login and the token lifecycle endpoints
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Signup registers a new account and signs it in
// @Summary Register a new user
// @Description Creates a new account with the provided username and password. Email and names are optional.
// @Tags auth
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param request body dto.SignupRequest true "Registration information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or weak password"
// @Failure 409 {object} dto.ErrorResponse "Username or email already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/signup/ [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid signup request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	authResponse, err := c.authService.Signup(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Signup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("username", req.Username).
		Int64("userID", authResponse.User.ID).
		Msg("User signed up successfully")

	c.setAuthCookie(ctx, authResponse.Token)
	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: authResponse,
	})
}

// LoginPage serves the login form context
// @Summary Login page
// @Description Returns the login form context. The next parameter names the path the client is sent back to after logging in.
// @Tags auth
// @Produce json
// @Param next query string false "Path to return to after login"
// @Success 200 {object} dto.APIResponse{data=dto.LoginPageResponse} "Login form context"
// @Router /auth/login/ [get]
func (c *AuthController) LoginPage(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LoginPageResponse{
		Next: ctx.Query("next"),
	}))
}

// Login authenticates the credentials and sets the auth cookie
// @Summary User login
// @Description Authenticates a user by username and password, sets the auth cookie and returns the token pair. When a next parameter names a local path the response is a redirect to it instead.
// @Tags auth
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param next query string false "Path to redirect to after login"
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Success 302 {string} string "Redirect to the next path"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account disabled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login/ [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	authResponse, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("username", req.Username).
		Msg("User logged in successfully")

	c.setAuthCookie(ctx, authResponse.Token)

	// Browser flow: send the user back where they came from
	next := ctx.Query("next")
	if next == "" {
		next = ctx.PostForm("next")
	}
	if safeNextPath(next) {
		ctx.Redirect(http.StatusFound, next)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: authResponse,
	})
}

// Logout clears the cookie and revokes refresh tokens
// @Summary User logout
// @Description Clears the auth cookie and revokes the caller's refresh tokens. With a refresh token in the body only that token is revoked.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LogoutRequest false "Refresh token to revoke"
// @Success 200 {object} dto.APIResponse "Logged out"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/logout/ [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	// The body is optional; a plain POST without one is a valid logout
	_ = ctx.ShouldBindJSON(&req)

	if userIDInterface, exists := ctx.Get("userID"); exists {
		if userID, ok := userIDInterface.(int64); ok {
			if err := c.authService.Logout(ctx.Request.Context(), userID, req.RefreshToken); err != nil {
				c.logger.Error().Err(err).Int64("userID", userID).Msg("Logout failed")
				middleware.HandleAPIError(ctx, err)
				return
			}
			c.logger.Info().Int64("userID", userID).Msg("User logged out")
		}
	}

	c.clearAuthCookie(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Logged out successfully"))
}

// RefreshToken rotates a refresh token into a new pair
// @Summary Refresh access token
// @Description Exchanges a valid refresh token for a new token pair. The used refresh token is revoked.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Token refreshed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid refresh token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/refresh/ [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid refresh token request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	tokenResponse, err := c.authService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Refresh token failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Msg("Token refreshed successfully")

	c.setAuthCookie(ctx, *tokenResponse)
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: tokenResponse,
	})
}

// PasswordReset mails a password reset token
// @Summary Request password reset
// @Description Sends a single-use reset token to the given email. The response does not reveal whether the email is registered.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.PasswordResetRequest true "Account email"
// @Success 200 {object} dto.APIResponse "Reset email sent if the address is registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/password_reset/ [post]
func (c *AuthController) PasswordReset(ctx *gin.Context) {
	var req dto.PasswordResetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid password reset request payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authService.RequestPasswordReset(ctx.Request.Context(), req.Email); err != nil {
		c.logger.Error().Err(err).Msg("Password reset request failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse(
		"If the email is registered, a password reset link has been sent"))
}

// PasswordResetConfirm sets a new password using a reset token
// @Summary Confirm password reset
// @Description Sets a new password using a previously mailed reset token. The token is single-use; all refresh tokens of the account are revoked.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.PasswordResetConfirmRequest true "Reset token and new password"
// @Success 200 {object} dto.APIResponse "Password reset"
// @Failure 400 {object} dto.ErrorResponse "Invalid token or weak password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/password_reset/confirm/ [post]
func (c *AuthController) PasswordResetConfirm(ctx *gin.Context) {
	var req dto.PasswordResetConfirmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid password reset confirm payload")
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authService.ConfirmPasswordReset(ctx.Request.Context(), req.Token, req.NewPassword); err != nil {
		c.logger.Warn().Err(err).Msg("Password reset confirm failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Msg("Password reset completed")
	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Password has been reset successfully"))
}

// setAuthCookie stores the access token in the auth cookie for browser clients
func (c *AuthController) setAuthCookie(ctx *gin.Context, token dto.TokenResponse) {
	ctx.SetCookie(middleware.AccessTokenCookie, token.AccessToken, int(token.ExpiresIn), "/", "", false, true)
}

// clearAuthCookie expires the auth cookie
func (c *AuthController) clearAuthCookie(ctx *gin.Context) {
	ctx.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
}

// safeNextPath reports whether next is a local path usable as a redirect
// target. Absolute URLs and protocol-relative paths are rejected.
func safeNextPath(next string) bool {
	if next == "" || !strings.HasPrefix(next, "/") {
		return false
	}
	if strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return false
	}
	return true
}
