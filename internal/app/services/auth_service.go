package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/yatube/yatube/internal/app/models"
	"github.com/yatube/yatube/internal/app/models/dto"
	"github.com/yatube/yatube/internal/app/repositories"
	"github.com/yatube/yatube/internal/pkg/apperrors"
	"github.com/yatube/yatube/internal/pkg/auth"
	"github.com/yatube/yatube/internal/pkg/email"
	"github.com/yatube/yatube/internal/pkg/validation"
)

// passwordResetTokenTTL is how long a mailed reset token stays valid
const passwordResetTokenTTL = 24 * time.Hour

// AuthService covers the account lifecycle from signup through password
// reset. All token issuing goes through it.
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID int64, refreshToken string) error
	RequestPasswordReset(ctx context.Context, emailAddr string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo     repositories.IUserRepository
	tokenRepo    repositories.ITokenRepository
	resetRepo    repositories.IPasswordResetTokenRepository
	jwtService   *auth.JWTService
	emailService email.EmailService
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	resetRepo repositories.IPasswordResetTokenRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		resetRepo:    resetRepo,
		jwtService:   jwtService,
		emailService: emailService,
		logger:       logger,
	}
}

// validateUsername checks the username format: 3-150 characters from
// letters, digits and @ . + - _
func (s *authServiceImpl) validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.NewCustomError(apperrors.ErrInvalidUsername, "username cannot be empty")
	}

	if len(username) < validation.UsernameMinLength || len(username) > validation.UsernameMaxLength {
		return apperrors.NewCustomError(apperrors.ErrInvalidUsername,
			fmt.Sprintf("username must be between %d and %d characters",
				validation.UsernameMinLength, validation.UsernameMaxLength))
	}

	if !validation.CompiledPatterns.Username.MatchString(username) {
		return apperrors.NewCustomError(apperrors.ErrInvalidUsername,
			"username may contain only letters, digits and @/./+/-/_ characters")
	}

	return nil
}

// validatePassword enforces the signup password rules: minimum length
// plus at least one letter and one digit.
func (s *authServiceImpl) validatePassword(password string) error {
	if password == "" {
		return apperrors.NewCustomError(apperrors.ErrInvalidPassword, "password cannot be empty")
	}

	if len(password) < validation.PasswordMinLength {
		return apperrors.NewCustomError(apperrors.ErrInvalidPassword,
			fmt.Sprintf("password must be at least %d characters long", validation.PasswordMinLength))
	}

	var hasLetter, hasDigit bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if !hasLetter {
		return apperrors.NewCustomError(apperrors.ErrInvalidPassword, "password must contain at least one letter")
	}
	if !hasDigit {
		return apperrors.NewCustomError(apperrors.ErrInvalidPassword, "password must contain at least one digit")
	}

	return nil
}

// validateEmail validates an email address format
func (s *authServiceImpl) validateEmail(emailAddr string) error {
	if !validation.CompiledPatterns.Email.MatchString(strings.ToLower(emailAddr)) {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

// Signup registers a new user and logs them in
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	if err := s.validateUsername(req.Username); err != nil {
		return nil, err
	}

	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	// Email is optional; validate and check uniqueness only when given
	var emailPtr *string
	if req.Email != "" {
		if err := s.validateEmail(req.Email); err != nil {
			return nil, err
		}

		exists, err := s.userRepo.EmailExists(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("error checking if email exists: %w", err)
		}
		if exists {
			return nil, apperrors.ErrEmailAlreadyExists
		}

		emailPtr = &req.Email
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:  req.Username,
		Email:     emailPtr,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  true,
	}

	// Create sets user.ID and maps unique constraint hits to the
	// already-exists sentinels
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Welcome email is best effort
	if user.Email != nil {
		if err := s.emailService.SendWelcomeEmail(*user.Email, user.Username); err != nil {
			s.logger.Warn().Err(err).Str("username", user.Username).Msg("Failed to send welcome email")
		}
	}

	tokens, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: *tokens,
		User:  dto.FromUser(user),
	}, nil
}

// Login authenticates a user by username and password. An unknown
// username and a wrong password both come back as ErrInvalidCredentials,
// so responses do not reveal which accounts exist.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// Record the login time, best effort
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login time")
	}

	tokens, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: *tokens,
		User:  dto.FromUser(user),
	}, nil
}

// RefreshToken creates a new token pair using a refresh token.
// The presented refresh token is revoked so it cannot be reused.
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	// The repository maps revoked and expired tokens to their sentinels
	userID, _, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrTokenNotFound, apperrors.ErrTokenExpired, apperrors.ErrTokenRevoked) {
			return nil, err
		}
		return nil, fmt.Errorf("token validation error: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	// Revoke the old token before issuing a new pair
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.generateTokenResponse(ctx, user)
}

// Logout revokes the given refresh token, or every refresh token of the
// user when none is given. Revoking an already revoked token is a no-op.
func (s *authServiceImpl) Logout(ctx context.Context, userID int64, refreshToken string) error {
	if refreshToken != "" {
		err := s.tokenRepo.RevokeToken(ctx, refreshToken)
		if err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
			return fmt.Errorf("failed to revoke token: %w", err)
		}
		return nil
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}

	return nil
}

// RequestPasswordReset mails a single-use reset token to the given address.
// An unknown address is not reported to the caller.
func (s *authServiceImpl) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	if err := s.validateEmail(emailAddr); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Info().Str("email", emailAddr).Msg("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("error retrieving user: %w", err)
	}

	// Invalidate previously issued tokens
	if err := s.resetRepo.DeleteTokensByUserID(ctx, user.ID); err != nil {
		return fmt.Errorf("error clearing old reset tokens: %w", err)
	}

	token, err := email.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}

	expiryDate := time.Now().Add(passwordResetTokenTTL)
	if err := s.resetRepo.CreateToken(ctx, user.ID, token, expiryDate); err != nil {
		return fmt.Errorf("error storing reset token: %w", err)
	}

	if err := s.emailService.SendPasswordResetEmail(emailAddr, user.Username, token); err != nil {
		return fmt.Errorf("error sending reset email: %w", err)
	}

	return nil
}

// ConfirmPasswordReset sets a new password using a mailed token. The token
// is consumed and every refresh token of the user is revoked.
func (s *authServiceImpl) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" {
		return apperrors.ErrInvalidPasswordResetToken
	}

	userID, expiryDate, used, err := s.resetRepo.GetTokenInfo(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return apperrors.ErrInvalidPasswordResetToken
		}
		return fmt.Errorf("error retrieving reset token: %w", err)
	}

	if used {
		return apperrors.ErrPasswordResetTokenUsed
	}
	if expiryDate.Before(time.Now()) {
		return apperrors.ErrInvalidPasswordResetToken
	}

	if err := s.validatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	if err := s.resetRepo.MarkTokenAsUsed(ctx, token); err != nil {
		return fmt.Errorf("error consuming reset token: %w", err)
	}

	// Force re-login everywhere after a password change
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke tokens after password reset")
	}

	return nil
}

// generateTokenResponse issues a fresh pair and stores the refresh half.
// The refresh token is worthless until its database row exists.
func (s *authServiceImpl) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	tokenExpiry := s.jwtService.GetRefreshTokenExpiry()
	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, tokenExpiry); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(expiresIn),
		RefreshTokenExpiresIn: int64(refreshExpiresIn),
	}, nil
}
