package dto

// SignupRequest represents a new account registration
type SignupRequest struct {
	Username  string `json:"username" form:"username" binding:"required,min=3,max=150" example:"leo_tolstoy"`
	Password  string `json:"password" form:"password" binding:"required,min=8" example:"WarAndPeace1869"`
	Email     string `json:"email" form:"email" binding:"omitempty,email" example:"leo@yasnaya.ru"`
	FirstName string `json:"firstName" form:"firstName" binding:"omitempty,max=150" example:"Lev"`
	LastName  string `json:"lastName" form:"lastName" binding:"omitempty,max=150" example:"Tolstoy"`
}

// LoginRequest carries the credentials of a sign-in attempt
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required" example:"leo_tolstoy"`
	Password string `json:"password" form:"password" binding:"required" example:"WarAndPeace1869"`
}

// TokenResponse is the token pair issued on login and refresh. Expiry
// values are in seconds.
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest trades a refresh token for a new pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest optionally names the refresh token to revoke; without it
// every refresh token of the current user is revoked.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// PasswordResetRequest asks for a reset token to be mailed
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirmRequest sets a new password using a mailed token
type PasswordResetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// AuthResponse is what a successful signup or login returns, the fresh
// token pair plus the account it belongs to.
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// LoginPageResponse is the payload of the login form page; Next echoes the
// path the client is sent back to after a successful login.
type LoginPageResponse struct {
	Next string `json:"next,omitempty" example:"/create/"`
}
