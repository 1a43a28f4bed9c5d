package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube/yatube/internal/app/models/dto"
	"github.com/yatube/yatube/internal/pkg/apperrors"
)

// handleError runs HandleAPIError in a minimal gin context and returns the
// recorded response.
func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, *dto.ErrorDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rr := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rr)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(ctx, err)

	var body struct {
		Error *dto.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.NotNil(t, body.Error)

	return rr, body.Error
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{name: "user not found", err: apperrors.ErrUserNotFound, wantStatus: 404, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "group not found", err: apperrors.ErrGroupNotFound, wantStatus: 404, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "post not found", err: apperrors.ErrPostNotFound, wantStatus: 404, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "not post author", err: apperrors.ErrNotPostAuthor, wantStatus: 403, wantCode: dto.ErrorCodeForbidden},
		{name: "account disabled", err: apperrors.ErrAccountDisabled, wantStatus: 403, wantCode: dto.ErrorCodeForbidden},
		{name: "invalid credentials", err: apperrors.ErrInvalidCredentials, wantStatus: 401, wantCode: dto.ErrorCodeInvalidCredentials},
		{name: "token expired", err: apperrors.ErrTokenExpired, wantStatus: 401, wantCode: dto.ErrorCodeExpiredToken},
		{name: "token revoked", err: apperrors.ErrTokenRevoked, wantStatus: 401, wantCode: dto.ErrorCodeInvalidToken},
		{name: "token not found", err: apperrors.ErrTokenNotFound, wantStatus: 401, wantCode: dto.ErrorCodeTokenNotFound},
		{name: "username taken", err: apperrors.ErrUsernameAlreadyExists, wantStatus: 409, wantCode: dto.ErrorCodeResourceAlreadyExists},
		{name: "email taken", err: apperrors.ErrEmailAlreadyExists, wantStatus: 409, wantCode: dto.ErrorCodeResourceAlreadyExists},
		{name: "empty comment", err: apperrors.ErrEmptyComment, wantStatus: 400, wantCode: dto.ErrorCodeValidationFailed},
		{name: "self follow", err: apperrors.ErrSelfFollow, wantStatus: 400, wantCode: dto.ErrorCodeValidationFailed},
		{name: "invalid image", err: apperrors.ErrInvalidImage, wantStatus: 400, wantCode: dto.ErrorCodeValidationFailed},
		{name: "reset token used", err: apperrors.ErrPasswordResetTokenUsed, wantStatus: 400, wantCode: dto.ErrorCodeInvalidToken},
		{name: "unknown error", err: errors.New("boom"), wantStatus: 500, wantCode: dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, detail := handleError(t, tt.err)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCode, detail.Code)
			assert.NotEmpty(t, detail.Message)
		})
	}
}

func TestHandleAPIError_MatchesWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("error creating follow: %w", apperrors.ErrUserNotFound)

	rr, detail := handleError(t, wrapped)
	assert.Equal(t, 404, rr.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, detail.Code)
}

func TestHandleAPIError_CustomErrorMessageSurfaces(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrInvalidPassword, "password must contain at least one digit")

	rr, detail := handleError(t, err)
	assert.Equal(t, 400, rr.Code)
	assert.Equal(t, dto.ErrorCodeInvalidPassword, detail.Code)
	assert.Equal(t, "password must contain at least one digit", detail.Message)
}

func TestHandleAPIError_BadRequestMessageSurfaces(t *testing.T) {
	err := apperrors.NewBadRequestError("group 7 does not exist")

	rr, detail := handleError(t, err)
	assert.Equal(t, 400, rr.Code)
	assert.Equal(t, dto.ErrorCodeInvalidRequest, detail.Code)
	assert.Equal(t, "group 7 does not exist", detail.Message)
}
