package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	usernameTaken := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}

	assert.True(t, IsDuplicateConstraintError(usernameTaken, "users_username_key"))
	assert.False(t, IsDuplicateConstraintError(usernameTaken, "users_email_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("connection reset"), "users_username_key"))
}

func TestIsDuplicateConstraintError_Wrapped(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "refresh_tokens_token_key"}
	wrapped := fmt.Errorf("error creating token: %w", pgErr)

	assert.True(t, IsDuplicateConstraintError(wrapped, "refresh_tokens_token_key"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(errors.New("not a pg error")))
}
