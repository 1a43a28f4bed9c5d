package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yatube/yatube/internal/pkg/apperrors"
)

// IPasswordResetTokenRepository defines the interface for password reset token operations
type IPasswordResetTokenRepository interface {
	CreateToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error
	GetTokenInfo(ctx context.Context, token string) (int64, time.Time, bool, error)
	MarkTokenAsUsed(ctx context.Context, token string) error
	DeleteTokensByUserID(ctx context.Context, userID int64) error
	DeleteExpiredTokens(ctx context.Context) error
}

// PasswordResetTokenRepository manages password reset tokens in the database
type PasswordResetTokenRepository struct {
	db *pgxpool.Pool
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(db *pgxpool.Pool) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{db: db}
}

// CreateToken stores a password reset token for a user
func (r *PasswordResetTokenRepository) CreateToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error {
	query := squirrel.Insert("password_reset_tokens").
		Columns("user_id", "token", "expiry_date").
		Values(userID, token, expiryDate).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetTokenInfo retrieves user ID, expiry date and used flag for a given token
func (r *PasswordResetTokenRepository) GetTokenInfo(ctx context.Context, token string) (int64, time.Time, bool, error) {
	query := squirrel.Select("user_id", "expiry_date", "used").
		From("password_reset_tokens").
		Where("token = ?", token).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, time.Time{}, false, fmt.Errorf("error building SQL: %w", err)
	}

	var (
		userID     int64
		expiryDate time.Time
		used       bool
	)
	err = r.db.QueryRow(ctx, sql, args...).Scan(&userID, &expiryDate, &used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, time.Time{}, false, apperrors.ErrTokenNotFound
		}
		return 0, time.Time{}, false, fmt.Errorf("error executing query: %w", err)
	}

	return userID, expiryDate, used, nil
}

// MarkTokenAsUsed marks a token as used to prevent reuse
func (r *PasswordResetTokenRepository) MarkTokenAsUsed(ctx context.Context, token string) error {
	query := squirrel.Update("password_reset_tokens").
		Set("used", true).
		Where("token = ?", token).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}

	return nil
}

// DeleteTokensByUserID removes all reset tokens a user has requested
func (r *PasswordResetTokenRepository) DeleteTokensByUserID(ctx context.Context, userID int64) error {
	query := squirrel.Delete("password_reset_tokens").
		Where("user_id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// DeleteExpiredTokens removes every token past its expiry date
func (r *PasswordResetTokenRepository) DeleteExpiredTokens(ctx context.Context) error {
	query := squirrel.Delete("password_reset_tokens").
		Where("expiry_date < ?", time.Now()).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}
