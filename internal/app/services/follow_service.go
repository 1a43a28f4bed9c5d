package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yatube/yatube/internal/app/repositories"
	"github.com/yatube/yatube/internal/pkg/apperrors"
)

// FollowService defines the interface for follow operations
type FollowService interface {
	Follow(ctx context.Context, followerID int64, username string) error
	Unfollow(ctx context.Context, followerID int64, username string) error
}

// followServiceImpl implements FollowService
type followServiceImpl struct {
	followRepo repositories.IFollowRepository
	userRepo   repositories.IUserRepository
	logger     zerolog.Logger
}

// NewFollowService creates a new FollowService
func NewFollowService(
	followRepo repositories.IFollowRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) FollowService {
	return &followServiceImpl{
		followRepo: followRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Follow subscribes followerID to the author named by username. Following
// an already followed author is a no-op; following yourself returns
// apperrors.ErrSelfFollow and creates nothing.
func (s *followServiceImpl) Follow(ctx context.Context, followerID int64, username string) error {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error retrieving author: %w", err)
	}

	if author.ID == followerID {
		return apperrors.ErrSelfFollow
	}

	if err := s.followRepo.Create(ctx, followerID, author.ID); err != nil {
		return fmt.Errorf("error creating follow: %w", err)
	}

	s.logger.Info().Int64("followerID", followerID).Int64("authorID", author.ID).Msg("Follow created")
	return nil
}

// Unfollow removes the subscription of followerID to the author named by
// username. Unfollowing an author who is not followed is a no-op.
func (s *followServiceImpl) Unfollow(ctx context.Context, followerID int64, username string) error {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error retrieving author: %w", err)
	}

	err = s.followRepo.Delete(ctx, followerID, author.ID)
	if err != nil && !errors.Is(err, apperrors.ErrFollowNotFound) {
		return fmt.Errorf("error removing follow: %w", err)
	}

	s.logger.Info().Int64("followerID", followerID).Int64("authorID", author.ID).Msg("Follow removed")
	return nil
}
