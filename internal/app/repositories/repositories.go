package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every data access object behind its interface,
// so services and tests can swap in fakes.
type Repositories struct {
	UserRepository               IUserRepository
	GroupRepository              IGroupRepository
	PostRepository               IPostRepository
	CommentRepository            ICommentRepository
	FollowRepository             IFollowRepository
	TokenRepository              ITokenRepository
	PasswordResetTokenRepository IPasswordResetTokenRepository
}

// NewRepositories wires each repository to the shared connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(db),
		GroupRepository:              NewGroupRepository(db),
		PostRepository:               NewPostRepository(db),
		CommentRepository:            NewCommentRepository(db),
		FollowRepository:             NewFollowRepository(db),
		TokenRepository:              NewTokenRepository(db),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(db),
	}
}
