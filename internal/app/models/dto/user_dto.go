package dto

import "github.com/yatube/yatube/internal/app/models"

// UserResponse is the public view of an account, embedded wherever an
// author appears
type UserResponse struct {
	ID        int64  `json:"id" example:"1"`
	Username  string `json:"username" example:"leo_tolstoy"`
	FirstName string `json:"firstName,omitempty" example:"Lev"`
	LastName  string `json:"lastName,omitempty" example:"Tolstoy"`
}

// ProfileResponse is the payload of the profile page: the profile owner,
// their total post count and followers, whether the viewer follows them,
// and one page of their posts.
type ProfileResponse struct {
	Author         UserResponse   `json:"author"`
	PostCount      int64          `json:"postCount" example:"13"`
	FollowersCount int64          `json:"followersCount" example:"2"`
	Following      bool           `json:"following" example:"false"`
	Posts          []PostResponse `json:"posts"`
	Pagination     PaginationInfo `json:"pagination"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(user *models.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}
