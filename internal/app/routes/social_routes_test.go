package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube/yatube/internal/app/models/dto"
)

func TestAddComment(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	reader := app.createUser(t, "sofia")
	post := app.createPost(t, author, nil, "war and peace")

	target := fmt.Sprintf("/posts/%d/comment/", post.ID)
	rr := app.postForm(target, url.Values{"text": {"Well said"}}, app.authCookie(t, reader))
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), rr.Header().Get("Location"))

	rr = app.get(rr.Header().Get("Location"))
	require.Equal(t, http.StatusOK, rr.Code)

	detail := decodeData[dto.PostDetailResponse](t, rr)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "Well said", detail.Comments[0].Text)
	assert.Equal(t, "sofia", detail.Comments[0].Author.Username)
}

func TestAddComment_OrderedOldestFirst(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	reader := app.createUser(t, "sofia")
	post := app.createPost(t, author, nil, "war and peace")

	target := fmt.Sprintf("/posts/%d/comment/", post.ID)
	for _, text := range []string{"first", "second", "third"} {
		rr := app.postForm(target, url.Values{"text": {text}}, app.authCookie(t, reader))
		require.Equal(t, http.StatusFound, rr.Code)
	}

	rr := app.get(fmt.Sprintf("/posts/%d/", post.ID))
	require.Equal(t, http.StatusOK, rr.Code)

	detail := decodeData[dto.PostDetailResponse](t, rr)
	require.Len(t, detail.Comments, 3)
	assert.Equal(t, "first", detail.Comments[0].Text)
	assert.Equal(t, "third", detail.Comments[2].Text)
}

func TestAddComment_BlankTextCreatesNothing(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	reader := app.createUser(t, "sofia")
	post := app.createPost(t, author, nil, "war and peace")
	target := fmt.Sprintf("/posts/%d/comment/", post.ID)

	for _, form := range []url.Values{{}, {"text": {""}}, {"text": {"   "}}} {
		rr := app.postForm(target, form, app.authCookie(t, reader))
		require.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), rr.Header().Get("Location"))
	}
	assert.Zero(t, app.comments.countForPost(post.ID))
}

func TestCommentRoute_GetRedirectsToDetail(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	post := app.createPost(t, author, nil, "war and peace")

	rr := app.get(fmt.Sprintf("/posts/%d/comment/", post.ID), app.authCookie(t, author))
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), rr.Header().Get("Location"))
	assert.Zero(t, app.comments.countForPost(post.ID))
}

func TestAddComment_UnknownPost(t *testing.T) {
	app := newTestApp(t)
	reader := app.createUser(t, "sofia")

	// The post lookup comes before the empty text check
	rr := app.postForm("/posts/999/comment/", url.Values{}, app.authCookie(t, reader))
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, decodeError(t, rr).Code)
}

func TestAddComment_GuestIsRedirectedToLogin(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	post := app.createPost(t, author, nil, "war and peace")

	target := fmt.Sprintf("/posts/%d/comment/", post.ID)
	rr := app.postForm(target, url.Values{"text": {"anonymous note"}})
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/auth/login/?next="+target, rr.Header().Get("Location"))
	assert.Zero(t, app.comments.countForPost(post.ID))
}

func TestFollowAndUnfollow(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	follower := app.createUser(t, "sofia")
	cookie := app.authCookie(t, follower)

	rr := app.get("/profile/leo/follow/", cookie)
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/profile/leo/", rr.Header().Get("Location"))
	assert.True(t, app.follows.isFollowing(follower.ID, author.ID))

	rr = app.get("/profile/leo/", cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	profile := decodeData[dto.ProfileResponse](t, rr)
	assert.True(t, profile.Following)
	assert.Equal(t, int64(1), profile.FollowersCount)

	rr = app.get("/profile/leo/unfollow/", cookie)
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/profile/leo/", rr.Header().Get("Location"))
	assert.False(t, app.follows.isFollowing(follower.ID, author.ID))

	rr = app.get("/profile/leo/", cookie)
	profile = decodeData[dto.ProfileResponse](t, rr)
	assert.False(t, profile.Following)
	assert.Equal(t, int64(0), profile.FollowersCount)
}

func TestFollow_Repeatable(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	follower := app.createUser(t, "sofia")
	cookie := app.authCookie(t, follower)

	for i := 0; i < 2; i++ {
		rr := app.get("/profile/leo/follow/", cookie)
		require.Equal(t, http.StatusFound, rr.Code)
	}

	count, err := app.follows.CountFollowers(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFollow_SelfIsSilentlySkipped(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")

	rr := app.get("/profile/leo/follow/", app.authCookie(t, author))
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/profile/leo/", rr.Header().Get("Location"))
	assert.False(t, app.follows.isFollowing(author.ID, author.ID))
}

func TestFollow_UnknownAuthor(t *testing.T) {
	app := newTestApp(t)
	follower := app.createUser(t, "sofia")

	rr := app.get("/profile/nobody/follow/", app.authCookie(t, follower))
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, decodeError(t, rr).Code)
}

func TestUnfollow_WithoutFollowing(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "leo")
	follower := app.createUser(t, "sofia")

	rr := app.get("/profile/leo/unfollow/", app.authCookie(t, follower))
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/profile/leo/", rr.Header().Get("Location"))
}

func TestFollow_GuestIsRedirectedToLogin(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "leo")

	rr := app.get("/profile/leo/follow/")
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/auth/login/?next=/profile/leo/follow/", rr.Header().Get("Location"))
}

func TestFeed_ShowsOnlyFollowedAuthors(t *testing.T) {
	app := newTestApp(t)
	leo := app.createUser(t, "leo")
	fyodor := app.createUser(t, "fyodor")
	reader := app.createUser(t, "sofia")

	app.createPost(t, leo, nil, "leo early")
	app.createPost(t, fyodor, nil, "fyodor one")
	app.createPost(t, leo, nil, "leo late")

	cookie := app.authCookie(t, reader)
	rr := app.get("/profile/leo/follow/", cookie)
	require.Equal(t, http.StatusFound, rr.Code)

	rr = app.get("/follow/", cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	feed := decodeData[dto.PostListResponse](t, rr)
	assert.Equal(t, []string{"leo late", "leo early"}, postTexts(feed.Posts))
	assert.Equal(t, 2, feed.Pagination.TotalItems)

	rr = app.get("/profile/leo/unfollow/", cookie)
	require.Equal(t, http.StatusFound, rr.Code)

	rr = app.get("/follow/", cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeData[dto.PostListResponse](t, rr).Posts)
}

func TestFeed_EmptyWithoutSubscriptions(t *testing.T) {
	app := newTestApp(t)
	leo := app.createUser(t, "leo")
	reader := app.createUser(t, "sofia")
	app.createPost(t, leo, nil, "unseen")

	rr := app.get("/follow/", app.authCookie(t, reader))
	require.Equal(t, http.StatusOK, rr.Code)

	feed := decodeData[dto.PostListResponse](t, rr)
	assert.Empty(t, feed.Posts)
	assert.Equal(t, 1, feed.Pagination.TotalPages)
}

func TestFeed_Paginates(t *testing.T) {
	app := newTestApp(t)
	leo := app.createUser(t, "leo")
	reader := app.createUser(t, "sofia")
	for i := 1; i <= 13; i++ {
		app.createPost(t, leo, nil, fmt.Sprintf("post %d", i))
	}

	cookie := app.authCookie(t, reader)
	rr := app.get("/profile/leo/follow/", cookie)
	require.Equal(t, http.StatusFound, rr.Code)

	rr = app.get("/follow/", cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	feed := decodeData[dto.PostListResponse](t, rr)
	assert.Len(t, feed.Posts, 10)
	assert.Equal(t, 2, feed.Pagination.TotalPages)

	rr = app.get("/follow/?page=2", cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	feed = decodeData[dto.PostListResponse](t, rr)
	assert.Len(t, feed.Posts, 3)
}

func TestFeed_GuestIsRedirectedToLogin(t *testing.T) {
	app := newTestApp(t)

	rr := app.get("/follow/")
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/auth/login/?next=/follow/", rr.Header().Get("Location"))
}
