package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube/yatube/internal/app/models/dto"
	"github.com/yatube/yatube/internal/middleware"
	"github.com/yatube/yatube/internal/pkg/pagecache"
)

func postTexts(posts []dto.PostResponse) []string {
	texts := make([]string, 0, len(posts))
	for _, post := range posts {
		texts = append(texts, post.Text)
	}
	return texts
}

func TestIndex_NewestPostsFirst(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	app.createPost(t, author, nil, "first")
	app.createPost(t, author, nil, "second")
	app.createPost(t, author, nil, "third")

	rr := app.get("/")
	require.Equal(t, http.StatusOK, rr.Code)

	page := decodeData[dto.PostListResponse](t, rr)
	assert.Equal(t, []string{"third", "second", "first"}, postTexts(page.Posts))
}

func TestIndex_SplitsThirteenPostsAcrossTwoPages(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	for i := 1; i <= 13; i++ {
		app.createPost(t, author, nil, fmt.Sprintf("post %d", i))
	}

	rr := app.get("/")
	require.Equal(t, http.StatusOK, rr.Code)

	first := decodeData[dto.PostListResponse](t, rr)
	require.Len(t, first.Posts, 10)
	assert.Equal(t, "post 13", first.Posts[0].Text)
	assert.Equal(t, "post 4", first.Posts[9].Text)
	assert.Equal(t, dto.PaginationInfo{CurrentPage: 1, TotalPages: 2, PageSize: 10, TotalItems: 13}, first.Pagination)

	rr = app.get("/?page=2")
	require.Equal(t, http.StatusOK, rr.Code)

	second := decodeData[dto.PostListResponse](t, rr)
	assert.Equal(t, []string{"post 3", "post 2", "post 1"}, postTexts(second.Posts))
	assert.Equal(t, 2, second.Pagination.CurrentPage)
}

func TestIndex_ClampsPageParameter(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	for i := 1; i <= 13; i++ {
		app.createPost(t, author, nil, fmt.Sprintf("post %d", i))
	}

	tests := []struct {
		name      string
		target    string
		wantPage  int
		wantCount int
	}{
		{"junk value falls back to first page", "/?page=banana", 1, 10},
		{"past the end lands on the last page", "/?page=99", 2, 3},
		{"zero falls back to first page", "/?page=0", 1, 10},
		{"negative falls back to first page", "/?page=-2", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := app.get(tt.target)
			require.Equal(t, http.StatusOK, rr.Code)

			page := decodeData[dto.PostListResponse](t, rr)
			assert.Equal(t, tt.wantPage, page.Pagination.CurrentPage)
			assert.Len(t, page.Posts, tt.wantCount)
		})
	}
}

func TestIndex_EmptySite(t *testing.T) {
	app := newTestApp(t)

	rr := app.get("/")
	require.Equal(t, http.StatusOK, rr.Code)

	page := decodeData[dto.PostListResponse](t, rr)
	assert.Empty(t, page.Posts)
	assert.Equal(t, dto.PaginationInfo{CurrentPage: 1, TotalPages: 1, PageSize: 10, TotalItems: 0}, page.Pagination)
}

func TestGroupPage_ListsOnlyGroupPosts(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	prose := app.createGroup(t, "Classic prose", "classic-prose")
	poetry := app.createGroup(t, "Poetry", "poetry")

	app.createPost(t, author, prose, "war and peace")
	app.createPost(t, author, poetry, "eugene onegin")
	app.createPost(t, author, nil, "diary note")
	app.createPost(t, author, prose, "anna karenina")

	rr := app.get("/group/classic-prose/")
	require.Equal(t, http.StatusOK, rr.Code)

	page := decodeData[dto.GroupPageResponse](t, rr)
	assert.Equal(t, "Classic prose", page.Group.Title)
	assert.Equal(t, "classic-prose", page.Group.Slug)
	assert.Equal(t, []string{"anna karenina", "war and peace"}, postTexts(page.Posts))
	assert.Equal(t, 2, page.Pagination.TotalItems)
}

func TestGroupPage_UnknownSlug(t *testing.T) {
	app := newTestApp(t)

	// Slugs that are well formed but unknown, and slugs the pattern rejects
	for _, slug := range []string{"no-such-group", "no%20such%20group"} {
		rr := app.get("/group/" + slug + "/")
		require.Equal(t, http.StatusNotFound, rr.Code, slug)
		assert.Equal(t, dto.ErrorCodeResourceNotFound, decodeError(t, rr).Code, slug)
	}
}

func TestGroupList_SortedByTitle(t *testing.T) {
	app := newTestApp(t)
	app.createGroup(t, "Poetry", "poetry")
	app.createGroup(t, "Classic prose", "classic-prose")
	app.createGroup(t, "Drama", "drama")

	rr := app.get("/group/")
	require.Equal(t, http.StatusOK, rr.Code)

	list := decodeData[dto.GroupListResponse](t, rr)
	titles := make([]string, 0, len(list.Groups))
	for _, group := range list.Groups {
		titles = append(titles, group.Title)
	}
	assert.Equal(t, []string{"Classic prose", "Drama", "Poetry"}, titles)
}

func TestProfilePage(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	other := app.createUser(t, "fyodor")

	app.createPost(t, author, nil, "leo one")
	app.createPost(t, other, nil, "fyodor one")
	app.createPost(t, author, nil, "leo two")

	follower := app.createUser(t, "sofia")
	require.NoError(t, app.follows.Create(context.Background(), follower.ID, author.ID))

	t.Run("guest sees posts and counters", func(t *testing.T) {
		rr := app.get("/profile/leo/")
		require.Equal(t, http.StatusOK, rr.Code)

		profile := decodeData[dto.ProfileResponse](t, rr)
		assert.Equal(t, "leo", profile.Author.Username)
		assert.Equal(t, int64(2), profile.PostCount)
		assert.Equal(t, int64(1), profile.FollowersCount)
		assert.False(t, profile.Following)
		assert.Equal(t, []string{"leo two", "leo one"}, postTexts(profile.Posts))
	})

	t.Run("follower sees the following flag", func(t *testing.T) {
		rr := app.get("/profile/leo/", app.authCookie(t, follower))
		require.Equal(t, http.StatusOK, rr.Code)

		profile := decodeData[dto.ProfileResponse](t, rr)
		assert.True(t, profile.Following)
	})

	t.Run("owner never sees themselves as followed", func(t *testing.T) {
		rr := app.get("/profile/leo/", app.authCookie(t, author))
		require.Equal(t, http.StatusOK, rr.Code)

		profile := decodeData[dto.ProfileResponse](t, rr)
		assert.False(t, profile.Following)
	})
}

func TestProfilePage_UnknownUser(t *testing.T) {
	app := newTestApp(t)

	rr := app.get("/profile/nobody/")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, decodeError(t, rr).Code)
}

func TestPostDetail(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	reader := app.createUser(t, "sofia")
	prose := app.createGroup(t, "Classic prose", "classic-prose")

	app.createPost(t, author, nil, "earlier work")
	post := app.createPost(t, author, prose, "war and peace")
	app.createComment(t, post, reader, "first comment")
	app.createComment(t, post, author, "second comment")

	rr := app.get(fmt.Sprintf("/posts/%d/", post.ID))
	require.Equal(t, http.StatusOK, rr.Code)

	detail := decodeData[dto.PostDetailResponse](t, rr)
	assert.Equal(t, "war and peace", detail.Post.Text)
	assert.Equal(t, "leo", detail.Post.Author.Username)
	require.NotNil(t, detail.Post.Group)
	assert.Equal(t, "classic-prose", detail.Post.Group.Slug)
	assert.Equal(t, int64(2), detail.PostCount)

	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "first comment", detail.Comments[0].Text)
	assert.Equal(t, "sofia", detail.Comments[0].Author.Username)
	assert.Equal(t, "second comment", detail.Comments[1].Text)
}

func TestPostDetail_NotFound(t *testing.T) {
	app := newTestApp(t)

	for _, target := range []string{"/posts/999/", "/posts/abc/"} {
		rr := app.get(target)
		assert.Equal(t, http.StatusNotFound, rr.Code, target)
		assert.Equal(t, dto.ErrorCodeResourceNotFound, decodeError(t, rr).Code, target)
	}
}

func TestCreate_GuestIsRedirectedToLogin(t *testing.T) {
	app := newTestApp(t)

	rr := app.get("/create/")
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/auth/login/?next=/create/", rr.Header().Get("Location"))

	rr = app.postForm("/create/", url.Values{"text": {"drafted as guest"}})
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/auth/login/?next=/create/", rr.Header().Get("Location"))
	assert.Nil(t, app.posts.byText("drafted as guest"))
}

func TestCreateForm(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	app.createGroup(t, "Classic prose", "classic-prose")
	app.createGroup(t, "Poetry", "poetry")

	rr := app.get("/create/", app.authCookie(t, author))
	require.Equal(t, http.StatusOK, rr.Code)

	form := decodeData[dto.PostFormResponse](t, rr)
	assert.False(t, form.IsEdit)
	assert.Nil(t, form.Post)
	require.Len(t, form.Groups, 2)
	assert.Equal(t, "Classic prose", form.Groups[0].Title)
}

func TestCreatePost(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	prose := app.createGroup(t, "Classic prose", "classic-prose")

	form := url.Values{"text": {"a brand new story"}, "groupId": {fmt.Sprint(prose.ID)}}
	rr := app.postForm("/create/", form, app.authCookie(t, author))
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/profile/leo/", rr.Header().Get("Location"))

	stored := app.posts.byText("a brand new story")
	require.NotNil(t, stored)
	assert.Equal(t, author.ID, stored.AuthorID)
	require.NotNil(t, stored.GroupID)
	assert.Equal(t, prose.ID, *stored.GroupID)

	// The new post shows up on the index, the profile and its group page
	for _, target := range []string{"/", "/profile/leo/", "/group/classic-prose/"} {
		rr := app.get(target)
		require.Equal(t, http.StatusOK, rr.Code, target)
		assert.Contains(t, rr.Body.String(), "a brand new story", target)
	}
}

func TestCreatePost_WithoutGroup(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")

	rr := app.postForm("/create/", url.Values{"text": {"no group here"}}, app.authCookie(t, author))
	require.Equal(t, http.StatusFound, rr.Code)

	stored := app.posts.byText("no group here")
	require.NotNil(t, stored)
	assert.Nil(t, stored.GroupID)
}

func TestCreatePost_MissingText(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")

	rr := app.postForm("/create/", url.Values{}, app.authCookie(t, author))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, decodeError(t, rr).Code)
}

func TestCreatePost_UnknownGroup(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")

	form := url.Values{"text": {"orphan"}, "groupId": {"999"}}
	rr := app.postForm("/create/", form, app.authCookie(t, author))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, dto.ErrorCodeInvalidRequest, decodeError(t, rr).Code)
	assert.Nil(t, app.posts.byText("orphan"))
}

func TestCreatePost_WithImage(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	content := []byte("GIF89a tiny image")

	rr := app.postMultipart(t, "/create/", map[string]string{"text": "with picture"}, "small.gif", content, app.authCookie(t, author))
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/profile/leo/", rr.Header().Get("Location"))

	stored := app.posts.byText("with picture")
	require.NotNil(t, stored)
	require.NotNil(t, stored.ImageURL)
	assert.Contains(t, *stored.ImageURL, "/media/posts/")

	fullPath := app.storage.GetFullPath(*stored.ImageURL)
	require.NotEmpty(t, fullPath)
	saved, err := os.ReadFile(fullPath)
	require.NoError(t, err)
	assert.Equal(t, content, saved)
}

func TestCreatePost_RejectsUnsupportedImage(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")

	rr := app.postMultipart(t, "/create/", map[string]string{"text": "with attachment"}, "notes.txt", []byte("not an image"), app.authCookie(t, author))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, decodeError(t, rr).Code)
	assert.Nil(t, app.posts.byText("with attachment"))
}

func TestEditForm_AuthorSeesPrefilledForm(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	prose := app.createGroup(t, "Classic prose", "classic-prose")
	post := app.createPost(t, author, prose, "draft text")

	rr := app.get(fmt.Sprintf("/posts/%d/edit/", post.ID), app.authCookie(t, author))
	require.Equal(t, http.StatusOK, rr.Code)

	form := decodeData[dto.PostFormResponse](t, rr)
	assert.True(t, form.IsEdit)
	require.NotNil(t, form.Post)
	assert.Equal(t, "draft text", form.Post.Text)
	require.NotNil(t, form.Post.Group)
	assert.Equal(t, prose.ID, form.Post.Group.ID)
}

func TestEditForm_NonAuthorIsRedirectedToDetail(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	other := app.createUser(t, "fyodor")
	post := app.createPost(t, author, nil, "leo's own words")

	rr := app.get(fmt.Sprintf("/posts/%d/edit/", post.ID), app.authCookie(t, other))
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), rr.Header().Get("Location"))
}

func TestEditPost(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	prose := app.createGroup(t, "Classic prose", "classic-prose")
	poetry := app.createGroup(t, "Poetry", "poetry")
	post := app.createPost(t, author, prose, "rough draft")
	originalPubDate := post.PubDate

	form := url.Values{"text": {"polished version"}, "groupId": {fmt.Sprint(poetry.ID)}}
	rr := app.postForm(fmt.Sprintf("/posts/%d/edit/", post.ID), form, app.authCookie(t, author))
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), rr.Header().Get("Location"))

	updated, err := app.posts.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "polished version", updated.Text)
	require.NotNil(t, updated.GroupID)
	assert.Equal(t, poetry.ID, *updated.GroupID)
	assert.Equal(t, author.ID, updated.AuthorID)
	assert.True(t, updated.PubDate.Equal(originalPubDate))
}

func TestEditPost_NonAuthorLeavesPostUnchanged(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	other := app.createUser(t, "fyodor")
	post := app.createPost(t, author, nil, "original words")

	form := url.Values{"text": {"vandalized"}}
	rr := app.postForm(fmt.Sprintf("/posts/%d/edit/", post.ID), form, app.authCookie(t, other))
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), rr.Header().Get("Location"))

	kept, err := app.posts.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original words", kept.Text)
	assert.Equal(t, author.ID, kept.AuthorID)
}

func TestEditPost_GuestIsRedirectedToLogin(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")
	post := app.createPost(t, author, nil, "untouchable")

	rr := app.get(fmt.Sprintf("/posts/%d/edit/", post.ID))
	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, fmt.Sprintf("/auth/login/?next=/posts/%d/edit/", post.ID), rr.Header().Get("Location"))
}

func TestEditPost_ReplacingImageRemovesOldFile(t *testing.T) {
	app := newTestApp(t)
	author := app.createUser(t, "leo")

	rr := app.postMultipart(t, "/create/", map[string]string{"text": "illustrated"}, "old.gif", []byte("GIF89a old"), app.authCookie(t, author))
	require.Equal(t, http.StatusFound, rr.Code)

	stored := app.posts.byText("illustrated")
	require.NotNil(t, stored)
	require.NotNil(t, stored.ImageURL)
	oldPath := app.storage.GetFullPath(*stored.ImageURL)
	require.FileExists(t, oldPath)

	rr = app.postMultipart(t, fmt.Sprintf("/posts/%d/edit/", stored.ID), map[string]string{"text": "illustrated"}, "new.png", []byte("PNG new"), app.authCookie(t, author))
	require.Equal(t, http.StatusFound, rr.Code)

	updated, err := app.posts.GetByID(context.Background(), stored.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.ImageURL)
	assert.NotEqual(t, *stored.ImageURL, *updated.ImageURL)

	assert.NoFileExists(t, oldPath)
	assert.FileExists(t, app.storage.GetFullPath(*updated.ImageURL))
}

func TestIndexPageCache_ServesStaleListing(t *testing.T) {
	cache := middleware.NewPageCache(pagecache.NewMemoryStore(), 20*time.Second)
	app := newTestAppWithCache(t, cache)
	author := app.createUser(t, "leo")
	app.createPost(t, author, nil, "already published")

	first := app.get("/")
	require.Equal(t, http.StatusOK, first.Code)

	app.createPost(t, author, nil, "published moments later")

	second := app.get("/")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.NotContains(t, second.Body.String(), "published moments later")

	// Only the index route sits behind the cache
	profile := app.get("/profile/leo/")
	require.Equal(t, http.StatusOK, profile.Code)
	assert.Contains(t, profile.Body.String(), "published moments later")
}
