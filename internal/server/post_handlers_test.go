package server

import (
	"net/http"
	"testing"

	"vibehub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePost_TogglesBothWays(t *testing.T) {
	s, app := newTestServer(t, nil)
	author := createVerifiedUser(t, s, "author", false)
	viewer := createVerifiedUser(t, s, "viewer", false)
	require.NoError(t, s.db.Create(&models.Post{ID: 1, Content: "hello", AuthorID: author.ID}).Error)

	token := accessTokenFor(t, s, viewer)

	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/posts/1/like", nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "added", decodeBody(t, resp)["state"])

	resp, err = app.Test(authedRequest(t, http.MethodPost, "/api/posts/1/like", nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "removed", decodeBody(t, resp)["state"])
}

func TestSavePost_TogglesBothWays(t *testing.T) {
	s, app := newTestServer(t, nil)
	author := createVerifiedUser(t, s, "author", false)
	viewer := createVerifiedUser(t, s, "viewer", false)
	require.NoError(t, s.db.Create(&models.Post{ID: 1, Content: "hello", AuthorID: author.ID}).Error)

	token := accessTokenFor(t, s, viewer)

	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/posts/1/save", nil, token))
	require.NoError(t, err)
	assert.Equal(t, "added", decodeBody(t, resp)["state"])

	resp, err = app.Test(authedRequest(t, http.MethodPost, "/api/posts/1/save", nil, token))
	require.NoError(t, err)
	assert.Equal(t, "removed", decodeBody(t, resp)["state"])
}

func TestGetPost_PrivateAuthorLooksLikeMissing(t *testing.T) {
	s, app := newTestServer(t, nil)
	author := createVerifiedUser(t, s, "hermit", true)
	stranger := createVerifiedUser(t, s, "stranger", false)
	follower := createVerifiedUser(t, s, "friend", false)
	require.NoError(t, s.db.Create(&models.Post{ID: 1, Content: "secret", AuthorID: author.ID}).Error)
	require.NoError(t, s.db.Create(&models.FollowEdge{
		FollowerID: follower.ID, TargetID: author.ID, Status: models.ConnectionStatusAccepted,
	}).Error)

	// Anonymous viewer: 404, not 403.
	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/posts/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(authedRequest(t, http.MethodGet, "/api/posts/1", nil, accessTokenFor(t, s, stranger)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(authedRequest(t, http.MethodGet, "/api/posts/1", nil, accessTokenFor(t, s, follower)))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "secret", decodeBody(t, resp)["content"])
}

func TestGetHomeFeed_AnonymousSeesPublicOnly(t *testing.T) {
	s, app := newTestServer(t, nil)
	open := createVerifiedUser(t, s, "open", false)
	hermit := createVerifiedUser(t, s, "hermit", true)
	require.NoError(t, s.db.Create(&models.Post{ID: 1, Content: "public post", AuthorID: open.ID}).Error)
	require.NoError(t, s.db.Create(&models.Post{ID: 2, Content: "private post", AuthorID: hermit.ID}).Error)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/feed/home", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	posts, ok := body["posts"].([]interface{})
	require.True(t, ok)
	require.Len(t, posts, 1)
	post := posts[0].(map[string]interface{})
	assert.Equal(t, "public post", post["content"])
}

func TestGetHomeFeed_BadPagingFallsBackToDefaults(t *testing.T) {
	s, app := newTestServer(t, nil)
	open := createVerifiedUser(t, s, "open", false)
	require.NoError(t, s.db.Create(&models.Post{Content: "hello", AuthorID: open.ID}).Error)

	// Non-positive page/limit are normalized, never rejected.
	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/feed/home?page=0&limit=-5", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(20), body["limit"])
	posts, ok := body["posts"].([]interface{})
	require.True(t, ok)
	assert.Len(t, posts, 1)
}

func TestCreatePost_RoundTrip(t *testing.T) {
	s, app := newTestServer(t, nil)
	user := createVerifiedUser(t, s, "author", false)
	token := accessTokenFor(t, s, user)

	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/posts/", fiber.Map{
		"content":   "first!",
		"image_url": "  https://img.example.com/a.png  ",
	}, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "first!", body["content"])
	assert.Equal(t, "https://img.example.com/a.png", body["image_url"])
}

func TestCreatePost_ImageAndVideoTogetherRejected(t *testing.T) {
	s, app := newTestServer(t, nil)
	user := createVerifiedUser(t, s, "author", false)

	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/posts/", fiber.Map{
		"content":   "both",
		"image_url": "https://img.example.com/a.png",
		"video_url": "https://vid.example.com/a.mp4",
	}, accessTokenFor(t, s, user)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdatePost_OnlyTheAuthorMay(t *testing.T) {
	s, app := newTestServer(t, nil)
	author := createVerifiedUser(t, s, "author", false)
	other := createVerifiedUser(t, s, "other", false)
	require.NoError(t, s.db.Create(&models.Post{ID: 1, Content: "original", AuthorID: author.ID}).Error)

	resp, err := app.Test(authedRequest(t, http.MethodPut, "/api/posts/1", fiber.Map{
		"content": "hijacked",
	}, accessTokenFor(t, s, other)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(authedRequest(t, http.MethodPut, "/api/posts/1", fiber.Map{
		"content": "edited",
	}, accessTokenFor(t, s, author)))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "edited", decodeBody(t, resp)["content"])
}

func TestGetPost_MalformedIDIsBadRequest(t *testing.T) {
	_, app := newTestServer(t, nil)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/posts/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid ID", body["error"])
}

func TestCommentFlow_CreateListLike(t *testing.T) {
	s, app := newTestServer(t, nil)
	author := createVerifiedUser(t, s, "author", false)
	viewer := createVerifiedUser(t, s, "viewer", false)
	require.NoError(t, s.db.Create(&models.Post{ID: 1, Content: "hello", AuthorID: author.ID}).Error)

	token := accessTokenFor(t, s, viewer)

	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/posts/1/comments", fiber.Map{
		"content": "nice one",
	}, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	assert.Equal(t, "nice one", created["content"])

	// Comments are readable anonymously on public posts.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/posts/1/comments", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decodeBody(t, resp)
	comments, ok := page["comments"].([]interface{})
	require.True(t, ok)
	require.Len(t, comments, 1)

	commentID := created["id"].(float64)
	resp, err = app.Test(authedRequest(t, http.MethodPost,
		"/api/comments/"+itoa(uint(commentID))+"/like", nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "added", decodeBody(t, resp)["state"])
}

func TestToggleFollow_PrivateTargetPends(t *testing.T) {
	s, app := newTestServer(t, nil)
	hermit := createVerifiedUser(t, s, "hermit", true)
	follower := createVerifiedUser(t, s, "follower", false)

	token := accessTokenFor(t, s, follower)
	path := "/api/users/" + itoa(hermit.ID) + "/follow"

	resp, err := app.Test(authedRequest(t, http.MethodPost, path, nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "added", body["state"])
	assert.Equal(t, string(models.ConnectionStatusPending), body["status"])

	// The same endpoint cancels the request.
	resp, err = app.Test(authedRequest(t, http.MethodPost, path, nil, token))
	require.NoError(t, err)
	body = decodeBody(t, resp)
	assert.Equal(t, "removed", body["state"])
}

func TestProtectedRoutes_RequireAuth(t *testing.T) {
	_, app := newTestServer(t, nil)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/posts/1/like", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
