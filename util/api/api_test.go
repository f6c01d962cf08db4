package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decentra-social-network/models"
	"decentra-social-network/store"
	"decentra-social-network/util"
)

// testClient drives the full mux with a remembered session cookie.
type testClient struct {
	t      *testing.T
	mux    http.Handler
	cookie *http.Cookie
}

func newTestServer(t *testing.T) (*Server, *testClient) {
	t.Helper()
	server := NewServer(store.New(), util.NewSessions())
	return server, &testClient{t: t, mux: server.Routes()}
}

func (c *testClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.mux.ServeHTTP(rec, req)
	return rec
}

// signup registers, logs in and creates a profile, keeping the session
// cookie for subsequent calls.
func (c *testClient) signup(email, username string) models.AccountResponse {
	c.t.Helper()

	rec := c.do(http.MethodPost, "/register", models.RegisterRequest{Email: email, Password: "correct horse"})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	var acct models.AccountResponse
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &acct))

	rec = c.do(http.MethodPost, "/login", models.LoginRequest{Email: email, Password: "correct horse"})
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == util.SessionCookieName {
			c.cookie = cookie
		}
	}
	require.NotNil(c.t, c.cookie)

	rec = c.do(http.MethodPost, "/profile", models.ProfileRequest{Username: username})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())

	return acct
}

func TestRegisterLoginAndProfileFlow(t *testing.T) {
	_, client := newTestServer(t)
	acct := client.signup("alice@example.com", "alice")

	rec := client.do(http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile store.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, store.UserID(acct.ID), profile.ID)
	assert.Equal(t, "alice", profile.Username)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	_, client := newTestServer(t)

	rec := client.do(http.MethodPost, "/register", models.RegisterRequest{Email: "not-an-email", Password: "long enough"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = client.do(http.MethodPost, "/register", models.RegisterRequest{Email: "ok@example.com", Password: "short"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	client.signup("dup@example.com", "dupuser")
	rec = client.do(http.MethodPost, "/register", models.RegisterRequest{Email: "dup@example.com", Password: "long enough"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	_, client := newTestServer(t)
	client.signup("alice@example.com", "alice")

	rec := client.do(http.MethodPost, "/login", models.LoginRequest{Email: "alice@example.com", Password: "wrong password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWritesRequireSession(t *testing.T) {
	_, client := newTestServer(t)

	rec := client.do(http.MethodPost, "/posts", models.CreatePostRequest{Content: "hello"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = client.do(http.MethodPost, "/users/1/follow", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	_, client := newTestServer(t)
	client.signup("alice@example.com", "alice")

	rec := client.do(http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = client.do(http.MethodGet, "/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAndFetchPost(t *testing.T) {
	_, client := newTestServer(t)
	client.signup("alice@example.com", "alice")

	rec := client.do(http.MethodPost, "/posts", models.CreatePostRequest{Content: "my first post"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var post store.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	assert.Equal(t, store.PostPublic, post.Visibility)

	rec = client.do(http.MethodGet, "/posts/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = client.do(http.MethodGet, "/posts/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = client.do(http.MethodGet, "/posts/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostValidationMapsTo400(t *testing.T) {
	_, client := newTestServer(t)
	client.signup("alice@example.com", "alice")

	rec := client.do(http.MethodPost, "/posts", models.CreatePostRequest{Content: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = client.do(http.MethodPost, "/posts", models.CreatePostRequest{Content: "ok", Visibility: "everyone"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnlistedPostHiddenFromOthers(t *testing.T) {
	_, client := newTestServer(t)
	client.signup("alice@example.com", "alice")

	rec := client.do(http.MethodPost, "/posts", models.CreatePostRequest{Content: "draft", Visibility: "unlisted"})
	require.Equal(t, http.StatusCreated, rec.Code)

	// The author still sees it.
	rec = client.do(http.MethodGet, "/posts/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Everyone else gets not-found, including anonymous.
	client.cookie = nil
	rec = client.do(http.MethodGet, "/posts/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLikeConflictMapsTo409(t *testing.T) {
	_, client := newTestServer(t)
	client.signup("alice@example.com", "alice")

	rec := client.do(http.MethodPost, "/posts", models.CreatePostRequest{Content: "likeable"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = client.do(http.MethodPost, "/posts/1/like", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = client.do(http.MethodPost, "/posts/1/like", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = client.do(http.MethodDelete, "/posts/1/like", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = client.do(http.MethodDelete, "/posts/1/like", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestFollowPublicUser(t *testing.T) {
	server, client := newTestServer(t)
	client.signup("alice@example.com", "alice")
	aliceCookie := client.cookie

	client.cookie = nil
	bob := client.signup("bob@example.com", "bob")

	client.cookie = aliceCookie
	rec := client.do(http.MethodPost, "/users/2/follow", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var status models.FollowStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "following", status.Status)
	assert.Equal(t, bob.ID, status.TargetUserID)

	rec = client.do(http.MethodGet, "/users/2/is-following", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var following models.IsFollowingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &following))
	assert.True(t, following.Following)

	assert.True(t, server.Store.IsFollowing(1, 2))

	// Self-follow maps to 400, unknown target to 404.
	rec = client.do(http.MethodPost, "/users/1/follow", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = client.do(http.MethodPost, "/users/99/follow", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFollowRequestLifecycleOverHTTP(t *testing.T) {
	_, client := newTestServer(t)
	client.signup("alice@example.com", "alice")
	aliceCookie := client.cookie

	client.cookie = nil
	client.signup("bob@example.com", "bob")
	bobCookie := client.cookie

	rec := client.do(http.MethodPut, "/profile/privacy", models.PrivacySettingsRequest{
		ProfileVisibility: "private",
		ShowSocialGraph:   true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Alice's follow becomes a pending request.
	client.cookie = aliceCookie
	rec = client.do(http.MethodPost, "/users/2/follow", models.FollowUserRequest{Message: "hi"})
	require.Equal(t, http.StatusOK, rec.Code)

	var status models.FollowStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "pending", status.Status)
	require.NotZero(t, status.RequestID)

	// Alice cannot approve her own request.
	rec = client.do(http.MethodPost, "/follow-requests/1/approve", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Bob sees and approves it.
	client.cookie = bobCookie
	rec = client.do(http.MethodGet, "/follow-requests", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []store.FollowRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, "hi", pending[0].Message)

	rec = client.do(http.MethodPost, "/follow-requests/1/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Re-approving a terminal request conflicts.
	rec = client.do(http.MethodPost, "/follow-requests/1/approve", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	client.cookie = aliceCookie
	rec = client.do(http.MethodGet, "/users/2/is-following", nil)
	var following models.IsFollowingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &following))
	assert.True(t, following.Following)
}

func TestFeedOverHTTP(t *testing.T) {
	_, client := newTestServer(t)
	client.signup("alice@example.com", "alice")
	aliceCookie := client.cookie

	client.cookie = nil
	client.signup("bob@example.com", "bob")
	rec := client.do(http.MethodPost, "/posts", models.CreatePostRequest{Content: "from bob"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = client.do(http.MethodPost, "/posts", models.CreatePostRequest{Content: "followers only", Visibility: "followers_only"})
	require.Equal(t, http.StatusCreated, rec.Code)

	client.cookie = aliceCookie
	rec = client.do(http.MethodPost, "/users/2/follow", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = client.do(http.MethodGet, "/feed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var feed []store.FeedEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	assert.Len(t, feed, 2)

	// Anonymous feed carries only the public post.
	client.cookie = nil
	rec = client.do(http.MethodGet, "/feed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	require.Len(t, feed, 1)
	assert.Equal(t, "from bob", feed[0].Post.Content)
}

func TestHiddenGraphMapsTo403(t *testing.T) {
	_, client := newTestServer(t)
	client.signup("alice@example.com", "alice")
	aliceCookie := client.cookie

	rec := client.do(http.MethodPut, "/profile/privacy", models.PrivacySettingsRequest{
		ProfileVisibility: "public",
		ShowSocialGraph:   false,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	client.cookie = nil
	rec = client.do(http.MethodGet, "/users/1/followers", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	client.cookie = aliceCookie
	rec = client.do(http.MethodGet, "/users/1/followers", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitMapsTo429(t *testing.T) {
	server, client := newTestServer(t)
	client.signup("alice@example.com", "alice")

	for i := 0; i < 10; i++ {
		rec := client.do(http.MethodPost, "/posts", models.CreatePostRequest{Content: "filler content"})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	rec := client.do(http.MethodPost, "/posts", models.CreatePostRequest{Content: "one too many"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// The store never saw the rejected post.
	profile, _ := server.Store.GetProfile(1)
	assert.Equal(t, int64(10), profile.PostCount)
}

func TestUsernameAvailability(t *testing.T) {
	_, client := newTestServer(t)
	client.signup("alice@example.com", "alice")

	rec := client.do(http.MethodGet, "/username-available?username=alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.UsernameAvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Available)

	rec = client.do(http.MethodGet, "/username-available?username=brand_new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Available)

	rec = client.do(http.MethodGet, "/username-available?username=ab", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsAndHealth(t *testing.T) {
	_, client := newTestServer(t)
	client.signup("alice@example.com", "alice")
	rec := client.do(http.MethodPost, "/posts", models.CreatePostRequest{Content: "counted"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = client.do(http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats store.PlatformStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalPosts)

	rec = client.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
