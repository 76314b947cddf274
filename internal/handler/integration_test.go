package handler_test

import (
	"bufio"
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/handler"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/service"
)

type swapResponse struct {
	Swap handler.SwapDTO `json:"swap"`
}

func TestIntegration_SwapLifecycle(t *testing.T) {
	env := newTestEnv(t)

	alice, aliceDTO := env.register(t, "Alice Smith", "alice@example.com", skillJSON("Go", "Programming"))
	bob, bobDTO := env.register(t, "Bob Jones", "bob@example.com", skillJSON("Guitar", "Music"))
	require.Len(t, aliceDTO.SkillsOffered, 1)
	require.NotEmpty(t, aliceDTO.SkillsOffered[0].ID)

	// 1. Alice finds Bob in the directory.
	var browse struct {
		Users []handler.UserDTO `json:"users"`
	}
	resp := env.do(t, alice, http.MethodGet, "/api/users?q=guitar", nil, &browse)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, browse.Users, 1)
	assert.Equal(t, bobDTO.ID, browse.Users[0].ID)
	assert.Empty(t, browse.Users[0].Email, "other members' emails are hidden")

	// 2. Alice proposes a swap.
	var created swapResponse
	resp = env.do(t, alice, http.MethodPost, "/api/swaps", map[string]string{
		"toUserId":         bobDTO.ID,
		"offeredSkillId":   aliceDTO.SkillsOffered[0].ID,
		"requestedSkillId": bobDTO.SkillsOffered[0].ID,
		"message":          "Go for guitar?",
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", string(created.Swap.Status))
	swapPath := "/api/swaps/" + created.Swap.ID

	// 3. Alice cannot accept her own request.
	var errResp errorBody
	resp = env.do(t, alice, http.MethodPost, swapPath+"/accept", nil, &errResp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "AUTHORIZATION", errResp.Type)

	// 4. Bob accepts, then completes.
	var accepted swapResponse
	resp = env.do(t, bob, http.MethodPost, swapPath+"/accept", nil, &accepted)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "accepted", string(accepted.Swap.Status))
	assert.NotNil(t, accepted.Swap.ResponseDate)

	resp = env.do(t, bob, http.MethodPost, swapPath+"/accept", nil, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "accepting twice is an invalid transition")

	var completed swapResponse
	resp = env.do(t, alice, http.MethodPost, swapPath+"/complete", nil, &completed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", string(completed.Swap.Status))
	assert.NotNil(t, completed.Swap.CompletedDate)

	// 5. Alice rates Bob, once.
	resp = env.do(t, alice, http.MethodPost, swapPath+"/rating", map[string]any{"rating": 4, "feedback": "Patient teacher"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = env.do(t, alice, http.MethodPost, swapPath+"/rating", map[string]any{"rating": 5}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var profile struct {
		User    handler.UserDTO     `json:"user"`
		Ratings []handler.RatingDTO `json:"ratings"`
	}
	resp = env.do(t, alice, http.MethodGet, "/api/users/"+bobDTO.ID, nil, &profile)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, profile.User.TotalRatings)
	assert.InDelta(t, 4.0, profile.User.Rating, 0.001)
	require.Len(t, profile.Ratings, 1)
	assert.Equal(t, "Patient teacher", profile.Ratings[0].Feedback)

	// 6. Both see the request in their lists.
	var list struct {
		Swaps []handler.SwapDTO `json:"swaps"`
	}
	env.do(t, bob, http.MethodGet, "/api/swaps", nil, &list)
	require.Len(t, list.Swaps, 1)

	// 7. The admin bans Bob, whose session stops working.
	admin := env.loginAdmin(t)
	resp = env.do(t, admin, http.MethodPost, "/api/admin/users/"+bobDTO.ID+"/ban", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, bob, http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, newClient(t), http.MethodPost, "/api/auth/login", map[string]string{
		"email": "bob@example.com", "password": testPassword,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var stats struct {
		Stats map[string]int `json:"stats"`
	}
	env.do(t, admin, http.MethodGet, "/api/admin/stats", nil, &stats)
	assert.Equal(t, 1, stats.Stats["bannedUsers"])
	assert.Equal(t, 1, stats.Stats["completedSwaps"])
}

func TestIntegration_WithdrawPending(t *testing.T) {
	env := newTestEnv(t)
	alice, aliceDTO := env.register(t, "Alice Smith", "alice@example.com", skillJSON("Go", "Programming"))
	bob, bobDTO := env.register(t, "Bob Jones", "bob@example.com", skillJSON("Guitar", "Music"))

	var created swapResponse
	env.do(t, alice, http.MethodPost, "/api/swaps", map[string]string{
		"toUserId":         bobDTO.ID,
		"offeredSkillId":   aliceDTO.SkillsOffered[0].ID,
		"requestedSkillId": bobDTO.SkillsOffered[0].ID,
	}, &created)
	swapPath := "/api/swaps/" + created.Swap.ID

	resp := env.do(t, bob, http.MethodDelete, swapPath, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "only the sender withdraws")

	resp = env.do(t, alice, http.MethodDelete, swapPath, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, alice, http.MethodGet, swapPath, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRegister_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Alice Smith", "alice@example.com")

	tests := []struct {
		name      string
		body      any
		wantCode  int
		wantField string
	}{
		{"duplicate email", registration("Other Alice", "alice@example.com"), http.StatusConflict, ""},
		{"bad email", registration("Carol King", "carol"), http.StatusBadRequest, "email"},
		{"bad name", registration("C4rol!", "carol@example.com"), http.StatusBadRequest, "name"},
		{"malformed body", "not an object", http.StatusBadRequest, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out errorBody
			resp := env.do(t, newClient(t), http.MethodPost, "/api/auth/register", tc.body, &out)

			assert.Equal(t, tc.wantCode, resp.StatusCode)
			assert.NotEmpty(t, out.Error)
			if tc.wantField != "" {
				assert.Equal(t, tc.wantField, out.Field)
			}
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	var out errorBody
	resp := env.do(t, newClient(t), http.MethodPost, "/api/auth/login", map[string]string{
		"email": "nobody@example.com", "password": testPassword,
	}, &out)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password.", out.Error)
}

func TestLogin_RateLimited(t *testing.T) {
	limiter := service.NewTokenBucket(0.001, 2)
	t.Cleanup(limiter.Close)
	env := newTestEnv(t, func(d *handler.Deps) { d.LoginLimiter = limiter })

	creds := map[string]string{"email": "nobody@example.com", "password": testPassword}
	for range 2 {
		resp := env.do(t, newClient(t), http.MethodPost, "/api/auth/login", creds, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	var out errorBody
	resp := env.do(t, newClient(t), http.MethodPost, "/api/auth/login", creds, &out)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
	assert.Equal(t, "RATE_LIMIT", out.Type)
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t)
	c, _ := env.register(t, "Alice Smith", "alice@example.com")

	resp := env.do(t, c, http.MethodGet, "/api/auth/me", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, c, http.MethodPost, "/api/auth/logout", nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, c, http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	c, _ := env.register(t, "Alice Smith", "alice@example.com")

	var out userResponse
	resp := env.do(t, c, http.MethodPatch, "/api/profile", map[string]any{
		"location":     "Lisbon",
		"availability": []string{"Weekdays Evening"},
		"isPublic":     false,
	}, &out)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Alice Smith", out.User.Name)
	assert.Equal(t, "Lisbon", out.User.Location)
	assert.False(t, out.User.IsPublic)

	resp = env.do(t, c, http.MethodPatch, "/api/profile", map[string]any{
		"availability": []string{"Midnight"},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPrivateProfileHidden(t *testing.T) {
	env := newTestEnv(t)
	alice, _ := env.register(t, "Alice Smith", "alice@example.com")
	bob, bobDTO := env.register(t, "Bob Jones", "bob@example.com")
	env.do(t, bob, http.MethodPatch, "/api/profile", map[string]any{"isPublic": false}, nil)

	resp := env.do(t, alice, http.MethodGet, "/api/users/"+bobDTO.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, env.loginAdmin(t), http.MethodGet, "/api/users/"+bobDTO.ID, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUploadPhoto(t *testing.T) {
	env := newTestEnv(t)
	c, _ := env.register(t, "Alice Smith", "alice@example.com")

	upload := func(data []byte) *http.Response {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("photo", "me.png")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		resp, err := c.Post(env.srv.URL+"/api/profile/photo", mw.FormDataContentType(), &buf)
		require.NoError(t, err)
		resp.Body.Close()
		return resp
	}

	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	assert.Equal(t, http.StatusOK, upload(png).StatusCode)
	assert.Equal(t, http.StatusBadRequest, upload([]byte("plain text is not an image")).StatusCode)

	var me userResponse
	env.do(t, c, http.MethodGet, "/api/auth/me", nil, &me)
	assert.True(t, strings.HasPrefix(me.User.ProfilePhoto, "data:image/png;base64,"))
}

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	member, _ := env.register(t, "Alice Smith", "alice@example.com")

	for _, path := range []string{"/api/admin/stats", "/api/admin/users", "/api/admin/swaps", "/api/admin/messages"} {
		resp := env.do(t, member, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
	}
	resp := env.do(t, member, http.MethodPost, "/api/admin/reset", nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminReset(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Alice Smith", "alice@example.com")
	admin := env.loginAdmin(t)

	resp := env.do(t, admin, http.MethodPost, "/api/admin/reset", nil, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Len(t, env.store.Users(), 1)
}

func TestAdminErrorsLog(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAdmin(t)
	env.do(t, admin, http.MethodGet, "/api/users/missing", nil, nil)

	var out struct {
		Errors []map[string]any `json:"errors"`
	}
	resp := env.do(t, admin, http.MethodGet, "/api/admin/errors", nil, &out)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, out.Errors)
	assert.Equal(t, "NOT_FOUND", out.Errors[len(out.Errors)-1]["type"])
}

func TestMessages_ListAndStream(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAdmin(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, env.srv.URL+"/api/messages/stream", nil)
	require.NoError(t, err)
	stream, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer stream.Body.Close()
	require.Equal(t, http.StatusOK, stream.StatusCode)
	assert.Contains(t, stream.Header.Get("Content-Type"), "text/event-stream")

	resp := env.do(t, admin, http.MethodPost, "/api/admin/messages", map[string]any{
		"title": "Hack night", "content": "Friday at eight",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sawSelector, sawTitle bool
	scanner := bufio.NewScanner(stream.Body)
	for scanner.Scan() && !(sawSelector && sawTitle) {
		line := scanner.Text()
		sawSelector = sawSelector || strings.Contains(line, "admin-messages")
		sawTitle = sawTitle || strings.Contains(line, "Hack night")
	}
	assert.True(t, sawSelector, "patch targets the message container")
	assert.True(t, sawTitle, "patch carries the new banner")

	var list struct {
		Messages []handler.MessageDTO `json:"messages"`
	}
	env.do(t, newClient(t), http.MethodGet, "/api/messages", nil, &list)
	require.Len(t, list.Messages, 1)
	assert.Equal(t, "Hack night", list.Messages[0].Title)
}

func TestBroadcast_Validation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.loginAdmin(t)

	resp := env.do(t, admin, http.MethodPost, "/api/admin/messages", map[string]any{"title": " ", "content": "x"}, nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
