package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	carelink "github.com/carelink/carelink-go"
	"github.com/carelink/carelink-go/mock"
)

// ---- helpers ----

func newTestAPI(t *testing.T) (*carelink.Client, *mock.Transport) {
	t.Helper()
	tr := &mock.Transport{}
	api, err := carelink.New(carelink.Config{
		BaseURL:    "https://api.test",
		Transport:  tr,
		RetryDelay: time.Millisecond,
	})
	require.NoError(t, err)
	return api, tr
}

func TestAuthService_LoginInstallsCredentials(t *testing.T) {
	api, tr := newTestAPI(t)
	tr.EnqueueJSON(200, `{"success":true,"data":{"user":{"id":"u1","email":"a@b.com","firstName":"Ada","lastName":"L"},"accessToken":"T1","refreshToken":"R1","expiresIn":900}}`)
	tr.EnqueueJSON(200, `{"success":true,"data":[]}`)

	sess, err := NewAuthService(api).Login(context.Background(), "a@b.com", "x", true)
	require.NoError(t, err)
	require.Equal(t, "T1", sess.AccessToken)
	require.Equal(t, "u1", sess.User.ID)
	require.True(t, api.IsAuthenticated())

	// Login body shape and the bearer on the next call.
	_, err = NewMemberService(api).List(context.Background())
	require.NoError(t, err)

	reqs := tr.Requests()
	require.Len(t, reqs, 2)
	require.Equal(t, "https://api.test/auth/login", reqs[0].URL)
	var body LoginRequest
	require.NoError(t, json.Unmarshal(reqs[0].Body, &body))
	require.Equal(t, LoginRequest{Email: "a@b.com", Password: "x", RememberMe: true}, body)
	require.Empty(t, reqs[0].Header.Get("Authorization"))
	require.Equal(t, "Bearer T1", reqs[1].Header.Get("Authorization"))
}

func TestAuthService_LoginFailureLeavesUnauthenticated(t *testing.T) {
	api, tr := newTestAPI(t)
	tr.EnqueueJSON(403, `{"success":false,"error":{"code":"BAD_CREDENTIALS","message":"wrong password"}}`)

	_, err := NewAuthService(api).Login(context.Background(), "a@b.com", "nope", false)
	require.True(t, carelink.IsKind(err, carelink.KindForbidden))
	require.False(t, api.IsAuthenticated())
}

func TestAuthService_RegisterInstallsCredentials(t *testing.T) {
	api, tr := newTestAPI(t)
	tr.EnqueueJSON(201, `{"success":true,"data":{"user":{"id":"u2","email":"n@b.com"},"accessToken":"T5","refreshToken":"R5"}}`)

	sess, err := NewAuthService(api).Register(context.Background(), RegisterRequest{
		Email: "n@b.com", Password: "pw", FirstName: "New", LastName: "User",
	})
	require.NoError(t, err)
	require.Equal(t, "u2", sess.User.ID)
	require.True(t, api.IsAuthenticated())
}

func TestAuthService_LogoutClearsEvenOnServerError(t *testing.T) {
	api, tr := newTestAPI(t)
	api.SetCredentials("T1", "R1")
	tr.EnqueueJSON(503, `{}`)
	tr.EnqueueJSON(503, `{}`)
	tr.EnqueueJSON(503, `{}`)

	err := NewAuthService(api).Logout(context.Background())
	require.Error(t, err)
	require.False(t, api.IsAuthenticated())
}

func TestAuthService_Logout(t *testing.T) {
	api, tr := newTestAPI(t)
	api.SetCredentials("T1", "R1")
	tr.EnqueueJSON(200, `{"success":true,"data":{}}`)

	require.NoError(t, NewAuthService(api).Logout(context.Background()))
	require.False(t, api.IsAuthenticated())

	reqs := tr.Requests()
	require.Len(t, reqs, 1)
	require.Equal(t, http.MethodPost, reqs[0].Method)
	require.Equal(t, "https://api.test/auth/logout", reqs[0].URL)
}

func TestAuthService_Profile(t *testing.T) {
	api, tr := newTestAPI(t)
	api.SetCredentials("T1", "R1")
	tr.EnqueueJSON(200, `{"success":true,"data":{"id":"u1","email":"a@b.com","role":"care_manager"}}`)

	user, err := NewAuthService(api).Profile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "care_manager", user.Role)
	require.Equal(t, "https://api.test/auth/profile", tr.Requests()[0].URL)
}
