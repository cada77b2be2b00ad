package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Caoophuongg/quickcv/internal/config"
	"github.com/Caoophuongg/quickcv/internal/server/middleware"
	"github.com/Caoophuongg/quickcv/internal/storage"
	"github.com/Caoophuongg/quickcv/internal/types"
)

func testPasswordConfig() *config.PasswordConfig {
	return &config.PasswordConfig{
		BcryptCost: 10, // Lower cost for faster tests
		Pepper:     "",
	}
}

func testJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: 24,
	})
}

func testUploadStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.New(t.TempDir(), "/uploads")
	require.NoError(t, err)
	return store
}

func newTestAuthHandler(t *testing.T) (*AuthHandler, *fakeUserStore) {
	t.Helper()
	users := newFakeUserStore()
	service := NewUserService(users, testPasswordConfig(), testUploadStore(t))
	return NewAuthHandler(service, testJWTService()), users
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withSession(r *http.Request, session types.Session) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.SessionKey(), session)
	return r.WithContext(ctx)
}

func TestRegister_Success(t *testing.T) {
	handler, _ := newTestAuthHandler(t)

	req := jsonRequest(t, "POST", "/api/auth/register", types.RegisterRequest{
		Email:           "nguyen@example.com",
		Password:        "Secret1!",
		ConfirmPassword: "Secret1!",
		FirstName:       "Văn A",
		LastName:        "Nguyễn",
	})
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "nguyen@example.com", resp.User.Email)
	assert.Equal(t, types.RoleUser, resp.User.Role)
}

func TestRegister_InvalidJSON(t *testing.T) {
	handler, _ := newTestAuthHandler(t)

	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader([]byte("invalid json")))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	handler, users := newTestAuthHandler(t)
	users.addUser("nguyen@example.com", "x", types.RoleUser)

	req := jsonRequest(t, "POST", "/api/auth/register", types.RegisterRequest{
		Email:           "nguyen@example.com",
		Password:        "Secret1!",
		ConfirmPassword: "Secret1!",
	})
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_WeakPassword(t *testing.T) {
	handler, _ := newTestAuthHandler(t)

	req := jsonRequest(t, "POST", "/api/auth/register", types.RegisterRequest{
		Email:           "nguyen@example.com",
		Password:        "secretpassword",
		ConfirmPassword: "secretpassword",
	})
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Fields)
}

func TestRegister_ConfirmMismatch(t *testing.T) {
	handler, _ := newTestAuthHandler(t)

	req := jsonRequest(t, "POST", "/api/auth/register", types.RegisterRequest{
		Email:           "nguyen@example.com",
		Password:        "Secret1!",
		ConfirmPassword: "Other1!!",
	})
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_Success(t *testing.T) {
	handler, users := newTestAuthHandler(t)
	hash, err := testPasswordConfig().HashPassword("Secret1!")
	require.NoError(t, err)
	users.addUser("nguyen@example.com", hash, types.RoleUser)

	req := jsonRequest(t, "POST", "/api/auth/login", types.LoginRequest{
		Email:    "nguyen@example.com",
		Password: "Secret1!",
	})
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	handler, users := newTestAuthHandler(t)
	hash, err := testPasswordConfig().HashPassword("Secret1!")
	require.NoError(t, err)
	users.addUser("nguyen@example.com", hash, types.RoleUser)

	wrongPw := jsonRequest(t, "POST", "/api/auth/login", types.LoginRequest{
		Email:    "nguyen@example.com",
		Password: "Wrong1!!",
	})
	recPw := httptest.NewRecorder()
	handler.Login(recPw, wrongPw)

	unknown := jsonRequest(t, "POST", "/api/auth/login", types.LoginRequest{
		Email:    "nobody@example.com",
		Password: "Secret1!",
	})
	recEmail := httptest.NewRecorder()
	handler.Login(recEmail, unknown)

	assert.Equal(t, http.StatusUnauthorized, recPw.Code)
	assert.Equal(t, http.StatusUnauthorized, recEmail.Code)
	// Identical bodies so the two failure causes cannot be told apart.
	assert.Equal(t, recPw.Body.String(), recEmail.Body.String())
}

func TestMe_ReturnsProfile(t *testing.T) {
	handler, users := newTestAuthHandler(t)
	u := users.addUser("nguyen@example.com", "x", types.RoleUser)

	req := withSession(httptest.NewRequest("GET", "/api/auth/me", nil), types.Session{UserID: u.ID, Role: u.Role})
	rec := httptest.NewRecorder()
	handler.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, u.ID, got.ID)
}

func TestMe_NoSession(t *testing.T) {
	handler, _ := newTestAuthHandler(t)

	rec := httptest.NewRecorder()
	handler.Me(rec, httptest.NewRequest("GET", "/api/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	handler, users := newTestAuthHandler(t)
	hash, err := testPasswordConfig().HashPassword("Secret1!")
	require.NoError(t, err)
	u := users.addUser("nguyen@example.com", hash, types.RoleUser)

	req := withSession(jsonRequest(t, "POST", "/api/auth/change-password", types.ChangePasswordRequest{
		CurrentPassword: "Wrong1!!",
		NewPassword:     "Fresh1!!",
	}), types.Session{UserID: u.ID, Role: u.Role})
	rec := httptest.NewRecorder()
	handler.ChangePassword(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePassword_Success(t *testing.T) {
	handler, users := newTestAuthHandler(t)
	pwcfg := testPasswordConfig()
	hash, err := pwcfg.HashPassword("Secret1!")
	require.NoError(t, err)
	u := users.addUser("nguyen@example.com", hash, types.RoleUser)

	req := withSession(jsonRequest(t, "POST", "/api/auth/change-password", types.ChangePasswordRequest{
		CurrentPassword: "Secret1!",
		NewPassword:     "Fresh1!!",
	}), types.Session{UserID: u.ID, Role: u.Role})
	rec := httptest.NewRecorder()
	handler.ChangePassword(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, pwcfg.VerifyPassword("Fresh1!!", users.hashes[u.ID]))
}

func TestUpdateProfile_TrimsNames(t *testing.T) {
	handler, users := newTestAuthHandler(t)
	u := users.addUser("nguyen@example.com", "x", types.RoleUser)

	req := withSession(jsonRequest(t, "PATCH", "/api/auth/profile", types.UpdateProfileRequest{
		FirstName: "  Văn A  ",
		LastName:  " Nguyễn ",
	}), types.Session{UserID: u.ID, Role: u.Role})
	rec := httptest.NewRecorder()
	handler.UpdateProfile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Văn A", got.FirstName)
	assert.Equal(t, "Nguyễn", got.LastName)
}
