package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/mocks"
	"github.com/veleda/studyflow/internal/service/auth"
)

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func stubJWT() *auth.MockJWTService {
	return &auth.MockJWTService{
		GenerateTokenFn: func(ctx context.Context, userID uuid.UUID) (string, error) {
			return "access-token", nil
		},
		GenerateRefreshTokenFn: func(ctx context.Context, userID uuid.UUID) (string, error) {
			return "refresh-token", nil
		},
	}
}

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	var created *domain.User
	handler := NewAuthHandler(
		&mocks.UserStore{
			CreateFn: func(ctx context.Context, user *domain.User) error {
				created = user
				return nil
			},
		},
		stubJWT(),
		auth.NewBcryptVerifier(),
	)

	req := jsonRequest(t, http.MethodPost, "/api/auth/register",
		RegisterRequest{Email: "student@example.com", Password: "a-long-enough-password"})
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, created)
	assert.Equal(t, "student@example.com", created.Email)
	assert.NotEmpty(t, created.HashedPassword)

	var resp AuthResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, created.ID, resp.UserID)
	assert.Equal(t, "access-token", resp.AccessToken)
	assert.Equal(t, "refresh-token", resp.RefreshToken)
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	t.Parallel()

	handler := NewAuthHandler(&mocks.UserStore{}, stubJWT(), auth.NewBcryptVerifier())

	req := jsonRequest(t, http.MethodPost, "/api/auth/register",
		RegisterRequest{Email: "student@example.com", Password: "short"})
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("student@example.com", "a-long-enough-password")
	require.NoError(t, err)

	handler := NewAuthHandler(
		&mocks.UserStore{
			GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
				return user, nil
			},
		},
		stubJWT(),
		auth.NewBcryptVerifier(),
	)

	req := jsonRequest(t, http.MethodPost, "/api/auth/login",
		LoginRequest{Email: "student@example.com", Password: "not-the-password"})
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	t.Parallel()

	handler := NewAuthHandler(&mocks.UserStore{}, stubJWT(), auth.NewBcryptVerifier())

	req := jsonRequest(t, http.MethodPost, "/api/auth/login",
		LoginRequest{Email: "nobody@example.com", Password: "whatever-password"})
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	jwt := stubJWT()
	jwt.ValidateRefreshTokenFn = func(ctx context.Context, tokenString string) (*auth.Claims, error) {
		require.Equal(t, "old-refresh-token", tokenString)
		return &auth.Claims{UserID: userID}, nil
	}

	handler := NewAuthHandler(&mocks.UserStore{}, jwt, auth.NewBcryptVerifier())

	req := jsonRequest(t, http.MethodPost, "/api/auth/refresh",
		RefreshTokenRequest{RefreshToken: "old-refresh-token"})
	rec := httptest.NewRecorder()
	handler.RefreshToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RefreshTokenResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "access-token", resp.AccessToken)
	assert.Equal(t, "refresh-token", resp.RefreshToken)
}

func TestAuthHandler_RefreshToken_Expired(t *testing.T) {
	t.Parallel()

	jwt := stubJWT()
	jwt.ValidateRefreshTokenFn = func(ctx context.Context, tokenString string) (*auth.Claims, error) {
		return nil, auth.ErrExpiredToken
	}

	handler := NewAuthHandler(&mocks.UserStore{}, jwt, auth.NewBcryptVerifier())

	req := jsonRequest(t, http.MethodPost, "/api/auth/refresh",
		RefreshTokenRequest{RefreshToken: "stale"})
	rec := httptest.NewRecorder()
	handler.RefreshToken(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
