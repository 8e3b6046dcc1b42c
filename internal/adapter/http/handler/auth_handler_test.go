package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"currency-wallet/internal/core/domain"
	"currency-wallet/internal/core/ports"
	"currency-wallet/internal/core/ports/mocks"
	"currency-wallet/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// envelope mirrors the standard success wrapper.
type envelope struct {
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id"`
}

type errorEnvelope struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

func newAuthRouter(t *testing.T) (*gin.Engine, *mocks.MockAuthService, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	authSvc := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(authSvc)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	return r, authSvc, ctrl
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAuthHandler_Register(t *testing.T) {
	r, authSvc, ctrl := newAuthRouter(t)
	defer ctrl.Finish()

	accountID := uuid.New()
	authSvc.EXPECT().Register(gomock.Any(), ports.RegisterRequest{
		Email:    "new@example.com",
		Phone:    "+919876543210",
		Password: "StrongP@ss123",
	}).Return(&domain.Account{ID: accountID, Email: "new@example.com"}, nil)

	w := doJSON(r, http.MethodPost, "/auth/register", gin.H{
		"email":    "new@example.com",
		"phone":    "+919876543210",
		"password": "StrongP@ss123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		AccountID string `json:"account_id"`
		Email     string `json:"email"`
	}
	decodeData(t, w, &resp)
	assert.Equal(t, accountID.String(), resp.AccountID)
	assert.Equal(t, "new@example.com", resp.Email)
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	r, _, ctrl := newAuthRouter(t)
	defer ctrl.Finish()

	w := doJSON(r, http.MethodPost, "/auth/register", gin.H{
		"email":    "not-an-email",
		"phone":    "+919876543210",
		"password": "StrongP@ss123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "WAL_001", decodeError(t, w).ErrorCode)
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	r, _, ctrl := newAuthRouter(t)
	defer ctrl.Finish()

	w := doJSON(r, http.MethodPost, "/auth/register", gin.H{
		"email":    "user@example.com",
		"phone":    "+919876543210",
		"password": "short",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	r, authSvc, ctrl := newAuthRouter(t)
	defer ctrl.Finish()

	authSvc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrEmailExists())

	w := doJSON(r, http.MethodPost, "/auth/register", gin.H{
		"email":    "taken@example.com",
		"phone":    "+919876543210",
		"password": "StrongP@ss123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "AUTH_002", decodeError(t, w).ErrorCode)
}

func TestAuthHandler_Login(t *testing.T) {
	r, authSvc, ctrl := newAuthRouter(t)
	defer ctrl.Finish()

	expiry := time.Now().Add(24 * time.Hour)
	authSvc.EXPECT().Login(gomock.Any(), "user@example.com", "correct-password").
		Return("jwt-token", expiry, nil)

	w := doJSON(r, http.MethodPost, "/auth/login", gin.H{
		"email":    "user@example.com",
		"password": "correct-password",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token  string `json:"token"`
		Expiry int64  `json:"expiry"`
	}
	decodeData(t, w, &resp)
	assert.Equal(t, "jwt-token", resp.Token)
	assert.Equal(t, expiry.Unix(), resp.Expiry)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	r, authSvc, ctrl := newAuthRouter(t)
	defer ctrl.Finish()

	authSvc.EXPECT().Login(gomock.Any(), "user@example.com", "wrong").
		Return("", time.Time{}, apperror.ErrInvalidCredentials())

	w := doJSON(r, http.MethodPost, "/auth/login", gin.H{
		"email":    "user@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_001", decodeError(t, w).ErrorCode)
}

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(context.Context) error { return s.err }
func (s stubChecker) Name() string               { return s.name }

func TestHealthCheck_AllHealthy(t *testing.T) {
	r := gin.New()
	r.GET("/health", HealthCheck(stubChecker{name: "postgres"}, stubChecker{name: "redis"}))

	w := doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status       string `json:"status"`
		Dependencies map[string]struct {
			Status string `json:"status"`
		} `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Dependencies["postgres"].Status)
}

func TestHealthCheck_Degraded(t *testing.T) {
	r := gin.New()
	r.GET("/health", HealthCheck(
		stubChecker{name: "postgres"},
		stubChecker{name: "redis", err: errors.New("connection refused")},
	))

	w := doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Status       string `json:"status"`
		Dependencies map[string]struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "unhealthy", body.Dependencies["redis"].Status)
	assert.Contains(t, body.Dependencies["redis"].Error, "connection refused")
}
