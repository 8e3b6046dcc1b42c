package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"currency-wallet/internal/core/domain"
	"currency-wallet/internal/core/ports"
	"currency-wallet/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupAuthService(t *testing.T) (
	*AuthServiceImpl,
	*mocks.MockAccountRepository,
	*mocks.MockHashService,
	*mocks.MockTokenService,
	*gomock.Controller,
) {
	ctrl := gomock.NewController(t)
	accountRepo := mocks.NewMockAccountRepository(ctrl)
	hashSvc := mocks.NewMockHashService(ctrl)
	tokenSvc := mocks.NewMockTokenService(ctrl)

	svc := NewAuthService(accountRepo, hashSvc, tokenSvc)
	return svc, accountRepo, hashSvc, tokenSvc, ctrl
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, accountRepo, hashSvc, _, ctrl := setupAuthService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	req := ports.RegisterRequest{
		Email:    "new@example.com",
		Phone:    "+919876543210",
		Password: "StrongP@ss123",
	}

	accountRepo.EXPECT().GetByEmail(ctx, req.Email).Return(nil, nil)
	hashSvc.EXPECT().Hash(req.Password).Return("$argon2id$hashed", nil)
	accountRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, a *domain.Account) error {
			assert.Equal(t, int64(0), a.Balance, "new accounts start empty")
			assert.Equal(t, "$argon2id$hashed", a.PasswordHash)
			return nil
		})

	account, err := svc.Register(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, req.Email, account.Email)
	assert.NotEqual(t, uuid.Nil, account.ID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, accountRepo, _, _, ctrl := setupAuthService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	req := ports.RegisterRequest{Email: "taken@example.com", Phone: "123456789", Password: "password123"}

	accountRepo.EXPECT().GetByEmail(ctx, req.Email).Return(&domain.Account{ID: uuid.New()}, nil)

	account, err := svc.Register(ctx, req)
	assert.Nil(t, account)
	assertAppError(t, err, "AUTH_002")
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, accountRepo, hashSvc, tokenSvc, ctrl := setupAuthService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	accountID := uuid.New()
	expiry := time.Now().Add(24 * time.Hour)

	accountRepo.EXPECT().GetByEmail(ctx, "user@example.com").Return(&domain.Account{
		ID:           accountID,
		Email:        "user@example.com",
		PasswordHash: "$argon2id$stored",
	}, nil)
	hashSvc.EXPECT().Verify("correct-password", "$argon2id$stored").Return(true, nil)
	tokenSvc.EXPECT().Generate(accountID, "user@example.com").Return("jwt-token", expiry, nil)

	token, exp, err := svc.Login(ctx, "user@example.com", "correct-password")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
	assert.Equal(t, expiry, exp)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, accountRepo, _, _, ctrl := setupAuthService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	accountRepo.EXPECT().GetByEmail(ctx, "nobody@example.com").Return(nil, nil)

	_, _, err := svc.Login(ctx, "nobody@example.com", "whatever")
	assertAppError(t, err, "AUTH_001")
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, accountRepo, hashSvc, _, ctrl := setupAuthService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	accountRepo.EXPECT().GetByEmail(ctx, "user@example.com").Return(&domain.Account{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: "$argon2id$stored",
	}, nil)
	hashSvc.EXPECT().Verify("wrong-password", "$argon2id$stored").Return(false, nil)

	_, _, err := svc.Login(ctx, "user@example.com", "wrong-password")
	assertAppError(t, err, "AUTH_001")
}

func TestAuthService_Login_RepoError(t *testing.T) {
	svc, accountRepo, _, _, ctrl := setupAuthService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	accountRepo.EXPECT().GetByEmail(ctx, "user@example.com").Return(nil, errors.New("db down"))

	_, _, err := svc.Login(ctx, "user@example.com", "password")
	assertAppError(t, err, "SYS_001")
}
