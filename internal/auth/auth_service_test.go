package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"leave-tracker/internal/auth"
	autherrors "leave-tracker/internal/auth/errors"
	authMock "leave-tracker/internal/auth/mock"
	"leave-tracker/internal/leave"
	"leave-tracker/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func boolPtr(v bool) *bool { return &v }

func hashed(t *testing.T, password string) string {
	t.Helper()
	pw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(pw)
}

func newTestService(repo auth.Repository, leaves auth.LeaveReader) auth.Service {
	tokens := auth.NewTokenManager(testSecret, time.Hour)
	return auth.NewService(repo, tokens, leaves, auth.WithBcryptCost(bcrypt.MinCost))
}

func pendingUser() *store.User {
	return &store.User{
		ID:             store.IntID(7),
		Name:           "Anudi",
		Role:           store.RoleEmployee,
		PaysheetNumber: "PS-007",
		Email:          "anudi@example.com",
		FirstLogin:     boolPtr(true),
	}
}

func TestService_Verify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	service := newTestService(mockRepo, nil)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByPaysheetAndEmail(ctx, "PS-007", "anudi@example.com").
			Return(pendingUser(), nil)

		res, err := service.Verify(ctx, auth.VerifyRequest{PaysheetNumber: "PS-007", Email: "anudi@example.com"})

		assert.NoError(t, err)
		assert.True(t, res.Verified)
		assert.Equal(t, "Anudi", res.Name)
		assert.Equal(t, "PS-007", res.PaysheetNumber)
	})

	t.Run("Missing fields", func(t *testing.T) {
		_, err := service.Verify(ctx, auth.VerifyRequest{PaysheetNumber: "PS-007", Email: "  "})
		assert.ErrorIs(t, err, autherrors.ErrVerifyFieldsRequired)
	})

	t.Run("Mismatch", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByPaysheetAndEmail(ctx, "PS-007", "other@example.com").
			Return(nil, nil)

		_, err := service.Verify(ctx, auth.VerifyRequest{PaysheetNumber: "PS-007", Email: "other@example.com"})
		assert.ErrorIs(t, err, autherrors.ErrIdentityMismatch)
	})

	t.Run("Already set up", func(t *testing.T) {
		u := pendingUser()
		u.FirstLogin = boolPtr(false)
		u.Password = hashed(t, "secret1")
		mockRepo.EXPECT().
			FindByPaysheetAndEmail(ctx, "PS-007", "anudi@example.com").
			Return(u, nil)

		_, err := service.Verify(ctx, auth.VerifyRequest{PaysheetNumber: "PS-007", Email: "anudi@example.com"})
		assert.ErrorIs(t, err, autherrors.ErrAlreadySetup)
	})

	t.Run("Flag cleared without password counts as pending", func(t *testing.T) {
		u := pendingUser()
		u.FirstLogin = boolPtr(false)
		mockRepo.EXPECT().
			FindByPaysheetAndEmail(ctx, "PS-007", "anudi@example.com").
			Return(u, nil)

		res, err := service.Verify(ctx, auth.VerifyRequest{PaysheetNumber: "PS-007", Email: "anudi@example.com"})
		assert.NoError(t, err)
		assert.True(t, res.Verified)
	})

	t.Run("Flag never written counts as pending", func(t *testing.T) {
		u := pendingUser()
		u.FirstLogin = nil
		mockRepo.EXPECT().
			FindByPaysheetAndEmail(ctx, "PS-007", "anudi@example.com").
			Return(u, nil)

		res, err := service.Verify(ctx, auth.VerifyRequest{PaysheetNumber: "PS-007", Email: "anudi@example.com"})
		assert.NoError(t, err)
		assert.True(t, res.Verified)
	})
}

func TestService_FirstLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	service := newTestService(mockRepo, nil)
	ctx := context.Background()
	req := auth.FirstLoginRequest{PaysheetNumber: "PS-007", Email: "anudi@example.com", Password: "secret1"}

	t.Run("Success", func(t *testing.T) {
		var storedHash string
		mockRepo.EXPECT().
			FindByPaysheetAndEmail(ctx, req.PaysheetNumber, req.Email).
			Return(pendingUser(), nil)
		mockRepo.EXPECT().
			CompleteSetup(ctx, store.IntID(7), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ store.ID, hash string, _ time.Time) (bool, error) {
				storedHash = hash
				return true, nil
			})

		res, err := service.FirstLogin(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, auth.MsgAccountSetup, res.Message)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "7", res.User.ID)
		assert.Equal(t, "anudi@example.com", res.User.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("secret1")))
	})

	t.Run("Validation", func(t *testing.T) {
		tests := []struct {
			name string
			req  auth.FirstLoginRequest
			want error
		}{
			{"missing password", auth.FirstLoginRequest{PaysheetNumber: "PS-007", Email: "a@example.com"}, autherrors.ErrFirstLoginFieldsRequired},
			{"missing email", auth.FirstLoginRequest{PaysheetNumber: "PS-007", Password: "secret1"}, autherrors.ErrFirstLoginFieldsRequired},
			{"short password", auth.FirstLoginRequest{PaysheetNumber: "PS-007", Email: "a@example.com", Password: "12345"}, autherrors.ErrPasswordTooShort},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := service.FirstLogin(ctx, tt.req)
				assert.ErrorIs(t, err, tt.want)
			})
		}
	})

	t.Run("Second attempt is rejected", func(t *testing.T) {
		u := pendingUser()
		u.FirstLogin = boolPtr(false)
		u.Password = hashed(t, "secret1")
		mockRepo.EXPECT().
			FindByPaysheetAndEmail(ctx, req.PaysheetNumber, req.Email).
			Return(u, nil)

		_, err := service.FirstLogin(ctx, req)
		assert.ErrorIs(t, err, autherrors.ErrAlreadySetup)
	})

	t.Run("Flag cleared without password can still set up", func(t *testing.T) {
		u := pendingUser()
		u.FirstLogin = boolPtr(false)
		mockRepo.EXPECT().
			FindByPaysheetAndEmail(ctx, req.PaysheetNumber, req.Email).
			Return(u, nil)
		mockRepo.EXPECT().
			CompleteSetup(ctx, store.IntID(7), gomock.Any(), gomock.Any()).
			Return(true, nil)

		res, err := service.FirstLogin(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, auth.MsgAccountSetup, res.Message)
	})

	t.Run("Row vanished before update", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByPaysheetAndEmail(ctx, req.PaysheetNumber, req.Email).
			Return(pendingUser(), nil)
		mockRepo.EXPECT().
			CompleteSetup(ctx, store.IntID(7), gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := service.FirstLogin(ctx, req)
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})

	t.Run("Store error", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByPaysheetAndEmail(ctx, req.PaysheetNumber, req.Email).
			Return(nil, errors.New("db down"))

		_, err := service.FirstLogin(ctx, req)
		assert.EqualError(t, err, "db down")
	})
}

func TestService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	service := newTestService(mockRepo, nil)
	ctx := context.Background()

	active := pendingUser()
	active.FirstLogin = boolPtr(false)
	active.Password = hashed(t, "secret1")

	t.Run("Success Login", func(t *testing.T) {
		mockRepo.EXPECT().FindByEmail(ctx, active.Email).Return(active, nil)

		res, err := service.Login(ctx, auth.LoginRequest{Email: active.Email, Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, auth.MsgLoginSuccess, res.Message)
		assert.Equal(t, "Anudi", res.User.Name)

		claims, err := service.VerifySession(ctx, res.Token)
		require.NoError(t, err)
		assert.Equal(t, "7", claims.UserID)
		assert.Equal(t, store.RoleEmployee, claims.Role)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		mockRepo.EXPECT().FindByEmail(ctx, active.Email).Return(active, nil)

		_, err := service.Login(ctx, auth.LoginRequest{Email: active.Email, Password: "wrongpass"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidPassword)
	})

	t.Run("Unknown email", func(t *testing.T) {
		mockRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, nil)

		_, err := service.Login(ctx, auth.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, autherrors.ErrEmailNotFound)
	})

	t.Run("First login pending", func(t *testing.T) {
		mockRepo.EXPECT().FindByEmail(ctx, "anudi@example.com").Return(pendingUser(), nil)

		_, err := service.Login(ctx, auth.LoginRequest{Email: "anudi@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, autherrors.ErrFirstLoginRequired)
	})

	t.Run("Missing fields", func(t *testing.T) {
		_, err := service.Login(ctx, auth.LoginRequest{Email: "anudi@example.com"})
		assert.ErrorIs(t, err, autherrors.ErrLoginFieldsRequired)
	})
}

func TestService_Check(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	service := newTestService(mockRepo, nil)
	ctx := context.Background()

	t.Run("Pending account", func(t *testing.T) {
		mockRepo.EXPECT().FindByPaysheet(ctx, "PS-007").Return(pendingUser(), nil)

		res, err := service.Check(ctx, auth.CheckRequest{PaysheetNumber: "PS-007"})
		assert.NoError(t, err)
		assert.Equal(t, auth.CheckResponse{Exists: true, FirstLogin: true, Name: "Anudi"}, res)
	})

	t.Run("Active account", func(t *testing.T) {
		u := pendingUser()
		u.FirstLogin = boolPtr(false)
		u.Password = "hash"
		mockRepo.EXPECT().FindByPaysheet(ctx, "PS-007").Return(u, nil)

		res, err := service.Check(ctx, auth.CheckRequest{PaysheetNumber: "PS-007"})
		assert.NoError(t, err)
		assert.False(t, res.FirstLogin)
	})

	t.Run("Unknown paysheet", func(t *testing.T) {
		mockRepo.EXPECT().FindByPaysheet(ctx, "PS-999").Return(nil, nil)

		_, err := service.Check(ctx, auth.CheckRequest{PaysheetNumber: "PS-999"})
		assert.ErrorIs(t, err, autherrors.ErrEmployeeNotFound)
	})

	t.Run("Missing paysheet", func(t *testing.T) {
		_, err := service.Check(ctx, auth.CheckRequest{})
		assert.ErrorIs(t, err, autherrors.ErrPaysheetRequired)
	})
}

func TestService_VerifySession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newTestService(authMock.NewMockRepository(ctrl), nil)
	ctx := context.Background()
	u := *pendingUser()

	t.Run("Missing token", func(t *testing.T) {
		_, err := service.VerifySession(ctx, "")
		assert.ErrorIs(t, err, autherrors.ErrTokenRequired)
	})

	t.Run("Expired token", func(t *testing.T) {
		past := auth.NewTokenManager(testSecret, time.Hour).
			WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
		raw, err := past.Issue(u)
		require.NoError(t, err)

		_, err = service.VerifySession(ctx, raw)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		raw, err := auth.NewTokenManager("other-secret", time.Hour).Issue(u)
		require.NoError(t, err)

		_, err = service.VerifySession(ctx, raw)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("Unsigned token", func(t *testing.T) {
		claims := auth.Claims{
			UserID: "7",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.VerifySession(ctx, raw)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("Role defaults to employee", func(t *testing.T) {
		noRole := u
		noRole.Role = ""
		raw, err := auth.NewTokenManager(testSecret, time.Hour).Issue(noRole)
		require.NoError(t, err)

		session, err := service.VerifyToken(ctx, raw)
		require.NoError(t, err)
		assert.Equal(t, "7", session.UserID)
		assert.Equal(t, store.RoleEmployee, session.Role)
	})
}

func TestService_MeAndMyLeaves(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	mockLeaves := authMock.NewMockLeaveReader(ctrl)
	service := newTestService(mockRepo, mockLeaves)
	ctx := context.Background()

	t.Run("Me", func(t *testing.T) {
		u := pendingUser()
		u.Password = "hash"
		mockRepo.EXPECT().FindByID(ctx, "7").Return(u, nil)

		res, err := service.Me(ctx, "7")
		assert.NoError(t, err)
		assert.Equal(t, auth.PublicUser{ID: "7", Name: "Anudi", PaysheetNumber: "PS-007", Email: "anudi@example.com"}, res)
	})

	t.Run("Me unknown", func(t *testing.T) {
		mockRepo.EXPECT().FindByID(ctx, "99").Return(nil, nil)

		_, err := service.Me(ctx, "99")
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})

	t.Run("MyLeaves", func(t *testing.T) {
		mockLeaves.EXPECT().GetByUser(ctx, "7").Return([]leave.Leave{{ID: store.IntID(3), UserID: store.IntID(7)}}, nil)

		res, err := service.MyLeaves(ctx, "7")
		assert.NoError(t, err)
		assert.Len(t, res, 1)
	})
}
