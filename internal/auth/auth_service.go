package auth

import (
	"context"
	"strings"
	"time"

	autherrors "leave-tracker/internal/auth/errors"
	"leave-tracker/internal/leave"
	"leave-tracker/internal/middleware"
	"leave-tracker/internal/shared/contextutil"
	"leave-tracker/internal/store"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 6

	MsgAccountSetup = "Account setup successful"
	MsgLoginSuccess = "Login successful"
)

// LeaveReader is the slice of leave.Service used for the owner's own list.
type LeaveReader interface {
	GetByUser(ctx context.Context, userID string) ([]leave.Leave, error)
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Verify(ctx context.Context, req VerifyRequest) (VerifyResponse, error)
	FirstLogin(ctx context.Context, req FirstLoginRequest) (SessionResponse, error)
	Login(ctx context.Context, req LoginRequest) (SessionResponse, error)
	Check(ctx context.Context, req CheckRequest) (CheckResponse, error)
	VerifySession(ctx context.Context, token string) (*Claims, error)
	VerifyToken(ctx context.Context, token string) (middleware.Session, error)
	Me(ctx context.Context, userID string) (PublicUser, error)
	MyLeaves(ctx context.Context, userID string) ([]leave.Leave, error)
}

type service struct {
	repo       Repository
	tokens     *TokenManager
	leaves     LeaveReader
	bcryptCost int
	now        func() time.Time
	logger     *zap.Logger
}

type ServiceOption func(*service)

// WithBcryptCost lowers the hashing cost in tests.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *service) { s.bcryptCost = cost }
}

func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *service) {
		if l != nil {
			s.logger = l.Named("auth.service")
		}
	}
}

func NewService(repo Repository, tokens *TokenManager, leaves LeaveReader, opts ...ServiceOption) Service {
	s := &service{
		repo:       repo,
		tokens:     tokens,
		leaves:     leaves,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
		logger:     zap.L().Named("auth.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func blank(v string) bool {
	return strings.TrimSpace(v) == ""
}

// alreadySetUp mirrors the login gate: an account is active only once
// first_login is false and a password hash is stored.
func alreadySetUp(u *store.User) bool {
	return !u.NeedsSetup()
}

func (s *service) Verify(ctx context.Context, req VerifyRequest) (VerifyResponse, error) {
	if blank(req.PaysheetNumber) || blank(req.Email) {
		return VerifyResponse{}, autherrors.ErrVerifyFieldsRequired
	}

	u, err := s.repo.FindByPaysheetAndEmail(ctx, req.PaysheetNumber, req.Email)
	if err != nil {
		return VerifyResponse{}, err
	}
	if u == nil {
		return VerifyResponse{}, autherrors.ErrIdentityMismatch
	}
	if alreadySetUp(u) {
		return VerifyResponse{}, autherrors.ErrAlreadySetup
	}

	return VerifyResponse{Verified: true, Name: u.Name, PaysheetNumber: u.PaysheetNumber}, nil
}

func (s *service) FirstLogin(ctx context.Context, req FirstLoginRequest) (SessionResponse, error) {
	log := s.log(ctx)

	if blank(req.PaysheetNumber) || blank(req.Email) || req.Password == "" {
		return SessionResponse{}, autherrors.ErrFirstLoginFieldsRequired
	}
	if len(req.Password) < MinPasswordLength {
		return SessionResponse{}, autherrors.ErrPasswordTooShort
	}

	u, err := s.repo.FindByPaysheetAndEmail(ctx, req.PaysheetNumber, req.Email)
	if err != nil {
		return SessionResponse{}, err
	}
	if u == nil {
		return SessionResponse{}, autherrors.ErrIdentityMismatch
	}
	if alreadySetUp(u) {
		return SessionResponse{}, autherrors.ErrAlreadySetup
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return SessionResponse{}, err
	}
	matched, err := s.repo.CompleteSetup(ctx, u.ID, string(hash), s.now().UTC())
	if err != nil {
		log.Error("first login update failed", zap.String("user_id", u.ID.String()), zap.Error(err))
		return SessionResponse{}, err
	}
	if !matched {
		return SessionResponse{}, autherrors.ErrUserNotFound
	}

	token, err := s.tokens.Issue(*u)
	if err != nil {
		log.Error("issue token failed", zap.Error(err))
		return SessionResponse{}, autherrors.ErrTokenGenerationFailed
	}
	log.Info("first login completed", zap.String("user_id", u.ID.String()))

	return SessionResponse{Message: MsgAccountSetup, Token: token, User: toPublicUser(*u)}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (SessionResponse, error) {
	log := s.log(ctx)

	if blank(req.Email) || req.Password == "" {
		return SessionResponse{}, autherrors.ErrLoginFieldsRequired
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return SessionResponse{}, err
	}
	if u == nil {
		return SessionResponse{}, autherrors.ErrEmailNotFound
	}
	if u.NeedsSetup() {
		return SessionResponse{}, autherrors.ErrFirstLoginRequired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		log.Warn("login rejected", zap.String("user_id", u.ID.String()))
		return SessionResponse{}, autherrors.ErrInvalidPassword
	}

	token, err := s.tokens.Issue(*u)
	if err != nil {
		log.Error("issue token failed", zap.Error(err))
		return SessionResponse{}, autherrors.ErrTokenGenerationFailed
	}
	log.Info("login success", zap.String("user_id", u.ID.String()))

	return SessionResponse{Message: MsgLoginSuccess, Token: token, User: toPublicUser(*u)}, nil
}

func (s *service) Check(ctx context.Context, req CheckRequest) (CheckResponse, error) {
	if blank(req.PaysheetNumber) {
		return CheckResponse{}, autherrors.ErrPaysheetRequired
	}
	u, err := s.repo.FindByPaysheet(ctx, req.PaysheetNumber)
	if err != nil {
		return CheckResponse{}, err
	}
	if u == nil {
		return CheckResponse{}, autherrors.ErrEmployeeNotFound
	}
	return CheckResponse{Exists: true, FirstLogin: u.NeedsSetup(), Name: u.Name}, nil
}

func (s *service) VerifySession(ctx context.Context, token string) (*Claims, error) {
	if blank(token) {
		return nil, autherrors.ErrTokenRequired
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		s.log(ctx).Debug("session token rejected", zap.Error(err))
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}

// VerifyToken adapts VerifySession for middleware.SessionAuth. Tokens minted
// without a role are treated as employee sessions.
func (s *service) VerifyToken(ctx context.Context, token string) (middleware.Session, error) {
	claims, err := s.VerifySession(ctx, token)
	if err != nil {
		return middleware.Session{}, err
	}
	role := claims.Role
	if role == "" {
		role = store.RoleEmployee
	}
	return middleware.Session{UserID: claims.UserID, Role: role}, nil
}

func (s *service) Me(ctx context.Context, userID string) (PublicUser, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return PublicUser{}, err
	}
	if u == nil {
		return PublicUser{}, autherrors.ErrUserNotFound
	}
	return toPublicUser(*u), nil
}

func (s *service) MyLeaves(ctx context.Context, userID string) ([]leave.Leave, error) {
	return s.leaves.GetByUser(ctx, userID)
}
