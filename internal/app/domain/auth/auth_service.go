package auth

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-edudash/internal/app/models"
	"github.com/FACorreiaa/go-edudash/internal/pkg/apiclient"
	"github.com/FACorreiaa/go-edudash/internal/pkg/session"
)

// Ensure implementation satisfies the interface
var _ AuthService = (*AuthServiceImpl)(nil)

// Backend is the part of the API client the auth flows call.
type Backend interface {
	Login(ctx context.Context, email, password string) (apiclient.LoginResponse, error)
	Signup(ctx context.Context, req apiclient.SignupRequest) error
}

// AuthService defines the business logic contract.
type AuthService interface {
	Login(ctx context.Context, store session.Store, email, password string) (models.Role, error)
	Signup(ctx context.Context, in SignupInput) error
	Logout(ctx context.Context, store session.Store) error
}

// SignupInput is what the signup form collects.
type SignupInput struct {
	FullName string `form:"fullName" binding:"required,max=255"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
	Role     string `form:"role" binding:"required,oneof=student teacher institution admin"`
}

type LoginInput struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// AuthServiceImpl provides the implementation for AuthService.
type AuthServiceImpl struct {
	logger               *zap.Logger
	backend              Backend
	defaultInstitutionID int
}

// NewAuthService creates a new authentication service instance. New
// non-admin accounts are attached to defaultInstitutionID.
func NewAuthService(backend Backend, defaultInstitutionID int, logger *zap.Logger) *AuthServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthServiceImpl{logger: logger, backend: backend, defaultInstitutionID: defaultInstitutionID}
}

// Login exchanges credentials for a token and persists token and role
// together. Nothing is stored when the backend refuses.
func (s *AuthServiceImpl) Login(ctx context.Context, store session.Store, email, password string) (models.Role, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Login")
	defer span.End()
	l := s.logger.With(zap.String("method", "Login"), zap.String("email", email))
	l.Debug("Attempting login")

	resp, err := s.backend.Login(ctx, email, password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "backend login failed")
		l.Warn("Backend rejected login", zap.Error(err))
		return "", err
	}

	role, ok := models.ParseRole(string(resp.Role))
	if !ok {
		err = fmt.Errorf("backend returned unknown role %q", resp.Role)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unknown role")
		return "", err
	}

	if err := store.Save(resp.AccessToken, role); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("saving session: %w", err)
	}
	span.SetAttributes(attribute.String("user.role", string(role)))
	l.Info("User logged in", zap.String("role", string(role)))
	return role, nil
}

// Signup registers an account. Admins belong to no institution.
func (s *AuthServiceImpl) Signup(ctx context.Context, in SignupInput) error {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Signup")
	defer span.End()

	role, ok := models.ParseRole(in.Role)
	if !ok {
		return fmt.Errorf("%w: unknown role %q", models.ErrValidation, in.Role)
	}
	req := apiclient.SignupRequest{
		Email:    in.Email,
		Password: in.Password,
		Role:     role,
		FullName: in.FullName,
	}
	if role != models.RoleAdmin {
		id := s.defaultInstitutionID
		req.InstitutionID = &id
	}

	if err := s.backend.Signup(ctx, req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "backend signup failed")
		s.logger.Warn("Signup failed", zap.String("email", in.Email), zap.String("role", in.Role), zap.Error(err))
		return err
	}
	s.logger.Info("User signed up", zap.String("email", in.Email), zap.String("role", in.Role))
	return nil
}

// Logout forgets the session locally; the backend keeps no server-side
// session to revoke.
func (s *AuthServiceImpl) Logout(ctx context.Context, store session.Store) error {
	_, span := otel.Tracer("AuthService").Start(ctx, "Logout")
	defer span.End()
	if err := store.Clear(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
