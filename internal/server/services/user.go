// Package services contains server-side business logic. This file implements
// UserService, the authenticator: registration, login and resolving bearer
// tokens to the identity of a stored user.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/docusage/internal/common"
	"github.com/dmitrijs2005/docusage/internal/logging"
	"github.com/dmitrijs2005/docusage/internal/server/auth"
	"github.com/dmitrijs2005/docusage/internal/server/models"
	"github.com/dmitrijs2005/docusage/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
)

// PasswordHasher hashes and checks passwords; see auth.Argon2Hasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, encoded string) error
}

// TokenCodec issues and verifies access tokens; see auth.TokenManager.
type TokenCodec interface {
	Issue(claims auth.Claims) (string, error)
	Verify(token string) (*auth.Claims, error)
}

// Credentials is the email/password pair supplied by a client.
type Credentials struct {
	Email    string `validate:"required,email,max=320"`
	Password string `validate:"required"`
}

// dummyPassword is hashed once and checked on logins for unknown emails so
// they cost as much as logins with a wrong password.
const dummyPassword = "docusage: no such user"

// UserService provides the authentication flows:
//   - Register: create a user and return an access token
//   - Login: verify credentials and return an access token
//   - Resolve: turn an access token into the identity of an existing user
//
// It holds no per-request state and is safe for concurrent use.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenCodec
	validate    *validator.Validate
	logger      logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenCodec, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger.With("module", "users"),
	}
}

// Register creates a user for email and returns a token for it.
//
// Errors: auth.ErrInvalidInput, auth.ErrDuplicateUser, auth.ErrPersistence,
// auth.ErrTokenIssuance, common.ErrorInternal (hashing).
func (s *UserService) Register(ctx context.Context, email, password string) (string, error) {
	if err := s.validateCredentials(email, password); err != nil {
		return "", err
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		s.logger.Warn(ctx, "registration rejected: email already registered", "email", email)
		return "", auth.ErrDuplicateUser
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return "", fmt.Errorf("%w: lookup user: %w", auth.ErrPersistence, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return "", fmt.Errorf("%w: hash password: %w", common.ErrorInternal, err)
	}

	user, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		// a concurrent registration won the unique index
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.logger.Warn(ctx, "registration lost race on unique email", "email", email)
			return "", auth.ErrDuplicateUser
		}
		s.logger.Error(ctx, "user create failed", "error", err)
		return "", fmt.Errorf("%w: create user: %w", auth.ErrPersistence, err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return s.issue(ctx, user.Email)
}

// Login checks the password for email and returns a fresh token. Unknown
// emails and wrong passwords both yield auth.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if err := s.validateCredentials(email, password); err != nil {
		return "", err
	}

	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = s.hasher.Check(password, s.dummy(ctx))
			s.logger.Warn(ctx, "login rejected: unknown email")
			return "", auth.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return "", fmt.Errorf("%w: lookup user: %w", auth.ErrPersistence, err)
	}

	if err := s.hasher.Check(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrMalformedHash) {
			s.logger.Error(ctx, "stored password hash is malformed", "user_id", user.ID, "error", err)
		} else {
			s.logger.Warn(ctx, "login rejected: wrong password", "user_id", user.ID)
		}
		return "", auth.ErrInvalidCredentials
	}

	return s.issue(ctx, user.Email)
}

// Resolve verifies token and returns the identity of the user it names.
// Bad, expired and orphaned tokens all yield auth.ErrAuthentication.
func (s *UserService) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Warn(ctx, "token rejected", "error", err)
		return nil, fmt.Errorf("%w: %w", auth.ErrAuthentication, err)
	}
	if claims.Subject == "" {
		s.logger.Warn(ctx, "token rejected: no subject")
		return nil, auth.ErrAuthentication
	}

	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "token rejected: subject no longer exists")
			return nil, auth.ErrAuthentication
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, fmt.Errorf("%w: lookup user: %w", auth.ErrPersistence, err)
	}

	return &models.Identity{ID: user.ID, Email: user.Email}, nil
}

func (s *UserService) issue(ctx context.Context, email string) (string, error) {
	token, err := s.tokens.Issue(auth.Claims{Subject: email})
	if err != nil {
		s.logger.Error(ctx, "token issuance failed", "error", err)
		if errors.Is(err, auth.ErrTokenIssuance) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", auth.ErrTokenIssuance, err)
	}
	s.logger.Debug(ctx, "token issued")
	return token, nil
}

func (s *UserService) validateCredentials(email, password string) error {
	err := s.validate.Struct(Credentials{Email: email, Password: password})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", auth.ErrInvalidInput, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field())+" ("+fe.Tag()+")")
	}
	return fmt.Errorf("%w: %s", auth.ErrInvalidInput, strings.Join(fields, ", "))
}

func (s *UserService) dummy(ctx context.Context) string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.logger.Error(ctx, "dummy hash unavailable", "error", err)
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
