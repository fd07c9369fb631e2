package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/travelmate/internal/common"
	"github.com/dmitrijs2005/travelmate/internal/dbx"
	"github.com/dmitrijs2005/travelmate/internal/logging"
	"github.com/dmitrijs2005/travelmate/internal/server/auth"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/repomanager"
)

const (
	msgEmailRegistered = "Email already registered"
	msgPasswordTooLong = "Password must not exceed 72 bytes"
	msgEmailInUse      = "Email already in use"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName *string
}

// LoginResult is the outcome of a login attempt. A wrong email and a wrong
// password look the same: OK is false and nothing else is set.
type LoginResult struct {
	OK    bool
	Token string
	User  *models.User
}

// UserService handles registration, login and the caller's own profile.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenService
	logger      logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher,
	tokens *auth.TokenService, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger.With("module", "user_service"),
	}
}

// Register creates an account. The password is stored only as a bcrypt hash.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := normalizeEmail(in.Email)
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.Conflict(msgEmailRegistered)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, common.NewValidationError("password", msgPasswordTooLong)
	}
	if err != nil {
		return nil, err
	}

	u, err := repo.Create(ctx, &models.User{
		Username:     in.Username,
		Email:        email,
		PasswordHash: hash,
		FullName:     in.FullName,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.Conflict(msgEmailRegistered)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login checks the credentials and issues a token.
func (s *UserService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := s.repomanager.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return LoginResult{}, err
		}
		// spend the same time as for a real account
		if _, err := s.hasher.Verify(ctx, password, s.fallbackHash(ctx)); err != nil && ctx.Err() != nil {
			return LoginResult{}, ctx.Err()
		}
		return LoginResult{}, nil
	}

	ok, err := s.hasher.Verify(ctx, password, u.PasswordHash)
	if err != nil {
		return LoginResult{}, err
	}
	if !ok {
		return LoginResult{}, nil
	}

	token, err := s.tokens.Issue(auth.Claims{UserID: u.ID, Username: u.Username, Email: u.Email})
	if err != nil {
		return LoginResult{}, fmt.Errorf("error issuing token: %w", err)
	}
	return LoginResult{OK: true, Token: token, User: u}, nil
}

// GetByID returns the stored user. It satisfies auth.UserLookup.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// Me returns the current profile of the caller.
func (s *UserService) Me(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, msgUserNotFound)
	}
	return u, nil
}

// UpdateProfile changes the caller's username, email or full name. The email
// uniqueness check and the update run in one transaction.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.User, error) {
	if upd.Email != nil {
		e := normalizeEmail(*upd.Email)
		upd.Email = &e
	}

	var user *models.User
	err := s.repomanager.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if upd.Email != nil {
			other, err := repo.GetByEmail(ctx, *upd.Email)
			switch {
			case err == nil && other.ID != id:
				return common.Conflict(msgEmailInUse)
			case err != nil && !errors.Is(err, common.ErrorNotFound):
				return err
			}
		}

		u, err := repo.Update(ctx, id, upd)
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.Conflict(msgEmailInUse)
			}
			return notFoundAs(err, msgUserNotFound)
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) fallbackHash(ctx context.Context) string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(context.Background(), "travelmate-placeholder")
		if err != nil {
			s.logger.Warn(ctx, "placeholder hash failed", "error", err)
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
