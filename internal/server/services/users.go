package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mlevshin/authgate/internal/common"
	"github.com/mlevshin/authgate/internal/server/models"
	"github.com/mlevshin/authgate/internal/server/repositories/repomanager"
)

// PasswordHasher derives the stored hash for a new password.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// UserService creates user accounts. It never touches refresh-token state;
// tokens for a new user are only minted once the user logs in.
type UserService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	hasher PasswordHasher
}

func NewUserService(db *sql.DB, repos repomanager.RepositoryManager, hasher PasswordHasher) *UserService {
	return &UserService{db: db, repos: repos, hasher: hasher}
}

// Register creates a new user with the given email and password. A taken
// email yields common.ErrEmailAlreadyTaken, malformed input
// common.ErrValidation.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" || !strings.Contains(email, "@") {
		return nil, common.ErrValidation
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}

	created, err := s.repos.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailAlreadyTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}
