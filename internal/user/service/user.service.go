package service

import (
	"database/sql"
	"time"

	"writesync/internal/user/model"
	"writesync/internal/user/repository"
	"writesync/pkg/apperror"
	"writesync/pkg/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// invalidCredentials is deliberately identical for unknown email and wrong
// password so the response shape never reveals which one failed.
var invalidCredentials = apperror.New(apperror.InvalidCredentials, "Invalid credentials")

type UserService struct {
	Repo   *repository.UserRepository
	Tokens *token.Manager
}

func NewUserService(repo *repository.UserRepository, tokens *token.Manager) *UserService {
	return &UserService{Repo: repo, Tokens: tokens}
}

// Register creates a user with a salted one-way password hash and returns a
// signed token bound to the new user id.
func (s *UserService) Register(req model.RegisterRequest) (string, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return "", apperror.New(apperror.ValidationError, "Username, email and password are required")
	}

	if _, err := s.Repo.GetByEmail(req.Email); err == nil {
		return "", apperror.New(apperror.Conflict, "User already exists")
	} else if err != sql.ErrNoRows {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	u := &model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(u); err != nil {
		return "", err
	}

	return s.Tokens.Sign(u.ID)
}

// Login verifies the password against the stored hash and returns a token
// plus the public user record.
func (s *UserService) Login(req model.LoginRequest) (string, *model.User, error) {
	u, err := s.Repo.GetByEmail(req.Email)
	if err == sql.ErrNoRows {
		return "", nil, invalidCredentials
	} else if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return "", nil, invalidCredentials
	}

	tok, err := s.Tokens.Sign(u.ID)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// Me loads the user behind an authenticated request.
func (s *UserService) Me(userID string) (*model.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err == sql.ErrNoRows {
		return nil, apperror.New(apperror.Unauthenticated, "User no longer exists")
	} else if err != nil {
		return nil, err
	}
	return u, nil
}
