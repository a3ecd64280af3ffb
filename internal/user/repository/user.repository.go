package repository

import (
	"database/sql"

	"writesync/internal/user/model"
	"writesync/pkg/apperror"
	"writesync/pkg/logger"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(u *model.User) error {
	_, err := r.DB.Exec(`INSERT INTO users (id, username, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		// The unique index on email is the authority; a racing insert
		// surfaces here rather than in the pre-check.
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return apperror.New(apperror.Conflict, "User already exists")
		}
		logger.Sugar.Errorf("Failed to create user %s: %v", u.Email, err)
	}
	return err
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRow(`SELECT id, username, email, password_hash, created_at FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Sugar.Errorf("Failed to get user by email: %v", err)
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(id string) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRow(`SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Sugar.Errorf("Failed to get user %s: %v", id, err)
		}
		return nil, err
	}
	return &u, nil
}
