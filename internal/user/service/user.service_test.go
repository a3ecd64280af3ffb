package service

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"writesync/internal/user/model"
	"writesync/internal/user/repository"
	"writesync/pkg/apperror"
	"writesync/pkg/token"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const selectUserByEmail = `SELECT id, username, email, password_hash, created_at FROM users WHERE email = $1`

func timeNow() time.Time { return time.Now().UTC() }

func newTestService(t *testing.T) (*UserService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewUserService(repository.NewUserRepository(db), token.NewManager("test-secret")), mock
}

func TestRegisterIssuesTokenForNewUser(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmail)).
		WithArgs("a@x.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs(sqlmock.AnyArg(), "a", "a@x.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tok, err := svc.Register(model.RegisterRequest{Username: "a", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	userID, err := svc.Tokens.Parse(tok)
	require.NoError(t, err)
	assert.NotEmpty(t, userID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterConflictOnDuplicateEmail(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmail)).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow("u1", "a", "a@x.com", "hash", timeNow()))

	_, err := svc.Register(model.RegisterRequest{Username: "b", Email: "a@x.com", Password: "pw"})
	require.Error(t, err)
	assert.Equal(t, apperror.Conflict, apperror.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRequiresAllFields(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(model.RegisterRequest{Username: "a", Email: "a@x.com"})
	require.Error(t, err)
	assert.Equal(t, apperror.ValidationError, apperror.KindOf(err))
}

func TestLoginSucceedsWithCorrectPassword(t *testing.T) {
	svc, mock := newTestService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmail)).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow("u1", "a", "a@x.com", string(hash), timeNow()))

	tok, u, err := svc.Login(model.LoginRequest{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)

	userID, err := svc.Tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestLoginRejectsWrongPasswordAndUnknownEmailIdentically(t *testing.T) {
	svc, mock := newTestService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmail)).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow("u1", "a", "a@x.com", string(hash), timeNow()))

	tok, u, wrongPassErr := svc.Login(model.LoginRequest{Email: "a@x.com", Password: "nope"})
	require.Error(t, wrongPassErr)
	assert.Empty(t, tok)
	assert.Nil(t, u, "no user data may leak on a failed login")
	assert.Equal(t, apperror.InvalidCredentials, apperror.KindOf(wrongPassErr))

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmail)).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	_, _, unknownEmailErr := svc.Login(model.LoginRequest{Email: "ghost@x.com", Password: "pw"})
	require.Error(t, unknownEmailErr)

	// Constant-shape response: both failures carry the same message.
	assert.Equal(t, wrongPassErr.Error(), unknownEmailErr.Error())
}

func TestMeMapsMissingUserToUnauthenticated(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`)).
		WithArgs("gone").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Me("gone")
	require.Error(t, err)
	assert.Equal(t, apperror.Unauthenticated, apperror.KindOf(err))
}
