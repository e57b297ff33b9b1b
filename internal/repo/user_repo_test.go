package repo

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/services"
)

const testTimeout = 5 * time.Second

var userTestColumns = []string{
	"id", "name", "email", "password_hash", "reset_token", "reset_token_expiry", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *UserRepo) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewUserRepo(mock, testTimeout)
}

func userRows(id string, resetToken *string, resetExpiry *time.Time) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(userTestColumns).
		AddRow(id, "Ana", "ana@x.com", "hash", resetToken, resetExpiry, now, now)
}

func emptyUserRows() *pgxmock.Rows {
	return pgxmock.NewRows(userTestColumns)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("ana@x.com").
		WillReturnRows(userRows("u1", nil, nil))

	user, err := repo.GetByEmail(context.Background(), "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "ana@x.com", user.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByEmailNotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("ghost@x.com").
		WillReturnRows(emptyUserRows())

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(pgxmock.AnyArg(), "Ana", "ana@x.com", "hash").
		WillReturnRows(userRows("u1", nil, nil))

	user, err := repo.Create(context.Background(), "Ana", "ana@x.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_CreateDuplicateEmail(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(pgxmock.AnyArg(), "Ana", "ana@x.com", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), "Ana", "ana@x.com", "hash")
	assert.ErrorIs(t, err, services.ErrDuplicateEmail)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_FindByValidResetToken(t *testing.T) {
	mock, repo := newMockRepo(t)

	now := time.Now()
	token := "tok"
	expiry := now.Add(10 * time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE reset_token = $1 AND reset_token_expiry > $2")).
		WithArgs("tok", now).
		WillReturnRows(userRows("u1", &token, &expiry))

	user, err := repo.FindByValidResetToken(context.Background(), "tok", now)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_FindByValidResetTokenExpired(t *testing.T) {
	mock, repo := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE reset_token = $1 AND reset_token_expiry > $2")).
		WithArgs("tok", now).
		WillReturnRows(emptyUserRows())

	_, err := repo.FindByValidResetToken(context.Background(), "tok", now)
	assert.ErrorIs(t, err, services.ErrNoActiveToken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_SetResetToken(t *testing.T) {
	mock, repo := newMockRepo(t)

	expiry := time.Now().Add(15 * time.Minute)
	mock.ExpectExec(regexp.QuoteMeta("SET reset_token = $1, reset_token_expiry = $2")).
		WithArgs("tok", expiry, "u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.SetResetToken(context.Background(), "u1", "tok", expiry))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_SetResetTokenUnknownUser(t *testing.T) {
	mock, repo := newMockRepo(t)

	expiry := time.Now().Add(15 * time.Minute)
	mock.ExpectExec(regexp.QuoteMeta("SET reset_token = $1, reset_token_expiry = $2")).
		WithArgs("tok", expiry, "ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SetResetToken(context.Background(), "ghost", "tok", expiry)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_ClearResetToken(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("SET reset_token = NULL, reset_token_expiry = NULL")).
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.ClearResetToken(context.Background(), "u1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_ConsumeResetToken(t *testing.T) {
	mock, repo := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE reset_token = $2 AND reset_token_expiry > $3")).
		WithArgs("new-hash", "tok", now).
		WillReturnRows(userRows("u1", nil, nil))

	user, err := repo.ConsumeResetToken(context.Background(), "tok", "new-hash", now)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_ConsumeResetTokenAlreadySpent(t *testing.T) {
	mock, repo := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE reset_token = $2 AND reset_token_expiry > $3")).
		WithArgs("new-hash", "tok", now).
		WillReturnRows(emptyUserRows())

	_, err := repo.ConsumeResetToken(context.Background(), "tok", "new-hash", now)
	assert.ErrorIs(t, err, services.ErrNoActiveToken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_UpdatePassword(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("SET password_hash = $1")).
		WithArgs("new-hash", "u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.UpdatePassword(context.Background(), "u1", "new-hash"))
	require.NoError(t, mock.ExpectationsWereMet())
}
