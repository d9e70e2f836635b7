package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserRepo(t *testing.T) {
	db, _ := newMockDB(t)
	assert.NotNil(t, repository.NewUserRepo(db), "NewUserRepo should return a non-nil repository")
}

func TestUserRepository_CreateUser(t *testing.T) {
	now := time.Now()

	t.Run("Success - Defaults to customer role", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)
		newID := uuid.New()
		user := &models.User{Email: "test@example.com", Password: "hashedpassword", Name: "Test User"}

		mock.ExpectQuery(`INSERT INTO users\(email, password, name, role, created_at, updated_at\)`).
			WithArgs(user.Email, user.Password, user.Name, models.RoleCustomer).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(newID.String(), now, now))

		err := repo.CreateUser(t.Context(), user)

		require.NoError(t, err)
		assert.Equal(t, newID, user.ID)
		assert.Equal(t, models.RoleCustomer, user.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Duplicate email", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)

		mock.ExpectQuery(`INSERT INTO users`).WillReturnError(errUniqueViolation)

		err := repo.CreateUser(t.Context(), &models.User{Email: "dup@example.com"})

		assert.ErrorIs(t, err, repository.ErrDuplicateEntry)
	})
}

func TestUserRepository_GetUser(t *testing.T) {
	now := time.Now()
	id := uuid.New()

	t.Run("By email", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)

		mock.ExpectQuery(`SELECT id, email, password, name, role, created_at, updated_at FROM users WHERE email = \$1`).
			WithArgs("admin@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "role", "created_at", "updated_at"}).
				AddRow(id.String(), "admin@example.com", "hash", "Admin", "admin", now, now))

		user, err := repo.GetUserByEmail(t.Context(), "admin@example.com")

		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.Equal(t, "hash", user.Password)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("By email - Not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)

		mock.ExpectQuery(`FROM users WHERE email`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

		user, err := repo.GetUserByEmail(t.Context(), "nobody@example.com")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("By id", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)

		mock.ExpectQuery(`FROM users WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "role", "created_at", "updated_at"}).
				AddRow(id.String(), "a@example.com", "A", "customer", now, now))

		user, err := repo.GetUserById(t.Context(), id)

		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Empty(t, user.Password)
	})

	t.Run("By id - Database error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewUserRepo(db)
		dbErr := errors.New("boom")

		mock.ExpectQuery(`FROM users WHERE id`).WillReturnError(dbErr)

		_, err := repo.GetUserById(t.Context(), id)

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestUserRepository_ListUsers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewUserRepo(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM users ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "role", "created_at", "updated_at"}).
			AddRow(uuid.NewString(), "a@example.com", "A", "customer", now, now))

	users, total, err := repo.ListUsers(t.Context(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, users, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
