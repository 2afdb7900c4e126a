// file: repository/user_repository_test.go

package repository

import (
	"context"
	"database/sql"
	"livelib-api/model"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	user := &model.User{
		Username: "reader",
		Email:    "reader@example.com",
		Password: "hashed",
		Role:     string(model.RoleUser),
	}

	createdAt := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("reader", "reader@example.com", "hashed", "user").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, createdAt))

	require.NoError(t, repo.CreateUser(context.Background(), user))
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, createdAt, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "email", "password", "role", "created_at"}).
			AddRow(3, "reader", "reader@example.com", "hashed", "user", time.Now())
		mock.ExpectQuery(`SELECT id, username, email, password, role, created_at FROM users WHERE username`).
			WithArgs("reader").
			WillReturnRows(rows)

		user, err := repo.GetUserByUsername(context.Background(), "reader")
		require.NoError(t, err)
		assert.Equal(t, 3, user.ID)
		assert.Equal(t, "reader", user.Username)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, email, password, role, created_at FROM users WHERE username`).
			WithArgs("nobody").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByUsername(context.Background(), "nobody")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetAllUsers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "role", "created_at"}).
		AddRow(1, "first", "first@example.com", "admin", time.Now()).
		AddRow(2, "second", "second@example.com", "user", time.Now())
	mock.ExpectQuery(`SELECT id, username, email, role, created_at FROM users ORDER BY id`).
		WillReturnRows(rows)

	users, err := repo.GetAllUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "first", users[0].Username)
	assert.Equal(t, "second", users[1].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateUserRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET role`).
			WithArgs("admin", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateUserRole(context.Background(), 1, "admin"))
	})

	t.Run("no such user", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET role`).
			WithArgs("admin", 99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateUserRole(context.Background(), 99, "admin")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
