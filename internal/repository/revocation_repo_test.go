package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-social-api/internal/model"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func sampleEntry() model.RevocationEntry {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return model.RevocationEntry{
		ID:            "entry-1",
		Token:         "tok-123",
		Kind:          model.TokenAccess,
		UserID:        "user-1",
		BlacklistedAt: now,
		ExpiresAt:     now.Add(15 * time.Minute),
		Reason:        model.ReasonLogout,
	}
}

func TestRevocationRepositoryAdd(t *testing.T) {
	t.Parallel()

	entry := sampleEntry()
	args := []any{entry.ID, entry.Token, "access", entry.UserID, entry.BlacklistedAt, entry.ExpiresAt, "logout"}

	t.Run("records a new token", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec(`INSERT INTO token_blacklist`).
			WithArgs(args...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		recorded, err := NewRevocationRepository(mock).Add(context.Background(), entry)
		require.NoError(t, err)
		assert.True(t, recorded)
	})

	t.Run("conflicting insert is a silent no-op", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec(`INSERT INTO token_blacklist`).
			WithArgs(args...).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		recorded, err := NewRevocationRepository(mock).Add(context.Background(), entry)
		require.NoError(t, err)
		assert.False(t, recorded)
	})

	t.Run("unique violation from a lost race is success", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec(`INSERT INTO token_blacklist`).
			WithArgs(args...).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		recorded, err := NewRevocationRepository(mock).Add(context.Background(), entry)
		require.NoError(t, err)
		assert.False(t, recorded)
	})

	t.Run("other failures are wrapped", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec(`INSERT INTO token_blacklist`).
			WithArgs(args...).
			WillReturnError(errors.New("connection reset"))

		_, err := NewRevocationRepository(mock).Add(context.Background(), entry)
		require.ErrorContains(t, err, "blacklist token: connection reset")
	})
}

func TestRevocationRepositoryContains(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM token_blacklist WHERE token = \$1\)`).
		WithArgs("tok-123").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM token_blacklist WHERE token = \$1\)`).
		WithArgs("tok-456").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	repo := NewRevocationRepository(mock)

	found, err := repo.Contains(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.Contains(context.Background(), "tok-456")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRevocationRepositoryPurgeExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock := newMockPool(t)
	mock.ExpectExec(`DELETE FROM token_blacklist WHERE expires_at <= \$1`).
		WithArgs(now).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	purged, err := NewRevocationRepository(mock).PurgeExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), purged)
}
