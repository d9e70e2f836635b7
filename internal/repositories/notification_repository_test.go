package repository_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_CreateNotification(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewNotificationRepo(db)
	now := time.Now()
	orderID := uuid.New()

	n := &models.Notification{
		ID:        uuid.New(),
		OrderID:   &orderID,
		Type:      models.NotificationTypeEmail,
		Recipient: "buyer@example.com",
		Subject:   "Order confirmed",
		Content:   "Thanks",
		Status:    models.StatusPending,
	}

	mock.ExpectQuery(`INSERT INTO notifications`).
		WithArgs(n.ID, orderID, n.Type, n.Recipient, n.Subject, n.Content, n.Status, "", []byte(`{}`)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	err := repo.CreateNotification(t.Context(), n)

	require.NoError(t, err)
	assert.Equal(t, now, n.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_UpdateNotificationStatus(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewNotificationRepo(db)

		mock.ExpectExec(`UPDATE notifications SET status = \$1, error_message = \$2`).
			WithArgs(models.StatusSent, "", id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateNotificationStatus(t.Context(), id, models.StatusSent, ""))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewNotificationRepo(db)

		mock.ExpectExec(`UPDATE notifications`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateNotificationStatus(t.Context(), id, models.StatusFailed, "boom"), repository.ErrNotFound)
	})
}
