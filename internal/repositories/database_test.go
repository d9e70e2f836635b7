package repository_test

import (
	"testing"

	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
)

func TestNewWithDB(t *testing.T) {
	db, mock := newMockDB(t)

	repos := repository.NewWithDB(db)

	assert.NotNil(t, repos.User)
	assert.NotNil(t, repos.Cart)
	assert.NotNil(t, repos.Order)
	assert.NotNil(t, repos.Transaction)
	assert.NotNil(t, repos.Wishlist)
	assert.NotNil(t, repos.Notification)

	mock.ExpectClose()
	assert.NoError(t, repos.Close())
}
