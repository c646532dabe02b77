package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(ErrRevokedToken))
	assert.True(t, IsAuthError(fmt.Errorf("%w: tokens belong to different users", ErrMalformedToken)))
	assert.False(t, IsAuthError(ErrUserNotFound))
	assert.False(t, IsAuthError(nil))
}

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageLimit, limit)

	_, limit = NormalizePage(2, 500)
	assert.Equal(t, MaxPageLimit, limit)
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, Meta{Page: 1, Limit: 10, Total: 21, TotalPages: 3}, NewMeta(1, 10, 21))
	assert.Equal(t, 0, NewMeta(1, 10, 0).TotalPages)
}
