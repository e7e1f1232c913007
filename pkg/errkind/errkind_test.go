package errkind_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/httpkit/pkg/errkind"
)

func TestNew(t *testing.T) {
	t.Parallel()

	errBadName := errkind.New(errkind.ErrInvalidArgument, "cookie: bad name")

	t.Run("message", func(t *testing.T) {
		assert.Equal(t, "cookie: bad name", errBadName.Error())
	})

	t.Run("matches kind and sentinel", func(t *testing.T) {
		wrapped := fmt.Errorf("setup: %w", errBadName)
		assert.ErrorIs(t, wrapped, errBadName)
		assert.ErrorIs(t, wrapped, errkind.ErrInvalidArgument)
		assert.True(t, errkind.Is(wrapped, errkind.ErrInvalidArgument))
		assert.False(t, errkind.Is(wrapped, errkind.ErrLogic))
		assert.False(t, errkind.Is(wrapped, errkind.ErrRuntime))
	})

	t.Run("joined errors keep kind", func(t *testing.T) {
		joined := errors.Join(errBadName, errors.New("details"))
		assert.ErrorIs(t, joined, errkind.ErrInvalidArgument)
	})

	t.Run("distinct sentinels of one kind", func(t *testing.T) {
		other := errkind.New(errkind.ErrInvalidArgument, "cookie: bad name")
		assert.NotErrorIs(t, other, errBadName)
	})
}
