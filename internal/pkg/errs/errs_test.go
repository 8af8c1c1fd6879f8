//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"foodshare/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	sentinel := errors.New("invalid status transition")

	t.Run("mark is visible to plain errors.Is", func(t *testing.T) {
		cause := errors.New("cancelled -> cancelled")
		err := errs.Mark(cause, sentinel)

		assert.ErrorIs(t, err, sentinel)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("message stays the cause's message", func(t *testing.T) {
		cause := errors.New("cancelled -> cancelled")
		err := errs.Mark(cause, sentinel)

		assert.Equal(t, cause.Error(), err.Error())
	})

	t.Run("nil cause yields the mark itself", func(t *testing.T) {
		err := errs.Mark(nil, sentinel)
		require.ErrorIs(t, err, sentinel)
		assert.Equal(t, sentinel, err)
	})

	t.Run("mark survives wrapping", func(t *testing.T) {
		err := errs.Wrap(errs.Mark(errors.New("boom"), sentinel), "update failed")
		assert.ErrorIs(t, err, sentinel)
	})
}
