package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Run("empty is create", func(t *testing.T) {
		m, err := ParseMode("")
		require.NoError(t, err)
		assert.Equal(t, ModeCreate, m)
	})

	t.Run("known modes", func(t *testing.T) {
		m, err := ParseMode("edit")
		require.NoError(t, err)
		assert.Equal(t, ModeEdit, m)

		m, err = ParseMode("create")
		require.NoError(t, err)
		assert.Equal(t, ModeCreate, m)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := ParseMode("delete")
		assert.ErrorIs(t, err, ErrInvalidMode)
	})
}

func TestEditSession(t *testing.T) {
	t.Run("initial session creates", func(t *testing.T) {
		s := NewCreateSession()
		assert.False(t, s.IsEditing())
		assert.Nil(t, s.TargetID)
		assert.Equal(t, 0, s.Target())
		assert.Empty(t, s.Draft)
	})

	t.Run("edit session copies id and title", func(t *testing.T) {
		r := Record{ID: 4, Title: "Delta"}
		s := NewEditSession(r)
		r.ID = 99

		assert.True(t, s.IsEditing())
		assert.Equal(t, 4, s.Target())
		assert.Equal(t, "Delta", s.Draft)
	})
}

func TestValidationError(t *testing.T) {
	err := error(&ValidationError{Field: "title", Reason: "cannot be empty"})

	assert.Equal(t, "title cannot be empty", err.Error())
	assert.ErrorIs(t, err, ErrValidation)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "title", ve.Field)
}
