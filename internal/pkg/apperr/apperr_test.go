package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrom_Wrapped(t *testing.T) {
	err := fmt.Errorf("create booking: %w", ErrAllRoomsBooked)

	e := From(err)
	require.NotNil(t, e)
	assert.Equal(t, http.StatusConflict, e.Status)
	assert.Equal(t, "ALL_ROOMS_BOOKED", e.Code)
}

func TestFrom_PlainError(t *testing.T) {
	assert.Nil(t, From(errors.New("boom")))
	assert.Nil(t, From(nil))
}

func TestWithDetail_KeepsIdentity(t *testing.T) {
	err := ErrValidation.WithDetail("Поле 'title' обязательно для заполнения")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrInvalidJSON))
	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
	assert.Equal(t, "Поле 'title' обязательно для заполнения", err.Error())
}
