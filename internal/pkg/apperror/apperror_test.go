package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByKind(t *testing.T) {
	sentinel := New(http.StatusConflict, KindEmployeeDoubleBooked, "")
	dynamic := New(http.StatusConflict, KindEmployeeDoubleBooked, "employee already has a seat for this time (12)")

	assert.True(t, errors.Is(dynamic, sentinel))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", dynamic), sentinel))
	assert.True(t, errors.Is(dynamic, OfKind(KindEmployeeDoubleBooked)))
	assert.False(t, errors.Is(dynamic, OfKind(KindSeatTaken)))
}

func TestIsRequiresSameMessageWhenSet(t *testing.T) {
	a := New(http.StatusNotFound, KindNotFound, "seat not found")
	b := New(http.StatusNotFound, KindNotFound, "employee not found")

	assert.False(t, errors.Is(a, b))
	assert.True(t, errors.Is(a, a))
}

func TestKindAndStatusOf(t *testing.T) {
	err := Wrap(errors.New("boom"), http.StatusBadRequest, KindPastDate, "start date cannot be in the past")

	assert.Equal(t, KindPastDate, KindOf(err))
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	assert.Equal(t, KindStoreFailure, KindOf(errors.New("driver exploded")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("driver exploded")))
}
