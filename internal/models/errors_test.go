package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_WrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := &AppError{Code: CodeValidation, Message: "bad input", Err: cause}

	assert.Equal(t, "bad input: disk full", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestAppError_Validation(t *testing.T) {
	var err error = NewValidationError("min_comments must not exceed max_comments")

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, CodeValidation, appErr.Code)
	assert.Equal(t, "min_comments must not exceed max_comments", err.Error())
}

func TestAppError_NotFound(t *testing.T) {
	err := NewNotFoundError("tag", "Python")
	assert.Equal(t, CodeNotFound, err.Code)
	assert.Equal(t, "tag Python not found", err.Error())
}
