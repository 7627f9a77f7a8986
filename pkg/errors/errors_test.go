package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/equinor/fmu-settings-api/pkg/errors"
)

func TestNotFoundError(t *testing.T) {
	err := errors.NewNotFoundError("config", "config.json")
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "config.json")
}

func TestValidationError(t *testing.T) {
	err := errors.NewValidationError("resource", "secrets", "resource kind is not supported")
	assert.True(t, errors.IsValidationError(err))
	assert.False(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "resource kind is not supported")
}

func TestIdentityConflictError(t *testing.T) {
	err := errors.NewIdentityConflictError("rms.horizons", "MSL", "before")
	assert.True(t, errors.IsIdentityConflict(err))
	assert.Equal(t, "duplicate identity key MSL in before list at rms.horizons", err.Error())

	wrapped := fmt.Errorf("comparing revisions: %w", err)
	assert.True(t, errors.IsIdentityConflict(wrapped))

	var conflict *errors.IdentityConflictError
	assert.True(t, stderrors.As(wrapped, &conflict))
	assert.Equal(t, "MSL", conflict.Key)
}

func TestUnknownRevisionError(t *testing.T) {
	err := errors.NewUnknownRevisionError("config", "20240101T000000.000000000")
	assert.True(t, errors.IsUnknownRevision(err))
	// Unknown revisions also satisfy the generic not-found check so the
	// HTTP layer maps them to 404 without a dedicated branch.
	assert.True(t, errors.IsNotFound(err))
}

func TestWrapHelpersPreserveCause(t *testing.T) {
	cause := stderrors.New("disk full")

	err := errors.WrapIO("write", "/tmp/.fmu/config.json", cause)
	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "/tmp/.fmu/config.json")

	err = errors.WrapParse("yaml", "config.yaml", cause)
	assert.True(t, stderrors.Is(err, cause))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, errors.WrapIO("read", "x", nil))
	assert.NoError(t, errors.WrapParse("yaml", "x", nil))
	assert.NoError(t, errors.WrapValidation("field", nil))
}

func TestSessionSentinels(t *testing.T) {
	assert.True(t, errors.IsSessionExpired(errors.ErrSessionExpired))
	assert.False(t, errors.IsSessionExpired(errors.ErrSessionNotFound))
}
