// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"io/fs"
	"os"
	"testing"

	"github.com/arthur-debert/dunc/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "root_not_found",
			code:    errors.ErrRootNotFound,
			message: "root directory does not exist",
			wantStr: "[ROOT_NOT_FOUND] root directory does not exist",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "path must be relative",
			wantStr: "[INVALID_INPUT] path must be relative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrEnvMissing, "environment variable %s is not set", "REZ_BUILD_PATH")
	assert.Equal(t, "[ENV_MISSING] environment variable REZ_BUILD_PATH is not set", err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrFileCopy, "copy failed"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrFileCopy, "copy %s failed", "a"))
	})

	t.Run("wrapped_message_includes_cause", func(t *testing.T) {
		cause := stderrors.New("disk full")
		err := errors.Wrapf(cause, errors.ErrFileCopy, "failed to copy %s", "a.py")
		assert.Equal(t, "[FILE_COPY] failed to copy a.py: disk full", err.Error())
		assert.Same(t, cause, stderrors.Unwrap(err))
	})
}

func TestWrapKeepsFilesystemSentinels(t *testing.T) {
	_, statErr := os.Stat("/definitely/not/here/dunc")
	require.Error(t, statErr)

	err := errors.Wrap(statErr, errors.ErrFileAccess, "failed to stat source")

	assert.True(t, stderrors.Is(err, fs.ErrNotExist))

	var pathErr *fs.PathError
	require.True(t, stderrors.As(err, &pathErr))
	assert.Equal(t, "/definitely/not/here/dunc", pathErr.Path)
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrInvalidPattern, "bad glob").
		WithDetail("pattern", "src/[").
		WithDetail("root", "/tmp")

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "src/[", details["pattern"])
	assert.Equal(t, "/tmp", details["root"])

	var zero errors.DuncError
	zero.WithDetail("k", 1)
	assert.Equal(t, 1, zero.Details["k"])
}

func TestIs(t *testing.T) {
	err := errors.Wrap(stderrors.New("boom"), errors.ErrSymlinkCreate, "link failed")

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrSymlinkCreate, "")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrFileCopy, "")))
}

func TestIsErrorCode(t *testing.T) {
	inner := errors.New(errors.ErrProjectParse, "bad toml")
	outer := errors.Wrap(inner, errors.ErrProjectInvalid, "cannot load project")

	assert.True(t, errors.IsErrorCode(outer, errors.ErrProjectInvalid))
	assert.True(t, errors.IsErrorCode(inner, errors.ErrProjectParse))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrProjectParse))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrClobber, errors.GetErrorCode(errors.New(errors.ErrClobber, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}
