package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[Code]int{
		CodeInvalidArgument: 400,
		CodeUnauthenticated: 401,
		CodeForbidden:       403,
		CodeNotFound:        404,
		CodeAlreadyExists:   409,
		CodeInternal:        500,
		CodeUnknown:         500,
	}
	for code, want := range cases {
		assert.Equal(t, want, code.HTTPStatus(), string(code))
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Internal("Failed to fetch posts", cause)

	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInternal, appErr.Code)
	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAsAppErrorOnPlainError(t *testing.T) {
	_, ok := AsAppError(stderrors.New("boom"))
	assert.False(t, ok)
}
