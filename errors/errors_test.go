package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FormatsAndWraps(t *testing.T) {
	err := New(ERR_STORAGE, "failed to read %s", "out.txt", io.EOF)

	assert.Equal(t, ERR_STORAGE, err.Code())
	assert.Equal(t, "failed to read out.txt", err.Message())
	assert.ErrorIs(t, err, io.EOF)
	assert.Contains(t, err.Error(), "STORAGE")
	assert.Contains(t, err.Error(), "EOF")
}

func TestNew_InvalidCode(t *testing.T) {
	err := New(ERR(999), "whatever")
	assert.Equal(t, "invalid error code", err.Message())
	assert.Equal(t, "ERR(999)", err.Code().String())
}

func TestIs_MatchesByCode(t *testing.T) {
	err := NewTxInvalidError("bad hex")

	assert.True(t, Is(err, ErrTxInvalid))
	assert.False(t, Is(err, ErrStorage))
}

func TestIs_ThroughWrapChain(t *testing.T) {
	inner := NewTxInvalidError("bad varint")
	outer := NewStorageError("loading record", inner)

	assert.True(t, Is(outer, ErrStorage))
	assert.True(t, Is(outer, ErrTxInvalid))
	assert.False(t, Is(outer, ErrBlockInvalid))

	wrappedByFmt := fmt.Errorf("context: %w", outer)
	assert.True(t, Is(wrappedByFmt, ErrTxInvalid))
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewBlockInvalidError("no transactions"))

	var e *Error
	require.True(t, As(err, &e))
	assert.Equal(t, ERR_BLOCK_INVALID, e.Code())
}

func TestNilError(t *testing.T) {
	var e *Error
	assert.Equal(t, "<nil>", e.Error())
	assert.Equal(t, ERR_UNKNOWN, e.Code())
	assert.Nil(t, e.Unwrap())
	assert.False(t, e.Is(ErrUnknown))
}
