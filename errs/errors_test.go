package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDecodeError(t *testing.T) {
	loc := Location{Line: 3, Column: 7, Offset: 42}
	err := NewDecodeError(loc, ErrMalformedValue)

	require.ErrorIs(t, err, ErrMalformedValue)
	assert.Contains(t, err.Error(), "line 3, column 7")

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, loc, decodeErr.Loc)
}

func TestNewDecodeError_Nil(t *testing.T) {
	assert.NoError(t, NewDecodeError(Location{}, nil))
}

func TestNewEncodeError(t *testing.T) {
	err := NewEncodeError(ErrUnsupportedPropertyType)
	require.ErrorIs(t, err, ErrUnsupportedPropertyType)
}

func TestNewEncodeError_Nil(t *testing.T) {
	assert.NoError(t, NewEncodeError(nil))
}

func TestNewEncodeError_NoDoubleWrap(t *testing.T) {
	inner := NewEncodeError(errors.New("stream closed"))
	outer := NewEncodeError(inner)
	assert.Same(t, inner, outer)
}

func TestLocation_String(t *testing.T) {
	assert.Equal(t, "line 12, column 4", Location{Line: 12, Column: 4, Offset: 99}.String())
}
