package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Basics(t *testing.T) {
	bb := NewByteBuffer(16)
	assert.Equal(t, 0, bb.Len())

	bb.WriteString("abc")
	require.NoError(t, bb.WriteByte('d'))
	n, err := bb.Write([]byte("ef"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, "abcdef", bb.String())
	assert.Equal(t, []byte("abcdef"), bb.Bytes())
	assert.Equal(t, 6, bb.Len())
}

func TestByteBuffer_ResetKeepsCapacity(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.WriteString("0123456789abcdef")
	grown := cap(bb.B)

	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, grown, cap(bb.B))
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.WriteString("payload")

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, "payload", out.String())
}

func TestByteBufferPool_GetReturnsCleared(t *testing.T) {
	p := NewByteBufferPool(16, 0)

	bb := p.Get()
	bb.WriteString("leftover")
	p.Put(bb)

	got := p.Get()
	assert.Equal(t, 0, got.Len())
}

func TestByteBufferPool_DiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(16, 32)

	bb := p.Get()
	bb.B = append(bb.B, make([]byte, 64)...)
	p.Put(bb) // over threshold, dropped

	got := p.Get()
	assert.LessOrEqual(t, cap(got.B), 32, "oversized buffer must not be retained")
}

func TestByteBufferPool_PutNil(t *testing.T) {
	p := NewByteBufferPool(16, 0)
	assert.NotPanics(t, func() { p.Put(nil) })
}

func TestDocBufferPool(t *testing.T) {
	bb := GetDocBuffer()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	bb.WriteString("doc")
	PutDocBuffer(bb)
}
