package codec

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventWriter_WriteText_Decision(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantCData bool
	}{
		{"plain word", "abc", false},
		{"empty string", "", false},
		{"interior whitespace only", "a b", false},
		{"leading space", " a", true},
		{"trailing space", "a ", true},
		{"both sides", " a ", true},
		{"single space", " ", true},
		{"leading newline", "\na\n", true},
		{"leading tab", "\tabc", true},
		{"unicode whitespace", "\u00a0abc", true},
		{"long interior whitespace", "a    \n\t    b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewEventWriter(&buf, "")

			require.NoError(t, w.OpenElement("string"))
			require.NoError(t, w.WriteText(tt.value))
			require.NoError(t, w.CloseElement())

			out := buf.String()
			if tt.wantCData {
				assert.Contains(t, out, "<![CDATA[", "outer whitespace must force a literal block")
			} else {
				assert.NotContains(t, out, "<![CDATA[", "no literal block expected for %q", tt.value)
			}
		})
	}
}

func TestEventWriter_WriteText_EscapesMarkup(t *testing.T) {
	var buf bytes.Buffer
	w := NewEventWriter(&buf, "")

	require.NoError(t, w.OpenElement("string"))
	require.NoError(t, w.WriteText("a<b&c>d"))
	require.NoError(t, w.CloseElement())

	assert.Equal(t, "<string>a&lt;b&amp;c&gt;d</string>", buf.String())
}

func TestEventWriter_WriteText_SplitsCDataTerminator(t *testing.T) {
	var buf bytes.Buffer
	w := NewEventWriter(&buf, "")

	require.NoError(t, w.OpenElement("string"))
	require.NoError(t, w.WriteText(" ]]> "))
	require.NoError(t, w.CloseElement())

	assert.Equal(t, "<string><![CDATA[ ]]]]><![CDATA[> ]]></string>", buf.String())
}

func TestEventWriter_WriteFormatted_BufferReuse(t *testing.T) {
	var buf bytes.Buffer
	w := NewEventWriter(&buf, "")

	// Successive scalars must not leak content between calls.
	require.NoError(t, w.OpenElement("root"))
	require.NoError(t, w.WriteTagValue("a", int32(12345)))
	require.NoError(t, w.WriteTagValue("b", true))
	require.NoError(t, w.WriteTagValue("c", float32(0.5)))
	require.NoError(t, w.WriteTagValue("d", "x"))
	require.NoError(t, w.CloseElement())

	out := buf.String()
	assert.Contains(t, out, "<a>12345</a>")
	assert.Contains(t, out, "<b>true</b>")
	assert.Contains(t, out, "<c>0.5</c>")
	assert.Contains(t, out, "<d>x</d>")
	assert.NotContains(t, out, "12345true", "formatting buffer leaked between calls")
}

func TestEventWriter_WriteFormatted_ClearsBufferOnError(t *testing.T) {
	// A writer over a failing stream still clears its formatting buffer, so
	// the next call (after the caller recovers with a fresh stream) starts
	// clean. The shared buffer belongs to the writer, so the observable
	// contract is that repeated failed writes never compound content.
	w := NewEventWriter(failingWriter{}, "")

	require.NoError(t, w.OpenElement("x")) // buffered, no flush yet
	_ = w.WriteFormatted(int64(42))
	assert.Equal(t, 0, w.charBuf.Len(), "buffer must be cleared on every exit path")

	_ = w.WriteFormatted(int64(7))
	assert.Equal(t, 0, w.charBuf.Len())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, assert.AnError
}

func TestEventWriter_FloatSpellings(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{math.Inf(1), "INF"},
		{math.Inf(-1), "-INF"},
		{math.NaN(), "NAN"},
		{0.5, "0.5"},
		{-2, "-2"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		w := NewEventWriter(&buf, "")
		require.NoError(t, w.OpenElement("double"))
		require.NoError(t, w.WriteFormatted(tt.value))
		require.NoError(t, w.CloseElement())
		assert.Equal(t, "<double>"+tt.want+"</double>", buf.String())
	}
}

func TestWriteTagArray_LengthMismatchPanics(t *testing.T) {
	var buf bytes.Buffer
	w := NewEventWriter(&buf, "")
	require.NoError(t, w.OpenElement("Vector3"))

	assert.Panics(t, func() {
		_ = WriteTagArray(w, []float32{1, 2, 3}, []string{"X", "Y"})
	}, "mismatched values/tags must fail loudly, not truncate")
}

func TestWriteTagArray_PairsElementWise(t *testing.T) {
	var buf bytes.Buffer
	w := NewEventWriter(&buf, "")

	require.NoError(t, w.OpenElement("Vector3"))
	require.NoError(t, WriteTagArray(w, []float32{1, 2, 3}, []string{"X", "Y", "Z"}))
	require.NoError(t, w.CloseElement())

	out := buf.String()
	assert.Contains(t, out, "<X>1</X>")
	assert.Contains(t, out, "<Y>2</Y>")
	assert.Contains(t, out, "<Z>3</Z>")
}

func TestEventWriter_Indentation(t *testing.T) {
	var buf bytes.Buffer
	w := NewEventWriter(&buf, "  ")

	require.NoError(t, w.OpenElement("outer"))
	require.NoError(t, w.OpenElement("inner"))
	require.NoError(t, w.WriteText("x"))
	require.NoError(t, w.CloseElement())
	require.NoError(t, w.CloseElement())

	assert.Equal(t, "<outer>\n  <inner>x</inner>\n</outer>", buf.String())
}

func TestEventWriter_AttributeEscaping(t *testing.T) {
	var buf bytes.Buffer
	w := NewEventWriter(&buf, "")

	require.NoError(t, w.OpenElementAttrs("Item", Attr{Name: "class", Value: `A"B&C<D`}))
	require.NoError(t, w.CloseElement())

	assert.Equal(t, `<Item class="A&quot;B&amp;C&lt;D"></Item>`, buf.String())
}

func TestEventWriter_CloseWithoutOpenPanics(t *testing.T) {
	w := NewEventWriter(&bytes.Buffer{}, "")
	assert.Panics(t, func() { _ = w.CloseElement() })
}

func TestEventWriter_TextNeverPicksUpIndent(t *testing.T) {
	var buf bytes.Buffer
	w := NewEventWriter(&buf, "    ")

	require.NoError(t, w.OpenElement("a"))
	require.NoError(t, w.OpenElement("b"))
	require.NoError(t, w.WriteText("keep"))
	require.NoError(t, w.CloseElement())
	require.NoError(t, w.CloseElement())

	assert.False(t, strings.Contains(buf.String(), ">\n    keep"),
		"character data must stay inline with its element")
}
