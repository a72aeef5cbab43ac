package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/meshforge/scenexml/errs"
	"github.com/meshforge/scenexml/internal/pool"
)

// Attr is a single attribute on a start element.
type Attr struct {
	Name  string
	Value string
}

type openElement struct {
	name        string
	hasChildren bool
}

// EventWriter emits indented XML events and implements the character-data
// encoding decision for property text.
//
// Elements that received child elements close on their own indented line;
// elements that received character data close inline, so text content never
// picks up indentation whitespace.
//
// Note: the EventWriter is NOT thread-safe. It owns a shared formatting
// buffer, so each writer instance must be used by a single goroutine at a
// time against an exclusively owned output stream.
type EventWriter struct {
	w        *bufio.Writer
	charBuf  *pool.ByteBuffer
	indent   string
	stack    []openElement
	wroteAny bool
}

// NewEventWriter creates an EventWriter emitting to output. indent is one
// indentation level; an empty indent still breaks lines between elements.
func NewEventWriter(output io.Writer, indent string) *EventWriter {
	return &EventWriter{
		w:       bufio.NewWriter(output),
		charBuf: pool.NewByteBuffer(pool.CharBufferDefaultSize),
		indent:  indent,
	}
}

// OpenElement writes a start element with no attributes.
func (w *EventWriter) OpenElement(name string) error {
	return w.OpenElementAttrs(name)
}

// OpenElementAttrs writes a start element with the given attributes.
func (w *EventWriter) OpenElementAttrs(name string, attrs ...Attr) error {
	if len(w.stack) > 0 {
		w.stack[len(w.stack)-1].hasChildren = true
	}

	if err := w.breakLine(); err != nil {
		return err
	}

	if err := w.writeString("<" + name); err != nil {
		return err
	}
	for _, attr := range attrs {
		if err := w.writeString(" " + attr.Name + `="`); err != nil {
			return err
		}
		if err := w.writeAttrValue(attr.Value); err != nil {
			return err
		}
		if err := w.writeString(`"`); err != nil {
			return err
		}
	}
	if err := w.writeString(">"); err != nil {
		return err
	}

	w.stack = append(w.stack, openElement{name: name})

	return nil
}

// CloseElement writes the end element matching the most recent open element.
// Calling it with no element open is a programmer error and panics.
func (w *EventWriter) CloseElement() error {
	if len(w.stack) == 0 {
		panic("codec: CloseElement without matching OpenElement")
	}

	top := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]

	if top.hasChildren {
		if err := w.breakLine(); err != nil {
			return err
		}
	}

	if err := w.writeString("</" + top.name + ">"); err != nil {
		return err
	}

	// End of the document; push everything to the underlying stream.
	if len(w.stack) == 0 {
		return w.Flush()
	}

	return nil
}

// WriteText writes a string as element content, choosing between plain
// escaped text and a CDATA literal block.
//
// The decision is a pure function of the first and last rune: if either is
// whitespace the string must go out as CDATA, because the format trims the
// outer whitespace of plain character data on read. Interior whitespace,
// length, and everything else are irrelevant. The empty string counts as
// having no outer whitespace.
func (w *EventWriter) WriteText(value string) error {
	first, _ := utf8.DecodeRuneInString(value)
	last, _ := utf8.DecodeLastRuneInString(value)

	if value != "" && (unicode.IsSpace(first) || unicode.IsSpace(last)) {
		return w.writeCDATA(value)
	}

	return w.writeEscaped(value)
}

// WriteFormatted formats a scalar value into the writer's shared buffer and
// writes it through the same text decision as WriteText.
//
// The shared buffer avoids a heap allocation per scalar, which adds up in
// documents with tens of thousands of small properties. The buffer is
// cleared on every exit path so content never leaks into the next call.
func (w *EventWriter) WriteFormatted(value any) error {
	defer w.charBuf.Reset()

	w.charBuf.B = appendFormatted(w.charBuf.B, value)

	return w.writeTextBytes(w.charBuf.B)
}

// WriteTagValue writes a formatted scalar wrapped in an element with the
// given tag and no attributes.
func (w *EventWriter) WriteTagValue(tag string, value any) error {
	if err := w.OpenElement(tag); err != nil {
		return err
	}
	if err := w.WriteFormatted(value); err != nil {
		return err
	}

	return w.CloseElement()
}

// Flush writes buffered output to the underlying stream.
func (w *EventWriter) Flush() error {
	return errs.NewEncodeError(w.w.Flush())
}

// WriteTagArray writes each value wrapped in the element named by the tag at
// the same index. The two slices pairing element-wise is a caller contract;
// a length mismatch is a programmer error and panics.
func WriteTagArray[T any](w *EventWriter, values []T, tags []string) error {
	if len(values) != len(tags) {
		panic(fmt.Sprintf("codec: WriteTagArray got %d values for %d tags", len(values), len(tags)))
	}

	for i, value := range values {
		if err := w.WriteTagValue(tags[i], value); err != nil {
			return err
		}
	}

	return nil
}

// breakLine starts a new line indented for the current depth. The very first
// output of the document skips the newline.
func (w *EventWriter) breakLine() error {
	if w.wroteAny {
		if err := w.writeString("\n"); err != nil {
			return err
		}
		if w.indent != "" {
			if err := w.writeString(strings.Repeat(w.indent, len(w.stack))); err != nil {
				return err
			}
		}
	}
	w.wroteAny = true

	return nil
}

func (w *EventWriter) writeString(s string) error {
	_, err := w.w.WriteString(s)
	return errs.NewEncodeError(err)
}

// writeEscaped writes value as plain character data, escaping the
// markup-significant characters.
func (w *EventWriter) writeEscaped(value string) error {
	start := 0
	for i := 0; i < len(value); i++ {
		var esc string
		switch value[i] {
		case '&':
			esc = "&amp;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		default:
			continue
		}

		if err := w.writeString(value[start:i]); err != nil {
			return err
		}
		if err := w.writeString(esc); err != nil {
			return err
		}
		start = i + 1
	}

	return w.writeString(value[start:])
}

// writeCDATA writes value verbatim inside a CDATA section. An embedded "]]>"
// terminator is handled by splitting into adjacent sections.
func (w *EventWriter) writeCDATA(value string) error {
	if err := w.writeString("<![CDATA["); err != nil {
		return err
	}

	for {
		i := strings.Index(value, "]]>")
		if i < 0 {
			break
		}
		if err := w.writeString(value[:i+2]); err != nil {
			return err
		}
		if err := w.writeString("]]><![CDATA["); err != nil {
			return err
		}
		value = value[i+2:]
	}

	if err := w.writeString(value); err != nil {
		return err
	}

	return w.writeString("]]>")
}

// writeTextBytes is WriteText for the shared formatting buffer, avoiding a
// string conversion per scalar.
func (w *EventWriter) writeTextBytes(value []byte) error {
	first, _ := utf8.DecodeRune(value)
	last, _ := utf8.DecodeLastRune(value)

	if len(value) > 0 && (unicode.IsSpace(first) || unicode.IsSpace(last)) {
		return w.writeCDATABytes(value)
	}

	return w.writeEscapedBytes(value)
}

func (w *EventWriter) writeEscapedBytes(value []byte) error {
	start := 0
	for i := 0; i < len(value); i++ {
		var esc string
		switch value[i] {
		case '&':
			esc = "&amp;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		default:
			continue
		}

		if err := w.writeBytes(value[start:i]); err != nil {
			return err
		}
		if err := w.writeString(esc); err != nil {
			return err
		}
		start = i + 1
	}

	return w.writeBytes(value[start:])
}

func (w *EventWriter) writeCDATABytes(value []byte) error {
	if err := w.writeString("<![CDATA["); err != nil {
		return err
	}

	for {
		i := bytes.Index(value, []byte("]]>"))
		if i < 0 {
			break
		}
		if err := w.writeBytes(value[:i+2]); err != nil {
			return err
		}
		if err := w.writeString("]]><![CDATA["); err != nil {
			return err
		}
		value = value[i+2:]
	}

	if err := w.writeBytes(value); err != nil {
		return err
	}

	return w.writeString("]]>")
}

func (w *EventWriter) writeBytes(b []byte) error {
	_, err := w.w.Write(b)
	return errs.NewEncodeError(err)
}

// writeAttrValue escapes an attribute value for a double-quoted attribute.
func (w *EventWriter) writeAttrValue(value string) error {
	start := 0
	for i := 0; i < len(value); i++ {
		var esc string
		switch value[i] {
		case '&':
			esc = "&amp;"
		case '<':
			esc = "&lt;"
		case '"':
			esc = "&quot;"
		default:
			continue
		}

		if err := w.writeString(value[start:i]); err != nil {
			return err
		}
		if err := w.writeString(esc); err != nil {
			return err
		}
		start = i + 1
	}

	return w.writeString(value[start:])
}

// appendFormatted appends the canonical text form of a scalar value.
// strconv fast paths cover every type the built-in handlers emit; anything
// else goes through fmt.
func appendFormatted(dst []byte, value any) []byte {
	switch v := value.(type) {
	case string:
		return append(dst, v...)
	case []byte:
		return append(dst, v...)
	case bool:
		return strconv.AppendBool(dst, v)
	case int:
		return strconv.AppendInt(dst, int64(v), 10)
	case int32:
		return strconv.AppendInt(dst, int64(v), 10)
	case int64:
		return strconv.AppendInt(dst, v, 10)
	case uint32:
		return strconv.AppendUint(dst, uint64(v), 10)
	case uint64:
		return strconv.AppendUint(dst, v, 10)
	case float32:
		return appendFloat(dst, float64(v), 32)
	case float64:
		return appendFloat(dst, v, 64)
	default:
		return fmt.Append(dst, value)
	}
}

// appendFloat appends a float using the format's spellings for the
// non-finite values.
func appendFloat(dst []byte, v float64, bits int) []byte {
	switch {
	case math.IsInf(v, 1):
		return append(dst, "INF"...)
	case math.IsInf(v, -1):
		return append(dst, "-INF"...)
	case math.IsNaN(v):
		return append(dst, "NAN"...)
	}

	return strconv.AppendFloat(dst, v, 'g', -1, bits)
}
