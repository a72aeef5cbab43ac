package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/meshforge/scenexml/errs"
)

// StartElement is a start tag with its attributes.
type StartElement struct {
	Name  string
	Attrs []Attr
}

// Attr returns the value of the named attribute.
func (s StartElement) Attr(name string) (string, bool) {
	for _, attr := range s.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}

	return "", false
}

type tokenKind uint8

const (
	tokStart tokenKind = iota + 1
	tokEnd
	tokText
	tokCData
	tokEOF
)

type token struct {
	kind  tokenKind
	start StartElement // tokStart only
	name  string       // tokEnd only
	text  string       // tokText and tokCData
	loc   errs.Location
}

// EventReader lexes a scene document into element and character-data events
// and tracks the source position for error reporting.
//
// The reader applies the format's whitespace rule: plain character data in a
// leaf element has its leading and trailing whitespace trimmed, while CDATA
// content is preserved verbatim. That asymmetry is why the writer wraps
// strings with outer whitespace in CDATA.
//
// Note: the EventReader is NOT thread-safe. Each reader instance must be
// used by a single goroutine against an exclusively owned input stream.
type EventReader struct {
	r       *bufio.Reader
	line    int
	col     int
	offset  int64
	pending []token
}

// NewEventReader creates an EventReader consuming from input.
func NewEventReader(input io.Reader) *EventReader {
	return &EventReader{
		r:    bufio.NewReader(input),
		line: 1,
		col:  1,
	}
}

// Position returns the reader's current location in the source document.
func (r *EventReader) Position() errs.Location {
	return errs.Location{Line: r.line, Column: r.col, Offset: r.offset}
}

// NextStart returns the next start element, skipping whitespace between
// elements. It returns nil when the enclosing element ends; the end tag is
// left for ExpectEnd to consume.
func (r *EventReader) NextStart() (*StartElement, error) {
	for {
		t, err := r.peekTok()
		if err != nil {
			return nil, err
		}

		switch t.kind {
		case tokText:
			if strings.TrimFunc(t.text, unicode.IsSpace) != "" {
				return nil, r.errAt(t.loc, fmt.Errorf("%w: unexpected character data where an element was expected", errs.ErrMalformedValue))
			}
			r.dropTok()

		case tokCData:
			return nil, r.errAt(t.loc, fmt.Errorf("%w: unexpected CDATA where an element was expected", errs.ErrMalformedValue))

		case tokStart:
			r.dropTok()
			start := t.start

			return &start, nil

		case tokEnd:
			return nil, nil

		case tokEOF:
			return nil, r.errAt(t.loc, errs.ErrUnexpectedEOF)
		}
	}
}

// ExpectStart consumes the next start element and checks its name.
func (r *EventReader) ExpectStart(name string) (StartElement, error) {
	start, err := r.NextStart()
	if err != nil {
		return StartElement{}, err
	}
	if start == nil {
		return StartElement{}, r.errHere(fmt.Errorf("%w: expected <%s>, found end of element", errs.ErrTagMismatch, name))
	}
	if start.Name != name {
		return StartElement{}, r.errHere(fmt.Errorf("%w: expected <%s>, found <%s>", errs.ErrTagMismatch, name, start.Name))
	}

	return *start, nil
}

// ExpectEnd consumes the end element with the given name, skipping
// whitespace before it.
func (r *EventReader) ExpectEnd(name string) error {
	for {
		t, err := r.nextTok()
		if err != nil {
			return err
		}

		switch t.kind {
		case tokText:
			if strings.TrimFunc(t.text, unicode.IsSpace) != "" {
				return r.errAt(t.loc, fmt.Errorf("%w: unexpected character data before </%s>", errs.ErrMalformedValue, name))
			}

		case tokEnd:
			if t.name != name {
				return r.errAt(t.loc, fmt.Errorf("%w: expected </%s>, found </%s>", errs.ErrTagMismatch, name, t.name))
			}

			return nil

		case tokEOF:
			return r.errAt(t.loc, errs.ErrUnexpectedEOF)

		default:
			return r.errAt(t.loc, fmt.Errorf("%w: expected </%s>", errs.ErrTagMismatch, name))
		}
	}
}

// ReadInnerText reads the character data of a leaf element up to, but not
// including, its end element.
//
// Plain segments at the boundaries are trimmed of outer whitespace per the
// format rule; CDATA segments are verbatim. A child start element inside
// text content is malformed.
func (r *EventReader) ReadInnerText() (string, error) {
	type segment struct {
		text  string
		cdata bool
	}
	var segs []segment

	for {
		t, err := r.peekTok()
		if err != nil {
			return "", err
		}

		switch t.kind {
		case tokText:
			r.dropTok()
			segs = append(segs, segment{text: t.text})

		case tokCData:
			r.dropTok()
			segs = append(segs, segment{text: t.text, cdata: true})

		case tokEnd:
			if len(segs) == 0 {
				return "", nil
			}
			if !segs[0].cdata {
				segs[0].text = strings.TrimLeftFunc(segs[0].text, unicode.IsSpace)
			}
			if last := len(segs) - 1; !segs[last].cdata {
				segs[last].text = strings.TrimRightFunc(segs[last].text, unicode.IsSpace)
			}
			var b strings.Builder
			for _, seg := range segs {
				b.WriteString(seg.text)
			}

			return b.String(), nil

		case tokStart:
			return "", r.errAt(t.loc, fmt.Errorf("%w: unexpected child element <%s> in text content", errs.ErrMalformedValue, t.start.Name))

		case tokEOF:
			return "", r.errAt(t.loc, errs.ErrUnexpectedEOF)
		}
	}
}

// ReadTagValue reads a whole child element: start tag, inner text, end tag.
// It is the read-path counterpart of EventWriter.WriteTagValue.
func (r *EventReader) ReadTagValue(tag string) (string, error) {
	if _, err := r.ExpectStart(tag); err != nil {
		return "", err
	}
	text, err := r.ReadInnerText()
	if err != nil {
		return "", err
	}

	return text, r.ExpectEnd(tag)
}

// MalformedValue builds a decode error for a handler whose own parsing
// failed, carrying the current document position.
func (r *EventReader) MalformedValue(detail string) error {
	return r.errHere(fmt.Errorf("%w: %s", errs.ErrMalformedValue, detail))
}

func (r *EventReader) errHere(err error) error {
	return errs.NewDecodeError(r.Position(), err)
}

func (r *EventReader) errAt(loc errs.Location, err error) error {
	return errs.NewDecodeError(loc, err)
}

// =============================================================================
// Token queue
// =============================================================================

func (r *EventReader) peekTok() (token, error) {
	if len(r.pending) == 0 {
		if err := r.lex(); err != nil {
			return token{}, err
		}
	}

	return r.pending[0], nil
}

func (r *EventReader) nextTok() (token, error) {
	t, err := r.peekTok()
	if err != nil {
		return token{}, err
	}
	r.dropTok()

	return t, nil
}

func (r *EventReader) dropTok() {
	r.pending = r.pending[1:]
}

// =============================================================================
// Lexer
// =============================================================================

// lex appends at least one token to the pending queue. A self-closing tag
// appends both its start and end token.
func (r *EventReader) lex() error {
	loc := r.Position()

	c, err := r.peekByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.pending = append(r.pending, token{kind: tokEOF, loc: loc})
			return nil
		}

		return r.errAt(loc, err)
	}

	if c != '<' {
		return r.lexText(loc)
	}

	r.mustReadByte() // consume '<'

	c, err = r.peekByte()
	if err != nil {
		return r.errAt(loc, errs.ErrUnexpectedEOF)
	}

	switch c {
	case '/':
		r.mustReadByte()
		return r.lexEnd(loc)
	case '?':
		if err := r.skipUntil("?>"); err != nil {
			return err
		}

		return r.lex()
	case '!':
		r.mustReadByte()
		return r.lexBang(loc)
	default:
		return r.lexStart(loc)
	}
}

func (r *EventReader) lexText(loc errs.Location) error {
	var b strings.Builder
	for {
		c, err := r.peekByte()
		if err != nil || c == '<' {
			break
		}
		b.WriteByte(r.mustReadByte())
	}

	text, err := unescapeEntities(b.String())
	if err != nil {
		return r.errAt(loc, err)
	}

	r.pending = append(r.pending, token{kind: tokText, text: text, loc: loc})

	return nil
}

func (r *EventReader) lexEnd(loc errs.Location) error {
	name, err := r.readName(loc)
	if err != nil {
		return err
	}
	if err := r.skipSpace(); err != nil {
		return err
	}
	c, err := r.readByte()
	if err != nil || c != '>' {
		return r.errAt(loc, fmt.Errorf("%w: malformed end tag </%s>", errs.ErrMalformedValue, name))
	}

	r.pending = append(r.pending, token{kind: tokEnd, name: name, loc: loc})

	return nil
}

func (r *EventReader) lexStart(loc errs.Location) error {
	name, err := r.readName(loc)
	if err != nil {
		return err
	}

	start := StartElement{Name: name}
	for {
		if err := r.skipSpace(); err != nil {
			return err
		}

		c, err := r.peekByte()
		if err != nil {
			return r.errAt(loc, errs.ErrUnexpectedEOF)
		}

		switch c {
		case '>':
			r.mustReadByte()
			r.pending = append(r.pending, token{kind: tokStart, start: start, loc: loc})

			return nil

		case '/':
			r.mustReadByte()
			c, err := r.readByte()
			if err != nil || c != '>' {
				return r.errAt(loc, fmt.Errorf("%w: malformed element <%s>", errs.ErrMalformedValue, name))
			}
			r.pending = append(r.pending,
				token{kind: tokStart, start: start, loc: loc},
				token{kind: tokEnd, name: name, loc: loc},
			)

			return nil

		default:
			attr, err := r.lexAttr(loc)
			if err != nil {
				return err
			}
			start.Attrs = append(start.Attrs, attr)
		}
	}
}

func (r *EventReader) lexAttr(loc errs.Location) (Attr, error) {
	name, err := r.readName(loc)
	if err != nil {
		return Attr{}, err
	}
	if err := r.skipSpace(); err != nil {
		return Attr{}, err
	}

	c, err := r.readByte()
	if err != nil || c != '=' {
		return Attr{}, r.errAt(loc, fmt.Errorf("%w: attribute %q missing value", errs.ErrMalformedValue, name))
	}
	if err := r.skipSpace(); err != nil {
		return Attr{}, err
	}

	quote, err := r.readByte()
	if err != nil || (quote != '"' && quote != '\'') {
		return Attr{}, r.errAt(loc, fmt.Errorf("%w: attribute %q missing quoted value", errs.ErrMalformedValue, name))
	}

	var b strings.Builder
	for {
		c, err := r.readByte()
		if err != nil {
			return Attr{}, r.errAt(loc, errs.ErrUnexpectedEOF)
		}
		if c == quote {
			break
		}
		b.WriteByte(c)
	}

	value, err := unescapeEntities(b.String())
	if err != nil {
		return Attr{}, r.errAt(loc, err)
	}

	return Attr{Name: name, Value: value}, nil
}

// lexBang handles "<!": comments and CDATA sections. DOCTYPE declarations
// are not part of the format.
func (r *EventReader) lexBang(loc errs.Location) error {
	if ok, err := r.consumeLiteral("--"); err != nil {
		return r.errAt(loc, err)
	} else if ok {
		if err := r.skipUntil("-->"); err != nil {
			return err
		}

		return r.lex()
	}

	if ok, err := r.consumeLiteral("[CDATA["); err != nil {
		return r.errAt(loc, err)
	} else if !ok {
		return r.errAt(loc, fmt.Errorf("%w: unsupported markup declaration", errs.ErrMalformedValue))
	}

	var buf []byte
	for {
		c, err := r.readByte()
		if err != nil {
			return r.errAt(loc, errs.ErrUnexpectedEOF)
		}
		buf = append(buf, c)

		if c == '>' && len(buf) >= 3 && buf[len(buf)-3] == ']' && buf[len(buf)-2] == ']' {
			r.pending = append(r.pending, token{kind: tokCData, text: string(buf[:len(buf)-3]), loc: loc})

			return nil
		}
	}
}

// =============================================================================
// Byte-level helpers
// =============================================================================

func (r *EventReader) readByte() (byte, error) {
	c, err := r.r.ReadByte()
	if err != nil {
		return 0, err
	}

	r.offset++
	if c == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}

	return c, nil
}

// mustReadByte consumes a byte known to exist from a preceding peek.
func (r *EventReader) mustReadByte() byte {
	c, err := r.readByte()
	if err != nil {
		panic("codec: mustReadByte after successful peek")
	}

	return c
}

func (r *EventReader) peekByte() (byte, error) {
	b, err := r.r.Peek(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// consumeLiteral consumes lit if the input starts with it.
func (r *EventReader) consumeLiteral(lit string) (bool, error) {
	b, err := r.r.Peek(len(lit))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}

		return false, err
	}
	if string(b) != lit {
		return false, nil
	}

	for range lit {
		r.mustReadByte()
	}

	return true, nil
}

// skipUntil consumes input through the first occurrence of the terminator.
func (r *EventReader) skipUntil(term string) error {
	var tail string
	for {
		c, err := r.readByte()
		if err != nil {
			return r.errHere(errs.ErrUnexpectedEOF)
		}

		tail += string(c)
		if len(tail) > len(term) {
			tail = tail[len(tail)-len(term):]
		}
		if tail == term {
			return nil
		}
	}
}

func (r *EventReader) skipSpace() error {
	for {
		c, err := r.peekByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return r.errHere(err)
		}
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return nil
		}
		r.mustReadByte()
	}
}

func isNameByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '-', c == '.', c == ':':
		return true
	default:
		return false
	}
}

func (r *EventReader) readName(loc errs.Location) (string, error) {
	var b strings.Builder
	for {
		c, err := r.peekByte()
		if err != nil || !isNameByte(c) {
			break
		}
		b.WriteByte(r.mustReadByte())
	}

	if b.Len() == 0 {
		return "", r.errAt(loc, fmt.Errorf("%w: missing element name", errs.ErrMalformedValue))
	}

	return b.String(), nil
}

// unescapeEntities expands the predefined XML entities and numeric character
// references.
func unescapeEntities(s string) (string, error) {
	if !strings.Contains(s, "&") {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '&' {
			b.WriteByte(c)
			i++

			continue
		}

		semi := strings.IndexByte(s[i:], ';')
		if semi < 0 {
			return "", fmt.Errorf("%w: unterminated entity reference", errs.ErrMalformedValue)
		}

		entity := s[i+1 : i+semi]
		switch entity {
		case "amp":
			b.WriteByte('&')
		case "lt":
			b.WriteByte('<')
		case "gt":
			b.WriteByte('>')
		case "quot":
			b.WriteByte('"')
		case "apos":
			b.WriteByte('\'')
		default:
			if !strings.HasPrefix(entity, "#") {
				return "", fmt.Errorf("%w: unknown entity &%s;", errs.ErrMalformedValue, entity)
			}
			digits, base := entity[1:], 10
			if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
				digits, base = digits[1:], 16
			}
			n, err := strconv.ParseUint(digits, base, 32)
			if err != nil || !utf8.ValidRune(rune(n)) {
				return "", fmt.Errorf("%w: invalid character reference &%s;", errs.ErrMalformedValue, entity)
			}
			b.WriteRune(rune(n))
		}

		i += semi + 1
	}

	return b.String(), nil
}
