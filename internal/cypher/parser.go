package cypher

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alanecode/cymod/pkg/cymod"
)

// Parser splits Cypher fragment text into executable statement units.
//
// Statement boundaries are semicolons outside comments, string literals
// and backtick-quoted identifiers. Comments are stripped before boundary
// detection so terminators inside them are ignored. $name placeholders are
// recorded without altering the executable text; the driver binds them
// natively at execution time.
//
// A fragment may open with a JSON object before its first statement; it
// declares fragment-local parameter defaults. The header is not part of
// any statement.
//
// Parser is stateless and safe for concurrent use.
type Parser struct{}

// NewParser creates a statement parser.
func NewParser() *Parser {
	return &Parser{}
}

type parseState int

const (
	stNormal parseState = iota
	stLineComment
	stBlockComment
	stSingleQuote
	stDoubleQuote
	stBacktick
	stHeader
)

// Parse produces the ordered statement units of one fragment.
func (p *Parser) Parse(frag cymod.Fragment) (cymod.ParsedFragment, error) {
	s := &scan{
		frag: frag,
		src:  frag.RawText,
		line: 1,
	}
	if err := s.run(); err != nil {
		return cymod.ParsedFragment{}, err
	}
	return cymod.ParsedFragment{
		Fragment:     frag,
		Statements:   s.statements,
		HeaderParams: s.headerParams,
	}, nil
}

// scan holds the single-pass scanner state for one fragment.
type scan struct {
	frag cymod.Fragment
	src  string
	pos  int
	line int

	state     parseState
	stateLine int // line where a comment/string/header opened

	// current statement accumulation
	buf       strings.Builder
	startLine int
	endLine   int
	refs      []string
	seen      map[string]struct{}

	// header accumulation
	headerBuf    strings.Builder
	headerDepth  int
	headerQuote  byte // 0 when not inside a header string
	headerParams map[string]any
	headerDone   bool

	statements []cymod.StatementUnit
}

func (s *scan) run() error {
	for s.pos < len(s.src) {
		ch := s.src[s.pos]
		var next byte
		if s.pos+1 < len(s.src) {
			next = s.src[s.pos+1]
		}

		switch s.state {
		case stNormal:
			switch {
			case ch == '/' && next == '/':
				s.state = stLineComment
				s.advance(2)
			case ch == '/' && next == '*':
				s.state = stBlockComment
				s.stateLine = s.line
				s.advance(2)
			case ch == '\'':
				s.state = stSingleQuote
				s.stateLine = s.line
				s.content(ch)
				s.advance(1)
			case ch == '"':
				s.state = stDoubleQuote
				s.stateLine = s.line
				s.content(ch)
				s.advance(1)
			case ch == '`':
				s.state = stBacktick
				s.stateLine = s.line
				s.content(ch)
				s.advance(1)
			case ch == '$':
				s.placeholder()
			case ch == ';':
				s.finishStatement()
				s.advance(1)
			case ch == '{' && s.headerAllowed():
				s.state = stHeader
				s.stateLine = s.line
				s.headerDepth = 1
				s.headerBuf.WriteByte(ch)
				s.advance(1)
			default:
				if isSpace(ch) {
					// Whitespace between tokens is kept only inside a
					// started statement, so leading blank lines never
					// shift a statement's start line.
					if s.buf.Len() > 0 {
						s.buf.WriteByte(ch)
					}
				} else {
					s.content(ch)
				}
				s.advance(1)
			}

		case stLineComment:
			if ch == '\n' {
				s.state = stNormal
				if s.buf.Len() > 0 {
					s.buf.WriteByte('\n')
				}
			}
			s.advance(1)

		case stBlockComment:
			if ch == '*' && next == '/' {
				s.state = stNormal
				if s.buf.Len() > 0 {
					s.buf.WriteByte(' ')
				}
				s.advance(2)
			} else {
				s.advance(1)
			}

		case stSingleQuote, stDoubleQuote:
			quote := byte('\'')
			if s.state == stDoubleQuote {
				quote = '"'
			}
			if ch == '\\' && s.pos+1 < len(s.src) {
				s.content(ch)
				s.content(next)
				s.advance(2)
			} else {
				s.content(ch)
				if ch == quote {
					s.state = stNormal
				}
				s.advance(1)
			}

		case stBacktick:
			s.content(ch)
			if ch == '`' {
				s.state = stNormal
			}
			s.advance(1)

		case stHeader:
			s.headerBuf.WriteByte(ch)
			if s.headerQuote != 0 {
				if ch == '\\' && s.pos+1 < len(s.src) {
					s.headerBuf.WriteByte(next)
					s.advance(2)
					continue
				}
				if ch == s.headerQuote {
					s.headerQuote = 0
				}
			} else {
				switch ch {
				case '"':
					s.headerQuote = ch
				case '{':
					s.headerDepth++
				case '}':
					s.headerDepth--
					if s.headerDepth == 0 {
						if err := s.finishHeader(); err != nil {
							return err
						}
					}
				}
			}
			s.advance(1)
		}
	}

	return s.finish()
}

// finish handles end-of-input: close the trailing statement or report an
// unterminated construct.
func (s *scan) finish() error {
	switch s.state {
	case stBlockComment:
		return s.errAt(s.stateLine, "unterminated block comment")
	case stSingleQuote, stDoubleQuote:
		return s.errAt(s.stateLine, "unterminated string literal")
	case stBacktick:
		return s.errAt(s.stateLine, "unterminated backtick identifier")
	case stHeader:
		return s.errAt(s.stateLine, "unterminated parameter header")
	}

	// A non-empty remainder after the last semicolon counts as a final
	// statement with the terminator omitted.
	s.finishStatement()
	return nil
}

func (s *scan) advance(n int) {
	for i := 0; i < n && s.pos < len(s.src); i++ {
		if s.src[s.pos] == '\n' {
			s.line++
		}
		s.pos++
	}
}

// content records one byte of executable statement text.
func (s *scan) content(ch byte) {
	if s.buf.Len() == 0 {
		s.startLine = s.line
	}
	s.buf.WriteByte(ch)
	if !isSpace(ch) {
		s.endLine = s.line
	}
}

// placeholder consumes a $name reference, recording the name and keeping
// the marker in the statement text.
func (s *scan) placeholder() {
	start := s.pos + 1
	end := start
	for end < len(s.src) && isIdentChar(s.src[end], end > start) {
		end++
	}

	if end == start {
		// a bare $ is not a placeholder; leave it to the server to reject
		s.content('$')
		s.advance(1)
		return
	}

	name := s.src[start:end]
	s.content('$')
	for i := start; i < end; i++ {
		s.content(s.src[i])
	}
	s.advance(1 + len(name))

	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, dup := s.seen[name]; !dup {
		s.seen[name] = struct{}{}
		s.refs = append(s.refs, name)
	}
}

// finishStatement closes the current statement, dropping it when it holds
// nothing but whitespace.
func (s *scan) finishStatement() {
	text := strings.TrimSpace(s.buf.String())
	if text != "" {
		s.statements = append(s.statements, cymod.StatementUnit{
			FragmentPath: s.frag.Path,
			Index:        len(s.statements),
			Text:         text,
			StartLine:    s.startLine,
			EndLine:      s.endLine,
			ParamRefs:    s.refs,
		})
	}
	s.buf.Reset()
	s.refs = nil
	s.seen = nil
}

// headerAllowed reports whether a '{' opens the fragment parameter header:
// only before any statement content and at most once per fragment.
func (s *scan) headerAllowed() bool {
	return !s.headerDone && len(s.statements) == 0 && s.buf.Len() == 0
}

func (s *scan) finishHeader() error {
	s.state = stNormal
	s.headerDone = true

	var params map[string]any
	if err := json.Unmarshal([]byte(s.headerBuf.String()), &params); err != nil {
		return s.errSpan(s.stateLine, s.line, fmt.Sprintf("malformed parameter header: %v", err))
	}
	s.headerParams = params
	return nil
}

func (s *scan) errAt(line int, msg string) error {
	return s.errSpan(line, s.line, msg)
}

func (s *scan) errSpan(start, end int, msg string) error {
	return &cymod.ParseError{
		Path:      s.frag.Path,
		StartLine: start,
		EndLine:   end,
		Msg:       msg,
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isIdentChar(ch byte, notFirst bool) bool {
	if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' {
		return true
	}
	return notFirst && ch >= '0' && ch <= '9'
}

// Verify Parser implements the interface at compile time
var _ cymod.StatementParser = (*Parser)(nil)
