package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// Calculator computes fragment fingerprints. The abstraction allows
// alternative strategies in tests.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of normalized content,
	// resilient to comment and formatting changes.
	CalculateNormalized(content []byte) string
}

// SHA256 implements checksum calculation using SHA-256 over Cypher text.
// Normalization:
//  1. Remove Cypher comments (// and /* */) while preserving string
//     literals and backtick-quoted identifiers
//  2. Collapse whitespace to single spaces
//  3. Lowercase everything outside literals is NOT attempted; Cypher
//     identifiers are case-sensitive, so only whitespace and comments are
//     normalized
//
// SHA256 is a zero-size type and is safe for concurrent use.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of normalized content.
func (c SHA256) CalculateNormalized(content []byte) string {
	normalized := c.normalize(string(content))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

func (c SHA256) normalize(content string) string {
	cleaned := c.removeComments(content)

	var b strings.Builder
	b.Grow(len(cleaned))

	lastWasSpace := false
	for _, r := range cleaned {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				b.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			b.WriteRune(r)
			lastWasSpace = false
		}
	}

	return strings.TrimSpace(b.String())
}

type scanState int

const (
	stNormal scanState = iota
	stLineComment
	stBlockComment
	stSingleQuote
	stDoubleQuote
	stBacktick
)

// removeComments removes Cypher comments while preserving quoted strings
// and backtick identifiers. Block comments do not nest in Cypher.
func (c SHA256) removeComments(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	state := stNormal
	i := 0

	for i < len(content) {
		ch := content[i]
		var next byte
		if i+1 < len(content) {
			next = content[i+1]
		}

		switch state {
		case stNormal:
			switch {
			case ch == '/' && next == '/':
				state = stLineComment
				b.WriteByte(' ')
				i += 2
			case ch == '/' && next == '*':
				state = stBlockComment
				b.WriteByte(' ')
				i += 2
			case ch == '\'':
				state = stSingleQuote
				b.WriteByte(ch)
				i++
			case ch == '"':
				state = stDoubleQuote
				b.WriteByte(ch)
				i++
			case ch == '`':
				state = stBacktick
				b.WriteByte(ch)
				i++
			default:
				b.WriteByte(ch)
				i++
			}

		case stLineComment:
			if ch == '\n' {
				b.WriteByte(ch)
				state = stNormal
			}
			i++

		case stBlockComment:
			if ch == '*' && next == '/' {
				state = stNormal
				i += 2
			} else {
				i++
			}

		case stSingleQuote, stDoubleQuote:
			b.WriteByte(ch)
			quote := byte('\'')
			if state == stDoubleQuote {
				quote = '"'
			}
			if ch == '\\' && i+1 < len(content) {
				b.WriteByte(next)
				i += 2
			} else {
				if ch == quote {
					state = stNormal
				}
				i++
			}

		case stBacktick:
			b.WriteByte(ch)
			if ch == '`' {
				state = stNormal
			}
			i++
		}
	}

	return b.String()
}
