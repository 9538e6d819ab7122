// Package template parses the hint-template dialect used by the
// "on unimplemented" contract attribute.
//
// The dialect is deliberately tiny: literal text, named placeholders like
// {Self} or {T}, and doubled braces ({{, }}) as escapes for literal
// braces. Positional placeholders ({}, {0}) exist only so they can be
// rejected: the attribute requires named arguments.
package template

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// PieceKind discriminates parsed segments.
type PieceKind uint8

const (
	// PieceLiteral is literal text to copy through.
	PieceLiteral PieceKind = iota
	// PieceNamed is a {Name} placeholder; Text holds the NFC-normalized
	// name.
	PieceNamed
	// PiecePositional is a {} or {0} placeholder, or a placeholder the
	// parser could not read. Always an authoring error in this dialect.
	PiecePositional
)

// Piece is one parsed segment of a template.
type Piece struct {
	Kind PieceKind
	Text string
}

// Parse splits a template into pieces. It never fails: anything that is
// not a well-formed named placeholder comes back as PiecePositional so the
// caller can report it and keep scanning.
func Parse(s string) []Piece {
	var pieces []Piece
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			pieces = append(pieces, Piece{Kind: PieceLiteral, Text: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(s)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch r {
		case '{':
			if i+1 < len(runes) && runes[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			end := i + 1
			for end < len(runes) && runes[end] != '}' && runes[end] != '{' {
				end++
			}
			if end >= len(runes) || runes[end] != '}' {
				// незакрытый placeholder
				flush()
				pieces = append(pieces, Piece{Kind: PiecePositional, Text: string(runes[i+1:])})
				return pieces
			}
			name := string(runes[i+1 : end])
			flush()
			if isName(name) {
				pieces = append(pieces, Piece{Kind: PieceNamed, Text: norm.NFC.String(name)})
			} else {
				pieces = append(pieces, Piece{Kind: PiecePositional, Text: name})
			}
			i = end + 1
		case '}':
			if i+1 < len(runes) && runes[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			// одиночная '}' копируется как есть
			lit.WriteRune(r)
			i++
		default:
			lit.WriteRune(r)
			i++
		}
	}
	flush()
	return pieces
}

// isName reports whether s is a valid placeholder name: a letter or
// underscore followed by letters, digits or underscores.
func isName(s string) bool {
	if s == "" {
		return false
	}
	for idx, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case idx > 0 && (unicode.IsDigit(r) || unicode.IsMark(r)):
		default:
			return false
		}
	}
	return true
}
