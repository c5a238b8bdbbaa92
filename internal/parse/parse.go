// Package parse provides the backtracking combinator core used by the
// reference grammars.
//
// A Parser consumes a prefix of its input and returns the typed value plus
// the unconsumed remainder. On failure it returns ErrNoMatch and the input
// is treated as unconsumed; there is no other failure kind. Ordered
// alternation (Alt) tries sub-parsers left to right and keeps the first
// success, which makes grammar precedence explicit at the call site.
package parse

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrNoMatch is the recoverable parse failure. Every primitive and grammar
// reports it; alternation converts it into trying the next alternative.
var ErrNoMatch = errors.New("no match")

// Parser consumes a prefix of in and returns the parsed value and the
// unconsumed remainder.
type Parser[T any] func(in string) (T, string, error)

// Alt returns a parser that tries each alternative in order and returns the
// first success. Failed alternatives consume nothing.
func Alt[T any](parsers ...Parser[T]) Parser[T] {
	return func(in string) (T, string, error) {
		for _, p := range parsers {
			v, rest, err := p(in)
			if err == nil {
				return v, rest, nil
			}
		}
		var zero T
		return zero, in, ErrNoMatch
	}
}

// Map transforms the value of a successful parse.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(in string) (B, string, error) {
		v, rest, err := p(in)
		if err != nil {
			var zero B
			return zero, in, err
		}
		return f(v), rest, nil
	}
}

// Opt makes a parser optional: on failure it succeeds with the zero value
// and consumes nothing.
func Opt[T any](p Parser[T]) Parser[T] {
	return func(in string) (T, string, error) {
		v, rest, err := p(in)
		if err != nil {
			var zero T
			return zero, in, nil
		}
		return v, rest, nil
	}
}

// Lit matches an exact literal prefix.
func Lit(lit string) Parser[string] {
	return func(in string) (string, string, error) {
		if strings.HasPrefix(in, lit) {
			return lit, in[len(lit):], nil
		}
		return "", in, ErrNoMatch
	}
}

// LitFold matches a literal prefix case-insensitively.
func LitFold(lit string) Parser[string] {
	return func(in string) (string, string, error) {
		if len(in) >= len(lit) && strings.EqualFold(in[:len(lit)], lit) {
			return in[:len(lit)], in[len(lit):], nil
		}
		return "", in, ErrNoMatch
	}
}

// AnyLit matches the first of several literal prefixes.
func AnyLit(lits ...string) Parser[string] {
	return func(in string) (string, string, error) {
		for _, lit := range lits {
			if strings.HasPrefix(in, lit) {
				return lit, in[len(lit):], nil
			}
		}
		return "", in, ErrNoMatch
	}
}

// TakeWhile1 consumes one or more leading runes satisfying pred.
func TakeWhile1(pred func(rune) bool) Parser[string] {
	return func(in string) (string, string, error) {
		end := 0
		for end < len(in) {
			r, size := utf8.DecodeRuneInString(in[end:])
			if !pred(r) {
				break
			}
			end += size
		}
		if end == 0 {
			return "", in, ErrNoMatch
		}
		return in[:end], in[end:], nil
	}
}

// Digits consumes between min and max decimal digits (max <= 0 means
// unbounded).
func Digits(min, max int) Parser[string] {
	return func(in string) (string, string, error) {
		end := 0
		for end < len(in) && in[end] >= '0' && in[end] <= '9' {
			end++
			if max > 0 && end == max {
				break
			}
		}
		if end < min {
			return "", in, ErrNoMatch
		}
		return in[:end], in[end:], nil
	}
}

// SkipSpace drops leading whitespace. It is not a Parser because it cannot
// fail.
func SkipSpace(in string) string {
	return strings.TrimLeft(in, " \t\r\n")
}

// IsAlnum reports whether r is a letter or digit.
func IsAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// CountAlnum counts the letters and digits in s. The dispatcher uses this
// to measure how much meaningful input an attempt left unconsumed.
func CountAlnum(s string) int {
	n := 0
	for _, r := range s {
		if IsAlnum(r) {
			n++
		}
	}
	return n
}
