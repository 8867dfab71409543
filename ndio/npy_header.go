// SPDX-License-Identifier: MIT

package ndio

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// dictScanner reads the restricted Python literal used by NPY headers:
// a flat dict with string keys whose values are strings, booleans or
// tuples of integers.
type dictScanner struct {
	s   string
	pos int
}

func (sc *dictScanner) skipSpace() {
	for sc.pos < len(sc.s) {
		switch sc.s[sc.pos] {
		case ' ', '\t', '\n', '\r':
			sc.pos++
		default:
			return
		}
	}
}

func (sc *dictScanner) peek() byte {
	sc.skipSpace()
	if sc.pos >= len(sc.s) {
		return 0
	}

	return sc.s[sc.pos]
}

func (sc *dictScanner) errorf(what string) error {
	return fmt.Errorf("header byte %d: %s: %w", sc.pos, what, ErrFormat)
}

func (sc *dictScanner) expect(c byte) error {
	if sc.peek() != c {
		return sc.errorf(fmt.Sprintf("want %q", c))
	}
	sc.pos++

	return nil
}

func (sc *dictScanner) quoted() (string, error) {
	q := sc.peek()
	if q != '\'' && q != '"' {
		return "", sc.errorf("want string")
	}
	end := strings.IndexByte(sc.s[sc.pos+1:], q)
	if end < 0 {
		return "", sc.errorf("unterminated string")
	}
	v := sc.s[sc.pos+1 : sc.pos+1+end]
	sc.pos += end + 2

	return v, nil
}

// word reads a bare token: an identifier or a signed integer.
func (sc *dictScanner) word() string {
	sc.skipSpace()
	start := sc.pos
	for sc.pos < len(sc.s) {
		c := sc.s[sc.pos]
		if c == '-' || c == '+' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			sc.pos++
			continue
		}

		break
	}

	return sc.s[start:sc.pos]
}

// tuple reads "(a, b, ...)"; "()" yields nil.
func (sc *dictScanner) tuple() ([]int, error) {
	if err := sc.expect('('); err != nil {
		return nil, err
	}
	var out []int
	for {
		if sc.peek() == ')' {
			sc.pos++

			return out, nil
		}
		w := strings.TrimSuffix(sc.word(), "L")
		n, err := strconv.ParseInt(w, 10, 0)
		switch {
		case errors.Is(err, strconv.ErrRange):
			return nil, fmt.Errorf("extent %s: %w", w, ErrShapeRange)
		case err != nil:
			return nil, sc.errorf("want extent")
		case n < 0:
			return nil, fmt.Errorf("extent %d: %w", n, ErrShapeRange)
		}
		out = append(out, int(n))
		switch sc.peek() {
		case ',':
			sc.pos++
		case ')':
		default:
			return nil, sc.errorf("want ',' or ')'")
		}
	}
}

// parseHeaderDict extracts the three mandatory NPY header entries.
func parseHeaderDict(s string) (descr string, fortran bool, shape []int, err error) {
	const (
		haveDescr = 1 << iota
		haveFortran
		haveShape
		haveAll = haveDescr | haveFortran | haveShape
	)
	sc := &dictScanner{s: s}
	if err = sc.expect('{'); err != nil {
		return "", false, nil, err
	}
	seen := 0
	for sc.peek() != '}' {
		var key string
		if key, err = sc.quoted(); err != nil {
			return "", false, nil, err
		}
		if err = sc.expect(':'); err != nil {
			return "", false, nil, err
		}
		switch key {
		case "descr":
			if sc.peek() == '[' {
				return "", false, nil, fmt.Errorf("structured descr: %w", ErrUnsupportedType)
			}
			descr, err = sc.quoted()
			seen |= haveDescr
		case "fortran_order":
			switch sc.word() {
			case "True":
				fortran = true
			case "False":
				fortran = false
			default:
				err = sc.errorf("fortran_order must be True or False")
			}
			seen |= haveFortran
		case "shape":
			shape, err = sc.tuple()
			seen |= haveShape
		default:
			err = sc.errorf(fmt.Sprintf("unknown key %q", key))
		}
		if err != nil {
			return "", false, nil, err
		}
		switch sc.peek() {
		case ',':
			sc.pos++
		case '}':
		default:
			return "", false, nil, sc.errorf("want ',' or '}'")
		}
	}
	if seen != haveAll {
		return "", false, nil, sc.errorf("missing descr, fortran_order or shape")
	}

	return descr, fortran, shape, nil
}
