// Package gojson feeds JSON tokens read by goccy/go-json into the decoding
// engine.
//
// go-json reports object keys and string values alike as strings, so the
// source keeps its own nesting state to tell them apart.
package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/wiryonolau/itseasy-util/internal/engine"
)

// Nesting states, one per open container.
const (
	awaitKey   byte = 'k' // object, next string is a key
	awaitValue byte = 'v' // object, next token is the value of a key
	inArray    byte = 'a'
)

// nesting is the stack of open containers, innermost last.
type nesting []byte

func (n nesting) top() byte {
	if len(n) == 0 {
		return 0
	}
	return n[len(n)-1]
}

// settle marks the innermost value as complete.
func (n nesting) settle() {
	if n.top() == awaitValue {
		n[len(n)-1] = awaitKey
	}
}

type source struct {
	dec  *j.Decoder
	open nesting
	read int64
}

// NewReader returns a token source over r. Numbers keep their literal text.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes returns a token source over b.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	raw, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.read++
	if d, ok := raw.(j.Delim); ok {
		return s.delim(d), nil
	}
	if str, ok := raw.(string); ok && s.open.top() == awaitKey {
		s.open[len(s.open)-1] = awaitValue
		return s.token(eng.Token{Kind: eng.KindKey, String: str}), nil
	}
	s.open.settle()
	return s.token(scalar(raw)), nil
}

func (s *source) delim(d j.Delim) eng.Token {
	switch d {
	case '{':
		s.open = append(s.open, awaitKey)
		return s.token(eng.Token{Kind: eng.KindBeginObject})
	case '[':
		s.open = append(s.open, inArray)
		return s.token(eng.Token{Kind: eng.KindBeginArray})
	}
	if len(s.open) > 0 {
		s.open = s.open[:len(s.open)-1]
	}
	s.open.settle()
	if d == '}' {
		return s.token(eng.Token{Kind: eng.KindEndObject})
	}
	return s.token(eng.Token{Kind: eng.KindEndArray})
}

// token stamps t with the ordinal of the token just read.
func (s *source) token(t eng.Token) eng.Token {
	t.Offset = s.read - 1
	return t
}

func scalar(raw any) eng.Token {
	switch v := raw.(type) {
	case string:
		return eng.Token{Kind: eng.KindString, String: v}
	case bool:
		return eng.Token{Kind: eng.KindBool, Bool: v}
	case j.Number:
		return eng.Token{Kind: eng.KindNumber, Number: string(v)}
	case float64:
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64)}
	}
	return eng.Token{Kind: eng.KindNull}
}

// Location is the number of tokens read so far.
func (s *source) Location() int64 { return s.read }
