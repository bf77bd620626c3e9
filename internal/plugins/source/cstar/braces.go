package cstar

import (
	"fmt"
	"strings"
)

// BraceMode selects how block boundaries are counted.
type BraceMode string

const (
	// BraceModeLegacy counts every brace byte of a line, including braces in
	// strings and comments.
	BraceModeLegacy BraceMode = "legacy"
	// BraceModeLexical counts only braces the Lexer classifies as structural.
	BraceModeLexical BraceMode = "lexical"
)

// ParseBraceMode parses a mode name; empty means legacy.
func ParseBraceMode(s string) (BraceMode, error) {
	switch BraceMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", BraceModeLegacy:
		return BraceModeLegacy, nil
	case BraceModeLexical:
		return BraceModeLexical, nil
	}
	return "", fmt.Errorf("unknown brace mode %q (want %q or %q)", s, BraceModeLegacy, BraceModeLexical)
}

// braceEvent is one counted brace at a byte offset of the line.
type braceEvent struct {
	offset int
	open   bool
}

// braceScan is the counting result for one line.
type braceScan struct {
	events []braceEvent
}

// delta is the net depth change over the whole line.
func (s braceScan) delta() int {
	return s.deltaFrom(0)
}

// deltaFrom is the net depth change over braces at or after offset.
func (s braceScan) deltaFrom(offset int) int {
	d := 0
	for _, e := range s.events {
		if e.offset < offset {
			continue
		}
		if e.open {
			d++
		} else {
			d--
		}
	}
	return d
}

// closed reports whether a closing brace was counted on the line.
func (s braceScan) closed() bool {
	for _, e := range s.events {
		if !e.open {
			return true
		}
	}
	return false
}

// firstOpen is the offset of the first counted opening brace, or -1.
func (s braceScan) firstOpen() int {
	for _, e := range s.events {
		if e.open {
			return e.offset
		}
	}
	return -1
}

// braceCounter is called exactly once per input line, in order.
type braceCounter interface {
	scan(text string) braceScan
}

func newBraceCounter(mode BraceMode) braceCounter {
	if mode == BraceModeLexical {
		return &lexicalCounter{}
	}
	return legacyCounter{}
}

type legacyCounter struct{}

func (legacyCounter) scan(text string) braceScan {
	var s braceScan
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			s.events = append(s.events, braceEvent{offset: i, open: true})
		case '}':
			s.events = append(s.events, braceEvent{offset: i, open: false})
		}
	}
	return s
}

type lexicalCounter struct {
	lx Lexer
}

func (c *lexicalCounter) scan(text string) braceScan {
	var s braceScan
	for _, tok := range c.lx.Line(text) {
		switch tok.Kind {
		case TokenOpenBrace:
			s.events = append(s.events, braceEvent{offset: tok.Offset, open: true})
		case TokenCloseBrace:
			s.events = append(s.events, braceEvent{offset: tok.Offset, open: false})
		}
	}
	return s
}
