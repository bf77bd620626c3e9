package cstar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// SourceLine is one input line and its 1-based origin index.
type SourceLine struct {
	Number int
	Text   string
}

// scanLines feeds every newline-delimited line of r to fn in order. Lines have
// no length limit. A trailing newline does not produce an extra empty line,
// and a final line without a newline is still delivered.
func scanLines(r io.Reader, fn func(SourceLine)) error {
	br := bufio.NewReader(r)
	n := 0
	for {
		text, err := br.ReadString('\n')
		if text != "" {
			n++
			text = strings.TrimSuffix(text, "\n")
			text = strings.TrimSuffix(text, "\r")
			fn(SourceLine{Number: n, Text: text})
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading line %d: %w", n+1, err)
		}
	}
}
