package cstar

// TokenKind separates structural braces from everything else on a line.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenOpenBrace
	TokenCloseBrace
)

func (k TokenKind) String() string {
	switch k {
	case TokenOpenBrace:
		return "open-brace"
	case TokenCloseBrace:
		return "close-brace"
	default:
		return "text"
	}
}

// Token is a run of raw text or a single structural brace.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}

// Lexer splits lines into tokens, treating braces inside string literals,
// character literals and comments as raw text. Block comments may span lines,
// so a Lexer must see every line of a file in order.
type Lexer struct {
	inBlockComment bool
}

// InBlockComment reports whether the previous line ended inside /* ... */.
func (l *Lexer) InBlockComment() bool { return l.inBlockComment }

// Line tokenizes one line.
func (l *Lexer) Line(text string) []Token {
	var toks []Token
	start := 0
	flush := func(end int) {
		if end > start {
			toks = append(toks, Token{Kind: TokenText, Text: text[start:end], Offset: start})
		}
	}

	i := 0
	for i < len(text) {
		if l.inBlockComment {
			if text[i] == '*' && i+1 < len(text) && text[i+1] == '/' {
				l.inBlockComment = false
				i += 2
				continue
			}
			i++
			continue
		}

		ch := text[i]
		switch {
		case ch == '/' && i+1 < len(text) && text[i+1] == '/':
			// rest of line is comment
			i = len(text)
		case ch == '/' && i+1 < len(text) && text[i+1] == '*':
			l.inBlockComment = true
			i += 2
		case ch == '"' || ch == '\'':
			i = skipQuoted(text, i)
		case ch == '{' || ch == '}':
			flush(i)
			kind := TokenOpenBrace
			if ch == '}' {
				kind = TokenCloseBrace
			}
			toks = append(toks, Token{Kind: kind, Text: text[i : i+1], Offset: i})
			i++
			start = i
		default:
			i++
		}
	}
	flush(len(text))
	return toks
}

// skipQuoted returns the index just past the literal opened at text[open].
// An unterminated literal runs to end of line.
func skipQuoted(text string, open int) int {
	quote := text[open]
	i := open + 1
	for i < len(text) {
		switch text[i] {
		case '\\':
			i += 2
			continue
		case quote:
			return i + 1
		}
		i++
	}
	return len(text)
}
