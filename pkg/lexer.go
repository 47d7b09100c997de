package slang

type TokenType uint64

const (
	TokenInt TokenType = iota
	TokenFloat
	TokenBool
	TokenChar
	TokenString

	TokenDef
	TokenExtern
	TokenLet
	TokenIf
	TokenElseIf
	TokenElse
	TokenWhile
	TokenBreak
	TokenContinue
	TokenReturn
	TokenProgram

	TokenIdentifier
	TokenOperator
	TokenComplex
	TokenEOF
)

var keywordTable = map[string]TokenType{
	"pluh":                TokenDef,
	"plug":                TokenExtern,
	"cookUp":              TokenLet,
	"fr?":                 TokenIf,
	"ong?":                TokenElseIf,
	"justLikeThat?":       TokenElse,
	"holdUp":              TokenWhile,
	"ghost":               TokenBreak,
	"rizz":                TokenContinue,
	"yeet":                TokenReturn,
	"spillingTheTeaAbout": TokenProgram,
	"facts":               TokenBool,
	"cap":                 TokenBool,
}

// Token is a (kind, lexeme) pair. String and char lexemes carry the raw
// contents with the quotes stripped.
type Token struct {
	Typ   TokenType
	Value string
}

// Lexer scans a source text one token at a time. It holds a cursor over the
// buffer and a one-byte current register; only the ASCII subset is
// recognized.
type Lexer struct {
	src []byte
	pos int
	cur byte
}

func NewLexer(src string) *Lexer {
	return &Lexer{
		src: []byte(src),
		cur: ' ',
	}
}

func (l *Lexer) advance() {
	if l.pos < len(l.src) {
		l.cur = l.src[l.pos]
		l.pos++
		return
	}

	l.cur = 0
}

// matchWord consumes the given word if the scanner is positioned exactly at
// it, leaving the current register on the byte that follows. On a miss the
// scanner is untouched.
func (l *Lexer) matchWord(word string) bool {
	if l.cur != word[0] {
		return false
	}

	rest := word[1:]
	if len(l.src)-l.pos < len(rest) || string(l.src[l.pos:l.pos+len(rest)]) != rest {
		return false
	}

	l.pos += len(rest)
	l.advance()

	return true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isOperatorByte(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '%', '<', '>', '=', '!':
		return true
	}

	return false
}

// validNextChar reports whether next may extend an operator lexeme ending in
// last. Comparisons and assignment fold a trailing '='; arithmetic operators
// never extend.
func validNextChar(last byte, next byte) bool {
	switch last {
	case '<', '>', '=', '!':
		return next == '='
	}

	return false
}

// NextToken returns the next token from the source. At the end of input it
// returns TokenEOF, and keeps returning it on every further call.
func (l *Lexer) NextToken() (Token, error) {
	for isSpace(l.cur) {
		l.advance()
	}

	// A run starting with "Cancelled" is a single-line comment; discard up to
	// and including the line terminator.
	if l.matchWord("Cancelled") {
		Debug.Println("[DEBUG] Comment: Ignoring line.")
		for l.cur != 0 && l.cur != '\n' && l.cur != '\r' {
			l.advance()
		}

		return l.NextToken()
	}

	// "Blocked" opens a block comment that runs until "Unblocked".
	if l.matchWord("Blocked") {
		Debug.Println("[DEBUG] Comment: Ignoring block.")
		for l.cur != 0 {
			if l.matchWord("Unblocked") {
				break
			}
			l.advance()
		}

		return l.NextToken()
	}

	if l.cur == '\'' {
		l.advance()
		payload := l.cur
		l.advance()
		if l.cur != '\'' {
			return Token{}, invalidLiteralf("invalid char token: %c", payload)
		}
		l.advance()

		return Token{TokenChar, string(payload)}, nil
	}

	if l.cur == '"' {
		l.advance()
		var str []byte
		for l.cur != '"' {
			if l.cur == 0 {
				return Token{}, invalidLiteralf("invalid string token: %s", str)
			}
			str = append(str, l.cur)
			l.advance()
		}
		l.advance()

		return Token{TokenString, string(str)}, nil
	}

	if isDigit(l.cur) || l.cur == '.' {
		var num []byte
		decimal := false
		for isDigit(l.cur) || l.cur == '.' {
			if l.cur == '.' {
				if decimal {
					return Token{}, invalidLiteralf("more than one decimal point in number: %s", num)
				}
				decimal = true
			}
			num = append(num, l.cur)
			l.advance()
		}

		if decimal {
			return Token{TokenFloat, string(num)}, nil
		}

		return Token{TokenInt, string(num)}, nil
	}

	if isAlpha(l.cur) {
		id := []byte{l.cur}
		for {
			l.advance()
			if isAlpha(l.cur) || isDigit(l.cur) || l.cur == '_' || l.cur == '?' {
				id = append(id, l.cur)
				continue
			}
			break
		}

		if kind, ok := keywordTable[string(id)]; ok {
			return Token{kind, string(id)}, nil
		}

		return Token{TokenIdentifier, string(id)}, nil
	}

	if l.cur == 0 {
		return Token{TokenEOF, ""}, nil
	}

	prev := l.cur
	l.advance()

	if !isOperatorByte(prev) {
		return Token{TokenComplex, string(prev)}, nil
	}

	op := []byte{prev}
	for validNextChar(op[len(op)-1], l.cur) {
		op = append(op, l.cur)
		l.advance()
	}

	return Token{TokenOperator, string(op)}, nil
}
