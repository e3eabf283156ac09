package dicelang

// Lexer walks a dice expression and produces tokens. The grammar is pure
// ASCII, so the lexer works on bytes rather than runes; anything outside
// the grammar (including multi-byte runes) comes out as ILLEGAL and is
// rejected by the parser with a position.
type Lexer struct {
	input   string
	pos     int  // position of ch
	readPos int  // next position to read
	ch      byte // current byte, 0 at end of input
}

// NewLexer creates a lexer over expr.
func NewLexer(expr string) *Lexer {
	l := &Lexer{input: expr}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// NextToken returns the next token in the input. After the input is
// exhausted it returns EOF tokens forever.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	pos := l.pos

	switch {
	case l.ch == 0:
		return Token{Type: EOF, Pos: pos}
	case l.ch == '+':
		l.readChar()
		return Token{Type: PLUS, Literal: "+", Pos: pos}
	case l.ch == '-':
		l.readChar()
		return Token{Type: MINUS, Literal: "-", Pos: pos}
	case l.ch == '*':
		l.readChar()
		return Token{Type: ASTERISK, Literal: "*", Pos: pos}
	case l.ch == '/':
		l.readChar()
		return Token{Type: SLASH, Literal: "/", Pos: pos}
	case l.ch == '(':
		l.readChar()
		return Token{Type: LPAREN, Literal: "(", Pos: pos}
	case l.ch == ')':
		l.readChar()
		return Token{Type: RPAREN, Literal: ")", Pos: pos}
	case l.ch == '!':
		l.readChar()
		return Token{Type: BANG, Literal: "!", Pos: pos}
	case l.ch == '>':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return Token{Type: GTE, Literal: ">=", Pos: pos}
		}
		return Token{Type: GT, Literal: ">", Pos: pos}
	case l.ch == '<':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return Token{Type: LTE, Literal: "<=", Pos: pos}
		}
		return Token{Type: LT, Literal: "<", Pos: pos}
	case l.ch == '=':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return Token{Type: EQ, Literal: "==", Pos: pos}
		}
		// a lone "=" is not part of the grammar
		return Token{Type: ILLEGAL, Literal: "=", Pos: pos}
	case l.ch == '@':
		return l.lexVariable()
	case l.ch == 'k':
		return l.lexKeepModifier()
	case l.ch == 'd' || l.ch == 'D':
		return l.lexDiceOrDropModifier()
	case isDigit(l.ch):
		return l.lexNumberOrDice()
	default:
		ch := l.ch
		l.readChar()
		return Token{Type: ILLEGAL, Literal: string(ch), Pos: pos}
	}
}

// Tokenize consumes the whole input and returns every token up to and
// including the trailing EOF.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// lexVariable lexes "@name". The literal keeps the leading '@' so error
// messages echo the source.
func (l *Lexer) lexVariable() Token {
	pos := l.pos
	l.readChar() // consume '@'
	if !isIdentStart(l.ch) {
		return Token{Type: ILLEGAL, Literal: "@", Pos: pos}
	}
	start := l.pos
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return Token{Type: VARIABLE, Literal: "@" + l.input[start:l.pos], Pos: pos}
}

// lexKeepModifier lexes "kh" and "kl". Bare 'k' is illegal.
func (l *Lexer) lexKeepModifier() Token {
	pos := l.pos
	l.readChar()
	switch l.ch {
	case 'h':
		l.readChar()
		return Token{Type: KEEP_HIGH, Literal: "kh", Pos: pos}
	case 'l':
		l.readChar()
		return Token{Type: KEEP_LOW, Literal: "kl", Pos: pos}
	}
	return Token{Type: ILLEGAL, Literal: "k", Pos: pos}
}

// lexDiceOrDropModifier disambiguates 'd': followed by a digit it starts
// a count-less dice term ("d20"), followed by 'h'/'l' it is a drop
// modifier, anything else is illegal.
func (l *Lexer) lexDiceOrDropModifier() Token {
	pos := l.pos
	if isDigit(l.peekChar()) {
		l.readChar() // consume 'd'
		start := l.pos
		for isDigit(l.ch) {
			l.readChar()
		}
		return Token{Type: DICE, Literal: "d" + l.input[start:l.pos], Pos: pos}
	}
	ch := l.ch
	l.readChar()
	switch l.ch {
	case 'h':
		l.readChar()
		return Token{Type: DROP_HIGH, Literal: "dh", Pos: pos}
	case 'l':
		l.readChar()
		return Token{Type: DROP_LOW, Literal: "dl", Pos: pos}
	}
	return Token{Type: ILLEGAL, Literal: string(ch), Pos: pos}
}

// lexNumberOrDice reads a run of digits, then checks for the dice-term
// pattern \d+d\d+. "4d6kh3" stops the dice literal at "4d6" because 'k'
// is not a digit; "3dl1" backs off to the number "3" because 'l' after
// 'd' means a drop modifier follows.
func (l *Lexer) lexNumberOrDice() Token {
	pos := l.pos
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if (l.ch == 'd' || l.ch == 'D') && isDigit(l.peekChar()) {
		l.readChar() // consume 'd'
		sidesStart := l.pos
		for isDigit(l.ch) {
			l.readChar()
		}
		return Token{Type: DICE, Literal: l.input[start:sidesStart-1] + "d" + l.input[sidesStart:l.pos], Pos: pos}
	}
	return Token{Type: NUMBER, Literal: l.input[start:l.pos], Pos: pos}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
