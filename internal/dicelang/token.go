package dicelang

// TokenType identifies the kind of a lexed token.
type TokenType int

// Token types produced by the lexer.
const (
	ILLEGAL TokenType = iota // any rune the grammar does not know
	EOF

	// Literals
	NUMBER   // 42
	DICE     // 2d6, d20
	VARIABLE // @strength

	// Operators
	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /

	// Comparators (success counting)
	GT  // >
	GTE // >=
	LT  // <
	LTE // <=
	EQ  // ==

	// Dice modifiers
	KEEP_HIGH // kh
	KEEP_LOW  // kl
	DROP_HIGH // dh
	DROP_LOW  // dl
	BANG      // ! (exploding)

	// Delimiters
	LPAREN // (
	RPAREN // )
)

var tokenNames = map[TokenType]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	NUMBER:    "NUMBER",
	DICE:      "DICE",
	VARIABLE:  "VARIABLE",
	PLUS:      "+",
	MINUS:     "-",
	ASTERISK:  "*",
	SLASH:     "/",
	GT:        ">",
	GTE:       ">=",
	LT:        "<",
	LTE:       "<=",
	EQ:        "==",
	KEEP_HIGH: "kh",
	KEEP_LOW:  "kl",
	DROP_HIGH: "dh",
	DROP_LOW:  "dl",
	BANG:      "!",
	LPAREN:    "(",
	RPAREN:    ")",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is a single lexical unit of a dice expression. Pos is the byte
// offset of the token's first character in the source string, used for
// error messages.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}
