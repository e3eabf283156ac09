package dicelang

import (
	"strconv"
	"strings"

	"github.com/rollforge/roll-api/internal/errors"
)

// Resource caps enforced before any dice are drawn. They bound evaluator
// work and output size, not the grammar itself.
const (
	MaxDiceCount = 100
	MaxDiceSides = 1000

	// maxParseDepth bounds parenthesis nesting so pathological input
	// cannot exhaust the call stack.
	maxParseDepth = 64
)

// Parser consumes a token stream into an expression tree.
type Parser struct {
	tokens []Token
	pos    int
	depth  int
}

// Parse lexes and parses expr into an expression tree. The returned
// error is an InvalidArgument error for syntax problems or a
// ResourceExhausted error when a dice term exceeds the caps.
func Parse(expr string) (Node, error) {
	p := &Parser{tokens: NewLexer(expr).Tokenize()}

	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != EOF {
		return nil, p.unexpected(p.cur())
	}
	return node, nil
}

func (p *Parser) cur() Token {
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if tok.Type != EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) unexpected(tok Token) error {
	if tok.Type == EOF {
		return errors.InvalidArgument("unexpected end of expression")
	}
	return errors.InvalidArgumentf("unexpected %q at position %d", tok.Literal, tok.Pos)
}

// parseExpr handles the lowest precedence level: addition and subtraction.
func (p *Parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == PLUS || p.cur().Type == MINUS {
		op := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Token: op, Left: left, Operator: op.Literal, Right: right}
	}
	return left, nil
}

// parseTerm handles multiplication and division.
func (p *Parser) parseTerm() (Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == ASTERISK || p.cur().Type == SLASH {
		op := p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Token: op, Left: left, Operator: op.Literal, Right: right}
	}
	return left, nil
}

// parseFactor handles unary minus, which binds tighter than the binary
// operators but looser than dice-term modifiers: "-d6" negates the
// rolled value, not the die definition.
func (p *Parser) parseFactor() (Node, error) {
	if p.cur().Type == MINUS {
		tok := p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Token: tok, Operator: "-", Right: right}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Node, error) {
	tok := p.cur()
	switch tok.Type {
	case NUMBER:
		p.advance()
		value, err := strconv.Atoi(tok.Literal)
		if err != nil {
			return nil, errors.InvalidArgumentf("number %q at position %d is out of range", tok.Literal, tok.Pos)
		}
		return &NumberLiteral{Token: tok, Value: value}, nil

	case DICE:
		return p.parseDiceTerm()

	case LPAREN:
		p.advance()
		p.depth++
		if p.depth > maxParseDepth {
			return nil, errors.InvalidArgument("expression is nested too deeply")
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur().Type != RPAREN {
			return nil, errors.InvalidArgumentf("expected closing parenthesis, got %s", p.describe(p.cur()))
		}
		p.advance()
		p.depth--
		return &GroupExpr{Token: tok, Expr: inner}, nil

	case VARIABLE:
		p.advance()
		return &VariableRef{Token: tok, Name: strings.TrimPrefix(tok.Literal, "@")}, nil

	case ILLEGAL:
		return nil, errors.InvalidArgumentf("unexpected character %q at position %d", tok.Literal, tok.Pos)

	default:
		return nil, p.unexpected(tok)
	}
}

// parseDiceTerm parses an NdM token plus any trailing modifiers, and an
// optional comparator turning the term into a success-counting expression.
func (p *Parser) parseDiceTerm() (Node, error) {
	tok := p.advance()

	countStr, sidesStr, _ := strings.Cut(tok.Literal, "d")

	count := 1
	if countStr != "" {
		var err error
		count, err = strconv.Atoi(countStr)
		if err != nil {
			return nil, errors.InvalidArgumentf("dice count %q at position %d is out of range", countStr, tok.Pos)
		}
	}
	sides, err := strconv.Atoi(sidesStr)
	if err != nil {
		return nil, errors.InvalidArgumentf("dice sides %q at position %d is out of range", sidesStr, tok.Pos)
	}

	if count < 1 {
		return nil, errors.InvalidArgumentf("dice count must be at least 1 at position %d", tok.Pos)
	}
	if sides < 1 {
		return nil, errors.InvalidArgumentf("dice must have at least 1 side at position %d", tok.Pos)
	}
	if count > MaxDiceCount {
		return nil, errors.ResourceExhausted("Too many dice")
	}
	if sides > MaxDiceSides {
		return nil, errors.ResourceExhausted("Too many sides")
	}

	term := &DiceTerm{Token: tok, Count: count, Sides: sides}

	if err := p.parseModifiers(term); err != nil {
		return nil, err
	}

	switch p.cur().Type {
	case GT, GTE, LT, LTE, EQ:
		op := p.advance()
		threshold := p.cur()
		if threshold.Type != NUMBER {
			return nil, errors.InvalidArgumentf("expected threshold after %q, got %s", op.Literal, p.describe(threshold))
		}
		p.advance()
		value, err := strconv.Atoi(threshold.Literal)
		if err != nil {
			return nil, errors.InvalidArgumentf("threshold %q at position %d is out of range", threshold.Literal, threshold.Pos)
		}
		return &SuccessExpr{Token: op, Term: term, Operator: op.Literal, Threshold: value}, nil
	}

	return term, nil
}

func (p *Parser) parseModifiers(term *DiceTerm) error {
	for {
		tok := p.cur()
		switch tok.Type {
		case KEEP_HIGH, KEEP_LOW, DROP_HIGH, DROP_LOW:
			if term.Mods.HasKeepDrop() {
				return errors.InvalidArgumentf("conflicting keep/drop modifier %q at position %d", tok.Literal, tok.Pos)
			}
			p.advance()
			magnitude := p.cur()
			if magnitude.Type != NUMBER {
				return errors.InvalidArgumentf("expected a number after %q, got %s", tok.Literal, p.describe(magnitude))
			}
			p.advance()
			n, err := strconv.Atoi(magnitude.Literal)
			if err != nil || n < 1 {
				return errors.InvalidArgumentf("keep/drop magnitude %q at position %d must be a positive number", magnitude.Literal, magnitude.Pos)
			}
			switch tok.Type {
			case KEEP_HIGH:
				term.Mods.KeepHighest = n
			case KEEP_LOW:
				term.Mods.KeepLowest = n
			case DROP_HIGH:
				term.Mods.DropHighest = n
			case DROP_LOW:
				term.Mods.DropLowest = n
			}
		case BANG:
			p.advance()
			term.Mods.Exploding = true
		default:
			return nil
		}
	}
}

func (p *Parser) describe(tok Token) string {
	if tok.Type == EOF {
		return "end of expression"
	}
	return strconv.Quote(tok.Literal)
}
