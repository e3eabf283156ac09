package dicelang

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is a node of the parsed expression tree. The tree is built
// bottom-up by the parser, owned by a single evaluation, and never
// mutated after construction.
type Node interface {
	// TokenLiteral returns the source literal of the node's leading token.
	TokenLiteral() string
	// String renders the node back to notation, used in traces and errors.
	String() string
}

// Modifiers are the optional keep/drop and exploding rules attached to a
// dice term. At most one of the keep/drop fields is non-zero; the parser
// rejects conflicting rules.
type Modifiers struct {
	KeepHighest int
	KeepLowest  int
	DropHighest int
	DropLowest  int
	Exploding   bool
}

// HasKeepDrop reports whether any keep/drop rule is active.
func (m Modifiers) HasKeepDrop() bool {
	return m.KeepHighest > 0 || m.KeepLowest > 0 || m.DropHighest > 0 || m.DropLowest > 0
}

// String renders the modifier suffix, e.g. "kh3!".
func (m Modifiers) String() string {
	var out strings.Builder
	switch {
	case m.KeepHighest > 0:
		fmt.Fprintf(&out, "kh%d", m.KeepHighest)
	case m.KeepLowest > 0:
		fmt.Fprintf(&out, "kl%d", m.KeepLowest)
	case m.DropHighest > 0:
		fmt.Fprintf(&out, "dh%d", m.DropHighest)
	case m.DropLowest > 0:
		fmt.Fprintf(&out, "dl%d", m.DropLowest)
	}
	if m.Exploding {
		out.WriteByte('!')
	}
	return out.String()
}

// NumberLiteral is an integer literal.
type NumberLiteral struct {
	Token Token
	Value int
}

func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) String() string       { return strconv.Itoa(n.Value) }

// DiceTerm is an NdM dice term with optional modifiers.
type DiceTerm struct {
	Token Token
	Count int
	Sides int
	Mods  Modifiers
}

func (d *DiceTerm) TokenLiteral() string { return d.Token.Literal }
func (d *DiceTerm) String() string {
	return fmt.Sprintf("%dd%d%s", d.Count, d.Sides, d.Mods)
}

// Notation renders the term as it was written, with the count omitted
// when it was omitted in the source.
func (d *DiceTerm) Notation() string {
	if d.Count == 1 && strings.HasPrefix(d.Token.Literal, "d") {
		return fmt.Sprintf("d%d%s", d.Sides, d.Mods)
	}
	return d.String()
}

// BinaryExpr is a binary arithmetic expression.
type BinaryExpr struct {
	Token    Token // the operator token
	Left     Node
	Operator string
	Right    Node
}

func (b *BinaryExpr) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("%s %s %s", b.Left, b.Operator, b.Right)
}

// UnaryExpr is a prefix expression; the grammar only has unary minus.
type UnaryExpr struct {
	Token    Token
	Operator string
	Right    Node
}

func (u *UnaryExpr) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpr) String() string       { return u.Operator + u.Right.String() }

// GroupExpr is a parenthesized expression.
type GroupExpr struct {
	Token Token // the '(' token
	Expr  Node
}

func (g *GroupExpr) TokenLiteral() string { return g.Token.Literal }
func (g *GroupExpr) String() string       { return "(" + g.Expr.String() + ")" }

// VariableRef is a reference to a caller-supplied variable, e.g. "@strength".
type VariableRef struct {
	Token Token
	Name  string
}

func (v *VariableRef) TokenLiteral() string { return v.Token.Literal }
func (v *VariableRef) String() string       { return "@" + v.Name }

// SuccessExpr reinterprets a dice term as a count of rolls satisfying a
// comparator against a threshold, e.g. "10d6>=5".
type SuccessExpr struct {
	Token     Token // the comparator token
	Term      *DiceTerm
	Operator  string
	Threshold int
}

func (s *SuccessExpr) TokenLiteral() string { return s.Token.Literal }
func (s *SuccessExpr) String() string {
	return fmt.Sprintf("%s%s%d", s.Term.Notation(), s.Operator, s.Threshold)
}
