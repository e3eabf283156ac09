// Package dicelang implements the dice-notation expression engine: a
// lexer, recursive-descent parser, static validator, evaluator, and
// display formatter for expressions like "4d6kh3 + @strength".
//
// The pipeline is call-scoped. Every call builds and discards its own
// tokens, tree, and result; nothing persists between calls, so
// concurrent use is safe as long as the injected random source is.
//
// Grammar, lowest to highest precedence:
//
//	expr       := term (("+" | "-") term)*
//	term       := factor (("*" | "/") factor)*
//	factor     := "-" factor | primary
//	primary    := number | diceTerm | "(" expr ")" | variable
//	diceTerm   := [count] "d" sides modifiers* [comparator threshold]
//	modifiers  := ("kh" | "kl" | "dh" | "dl") magnitude | "!"
package dicelang
