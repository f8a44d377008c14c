package entity

import (
	"strconv"
	"strings"
)

// TokenKind distinguishes the two ways a caller can address a holding.
type TokenKind int

const (
	// TokenID addresses a holding by its numeric id.
	TokenID TokenKind = iota + 1
	// TokenSymbol addresses a holding by its symbol.
	TokenSymbol
)

// Token is a parsed path parameter: either an id or a symbol, never both.
type Token struct {
	raw    string
	kind   TokenKind
	id     int64
	symbol string
}

// ParseToken classifies a raw path parameter.
// Anything that parses as a base-10 integer is an id, even when a holding
// with that digit-only symbol exists. Everything else is an upper-cased symbol.
func ParseToken(raw string) Token {
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Token{raw: raw, kind: TokenID, id: id}
	}
	return Token{raw: raw, kind: TokenSymbol, symbol: strings.ToUpper(raw)}
}

// Kind returns the token kind.
func (t Token) Kind() TokenKind { return t.kind }

// ID returns the id and true when the token is an id.
func (t Token) ID() (int64, bool) { return t.id, t.kind == TokenID }

// Symbol returns the normalised symbol and true when the token is a symbol.
func (t Token) Symbol() (string, bool) { return t.symbol, t.kind == TokenSymbol }

// String returns the token as the caller supplied it.
func (t Token) String() string { return t.raw }
