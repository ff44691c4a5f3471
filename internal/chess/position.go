package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a zero-based board cell. Row 0 is rank 8.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d, %d", p.Row, p.Column)
}

func (p Position) offset(rows, columns int) Position {
	return Position{Row: p.Row + rows, Column: p.Column + columns}
}

// ChessPosition is a square in file/rank form, a1 through h8.
type ChessPosition struct {
	File byte
	Rank int
}

func NewChessPosition(file byte, rank int) (ChessPosition, error) {
	if file < 'a' || file > 'h' || rank < 1 || rank > 8 {
		return ChessPosition{}, fmt.Errorf("%w: valid values are from a1 to h8, got %c%d", ErrInvalidPosition, file, rank)
	}
	return ChessPosition{File: file, Rank: rank}, nil
}

// ParseChessPosition reads the two character form used by clients, e.g. "e2".
func ParseChessPosition(s string) (ChessPosition, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return ChessPosition{}, fmt.Errorf("%w: error reading position %q, valid values are from a1 to h8", ErrInvalidPosition, s)
	}
	rank, err := strconv.Atoi(s[1:])
	if err != nil {
		return ChessPosition{}, fmt.Errorf("%w: error reading position %q, valid values are from a1 to h8", ErrInvalidPosition, s)
	}
	return NewChessPosition(s[0], rank)
}

// MustParseChessPosition is ParseChessPosition for squares known at compile time.
func MustParseChessPosition(s string) ChessPosition {
	cp, err := ParseChessPosition(s)
	if err != nil {
		panic(err)
	}
	return cp
}

func (cp ChessPosition) ToPosition() Position {
	return Position{Row: 8 - cp.Rank, Column: int(cp.File - 'a')}
}

func FromPosition(p Position) (ChessPosition, error) {
	return NewChessPosition(byte('a'+p.Column), 8-p.Row)
}

func (cp ChessPosition) String() string {
	return fmt.Sprintf("%c%d", cp.File, cp.Rank)
}

func (cp ChessPosition) MarshalText() ([]byte, error) {
	return []byte(cp.String()), nil
}

func (cp *ChessPosition) UnmarshalText(text []byte) error {
	parsed, err := ParseChessPosition(string(text))
	if err != nil {
		return err
	}
	*cp = parsed
	return nil
}

// squareName renders p as "e4", or "" when p is off the 8x8 board.
func squareName(p Position) string {
	cp, err := FromPosition(p)
	if err != nil {
		return ""
	}
	return cp.String()
}
