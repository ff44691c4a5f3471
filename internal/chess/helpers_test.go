package chess

import (
	"testing"
	"unicode"
)

var layoutTypes = map[rune]PieceType{
	'k': King,
	'q': Queen,
	'r': Rook,
	'b': Bishop,
	'n': Knight,
	'p': Pawn,
}

// newMatchFromLayout builds a match from eight rows drawn rank 8 first, the way a board is
// printed:
//
//	newMatchFromLayout(t, White,
//		"rnbqkbnr",
//		"pppppppp",
//		"........",
//		"........",
//		"........",
//		"........",
//		"PPPPPPPP",
//		"RNBQKBNR",
//	)
//
// Upper case is White. Pawns off their start rank and kings off their start square count as
// having moved once, so they get no double step and no castling.
func newMatchFromLayout(t *testing.T, toMove Color, rows ...string) *Match {
	t.Helper()
	if len(rows) != 8 {
		t.Fatalf("layout has %d rows, want 8", len(rows))
	}
	m := newEmptyMatch()
	m.currentPlayer = toMove
	for i, row := range rows {
		if len(row) != 8 {
			t.Fatalf("layout row %d is %q, want 8 squares", i, row)
		}
		for j, r := range row {
			if r == '.' {
				continue
			}
			kind, ok := layoutTypes[unicode.ToLower(r)]
			if !ok {
				t.Fatalf("layout row %d has unknown piece %q", i, r)
			}
			color := Black
			if unicode.IsUpper(r) {
				color = White
			}
			piece := newPiece(kind, color, m.board, m)
			rank := 8 - i
			m.placeNewPiece(byte('a'+j), rank, piece)
			if hasLeftHome(kind, color, rank, byte('a'+j)) {
				piece.moveCount = 1
			}
		}
	}
	check, err := m.IsInCheck(toMove)
	if err == nil {
		m.check = check
	}
	return m
}

func hasLeftHome(kind PieceType, color Color, rank int, file byte) bool {
	homeRank := 1
	pawnRank := 2
	if color == Black {
		homeRank = 8
		pawnRank = 7
	}
	switch kind {
	case Pawn:
		return rank != pawnRank
	case King:
		return rank != homeRank || file != 'e'
	}
	return false
}

func sq(s string) ChessPosition {
	return MustParseChessPosition(s)
}

// play performs each "e2e4" style move in order and fails the test on the first error.
func play(t *testing.T, m *Match, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		if _, err := m.PerformChessMove(sq(mv[:2]), sq(mv[2:])); err != nil {
			t.Fatalf("PerformChessMove(%s) error: %v", mv, err)
		}
	}
}

func pieceAt(t *testing.T, m *Match, square string) *Piece {
	t.Helper()
	piece, err := m.board.Piece(sq(square).ToPosition())
	if err != nil {
		t.Fatalf("board.Piece(%s) error: %v", square, err)
	}
	return piece
}
