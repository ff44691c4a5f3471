// Package chess implements the rules of a two player chess match on an 8x8 board: move
// generation, castling, en passant, promotion, check and checkmate.
package chess

import (
	"errors"
	"fmt"
)

// Match is one game of chess. It owns the board and every piece, on the board or captured.
// It is not safe for concurrent use.
type Match struct {
	turn          int
	currentPlayer Color
	board         *Board
	check         bool
	checkMate     bool

	enPassantVulnerable *Piece
	promoted            *Piece

	piecesOnTheBoard []*Piece
	capturedPieces   []*Piece
	history          []Ply
}

// NewMatch sets up the standard 32 pieces with White to move.
func NewMatch() *Match {
	m := newEmptyMatch()
	m.initialSetup()
	return m
}

func newEmptyMatch() *Match {
	board, err := NewBoard(8, 8)
	if err != nil {
		panic(err)
	}
	return &Match{
		turn:             1,
		currentPlayer:    White,
		board:            board,
		piecesOnTheBoard: []*Piece{},
		capturedPieces:   []*Piece{},
		history:          []Ply{},
	}
}

func (m *Match) Turn() int {
	return m.turn
}

func (m *Match) CurrentPlayer() Color {
	return m.currentPlayer
}

func (m *Match) IsCheck() bool {
	return m.check
}

func (m *Match) IsCheckMate() bool {
	return m.checkMate
}

// Winner is the side that delivered mate. The turn does not pass after mate, so it is the
// current player.
func (m *Match) Winner() (Color, bool) {
	if !m.checkMate {
		return "", false
	}
	return m.currentPlayer, true
}

func (m *Match) EnPassantVulnerable() *Piece {
	return m.enPassantVulnerable
}

// PendingPromotion returns the piece a pawn was just promoted to, nil if the last move
// promoted nothing.
func (m *Match) PendingPromotion() *Piece {
	return m.promoted
}

func (m *Match) CapturedPieces() []*Piece {
	return append([]*Piece(nil), m.capturedPieces...)
}

// Pieces returns a snapshot of the grid, row 0 being rank 8.
func (m *Match) Pieces() [][]*PieceView {
	matrix := make([][]*PieceView, m.board.Rows())
	for i := range matrix {
		matrix[i] = make([]*PieceView, m.board.Columns())
		for j := range matrix[i] {
			if piece := m.board.at(Position{Row: i, Column: j}); piece != nil {
				view := piece.View()
				matrix[i][j] = &view
			}
		}
	}
	return matrix
}

// PossibleMoves returns the reachable squares of the current player's piece at source.
// The matrix does not exclude moves that would expose the king.
func (m *Match) PossibleMoves(source ChessPosition) (MoveMatrix, error) {
	position := source.ToPosition()
	if err := m.validateSourcePosition(position); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return m.board.at(position).PossibleMoves(), nil
}

// PerformChessMove plays source to target for the current player and returns the captured
// piece, if any. On error nothing has changed.
func (m *Match) PerformChessMove(sourcePosition, targetPosition ChessPosition) (*Piece, error) {
	source := sourcePosition.ToPosition()
	target := targetPosition.ToPosition()

	if err := m.validateSourcePosition(source); err != nil {
		return nil, fmt.Errorf("%s: %w", sourcePosition, err)
	}
	if err := m.validateTargetPosition(source, target); err != nil {
		return nil, fmt.Errorf("%s to %s: %w", sourcePosition, targetPosition, err)
	}
	for _, color := range []Color{White, Black} {
		if _, err := m.king(color); err != nil {
			return nil, err
		}
	}

	record, err := m.makeMove(source, target)
	if err != nil {
		return nil, err
	}

	selfCheck, err := m.IsInCheck(m.currentPlayer)
	if err != nil || selfCheck {
		if undoErr := m.undoMove(record); undoErr != nil {
			return nil, errors.Join(err, undoErr)
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrSelfCheck
	}

	mover := record.piece
	m.promoted = nil
	if mover.kind == Pawn && target.Row == m.promotionRow(mover.color) {
		m.promoted = mover
		if _, err := m.replacePromoted(Queen); err != nil {
			return nil, err
		}
	}

	// Set before the mate search so an en passant capture counts as an escape.
	if mover.kind == Pawn && abs(target.Row-source.Row) == 2 {
		m.enPassantVulnerable = mover
	} else {
		m.enPassantVulnerable = nil
	}

	opponent := m.currentPlayer.Opponent()
	if m.check, err = m.IsInCheck(opponent); err != nil {
		return nil, err
	}
	mate, err := m.IsCheckMateFor(opponent)
	if err != nil {
		return nil, err
	}

	m.recordPly(record, mate)

	if mate {
		m.checkMate = true
	} else {
		m.nextTurn()
	}

	return record.captured, nil
}

func (m *Match) validateSourcePosition(position Position) error {
	piece, err := m.board.Piece(position)
	if err != nil {
		return err
	}
	if piece == nil {
		return ErrNoPieceAtSource
	}
	if piece.color != m.currentPlayer {
		return ErrNotYourPiece
	}
	if !piece.IsThereAnyPossibleMove() {
		return ErrNoPossibleMoves
	}
	return nil
}

func (m *Match) validateTargetPosition(source, target Position) error {
	if !m.board.at(source).PossibleMove(target) {
		return ErrIllegalTarget
	}
	return nil
}

func (m *Match) nextTurn() {
	m.turn++
	m.currentPlayer = m.currentPlayer.Opponent()
}

func (m *Match) promotionRow(color Color) int {
	if color == White {
		return 0
	}
	return m.board.Rows() - 1
}

func (m *Match) king(color Color) (*Piece, error) {
	for _, piece := range m.piecesOnTheBoard {
		if piece.color == color && piece.kind == King {
			return piece, nil
		}
	}
	return nil, fmt.Errorf("%w: no %s king", ErrKingMissing, color.Title())
}

func (m *Match) piecesOf(color Color) []*Piece {
	pieces := []*Piece{}
	for _, piece := range m.piecesOnTheBoard {
		if piece.color == color {
			pieces = append(pieces, piece)
		}
	}
	return pieces
}

// IsInCheck reports whether any opposing piece on the board reaches color's king.
func (m *Match) IsInCheck(color Color) (bool, error) {
	king, err := m.king(color)
	if err != nil {
		return false, err
	}
	kingPosition, ok := king.Position()
	if !ok {
		return false, fmt.Errorf("%w: %s king is off the board", ErrKingMissing, color.Title())
	}
	for _, piece := range m.piecesOf(color.Opponent()) {
		if piece.PossibleMoves().At(kingPosition) {
			return true, nil
		}
	}
	return false, nil
}

// IsCheckMateFor tries every move of color's pieces and reports whether none of them gets
// the king out of check. The board is back to its prior state when it returns.
func (m *Match) IsCheckMateFor(color Color) (bool, error) {
	inCheck, err := m.IsInCheck(color)
	if err != nil || !inCheck {
		return false, err
	}
	for _, piece := range m.piecesOf(color) {
		source, ok := piece.Position()
		if !ok {
			continue
		}
		matrix := piece.PossibleMoves()
		for i := range matrix {
			for j := range matrix[i] {
				if !matrix[i][j] {
					continue
				}
				escapes, err := m.escapesCheck(color, source, Position{Row: i, Column: j})
				if err != nil {
					return false, err
				}
				if escapes {
					return false, nil
				}
			}
		}
	}
	return true, nil
}

// escapesCheck plays a trial move, tests the king and always takes the move back.
func (m *Match) escapesCheck(color Color, source, target Position) (bool, error) {
	record, err := m.makeMove(source, target)
	if err != nil {
		return false, err
	}
	inCheck, checkErr := m.IsInCheck(color)
	if err := m.undoMove(record); err != nil {
		return false, errors.Join(checkErr, err)
	}
	if checkErr != nil {
		return false, checkErr
	}
	return !inCheck, nil
}

func (m *Match) placeNewPiece(file byte, rank int, piece *Piece) {
	position, err := NewChessPosition(file, rank)
	if err != nil {
		panic(err)
	}
	if err := m.board.PlacePiece(piece, position.ToPosition()); err != nil {
		panic(err)
	}
	m.piecesOnTheBoard = append(m.piecesOnTheBoard, piece)
}

var backRank = []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func (m *Match) initialSetup() {
	for i, kind := range backRank {
		file := byte('a' + i)
		m.placeNewPiece(file, 1, newPiece(kind, White, m.board, m))
		m.placeNewPiece(file, 2, newPiece(Pawn, White, m.board, m))
		m.placeNewPiece(file, 8, newPiece(kind, Black, m.board, m))
		m.placeNewPiece(file, 7, newPiece(Pawn, Black, m.board, m))
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func removeFrom(pieces []*Piece, piece *Piece) []*Piece {
	for i, p := range pieces {
		if p == piece {
			return append(pieces[:i], pieces[i+1:]...)
		}
	}
	return pieces
}
