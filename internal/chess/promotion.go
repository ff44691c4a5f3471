package chess

import "fmt"

// ReplacePromotedPiece swaps the pending promoted piece for one of type acronym ("B", "N",
// "R" or "Q"). An acronym outside that set leaves the board alone and returns the pending
// piece as it is. Check and mate are worked out again for the new piece, so the turn moves
// back to the mover when the replacement mates and forward when it no longer does.
func (m *Match) ReplacePromotedPiece(acronym string) (*Piece, error) {
	if m.promoted == nil {
		return nil, ErrNoPendingPromotion
	}
	kind, ok := promotionTypes[acronym]
	if !ok {
		return m.promoted, nil
	}
	piece, err := m.replacePromoted(kind)
	if err != nil {
		return nil, err
	}
	if err := m.reassess(piece.color); err != nil {
		return nil, err
	}
	m.amendPromotion(kind)
	return piece, nil
}

func (m *Match) reassess(mover Color) error {
	opponent := mover.Opponent()
	check, err := m.IsInCheck(opponent)
	if err != nil {
		return err
	}
	m.check = check
	mate, err := m.IsCheckMateFor(opponent)
	if err != nil {
		return err
	}
	switch {
	case mate && !m.checkMate:
		m.turn--
		m.currentPlayer = mover
	case !mate && m.checkMate:
		m.nextTurn()
	}
	m.checkMate = mate
	return nil
}

func (m *Match) replacePromoted(kind PieceType) (*Piece, error) {
	position, ok := m.promoted.Position()
	if !ok {
		return nil, fmt.Errorf("%w: promoted piece is off the board", ErrNoPendingPromotion)
	}
	old, err := m.board.RemovePiece(position)
	if err != nil {
		return nil, err
	}
	m.piecesOnTheBoard = removeFrom(m.piecesOnTheBoard, old)

	piece := newPiece(kind, old.color, m.board, m)
	if err := m.board.PlacePiece(piece, position); err != nil {
		return nil, err
	}
	m.piecesOnTheBoard = append(m.piecesOnTheBoard, piece)
	m.promoted = piece
	return piece, nil
}
