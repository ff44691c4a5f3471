package chess

import "fmt"

// Board is the grid of piece slots. It knows bounds and occupancy, nothing about chess rules.
type Board struct {
	rows    int
	columns int
	pieces  [][]*Piece
}

func NewBoard(rows, columns int) (*Board, error) {
	if rows < 1 || columns < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBoardCreation, rows, columns)
	}
	board := &Board{rows: rows, columns: columns}
	for i := 0; i < rows; i++ {
		board.pieces = append(board.pieces, make([]*Piece, columns))
	}
	return board, nil
}

func (b *Board) Rows() int {
	return b.rows
}

func (b *Board) Columns() int {
	return b.columns
}

func (b *Board) Piece(position Position) (*Piece, error) {
	if !b.PositionExists(position) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPosition, position)
	}
	return b.pieces[position.Row][position.Column], nil
}

// PlacePiece puts piece on an empty cell and records the cell on the piece.
func (b *Board) PlacePiece(piece *Piece, position Position) error {
	occupied, err := b.ThereIsAPiece(position)
	if err != nil {
		return err
	}
	if occupied {
		return fmt.Errorf("%w %s", ErrOccupiedPosition, position)
	}
	b.pieces[position.Row][position.Column] = piece
	p := position
	piece.position = &p
	return nil
}

// RemovePiece empties the cell and returns what was there, nil if it was already empty.
func (b *Board) RemovePiece(position Position) (*Piece, error) {
	if !b.PositionExists(position) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPosition, position)
	}
	piece := b.pieces[position.Row][position.Column]
	if piece == nil {
		return nil, nil
	}
	piece.position = nil
	b.pieces[position.Row][position.Column] = nil
	return piece, nil
}

func (b *Board) PositionExists(position Position) bool {
	return position.Row >= 0 && position.Row < b.rows && position.Column >= 0 && position.Column < b.columns
}

func (b *Board) ThereIsAPiece(position Position) (bool, error) {
	if !b.PositionExists(position) {
		return false, fmt.Errorf("%w: %s", ErrInvalidPosition, position)
	}
	return b.pieces[position.Row][position.Column] != nil, nil
}

// at is the unchecked read used by move generation. Off-board reads as empty.
func (b *Board) at(position Position) *Piece {
	if !b.PositionExists(position) {
		return nil
	}
	return b.pieces[position.Row][position.Column]
}

func (b *Board) newMatrix() MoveMatrix {
	matrix := make(MoveMatrix, b.rows)
	for i := range matrix {
		matrix[i] = make([]bool, b.columns)
	}
	return matrix
}
