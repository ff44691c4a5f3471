package chess

import "errors"

var (
	ErrBoardCreation      = errors.New("error creating board: there must be at least 1 row and 1 column")
	ErrInvalidPosition    = errors.New("position not on the board")
	ErrOccupiedPosition   = errors.New("there is already a piece on position")
	ErrNoPieceAtSource    = errors.New("there is no piece on source position")
	ErrNotYourPiece       = errors.New("the chosen piece is not yours")
	ErrNoPossibleMoves    = errors.New("there is no possible moves for the chosen piece")
	ErrIllegalTarget      = errors.New("the chosen piece can't move to target position")
	ErrSelfCheck          = errors.New("you can't put yourself in check")
	ErrNoPendingPromotion = errors.New("there is no piece to be promoted")

	// ErrKingMissing means the board lost a king. Normal play never gets here.
	ErrKingMissing = errors.New("there is no king on the board")
)
