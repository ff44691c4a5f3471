package chess

// moveRecord is everything undoMove needs to put the board back.
type moveRecord struct {
	piece  *Piece
	source Position
	target Position

	captured   *Piece
	capturedAt Position
	enPassant  bool

	rook     *Piece
	rookFrom Position
	rookTo   Position

	enPassantVulnerable *Piece
}

func (r *moveRecord) castle() string {
	if r.rook == nil {
		return ""
	}
	if r.rookFrom.Column > r.source.Column {
		return CastleKingside
	}
	return CastleQueenside
}

// makeMove moves the piece with its side effects: capture, the rook of a castling move and
// the pawn taken en passant.
func (m *Match) makeMove(source, target Position) (*moveRecord, error) {
	piece, err := m.board.RemovePiece(source)
	if err != nil {
		return nil, err
	}
	if piece == nil {
		return nil, ErrNoPieceAtSource
	}
	piece.increaseMoveCount()

	captured, err := m.board.RemovePiece(target)
	if err != nil {
		return nil, err
	}
	if err := m.board.PlacePiece(piece, target); err != nil {
		return nil, err
	}

	record := &moveRecord{
		piece:               piece,
		source:              source,
		target:              target,
		captured:            captured,
		capturedAt:          target,
		enPassantVulnerable: m.enPassantVulnerable,
	}

	if piece.kind == King {
		switch target.Column - source.Column {
		case castlingStep:
			err = m.moveCastlingRook(record, kingsideRookOffset, 1)
		case -castlingStep:
			err = m.moveCastlingRook(record, queensideRookOffset, -1)
		}
		if err != nil {
			return nil, err
		}
	}

	// A pawn moving diagonally onto an empty square is taking en passant.
	if piece.kind == Pawn && source.Column != target.Column && captured == nil {
		pawnAt := Position{Row: source.Row, Column: target.Column}
		if record.captured, err = m.board.RemovePiece(pawnAt); err != nil {
			return nil, err
		}
		record.capturedAt = pawnAt
		record.enPassant = record.captured != nil
	}

	if record.captured != nil {
		m.piecesOnTheBoard = removeFrom(m.piecesOnTheBoard, record.captured)
		m.capturedPieces = append(m.capturedPieces, record.captured)
	}

	return record, nil
}

func (m *Match) moveCastlingRook(record *moveRecord, rookOffset, rookTargetOffset int) error {
	from := record.source.offset(0, rookOffset)
	to := record.source.offset(0, rookTargetOffset)
	rook, err := m.board.RemovePiece(from)
	if err != nil {
		return err
	}
	if rook == nil {
		return nil
	}
	if err := m.board.PlacePiece(rook, to); err != nil {
		return err
	}
	rook.increaseMoveCount()
	record.rook = rook
	record.rookFrom = from
	record.rookTo = to
	return nil
}

// undoMove is the exact inverse of makeMove.
func (m *Match) undoMove(record *moveRecord) error {
	piece, err := m.board.RemovePiece(record.target)
	if err != nil {
		return err
	}
	piece.decreaseMoveCount()
	if err := m.board.PlacePiece(piece, record.source); err != nil {
		return err
	}

	if record.captured != nil {
		if err := m.board.PlacePiece(record.captured, record.capturedAt); err != nil {
			return err
		}
		m.capturedPieces = removeFrom(m.capturedPieces, record.captured)
		m.piecesOnTheBoard = append(m.piecesOnTheBoard, record.captured)
	}

	if record.rook != nil {
		if _, err := m.board.RemovePiece(record.rookTo); err != nil {
			return err
		}
		if err := m.board.PlacePiece(record.rook, record.rookFrom); err != nil {
			return err
		}
		record.rook.decreaseMoveCount()
	}

	m.enPassantVulnerable = record.enPassantVulnerable
	return nil
}
