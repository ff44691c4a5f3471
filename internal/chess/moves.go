package chess

var (
	rookDirs   = []Position{{Row: 1, Column: 0}, {Row: -1, Column: 0}, {Row: 0, Column: 1}, {Row: 0, Column: -1}}
	bishopDirs = []Position{{Row: 1, Column: 1}, {Row: 1, Column: -1}, {Row: -1, Column: 1}, {Row: -1, Column: -1}}
	knightDirs = []Position{{Row: 2, Column: 1}, {Row: 2, Column: -1}, {Row: -2, Column: 1}, {Row: -2, Column: -1}, {Row: 1, Column: 2}, {Row: 1, Column: -2}, {Row: -1, Column: 2}, {Row: -1, Column: -2}}
	kingDirs   = []Position{{Row: 1, Column: 0}, {Row: -1, Column: 0}, {Row: 0, Column: 1}, {Row: 0, Column: -1}, {Row: 1, Column: 1}, {Row: 1, Column: -1}, {Row: -1, Column: 1}, {Row: -1, Column: -1}}
)

const (
	kingsideRookOffset  = 3
	queensideRookOffset = -4
	castlingStep        = 2
)

// slideMoves walks each direction until the edge, a friend (excluded) or a foe (included).
func (p *Piece) slideMoves(matrix MoveMatrix, dirs []Position) {
	for _, dir := range dirs {
		target := p.position.offset(dir.Row, dir.Column)
		for p.board.PositionExists(target) {
			occupant := p.board.at(target)
			if occupant == nil {
				matrix[target.Row][target.Column] = true
			} else if p.isOpponent(occupant) {
				matrix[target.Row][target.Column] = true
				break
			} else {
				break
			}
			target = target.offset(dir.Row, dir.Column)
		}
	}
}

// stepMoves marks single offsets that land on the board and not on a friend.
func (p *Piece) stepMoves(matrix MoveMatrix, dirs []Position) {
	for _, dir := range dirs {
		target := p.position.offset(dir.Row, dir.Column)
		if !p.board.PositionExists(target) {
			continue
		}
		if occupant := p.board.at(target); occupant == nil || p.isOpponent(occupant) {
			matrix[target.Row][target.Column] = true
		}
	}
}

// castlingMoves only checks that king and rook are unmoved, the path is empty and the
// king is not in check now. Squares the king crosses are not tested for attacks.
func (p *Piece) castlingMoves(matrix MoveMatrix) {
	if p.moveCount != 0 || p.match == nil || p.match.IsCheck() {
		return
	}
	p.castlingMove(matrix, kingsideRookOffset)
	p.castlingMove(matrix, queensideRookOffset)
}

func (p *Piece) castlingMove(matrix MoveMatrix, rookOffset int) {
	rook := p.board.at(p.position.offset(0, rookOffset))
	if rook == nil || rook.kind != Rook || rook.color != p.color || rook.moveCount != 0 {
		return
	}
	step := 1
	if rookOffset < 0 {
		step = -1
	}
	for col := step; col != rookOffset; col += step {
		if p.board.at(p.position.offset(0, col)) != nil {
			return
		}
	}
	target := p.position.offset(0, step*castlingStep)
	if p.board.PositionExists(target) {
		matrix[target.Row][target.Column] = true
	}
}

func pawnDirection(color Color) int {
	if color == White {
		return -1
	}
	return 1
}

// enPassantRow is the row a pawn of color stands on when it can take en passant.
func enPassantRow(color Color) int {
	if color == White {
		return 3
	}
	return 4
}

func (p *Piece) pawnMoves(matrix MoveMatrix) {
	dir := pawnDirection(p.color)

	front := p.position.offset(dir, 0)
	if p.board.PositionExists(front) && p.board.at(front) == nil {
		matrix[front.Row][front.Column] = true

		doubleFront := p.position.offset(2*dir, 0)
		if p.moveCount == 0 && p.board.PositionExists(doubleFront) && p.board.at(doubleFront) == nil {
			matrix[doubleFront.Row][doubleFront.Column] = true
		}
	}

	for _, side := range []int{-1, 1} {
		capture := p.position.offset(dir, side)
		if p.board.PositionExists(capture) && p.isOpponent(p.board.at(capture)) {
			matrix[capture.Row][capture.Column] = true
		}
	}

	p.enPassantMoves(matrix, dir)
}

func (p *Piece) enPassantMoves(matrix MoveMatrix, dir int) {
	if p.match == nil || p.position.Row != enPassantRow(p.color) {
		return
	}
	vulnerable := p.match.EnPassantVulnerable()
	if vulnerable == nil {
		return
	}
	for _, side := range []int{-1, 1} {
		beside := p.position.offset(0, side)
		if !p.board.PositionExists(beside) {
			continue
		}
		occupant := p.board.at(beside)
		if occupant != vulnerable || !p.isOpponent(occupant) {
			continue
		}
		target := beside.offset(dir, 0)
		if p.board.PositionExists(target) {
			matrix[target.Row][target.Column] = true
		}
	}
}
