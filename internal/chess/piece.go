package chess

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Title() string {
	if c == White {
		return "White"
	}
	return "Black"
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (t PieceType) Acronym() string {
	switch t {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return ""
}

// promotionTypes maps the acronyms a pawn may promote to.
var promotionTypes = map[string]PieceType{
	"B": Bishop,
	"N": Knight,
	"R": Rook,
	"Q": Queen,
}

// PromotionAcronyms lists the accepted promotion choices in prompt order.
func PromotionAcronyms() []string {
	return []string{"B", "N", "R", "Q"}
}

// matchView is the slice of match state that move generation reads.
type matchView interface {
	IsCheck() bool
	EnPassantVulnerable() *Piece
}

// Piece is one chess man. The board pointer is a back reference only; the Match owns pieces.
type Piece struct {
	kind      PieceType
	color     Color
	moveCount int
	position  *Position
	board     *Board
	match     matchView
}

func newPiece(kind PieceType, color Color, board *Board, match matchView) *Piece {
	return &Piece{kind: kind, color: color, board: board, match: match}
}

func (p *Piece) Type() PieceType {
	return p.kind
}

func (p *Piece) Color() Color {
	return p.color
}

func (p *Piece) MoveCount() int {
	return p.moveCount
}

// Position reports the cell the piece stands on; ok is false once captured.
func (p *Piece) Position() (Position, bool) {
	if p.position == nil {
		return Position{}, false
	}
	return *p.position, true
}

func (p *Piece) ChessPosition() (ChessPosition, bool) {
	if p.position == nil {
		return ChessPosition{}, false
	}
	cp, err := FromPosition(*p.position)
	if err != nil {
		return ChessPosition{}, false
	}
	return cp, true
}

func (p *Piece) String() string {
	return p.kind.Acronym()
}

func (p *Piece) increaseMoveCount() {
	p.moveCount++
}

func (p *Piece) decreaseMoveCount() {
	p.moveCount--
}

// PossibleMoves marks every cell the piece could move to, without looking at its own king.
func (p *Piece) PossibleMoves() MoveMatrix {
	matrix := p.board.newMatrix()
	if p.position == nil {
		return matrix
	}
	switch p.kind {
	case Pawn:
		p.pawnMoves(matrix)
	case Knight:
		p.stepMoves(matrix, knightDirs)
	case Bishop:
		p.slideMoves(matrix, bishopDirs)
	case Rook:
		p.slideMoves(matrix, rookDirs)
	case Queen:
		p.slideMoves(matrix, bishopDirs)
		p.slideMoves(matrix, rookDirs)
	case King:
		p.stepMoves(matrix, kingDirs)
		p.castlingMoves(matrix)
	}
	return matrix
}

func (p *Piece) PossibleMove(position Position) bool {
	return p.PossibleMoves().At(position)
}

func (p *Piece) IsThereAnyPossibleMove() bool {
	return p.PossibleMoves().Any()
}

func (p *Piece) isOpponent(other *Piece) bool {
	return other != nil && other.color != p.color
}

// PieceView is the read-only snapshot handed to renderers.
type PieceView struct {
	Type      PieceType `json:"type"`
	Color     Color     `json:"color"`
	Acronym   string    `json:"acronym"`
	MoveCount int       `json:"moveCount"`
	Square    string    `json:"square,omitempty"`
}

func (p *Piece) View() PieceView {
	view := PieceView{
		Type:      p.kind,
		Color:     p.color,
		Acronym:   p.kind.Acronym(),
		MoveCount: p.moveCount,
	}
	if cp, ok := p.ChessPosition(); ok {
		view.Square = cp.String()
	}
	return view
}

// MoveMatrix has one cell per board square; true means reachable.
type MoveMatrix [][]bool

func (m MoveMatrix) At(position Position) bool {
	if position.Row < 0 || position.Row >= len(m) || position.Column < 0 || position.Column >= len(m[position.Row]) {
		return false
	}
	return m[position.Row][position.Column]
}

func (m MoveMatrix) Any() bool {
	for i := range m {
		for j := range m[i] {
			if m[i][j] {
				return true
			}
		}
	}
	return false
}

// Squares lists the marked cells as chess squares, rank 8 first.
func (m MoveMatrix) Squares() []ChessPosition {
	squares := []ChessPosition{}
	for i := range m {
		for j := range m[i] {
			if !m[i][j] {
				continue
			}
			if cp, err := FromPosition(Position{Row: i, Column: j}); err == nil {
				squares = append(squares, cp)
			}
		}
	}
	return squares
}
