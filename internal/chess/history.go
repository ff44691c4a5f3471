package chess

import "strings"

const (
	CastleKingside  = "O-O"
	CastleQueenside = "O-O-O"
)

// Ply is one committed half move.
type Ply struct {
	Color     Color     `json:"color"`
	Piece     PieceType `json:"piece"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Captured  PieceType `json:"captured,omitempty"`
	Castle    string    `json:"castle,omitempty"`
	EnPassant bool      `json:"enPassant,omitempty"`
	Promotion PieceType `json:"promotion,omitempty"`
	Check     bool      `json:"check,omitempty"`
	CheckMate bool      `json:"checkMate,omitempty"`
	Notation  string    `json:"notation"`
}

// Move pairs White's ply with Black's reply.
type Move struct {
	Number   int  `json:"number"`
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

func (m *Match) History() []Ply {
	return append([]Ply(nil), m.history...)
}

// Moves groups the history into numbered moves.
func (m *Match) Moves() []Move {
	moves := []Move{}
	for i := range m.history {
		ply := m.history[i]
		if ply.Color == White || len(moves) == 0 {
			moves = append(moves, Move{Number: len(moves) + 1})
		}
		last := &moves[len(moves)-1]
		if ply.Color == White {
			last.WhitePly = &ply
		} else {
			last.BlackPly = &ply
		}
	}
	return moves
}

func (m *Match) recordPly(record *moveRecord, mate bool) {
	ply := Ply{
		Color:     record.piece.color,
		Piece:     record.piece.kind,
		From:      squareName(record.source),
		To:        squareName(record.target),
		Castle:    record.castle(),
		EnPassant: record.enPassant,
		Check:     m.check,
		CheckMate: mate,
	}
	if record.captured != nil {
		ply.Captured = record.captured.kind
	}
	if m.promoted != nil {
		ply.Promotion = m.promoted.kind
	}
	ply.Notation = ply.notation()
	m.history = append(m.history, ply)
}

func (m *Match) amendPromotion(kind PieceType) {
	if len(m.history) == 0 {
		return
	}
	last := &m.history[len(m.history)-1]
	last.Promotion = kind
	last.Check = m.check
	last.CheckMate = m.checkMate
	last.Notation = last.notation()
}

func (p Ply) notation() string {
	var sb strings.Builder
	if p.Castle != "" {
		sb.WriteString(p.Castle)
	} else {
		if p.Piece != Pawn {
			sb.WriteString(p.Piece.Acronym())
		} else if p.Captured != "" && p.From != "" {
			sb.WriteByte(p.From[0])
		}
		if p.Captured != "" {
			sb.WriteString("x")
		}
		sb.WriteString(p.To)
		if p.Promotion != "" {
			sb.WriteString("=" + p.Promotion.Acronym())
		}
	}
	switch {
	case p.CheckMate:
		sb.WriteString("#")
	case p.Check:
		sb.WriteString("+")
	}
	return sb.String()
}
